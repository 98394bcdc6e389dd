package invoke

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/aura-studio/universe/hello"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"
)

// ErrEngineStopped is returned by Invoke after Stop.
var ErrEngineStopped = errors.New("invoke: engine is stopped")

// Engine 是 invoke 模块的核心引擎
type Engine struct {
	*Options
	running atomic.Int32
}

// NewEngine 创建新的引擎实例
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		Options: NewOptions(opts...),
	}
	e.running.Store(1)
	return e
}

// Start 启动引擎
func (e *Engine) Start() {
	e.running.Store(1)
}

// Stop 停止引擎
func (e *Engine) Stop() {
	e.running.Store(0)
}

// IsRunning 返回引擎是否正在运行
func (e *Engine) IsRunning() bool {
	return e.running.Load() == 1
}

// Invoke 处理 Lambda 调用请求
//
// The Lambda runtime decodes the JSON payload into req and encodes the
// returned Response, so Invoke can be handed to lambda.Start as is.
func (e *Engine) Invoke(ctx context.Context, req hello.Request) (hello.Response, error) {
	if !e.IsRunning() {
		return nil, ErrEngineStopped
	}

	if e.DebugMode {
		e.Logger.WithFields(requestFields(ctx)).WithField("request", req).Info("[Invoke] Request")
	}

	resp, err := hello.Handle(ctx, req)

	if e.DebugMode {
		e.Logger.WithFields(requestFields(ctx)).WithFields(logrus.Fields{
			"status_code": resp.StatusCode(),
			"body":        resp.Body(),
		}).Info("[Invoke] Response")
	}

	return resp, err
}

func requestFields(ctx context.Context) logrus.Fields {
	fields := logrus.Fields{}
	if ctx == nil {
		return fields
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		fields["aws_request_id"] = lc.AwsRequestID
		fields["function_arn"] = lc.InvokedFunctionArn
	}
	if deadline, ok := ctx.Deadline(); ok {
		fields["deadline"] = deadline
	}
	return fields
}
