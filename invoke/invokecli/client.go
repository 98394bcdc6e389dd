package invokecli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aura-studio/universe/hello"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/tidwall/gjson"
)

var (
	ErrTimeout       = errors.New("invokecli: request timeout")
	ErrNoFunction    = errors.New("invokecli: function name not set")
	ErrMalformedBody = errors.New("invokecli: malformed response payload")
)

// Result is the decoded response of a hello-universe invocation.
type Result struct {
	StatusCode int
	Body       string
	Raw        []byte
}

// Client invokes a deployed hello-universe function.
type Client struct {
	*Options

	once    sync.Once
	initErr error
}

// NewClient 创建新的客户端实例
func NewClient(opts ...Option) *Client {
	return &Client{
		Options: NewOptions(opts...),
	}
}

func (c *Client) lambdaClient(ctx context.Context) (LambdaClient, error) {
	c.once.Do(func() {
		if c.LambdaClient != nil {
			return
		}
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			c.initErr = fmt.Errorf("invokecli: load aws config: %w", err)
			return
		}
		c.LambdaClient = lambda.NewFromConfig(cfg)
	})
	return c.LambdaClient, c.initErr
}

// Call 同步调用 Lambda 函数
func (c *Client) Call(ctx context.Context, req hello.Request) (*Result, error) {
	if c.FunctionName == "" {
		return nil, ErrNoFunction
	}

	client, err := c.lambdaClient(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("invokecli: marshal request: %w", err)
	}

	// 设置超时上下文
	timeout := c.DefaultTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	input := &lambda.InvokeInput{
		FunctionName:   aws.String(c.FunctionName),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        payload,
	}
	if c.Qualifier != "" {
		input.Qualifier = aws.String(c.Qualifier)
	}

	output, err := client.Invoke(ctx, input)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("invokecli: lambda invoke failed: %w", err)
	}

	if output.FunctionError != nil {
		return nil, fmt.Errorf("invokecli: function error %s: %s",
			aws.ToString(output.FunctionError), gjson.GetBytes(output.Payload, "errorMessage").String())
	}

	return parseResult(output.Payload)
}

func parseResult(payload []byte) (*Result, error) {
	if !gjson.ValidBytes(payload) {
		return nil, ErrMalformedBody
	}
	status := gjson.GetBytes(payload, hello.FieldStatusCode)
	body := gjson.GetBytes(payload, hello.FieldBody)
	if status.Type != gjson.Number || body.Type != gjson.String {
		return nil, fmt.Errorf("%w: %s", ErrMalformedBody, payload)
	}
	return &Result{
		StatusCode: int(status.Int()),
		Body:       body.String(),
		Raw:        payload,
	}, nil
}

// CallAsync 异步调用 Lambda 函数
func (c *Client) CallAsync(ctx context.Context, req hello.Request, callback func(*Result, error)) {
	go func() {
		resp, err := c.Call(ctx, req)
		if callback != nil {
			callback(resp, err)
		}
	}()
}
