package invoke

import (
	"github.com/aws/aws-lambda-go/lambda"
)

// engine 是全局引擎变量
var engine *Engine

// Serve registers a new Engine with the Lambda runtime. It blocks for the
// lifetime of the process.
func Serve(opts ...Option) {
	engine = NewEngine(opts...)
	lambda.Start(engine.Invoke)
}

// Close 优雅关闭引擎
func Close() {
	if engine != nil {
		engine.Stop()
	}
}
