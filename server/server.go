package server

import (
	"fmt"
	"os"

	"github.com/aura-studio/universe/http"
	"github.com/aura-studio/universe/invoke"
)

func NewOptions(opts ...Option) *Options {
	options := &Options{Mode: ModeAuto}
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(options)
		}
	}
	return options
}

// Resolve turns ModeAuto into a concrete mode: lambda when the process runs
// under the Lambda runtime, http otherwise.
func (o *Options) Resolve() Mode {
	if o.Mode != ModeAuto && o.Mode != "" {
		return o.Mode
	}
	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" || os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		return ModeLambda
	}
	return ModeHTTP
}

// InvokeOptions returns the configured invoke options. With none configured
// it falls back to a standalone invoke.yaml when one can be found.
func (o *Options) InvokeOptions() []invoke.Option {
	if len(o.Invoke) > 0 {
		return o.Invoke
	}
	if _, err := invoke.FindDefaultConfigFile(); err == nil {
		return []invoke.Option{invoke.WithDefaultConfigFile()}
	}
	return nil
}

// Serve runs the function in the resolved mode. Configuration panics raised
// while building the engines are returned as errors.
func Serve(opts ...Option) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("server: %v", r)
		}
	}()

	options := NewOptions(opts...)
	invokeOpts := options.InvokeOptions()

	switch options.Resolve() {
	case ModeLambda:
		invoke.Serve(invokeOpts...)
		return nil
	default:
		serveOpts := make([]http.ServeOption, 0, len(options.Http)+len(invokeOpts))
		for _, o := range options.Http {
			serveOpts = append(serveOpts, o)
		}
		for _, o := range invokeOpts {
			serveOpts = append(serveOpts, o)
		}
		return http.Serve(serveOpts...)
	}
}

func Close() error {
	if err := http.Close(); err != nil {
		return err
	}
	invoke.Close()
	return nil
}
