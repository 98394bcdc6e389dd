package invoke

import (
	"github.com/mohae/deepcopy"
	"github.com/sirupsen/logrus"
)

// Option 配置选项接口
type Option interface {
	Apply(o *Options)
}

// OptionFunc 配置选项函数类型
type OptionFunc func(*Options)

// Apply 实现 Option 接口
func (f OptionFunc) Apply(o *Options) { f(o) }

// Options holds the configuration for the invoke engine
type Options struct {
	DebugMode bool           // 调试模式
	Logger    *logrus.Logger // 调试日志
}

var defaultOptions = &Options{
	DebugMode: false,
}

// NewOptions creates a new Options instance with the given options applied
func NewOptions(opts ...Option) *Options {
	options := deepcopy.Copy(defaultOptions).(*Options)
	options.init(opts...)
	return options
}

func (o *Options) init(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(o)
		}
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
}

// WithDebugMode sets the debug mode for the invoke engine
func WithDebugMode(debug bool) Option {
	return OptionFunc(func(o *Options) {
		o.DebugMode = debug
	})
}

// WithLogger sets the logger used in debug mode
func WithLogger(logger *logrus.Logger) Option {
	return OptionFunc(func(o *Options) {
		o.Logger = logger
	})
}
