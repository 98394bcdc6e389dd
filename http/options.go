package http

import (
	"github.com/mohae/deepcopy"
)

type Option interface {
	Apply(o *Options)
}

type HttpOption func(*Options)

func (f HttpOption) Apply(o *Options) { f(o) }

type Options struct {
	// Http Options
	Address   string
	DebugMode bool
	CorsMode  bool
}

var defaultOptions = &Options{
	Address:   ":8080",
	DebugMode: false,
	CorsMode:  false,
}

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
}

// -------------- Http Options ----------------
func WithAddress(addr string) Option {
	return HttpOption(func(o *Options) {
		o.Address = addr
	})
}

func WithDebugMode() Option {
	return HttpOption(func(o *Options) {
		o.DebugMode = true
	})
}

func WithCors() Option {
	return HttpOption(func(o *Options) {
		o.CorsMode = true
	})
}
