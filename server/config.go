package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aura-studio/universe/http"
	"github.com/aura-studio/universe/invoke"
	yaml "gopkg.in/yaml.v2"
)

type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeLambda Mode = "lambda"
	ModeHTTP   Mode = "http"
)

type yamlServerConfig struct {
	Mode   string `yaml:"mode"`
	Invoke any    `yaml:"invoke"`
	HTTP   any    `yaml:"http"`
}

type Option interface {
	Apply(*Options)
}

type Options struct {
	Mode   Mode
	Invoke []invoke.Option
	Http   []http.Option
}

type OptionFunc func(*Options)

func (f OptionFunc) Apply(o *Options) { f(o) }

func WithMode(mode Mode) Option {
	return OptionFunc(func(o *Options) {
		switch mode {
		case ModeAuto, ModeLambda, ModeHTTP:
			o.Mode = mode
		default:
			panic("server: unrecognized mode: " + string(mode))
		}
	})
}

func WithInvokeOptions(opts ...invoke.Option) Option {
	return OptionFunc(func(o *Options) {
		o.Invoke = append(o.Invoke, opts...)
	})
}

func WithHttpOptions(opts ...http.Option) Option {
	return OptionFunc(func(o *Options) {
		o.Http = append(o.Http, opts...)
	})
}

type configOption struct {
	mode      Mode
	invokeOpt invoke.Option
	httpOpt   http.Option
}

func (o configOption) Apply(opts *Options) {
	if o.mode != "" {
		opts.Mode = o.mode
	}
	if o.invokeOpt != nil {
		opts.Invoke = append(opts.Invoke, o.invokeOpt)
	}
	if o.httpOpt != nil {
		opts.Http = append(opts.Http, o.httpOpt)
	}
}

func optionFromConfigBytes(b []byte) (Option, error) {
	var cfg yamlServerConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	var mode Mode
	switch Mode(cfg.Mode) {
	case "":
	case ModeAuto, ModeLambda, ModeHTTP:
		mode = Mode(cfg.Mode)
	default:
		return nil, fmt.Errorf("unrecognized mode %q", cfg.Mode)
	}

	var invokeOpt invoke.Option
	if cfg.Invoke != nil {
		b, err := yaml.Marshal(cfg.Invoke)
		if err != nil {
			return nil, err
		}
		invokeOpt = invoke.WithConfig(b)
	}

	var httpOpt http.Option
	if cfg.HTTP != nil {
		b, err := yaml.Marshal(map[string]any{"http": cfg.HTTP})
		if err != nil {
			return nil, err
		}
		httpOpt = http.WithConfig(b)
	}

	return configOption{
		mode:      mode,
		invokeOpt: invokeOpt,
		httpOpt:   httpOpt,
	}, nil
}

// WithConfig parses YAML bytes following server.yml structure. The invoke
// section uses the invoke.yml layout; the http section is nested under an
// http key just like http.yaml.
// It panics when applied if the YAML is invalid.
func WithConfig(yamlBytes []byte) Option {
	opt, err := optionFromConfigBytes(yamlBytes)
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("server.WithConfig: %w", err))
		})
	}
	return opt
}

// WithConfigFile loads a YAML file and applies it as an Option.
// It panics when applied if the file cannot be read or YAML is invalid.
func WithConfigFile(path string) Option {
	b, err := os.ReadFile(path)
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("server.WithConfigFile(%s): %w", path, err))
		})
	}
	return WithConfig(b)
}

// DefaultConfigCandidates returns relative paths that will be checked (in order)
// when searching for a default server config.
func DefaultConfigCandidates() []string {
	return []string{
		"lambda.yaml",
		"lambda.yml",
		"server.yaml",
		"server.yml",
		"config.yaml",
		"config.yml",
	}
}

// FindDefaultConfigFile searches for a server config file in the working
// directory, then next to the executable.
func FindDefaultConfigFile() (string, error) {
	candidates := DefaultConfigCandidates()

	dirs := []string{"."}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}

	for _, dir := range dirs {
		for _, rel := range candidates {
			p := rel
			if dir != "." {
				p = filepath.Join(dir, rel)
			}
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("server config not found (expected %v)", candidates)
}
