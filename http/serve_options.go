package http

import "github.com/aura-studio/universe/invoke"

// ServeOption is either an http Option or an invoke Option.
type ServeOption any

type serveOptionBag struct {
	http   []Option
	invoke []invoke.Option
}

func (b *serveOptionBag) apply(opts ...ServeOption) {
	for _, opt := range opts {
		switch o := opt.(type) {
		case Option:
			b.http = append(b.http, o)
		case invoke.Option:
			b.invoke = append(b.invoke, o)
		}
	}
}
