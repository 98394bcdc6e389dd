package http

import (
	"github.com/aura-studio/universe/invoke"
	"github.com/gin-gonic/gin"
)

// Engine serves the function over plain HTTP for local runs. Every request
// goes through the same invoke.Engine the Lambda runtime would call.
type Engine struct {
	*Options
	*gin.Engine
	Invoker *invoke.Engine
}

func NewEngine(opts ...ServeOption) *Engine {
	bag := &serveOptionBag{}
	bag.apply(opts...)

	options := NewOptions(bag.http...)
	if !options.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	e := &Engine{
		Options: options,
		Engine:  gin.New(),
		Invoker: invoke.NewEngine(bag.invoke...),
	}
	// unmatched paths belong to the handler, never to a redirect
	e.RedirectTrailingSlash = false
	e.RedirectFixedPath = false

	e.Use(gin.Recovery(), RequestID())
	if e.DebugMode {
		e.Use(AccessLog(e.Invoker.Logger))
	}
	if e.CorsMode {
		e.Use(Cors())
	}

	e.InstallHandlers()

	return e
}
