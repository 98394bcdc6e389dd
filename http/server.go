package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

var (
	mu  sync.Mutex
	srv *http.Server
)

func Serve(opts ...ServeOption) error {
	e := NewEngine(opts...)
	s := &http.Server{
		Addr:    e.Address,
		Handler: e,
	}

	mu.Lock()
	srv = s
	mu.Unlock()

	if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func Close() error {
	mu.Lock()
	s := srv
	mu.Unlock()
	if s == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
