package httpserver

import (
	"context"
	"log/slog"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the lifecycle logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithShutdownHook runs fn after the listener has stopped, with the
// remaining shutdown deadline. Hooks run in registration order.
func WithShutdownHook(fn func(context.Context) error) Option {
	if fn == nil {
		panic("httpserver: nil shutdown hook")
	}
	return func(s *Server) { s.hooks = append(s.hooks, fn) }
}
