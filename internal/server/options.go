package server

import (
	"log/slog"
	"time"
)

// Option represents a functional option for configuring Runner.
type Option func(*Runner)

// WithLogger sets a logger for the Runner instance.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger.WithGroup("server.Runner")
		}
	}
}

// WithListenAddr sets the TCP address to listen on.
func WithListenAddr(addr string) Option {
	return func(r *Runner) {
		if addr != "" {
			r.srv.Addr = addr
		}
	}
}

// WithShutdownTimeout bounds how long in-flight requests may take to finish.
func WithShutdownTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.shutdownTimeout = d
		}
	}
}

// WithMaxHeaderBytes limits the size of request headers.
func WithMaxHeaderBytes(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.srv.MaxHeaderBytes = n
		}
	}
}
