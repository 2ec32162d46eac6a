// Package server runs the application's HTTP handler under the process supervisor.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/robbyt/go-supervisor/supervisor"
)

// Interface guard: ensure Runner implements supervisor.Runnable
var _ supervisor.Runnable = (*Runner)(nil)

// DefaultShutdownTimeout bounds graceful shutdown when no timeout is configured.
const DefaultShutdownTimeout = 30 * time.Second

// Runner serves an http.Handler until its context is cancelled or Stop is called.
type Runner struct {
	logger          *slog.Logger
	srv             *http.Server
	shutdownTimeout time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	addr    string
}

// New creates a Runner serving handler. The listen address defaults to ":8080".
func New(handler http.Handler, opts ...Option) (*Runner, error) {
	if handler == nil {
		return nil, errors.New("handler is required")
	}

	r := &Runner{
		logger:          slog.Default(),
		shutdownTimeout: DefaultShutdownTimeout,
		srv: &http.Server{
			Addr:              ":8080",
			Handler:           handler,
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

func (r *Runner) String() string {
	return "server.Runner"
}

// Addr returns the bound listen address once Run has started listening.
func (r *Runner) Addr() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addr
}

// Run implements the Runnable interface. It blocks until ctx is done, Stop
// is called or the listener fails.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		r.logger.Debug("HTTP server stopped before start")
		return nil
	}
	r.cancel = cancel
	r.mu.Unlock()

	ln, err := net.Listen("tcp", r.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", r.srv.Addr, err)
	}

	r.mu.Lock()
	r.addr = ln.Addr().String()
	r.mu.Unlock()

	r.logger.Info("Starting HTTP server", "address", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- r.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	r.logger.Info("Shutting down HTTP server", "timeout", r.shutdownTimeout)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), r.shutdownTimeout)
	defer shutdownCancel()

	if err := r.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errCh

	r.logger.Info("HTTP server stopped")
	return nil
}

// Stop implements the Runnable interface and triggers a graceful shutdown.
// A Stop before Run makes the next Run return immediately.
func (r *Runner) Stop() {
	r.mu.Lock()
	r.stopped = true
	cancel := r.cancel
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
