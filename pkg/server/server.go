// Package server provides the HTTP front end for the provider gateway.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"chatrelay/pkg/config"
	"chatrelay/pkg/gateway"
	"chatrelay/pkg/server/middleware"
)

// Server is the HTTP server exposing the gateway API.
type Server struct {
	config         config.ServerConfig
	gateway        *gateway.Gateway
	metricsHandler http.Handler
	metricsPath    string

	httpServer   *http.Server
	shutdownOnce sync.Once
	mu           sync.Mutex
	isRunning    bool
}

// Option configures optional server behavior.
type Option func(*Server)

// WithMetricsHandler mounts a metrics endpoint at the given path.
func WithMetricsHandler(path string, handler http.Handler) Option {
	return func(s *Server) {
		s.metricsPath = path
		s.metricsHandler = handler
	}
}

// New creates a server over the given gateway.
func New(cfg config.ServerConfig, gw *gateway.Gateway, opts ...Option) *Server {
	s := &Server{
		config:  cfg,
		gateway: gw,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the full route table wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /providers", s.handleProviders)
	mux.HandleFunc("POST /providers/{provider}/test", s.handleTestProvider)
	mux.HandleFunc("POST /chat", s.handleChat)
	if s.metricsHandler != nil {
		mux.Handle("GET "+s.metricsPath, s.metricsHandler)
	}
	mux.HandleFunc("/", s.handleNotFound)

	var handler http.Handler = mux
	if s.config.CORSEnabled == nil || *s.config.CORSEnabled {
		handler = middleware.CORS(handler)
	}
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(handler)
	return handler
}

// Start runs the server and blocks until ctx is cancelled, a shutdown
// signal arrives, or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.httpServer = &http.Server{
		Addr:         s.config.ListenAddress,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting gateway server", "address", s.config.ListenAddress)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully drains in-flight requests within the configured
// shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		srv := s.httpServer
		s.isRunning = false
		s.mu.Unlock()

		if srv == nil {
			return
		}

		slog.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}
	})

	return shutdownErr
}
