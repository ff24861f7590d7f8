// Package server exposes QR rendering over HTTP.
//
// Routes:
//
//	GET /healthz   liveness probe
//	GET /v1/qr     render a payload; query parameters mirror the CLI flags
//
// Errors are JSON objects with a machine-readable code. Client errors map
// to 400, everything else to 500.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/qrtile/pkg/errors"
	"github.com/matzehuels/qrtile/pkg/pipeline"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// DefaultMaxExtent caps width and height of a single request in pixels.
	DefaultMaxExtent = 4096.0

	// DefaultRenderTimeout bounds one request end to end.
	DefaultRenderTimeout = 10 * time.Second

	shutdownTimeout = 5 * time.Second
)

// Server renders QR codes for HTTP clients.
type Server struct {
	runner    *pipeline.Runner
	logger    *log.Logger
	defaults  pipeline.Config
	maxExtent float64
	timeout   time.Duration
	router    chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets the configuration used for parameters the request
// leaves out.
func WithDefaults(cfg pipeline.Config) Option {
	return func(s *Server) { s.defaults = cfg }
}

// WithMaxExtent caps the requested width and height.
func WithMaxExtent(px float64) Option {
	return func(s *Server) {
		if px > 0 {
			s.maxExtent = px
		}
	}
}

// WithTimeout bounds the time spent on one request.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a server backed by runner. The default width and height must
// not exceed the extent cap.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:    runner,
		logger:    logger,
		defaults:  pipeline.DefaultConfig(),
		maxExtent: DefaultMaxExtent,
		timeout:   DefaultRenderTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.defaults.Width > s.maxExtent || s.defaults.Height > s.maxExtent {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"default size %gx%g exceeds max extent %g", s.defaults.Width, s.defaults.Height, s.maxExtent)
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/qr", s.handleQR)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
