// Package httpserver runs the dev server that answers artifact requests in front of a static file tree.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	derrors "git.home.luguber.info/inful/llmstxt/internal/foundation/errors"
	"git.home.luguber.info/inful/llmstxt/internal/logfields"
	handlers "git.home.luguber.info/inful/llmstxt/internal/server/handlers"
	smw "git.home.luguber.info/inful/llmstxt/internal/server/middleware"
)

const (
	defaultAddr        = ":5173"
	defaultMetricsPath = "/metrics"
	shutdownTimeout    = 5 * time.Second
)

// Server wires the artifact middleware, page data, health and metrics endpoints.
type Server struct {
	opts         Options
	logger       *slog.Logger
	errorAdapter *derrors.HTTPErrorAdapter

	artifactHandlers   *handlers.ArtifactHandlers
	pageDataHandlers   *handlers.PageDataHandlers
	monitoringHandlers *handlers.MonitoringHandlers

	mchain func(http.Handler) http.Handler

	mu  sync.Mutex
	srv *http.Server
	ln  net.Listener
}

// New constructs a server. Source is required.
func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = defaultAddr
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = defaultMetricsPath
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		opts:         opts,
		logger:       logger,
		errorAdapter: derrors.NewHTTPErrorAdapter(logger),
	}
	s.artifactHandlers = handlers.NewArtifactHandlers(opts.Source, opts.Recorder, logger)
	s.pageDataHandlers = handlers.NewPageDataHandlers(opts.Source, logger)
	s.monitoringHandlers = handlers.NewMonitoringHandlers(opts.Source, logger)
	s.mchain = smw.Chain(logger, s.errorAdapter)
	return s
}

// Handler returns the full routing tree wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(handlers.PageDataPath, s.pageDataHandlers.HandlePageData)
	mux.HandleFunc("/healthz", s.monitoringHandlers.HandleHealthCheck)
	if s.opts.MetricsHandler != nil {
		mux.Handle(s.opts.MetricsPath, s.opts.MetricsHandler)
	}

	var static http.Handler = http.NotFoundHandler()
	if s.opts.StaticDir != "" {
		static = http.FileServer(http.Dir(s.opts.StaticDir))
	}
	artifacts := s.opts.Middleware
	if artifacts == nil {
		artifacts = s.artifactHandlers.Middleware
	}
	mux.Handle("/", artifacts(static))

	return s.mchain(mux)
}

// Start binds the listener and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		return derrors.RuntimeError("dev server already started").Build()
	}

	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryRuntime, "failed to bind dev server").
			WithContext("addr", s.opts.Addr).
			Fatal().
			Build()
	}

	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func(srv *http.Server) {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("dev server error", logfields.Error(err))
		}
	}(s.srv)

	s.logger.Info("Dev server started", slog.String("addr", ln.Addr().String()))
	return nil
}

// Addr reports the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.opts.Addr
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv, s.ln = nil, nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("dev server shutdown: %w", err)
	}
	s.logger.Info("Dev server stopped")
	return nil
}

// Run starts the server and blocks until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}
