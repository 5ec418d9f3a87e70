// Package server exposes the exploration pipeline over HTTP.
//
// The API is intentionally small: graphs are uploaded and fetched by name,
// layout passes are computed on demand from a posted view state, and share
// links capture a (graph, state) pair under a short ID.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/specatlas/specatlas/internal/config"
	"github.com/specatlas/specatlas/pkg/observability"
	"github.com/specatlas/specatlas/pkg/share"
	"github.com/specatlas/specatlas/pkg/store"
	"github.com/specatlas/specatlas/pkg/view"
)

// Server wires the graph store, share store, and layout runner behind a
// chi router.
type Server struct {
	cfg    config.ServerConfig
	logger *log.Logger

	graphs store.Store
	shares share.Store
	runner *view.Runner

	// ShareTTL is the default lifetime of created share links; zero selects
	// share.DefaultTTL.
	ShareTTL time.Duration

	http *http.Server
}

// New assembles a server from its collaborators. A nil logger selects
// log.Default(); a zero shareTTL selects share.DefaultTTL.
func New(cfg config.ServerConfig, graphs store.Store, shares share.Store, runner *view.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
		graphs: graphs,
		shares: shares,
		runner: runner,
	}
	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/graphs", func(r chi.Router) {
			r.Get("/", s.handleListGraphs)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", s.handleGetGraph)
				r.Put("/", s.handlePutGraph)
				r.Delete("/", s.handleDeleteGraph)
				r.Post("/layout", s.handleLayout)
			})
		})
		r.Route("/shares", func(r chi.Router) {
			r.Post("/", s.handleCreateShare)
			r.Get("/{id}", s.handleGetShare)
		})
	})

	return r
}

// logRequests emits one structured log line per request and feeds the
// observability HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", elapsed)
	})
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout.Duration)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
