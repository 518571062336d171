// Package server exposes maze generation over HTTP.
//
// # Routes
//
//	GET  /healthz            liveness probe
//	GET  /v1/maze            generate and render a maze in one request
//	POST /v1/mazes           generate a maze and archive it
//	GET  /v1/mazes           list archived mazes, newest first
//	GET  /v1/mazes/{id}      fetch an archived maze, optionally rendered
//
// Query parameters for GET /v1/maze: width, height, algorithm, seed,
// format (text, json, dot, svg) and style (blocks, ascii).
//
// Errors are JSON objects {"code": "...", "error": "..."} whose status is
// derived from the error code.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	mzerrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/observability"
	"github.com/matzehuels/mazegen/pkg/pipeline"
	"github.com/matzehuels/mazegen/pkg/store"
)

// Config configures a Server.
type Config struct {
	Addr string

	// MaxDimension caps requested width and height. Zero means
	// errors.DefaultMaxDimension.
	MaxDimension int

	// RequestTimeout bounds each request. Zero means 30 seconds.
	RequestTimeout time.Duration

	Logger *log.Logger
}

// Server is the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	cfg     Config
	handler http.Handler
}

// New builds a server around a pipeline runner and an archive.
func New(runner *pipeline.Runner, archive store.Store, cfg Config) *Server {
	if cfg.MaxDimension == 0 {
		cfg.MaxDimension = mzerrors.DefaultMaxDimension
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if archive == nil {
		archive = store.NewMemoryStore()
	}
	s := &Server{
		runner: runner,
		store:  archive,
		logger: cfg.Logger,
		cfg:    cfg,
	}
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/maze", s.handleGenerate)
		r.Post("/mazes", s.handleCreate)
		r.Get("/mazes", s.handleList)
		r.Get("/mazes/{id}", s.handleGet)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, mzerrors.New(mzerrors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{
			Code:  mzerrors.ErrCodeUnsupported,
			Error: r.Method + " not allowed on " + r.URL.Path,
		})
	})
	return r
}

// Handler returns the router, for use with httptest or a custom server.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// logRequests logs each request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))

		s.logger.Info("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
