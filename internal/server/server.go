// internal/server/server.go
//
// Service bootstrap: HTTP application and listener.
//
/*
Context
--------
New builds the chi application from an already-loaded *config.Config; the
bootstrap never reads the environment itself.  Middleware order, outermost
first:

  1. request ID            (chi)
  2. panic recovery        (chi)
  3. request info          (client IP, UA class)
  4. access log + metrics  (zap, Prometheus)
  5. security headers      (HSTS in production only)
  6. CORS                  (any origin, method, header; credentials)

Routes
------
  GET /              fixed greeting
  GET /health        fixed liveness payload, independent of backends
  GET /health/ready  named readiness checks (Postgres, Redis)
  GET /version       build information
  GET /metrics       Prometheus exposition

ListenAndServe binds every interface on cfg.Port and blocks until the
context is cancelled, then drains in-flight requests.
*/
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/curriculum-ai/internal/config"
	"github.com/yanizio/curriculum-ai/internal/middleware"
	"github.com/yanizio/curriculum-ai/internal/requestinfo"
	"github.com/yanizio/curriculum-ai/internal/version"
)

// Server is the HTTP application.  Safe for concurrent use once built.
type Server struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	checks []HealthCheck
	router chi.Router
}

/*──────────────────────────── construction ─────────────────────────────────*/

// New builds the application.  checks back /health/ready; none of them run
// during construction.
func New(cfg *config.Config, log *zap.SugaredLogger, checks ...HealthCheck) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Server{
		cfg:    cfg,
		log:    log.With("app", version.Name, "version", version.Version),
		checks: checks,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestinfo.Enrich)
	r.Use(middleware.AccessLog(s.log))
	r.Use(middleware.Security(s.cfg.IsProduction()))
	r.Use(middleware.CORS())

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/health/ready", s.handleReady)
	r.Get("/version", s.handleVersion)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

/*──────────────────────────── listener ────────────────────────────────────*/

// ListenAndServe binds cfg.ListenAddr() and serves until ctx is cancelled.
// A bind failure is returned immediately.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr())
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.ListenAddr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the application on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := newHTTPServer(ln.Addr().String(), s.router)

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("listening", "addr", ln.Addr().String(), "environment", s.cfg.Environment)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	s.log.Infow("shutting down", "timeout", ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
