// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/sitenav/internal/auth"
	"github.com/taibuivan/sitenav/internal/core/category"
	"github.com/taibuivan/sitenav/internal/core/directory"
	"github.com/taibuivan/sitenav/internal/core/site"
	"github.com/taibuivan/sitenav/internal/platform/config"
	"github.com/taibuivan/sitenav/internal/platform/constants"
	"github.com/taibuivan/sitenav/internal/platform/middleware"
	"github.com/taibuivan/sitenav/internal/platform/retrycache"
	"github.com/taibuivan/sitenav/internal/platform/sec"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the administrator login. Nil disables every admin route.
	Auth *auth.Handler

	// Category lists and manages categories.
	Category *category.Handler

	// Site serves single sites and manages them.
	Site *site.Handler

	// Directory serves the filtered, grouped and tag views.
	Directory *directory.Handler

	// Cache is the shared cached retry client, exposed to admins.
	Cache *retrycache.Client
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. A nil verifier runs the directory read-only.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	if verifier != nil {
		r.Use(middleware.Authenticate(verifier))
	}
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/categories", h.Category.Routes())
		h.Directory.RegisterRoutes(api)
		h.Site.RegisterRoutes(api)

		if verifier == nil || h.Auth == nil {
			return
		}

		loginLimiter := middleware.RateLimitWith(context, constants.LoginRateLimitRPS, constants.LoginRateLimitBurst)
		api.Mount("/auth", h.Auth.Routes(loginLimiter))

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.RequireRole(sec.RoleAdmin))

			admin.Mount("/categories", h.Category.AdminRoutes())
			admin.Mount("/cache", cacheRoutes(h.Cache))
			h.Directory.RegisterAdminRoutes(admin)
			h.Site.RegisterAdminRoutes(admin)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler returns the root router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
