// Copyright (c) 2026 VoxMundi. All rights reserved.
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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/voxmundi/internal/core/catalog"
	"github.com/taibuivan/voxmundi/internal/core/concert"
	"github.com/taibuivan/voxmundi/internal/core/culture"
	"github.com/taibuivan/voxmundi/internal/core/importer"
	"github.com/taibuivan/voxmundi/internal/core/person"
	"github.com/taibuivan/voxmundi/internal/core/record"
	"github.com/taibuivan/voxmundi/internal/platform/config"
	"github.com/taibuivan/voxmundi/internal/platform/constants"
	"github.com/taibuivan/voxmundi/internal/platform/middleware"
	"github.com/taibuivan/voxmundi/internal/users/auth"
	"github.com/taibuivan/voxmundi/internal/users/profile"
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
	// Liveness is the /health handler. Always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 only when every dependency answers.
	Readiness http.HandlerFunc

	Auth    *auth.Handler
	Profile *profile.Handler

	// Culture serves cultures, their taxonomy and their page, border and language content.
	Culture *culture.Handler

	// Catalog serves the canonical item registry.
	Catalog *catalog.Handler

	// Importer pulls films and books from external providers into the registry.
	Importer *importer.Handler

	// Record serves personal records and lists.
	Record *record.Handler

	Concert *concert.Handler
	Person  *person.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.Metrics)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins, cfg.IsDevelopment()))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health checks for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/profiles", h.Profile.Routes())

		api.Mount("/cultures", h.Culture.CultureRoutes())
		api.Mount("/categories", h.Culture.CategoryRoutes())
		api.Mount("/periods", h.Culture.PeriodRoutes())
		api.Mount("/page-contents", h.Culture.PageContentRoutes())
		api.Mount("/map-borders", h.Culture.MapBorderRoutes())
		api.Mount("/language-tables", h.Culture.LanguageTableRoutes())

		api.Mount("/universal-items", h.Catalog.ItemRoutes())
		api.Mount("/works", h.Catalog.WorkRoutes())

		// Films and books share a router between the registry and the importer.
		api.Route("/films", func(films chi.Router) {
			h.Importer.RegisterFilmRoutes(films)
			h.Catalog.RegisterFilmRoutes(films)
		})
		api.Route("/books", func(books chi.Router) {
			h.Importer.RegisterBookRoutes(books)
			h.Catalog.RegisterBookRoutes(books)
		})

		api.Mount("/items", h.Record.RecordRoutes())
		api.Mount("/user-films", h.Record.FilmImageRoutes())
		api.Mount("/lists", h.Record.ListRoutes())

		api.Mount("/concerts", h.Concert.Routes())
		api.Mount("/people", h.Person.Routes())
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

// Handler returns the root router. Used by tests that drive the full chain.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
