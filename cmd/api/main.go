// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the VoxMundi HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build provider clients and domain services.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/voxmundi/internal/api"
	"github.com/taibuivan/voxmundi/internal/core/catalog"
	"github.com/taibuivan/voxmundi/internal/core/concert"
	"github.com/taibuivan/voxmundi/internal/core/culture"
	"github.com/taibuivan/voxmundi/internal/core/importer"
	"github.com/taibuivan/voxmundi/internal/core/person"
	"github.com/taibuivan/voxmundi/internal/core/record"
	"github.com/taibuivan/voxmundi/internal/platform/config"
	"github.com/taibuivan/voxmundi/internal/platform/constants"
	"github.com/taibuivan/voxmundi/internal/platform/migration"
	pgstore "github.com/taibuivan/voxmundi/internal/platform/postgres"
	redisstore "github.com/taibuivan/voxmundi/internal/platform/redis"
	"github.com/taibuivan/voxmundi/internal/platform/sec"
	"github.com/taibuivan/voxmundi/internal/provider/cse"
	"github.com/taibuivan/voxmundi/internal/provider/openlibrary"
	"github.com/taibuivan/voxmundi/internal/provider/tmdb"
	"github.com/taibuivan/voxmundi/internal/users/auth"
	"github.com/taibuivan/voxmundi/internal/users/profile"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("tmdb_configured", cfg.Providers.TMDBConfigured()),
		slog.Bool("concert_search_configured", cfg.Providers.GoogleSearchConfigured()),
	)

	// Root context for startup. A 30s deadline catches misconfiguration
	// quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, cfg.RedisPoolSize, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Identity ───────────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 7. Providers ──────────────────────────────────────────────────────
	providers := cfg.Providers
	providerCache := redisstore.NewCache(rdb, "voxmundi:provider:")

	tmdbClient := tmdb.New(tmdb.Config{
		BaseURL:   providers.TMDBBaseURL,
		ReadToken: providers.TMDBReadToken,
		Timeout:   providers.Timeout,
		CacheTTL:  providers.CacheTTL,
	}, providerCache, log)

	openLibraryClient := openlibrary.New(openlibrary.Config{
		BaseURL:   providers.OpenLibraryBaseURL,
		UserAgent: providers.OpenLibraryUserAgent,
		Timeout:   providers.Timeout,
		CacheTTL:  providers.CacheTTL,
	}, providerCache, log)

	searchClient := cse.New(cse.Config{
		BaseURL:  providers.GoogleSearchBaseURL,
		APIKey:   providers.GoogleSearchAPIKey,
		EngineID: providers.GoogleSearchID,
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	txManager := pgstore.NewTxManager(pool)

	authService := auth.NewService(auth.NewUserRepository(pool), auth.NewSessionRepository(pool), jwtSvc, txManager, log)

	cultureService := culture.NewService(culture.NewPostgresRepository(pool), txManager, log)
	profileService := profile.NewService(profile.NewPostgresRepository(pool), cultureService, txManager, log)

	catalogService := catalog.NewService(catalog.NewPostgresRepository(pool), txManager, log)

	importService := importer.NewService(tmdbClient, openLibraryClient, catalogService, importer.NewPacer(providers.ImportPacing), importer.Config{
		MaxAttempts:   providers.ImportMaxAttempts,
		ImageBaseURL:  providers.TMDBImageBaseURL,
		CoversBaseURL: providers.OpenLibraryCoversURL,
	}, log)

	resolver := record.NewResolver(cultureService)
	recordStore := record.NewPostgresRepository(pool)
	recordService := record.NewService(recordStore, resolver, catalogService, txManager, providers.TMDBImageBaseURL, log)
	listService := record.NewListService(recordStore, resolver, catalogService, txManager, log)

	concertService := concert.NewService(searchClient, providers.ConcertWorkers, log)
	personService := person.NewService(person.NewPostgresRepository(pool), log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, cfg.IsProduction()),
		Profile:   profile.NewHandler(profileService),
		Culture:   culture.NewHandler(cultureService),
		Catalog:   catalog.NewHandler(catalogService),
		Importer:  importer.NewHandler(importService),
		Record:    record.NewHandler(recordService, listService),
		Concert:   concert.NewHandler(concertService),
		Person:    person.NewHandler(personService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
