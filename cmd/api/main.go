// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the sitenav HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when it backs the read cache.
//  5. Run database migrations (idempotent).
//  6. Wire the cached retry client, services and handlers.
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

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/sitenav/internal/api"
	"github.com/taibuivan/sitenav/internal/auth"
	"github.com/taibuivan/sitenav/internal/core/category"
	"github.com/taibuivan/sitenav/internal/core/directory"
	"github.com/taibuivan/sitenav/internal/core/site"
	"github.com/taibuivan/sitenav/internal/platform/config"
	"github.com/taibuivan/sitenav/internal/platform/constants"
	"github.com/taibuivan/sitenav/internal/platform/middleware"
	"github.com/taibuivan/sitenav/internal/platform/migration"
	pgstore "github.com/taibuivan/sitenav/internal/platform/postgres"
	redisstore "github.com/taibuivan/sitenav/internal/platform/redis"
	"github.com/taibuivan/sitenav/internal/platform/retrycache"
	"github.com/taibuivan/sitenav/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

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
		slog.String("cache_backend", cfg.CacheBackend),
		slog.Bool("admin_enabled", cfg.AdminEnabled()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.UsesRedis() {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Cached Retry Client ────────────────────────────────────────────
	var store retrycache.Store = retrycache.NewMemoryStore()
	if rdb != nil {
		store = retrycache.NewRedisStore(rdb, constants.RedisPrefixCache)
	}
	cache := retrycache.New(store, retrycache.Config{
		TTL:            cfg.CacheTTL,
		MaxRetries:     cfg.RetryMaxAttempts,
		RetryBaseDelay: cfg.RetryBaseDelay,
		IsRetryable:    cfg.RetryPredicate(),
	}, log)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	dependencies := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}
	if rdb != nil {
		dependencies.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}
	liveness, readiness := api.NewHealthHandlers(dependencies, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	categoryService := category.NewService(category.NewPostgresRepository(pool), cache, log)
	siteService := site.NewService(site.NewPostgresRepository(pool), cache, log)
	directoryService := directory.NewService(siteService, categoryService, cache)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Category:  category.NewHandler(categoryService),
		Site:      site.NewHandler(siteService),
		Directory: directory.NewHandler(directoryService),
		Cache:     cache,
	}

	// ── 9. Admin Access (optional) ────────────────────────────────────────
	var verifier middleware.TokenVerifier
	if cfg.AdminEnabled() {
		tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
		must(log, err, "initialize jwt service")
		verifier = tokens

		credentials := auth.Credentials{Username: cfg.AdminUsername, PasswordHash: cfg.AdminPasswordHash}
		handlers.Auth = auth.NewHandler(auth.NewService(credentials, tokens, cfg.AdminTokenTTL, log))
	} else {
		log.Warn("admin_disabled", slog.String("reason", "ADMIN_PASSWORD_HASH is empty"))
	}

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, verifier, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly", slog.Any("cache_stats", cache.Stats()))
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName), slog.String("version", constants.AppVersion))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
