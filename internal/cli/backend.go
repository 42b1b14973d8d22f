// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/sitenav/internal/core/category"
	"github.com/taibuivan/sitenav/internal/core/directory"
	"github.com/taibuivan/sitenav/internal/core/site"
	"github.com/taibuivan/sitenav/internal/platform/config"
	"github.com/taibuivan/sitenav/internal/platform/postgres"
	"github.com/taibuivan/sitenav/internal/platform/retrycache"
)

// PostgresBackend opens the directory over DATABASE_URL with a process-local
// cache. Retry settings come from the environment like the API server.
func PostgresBackend(ctx context.Context, logger *slog.Logger) (Browser, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("cli: connect to postgres: %w", err)
	}

	cache := retrycache.New(retrycache.NewMemoryStore(), retrycache.Config{
		TTL:            cfg.CacheTTL,
		MaxRetries:     cfg.RetryMaxAttempts,
		RetryBaseDelay: cfg.RetryBaseDelay,
		IsRetryable:    cfg.RetryPredicate(),
	}, logger)

	categories := category.NewService(category.NewPostgresRepository(pool), cache, logger)
	sites := site.NewService(site.NewPostgresRepository(pool), cache, logger)

	return directory.NewService(sites, categories, cache), pool.Close, nil
}
