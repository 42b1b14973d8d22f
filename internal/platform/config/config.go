// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, cache) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/sitenav/internal/platform/apperr"
)

// Cache backends accepted by CACHE_BACKEND.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// # Configuration Schema

// Config holds all runtime configuration for the sitenav API server and CLI.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Read cache in front of the database
	CacheBackend string        `env:"CACHE_BACKEND" envDefault:"memory"`
	RedisURL     string        `env:"REDIS_URL"`
	CacheTTL     time.Duration `env:"CACHE_TTL"     envDefault:"30s"`

	// Retry policy for database calls made through the cache client
	RetryMaxAttempts int           `env:"RETRY_MAX_ATTEMPTS" envDefault:"3"`
	RetryBaseDelay   time.Duration `env:"RETRY_BASE_DELAY"   envDefault:"1s"`

	// RetrySkipClientErrors stops retries on 4xx application errors such as
	// NOT_FOUND or CONFLICT. Off by default: every failure is retried.
	RetrySkipClientErrors bool `env:"RETRY_SKIP_CLIENT_ERRORS" envDefault:"false"`

	// Single administrator credential
	AdminUsername     string        `env:"ADMIN_USERNAME"      envDefault:"admin"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	AdminTokenTTL     time.Duration `env:"ADMIN_TOKEN_TTL"     envDefault:"12h"`

	// Cryptographic keys for admin token signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH"`

	// Cross-Origin Resource Sharing (comma-separated list of allowed origins)
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate cross-checks settings that env tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.CacheBackend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when CACHE_BACKEND=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q", CacheBackendMemory, CacheBackendRedis, c.CacheBackend))
	}

	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL))
	}
	if c.RetryMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1, got %d", c.RetryMaxAttempts))
	}
	if c.RetryBaseDelay < 0 {
		errs = append(errs, fmt.Errorf("RETRY_BASE_DELAY must not be negative, got %s", c.RetryBaseDelay))
	}

	// Admin auth is all or nothing.
	if c.AdminEnabled() && (c.JWTPrivKeyPath == "" || c.JWTPubKeyPath == "") {
		errs = append(errs, errors.New("JWT_PRIVATE_KEY_PATH and JWT_PUBLIC_KEY_PATH are required when ADMIN_PASSWORD_HASH is set"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// AdminEnabled reports whether the admin surface should be mounted.
func (c *Config) AdminEnabled() bool {
	return c.AdminPasswordHash != ""
}

// RetryPredicate returns the retry classifier for the cache client, or nil
// when every failure is retried.
func (c *Config) RetryPredicate() func(error) bool {
	if c.RetrySkipClientErrors {
		return apperr.Retryable
	}
	return nil
}

// UsesRedis reports whether the shared Redis cache backend is selected.
func (c *Config) UsesRedis() bool {
	return c.CacheBackend == CacheBackendRedis
}

// AllowedOrigins splits EXTRA_ORIGINS into trimmed, non-empty entries.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
