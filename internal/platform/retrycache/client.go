// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package retrycache wraps calls to the backing store with a short-lived read
cache and bounded retry.

Reads are served from the cache while the stored result is younger than the
TTL; otherwise the fetch function runs through [Retry] and its result is stored.
Writes run through [Retry] too, and a successful write clears the whole cache.

Usage:

	client := retrycache.New(retrycache.NewMemoryStore(), retrycache.DefaultConfig(), logger)

	sites, err := retrycache.Read(ctx, client, "sites_active", repo.ListActive, true)

Failures are never cached and are returned unchanged after the last attempt.
*/
package retrycache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"
)

// # Configuration

// Defaults applied to zero-valued [Config] fields.
const (
	DefaultTTL            = 30 * time.Second
	DefaultMaxRetries     = 3
	DefaultRetryBaseDelay = time.Second
)

// Config holds the recognised client options.
type Config struct {
	// TTL is how long a cached read result stays valid.
	TTL time.Duration

	// MaxRetries is the total attempt budget per remote call.
	MaxRetries int

	// RetryBaseDelay is multiplied by the attempt number between attempts.
	RetryBaseDelay time.Duration

	// IsRetryable decides whether a failure is worth another attempt.
	// Nil means every failure is retryable.
	IsRetryable func(error) bool
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		TTL:            DefaultTTL,
		MaxRetries:     DefaultMaxRetries,
		RetryBaseDelay: DefaultRetryBaseDelay,
	}
}

func (config Config) withDefaults() Config {
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}
	if config.MaxRetries < 1 {
		config.MaxRetries = DefaultMaxRetries
	}
	if config.RetryBaseDelay < 0 {
		config.RetryBaseDelay = DefaultRetryBaseDelay
	}
	return config
}

// # Client

// Stats is a snapshot of the client counters.
type Stats struct {
	Hits          int64 `json:"hits"`
	Misses        int64 `json:"misses"`
	FetchFailures int64 `json:"fetch_failures"`
	Writes        int64 `json:"writes"`
	WriteFailures int64 `json:"write_failures"`
	Invalidations int64 `json:"invalidations"`
}

// Client is the cached retry client. It is safe for concurrent use as long
// as its [Store] is.
//
// Concurrent reads of the same uncached key are not coalesced; each one goes
// to the backing store.
type Client struct {
	store  Store
	config Config
	logger *slog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, delay time.Duration) error

	hits          atomic.Int64
	misses        atomic.Int64
	fetchFailures atomic.Int64
	writes        atomic.Int64
	writeFailures atomic.Int64
	invalidations atomic.Int64
}

// Option customises a [Client].
type Option func(*Client)

// WithClock replaces the wall clock used to stamp and age cache entries.
func WithClock(now func() time.Time) Option {
	return func(client *Client) { client.now = now }
}

// WithSleep replaces the backoff waiter.
func WithSleep(sleep func(ctx context.Context, delay time.Duration) error) Option {
	return func(client *Client) { client.sleep = sleep }
}

// New constructs a [Client] over store.
func New(store Store, config Config, logger *slog.Logger, options ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	client := &Client{
		store:  store,
		config: config.withDefaults(),
		logger: logger,
		now:    time.Now,
		sleep:  SleepContext,
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// Config returns the effective configuration.
func (client *Client) Config() Config {
	return client.config
}

// Stats returns the current counters.
func (client *Client) Stats() Stats {
	return Stats{
		Hits:          client.hits.Load(),
		Misses:        client.misses.Load(),
		FetchFailures: client.fetchFailures.Load(),
		Writes:        client.writes.Load(),
		WriteFailures: client.writeFailures.Load(),
		Invalidations: client.invalidations.Load(),
	}
}

// Invalidate clears every cached entry.
func (client *Client) Invalidate(ctx context.Context) error {
	if err := client.store.Clear(ctx); err != nil {
		return err
	}
	client.invalidations.Add(1)
	return nil
}

func (client *Client) policy(operation, key string) Policy {
	return Policy{
		MaxRetries:  client.config.MaxRetries,
		BaseDelay:   client.config.RetryBaseDelay,
		IsRetryable: client.config.IsRetryable,
		Sleep:       client.sleep,
		OnAttemptFailed: func(attempt int, err error) {
			client.logger.Warn("remote_attempt_failed",
				slog.String("operation", operation),
				slog.String("key", key),
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", client.config.MaxRetries),
				slog.Any("error", err),
			)
		},
	}
}

// cached returns the fresh payload stored under key, if any.
func (client *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	entry, ok, err := client.store.Get(ctx, key)
	if err != nil {
		client.logger.Warn("cache_get_failed", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}

	if !ok || !entry.IsFresh(client.now(), client.config.TTL) {
		return nil, false
	}

	return entry.Payload, true
}

func (client *Client) remember(ctx context.Context, key string, payload []byte) {
	entry := Entry{Key: key, Payload: payload, StoredAt: client.now()}
	if err := client.store.Set(ctx, entry, client.config.TTL); err != nil {
		client.logger.Warn("cache_set_failed", slog.String("key", key), slog.Any("error", err))
	}
}

// # Operations

// Read returns the value cached under key, or fetches it.
//
// With useCache false the cache is bypassed for the lookup, but the fetched
// value still refreshes the entry. A failed fetch leaves the cache untouched
// and returns the last underlying error.
func Read[T any](ctx context.Context, client *Client, key string, fetch func(context.Context) (T, error), useCache bool) (T, error) {
	if useCache {
		if payload, ok := client.cached(ctx, key); ok {
			var value T
			err := json.Unmarshal(payload, &value)
			if err == nil {
				client.hits.Add(1)
				client.logger.Debug("cache_hit", slog.String("key", key))
				return value, nil
			}
			client.logger.Warn("cache_decode_failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	client.misses.Add(1)
	client.logger.Debug("cache_miss", slog.String("key", key), slog.Bool("use_cache", useCache))

	var value T
	err := Retry(ctx, client.policy("read", key), func(ctx context.Context) error {
		fetched, err := fetch(ctx)
		if err != nil {
			return err
		}
		value = fetched
		return nil
	})
	if err != nil {
		client.fetchFailures.Add(1)
		var zero T
		return zero, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		client.logger.Warn("cache_encode_failed", slog.String("key", key), slog.Any("error", err))
		return value, nil
	}

	client.remember(ctx, key, payload)
	return value, nil
}

// Write runs mutate and clears the whole cache once it succeeds.
//
// On failure the cache is left as it was and the last underlying error is
// returned. The clear after a successful mutation ignores cancellation of
// ctx. A failure to clear is logged; the mutation result is still returned.
func Write[T any](ctx context.Context, client *Client, mutate func(context.Context) (T, error)) (T, error) {
	var result T
	err := Retry(ctx, client.policy("write", ""), func(ctx context.Context) error {
		value, err := mutate(ctx)
		if err != nil {
			return err
		}
		result = value
		return nil
	})
	if err != nil {
		client.writeFailures.Add(1)
		var zero T
		return zero, err
	}

	client.writes.Add(1)
	if err := client.Invalidate(context.WithoutCancel(ctx)); err != nil {
		client.logger.Error("cache_invalidation_failed", slog.Any("error", err))
	}

	return result, nil
}
