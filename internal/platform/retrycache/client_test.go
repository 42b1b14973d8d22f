// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package retrycache_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sitenav/internal/platform/retrycache"
)

type fakeClock struct {
	current time.Time
}

func (clock *fakeClock) Now() time.Time { return clock.current }

func (clock *fakeClock) Advance(d time.Duration) { clock.current = clock.current.Add(d) }

func noWait(context.Context, time.Duration) error { return nil }

func newTestClient(t *testing.T, store retrycache.Store, clock *fakeClock) *retrycache.Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return retrycache.New(store, retrycache.Config{
		TTL:            30 * time.Second,
		MaxRetries:     3,
		RetryBaseDelay: time.Second,
	}, logger, retrycache.WithClock(clock.Now), retrycache.WithSleep(noWait))
}

// countingFetch returns a fetch function that fails the first `failures` calls.
func countingFetch(calls *int, failures int, value []string) func(context.Context) ([]string, error) {
	return func(context.Context) ([]string, error) {
		*calls++
		if *calls <= failures {
			return nil, errors.New("remote unavailable")
		}
		return value, nil
	}
}

/*
TestRead_RetriesThenCaches covers a fetch that fails twice and then succeeds.
*/
func TestRead_RetriesThenCaches(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	client := newTestClient(t, retrycache.NewMemoryStore(), clock)
	ctx := context.Background()

	calls := 0
	fetch := countingFetch(&calls, 2, []string{"dev", "design"})

	got, err := retrycache.Read(ctx, client, "categories", fetch, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"dev", "design"}, got)
	assert.Equal(t, 3, calls)

	// Served from cache, no further remote calls.
	got, err = retrycache.Read(ctx, client, "categories", fetch, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"dev", "design"}, got)
	assert.Equal(t, 3, calls)

	stats := client.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

/*
TestRead_ExhaustedRetriesDoNotCache checks that failures are never stored.
*/
func TestRead_ExhaustedRetriesDoNotCache(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	store := retrycache.NewMemoryStore()
	client := newTestClient(t, store, clock)

	calls := 0
	remoteErr := errors.New("connection refused")
	_, err := retrycache.Read(context.Background(), client, "sites_all", func(context.Context) ([]string, error) {
		calls++
		return nil, remoteErr
	}, true)

	assert.Same(t, remoteErr, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, int64(1), client.Stats().FetchFailures)
}

/*
TestRead_TTLExpiry verifies lazy expiry at the TTL boundary.
*/
func TestRead_TTLExpiry(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	client := newTestClient(t, retrycache.NewMemoryStore(), clock)
	ctx := context.Background()

	calls := 0
	fetch := countingFetch(&calls, 0, []string{"a"})

	_, err := retrycache.Read(ctx, client, "tags", fetch, true)
	require.NoError(t, err)

	clock.Advance(29 * time.Second)
	_, err = retrycache.Read(ctx, client, "tags", fetch, true)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "still fresh just before the TTL")

	clock.Advance(time.Second)
	_, err = retrycache.Read(ctx, client, "tags", fetch, true)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "stale once now - stored_at reaches the TTL")
}

/*
TestRead_BypassCache forces a remote call and refreshes the stored entry.
*/
func TestRead_BypassCache(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	client := newTestClient(t, retrycache.NewMemoryStore(), clock)
	ctx := context.Background()

	version := 0
	fetch := func(context.Context) (int, error) {
		version++
		return version, nil
	}

	first, err := retrycache.Read(ctx, client, "sites_active", fetch, true)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	refreshed, err := retrycache.Read(ctx, client, "sites_active", fetch, false)
	require.NoError(t, err)
	assert.Equal(t, 2, refreshed)

	cached, err := retrycache.Read(ctx, client, "sites_active", fetch, true)
	require.NoError(t, err)
	assert.Equal(t, 2, cached)
}

/*
TestWrite_ClearsUnrelatedKeys checks global invalidation after a successful write.
*/
func TestWrite_ClearsUnrelatedKeys(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	store := retrycache.NewMemoryStore()
	client := newTestClient(t, store, clock)
	ctx := context.Background()

	calls := 0
	fetch := countingFetch(&calls, 0, []string{"dev"})

	_, err := retrycache.Read(ctx, client, "categories", fetch, true)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	id, err := retrycache.Write(ctx, client, func(context.Context) (string, error) {
		return "site-1", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "site-1", id)
	assert.Equal(t, 0, store.Len())

	_, err = retrycache.Read(ctx, client, "categories", fetch, true)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, int64(1), client.Stats().Invalidations)
}

/*
TestWrite_FailureKeepsCache checks that a failed write leaves cached reads intact.
*/
func TestWrite_FailureKeepsCache(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	client := newTestClient(t, retrycache.NewMemoryStore(), clock)
	ctx := context.Background()

	calls := 0
	fetch := countingFetch(&calls, 0, []string{"dev"})
	_, err := retrycache.Read(ctx, client, "categories", fetch, true)
	require.NoError(t, err)

	writeCalls := 0
	writeErr := errors.New("duplicate key")
	_, err = retrycache.Write(ctx, client, func(context.Context) (bool, error) {
		writeCalls++
		return false, writeErr
	})
	assert.Same(t, writeErr, err)
	assert.Equal(t, 3, writeCalls)

	got, err := retrycache.Read(ctx, client, "categories", fetch, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"dev"}, got)
	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(1), client.Stats().WriteFailures)
}

// contextStore fails Clear when its context is already done.
type contextStore struct {
	*retrycache.MemoryStore
}

func (store contextStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return store.MemoryStore.Clear(ctx)
}

/*
TestWrite_ClearSurvivesCancellation checks that the cache is still cleared when
the caller's context is cancelled once the mutation has succeeded.
*/
func TestWrite_ClearSurvivesCancellation(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	store := contextStore{MemoryStore: retrycache.NewMemoryStore()}
	client := newTestClient(t, store, clock)

	calls := 0
	_, err := retrycache.Read(context.Background(), client, "sites_active", countingFetch(&calls, 0, []string{"react"}), true)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	ctx, cancel := context.WithCancel(context.Background())
	_, err = retrycache.Write(ctx, client, func(context.Context) (bool, error) {
		cancel()
		return true, nil
	})
	require.NoError(t, err)

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, int64(1), client.Stats().Invalidations)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (retrycache.Entry, bool, error) {
	return retrycache.Entry{}, false, errors.New("cache down")
}

func (brokenStore) Set(context.Context, retrycache.Entry, time.Duration) error {
	return errors.New("cache down")
}

func (brokenStore) Clear(context.Context) error { return errors.New("cache down") }

/*
TestClient_StoreFailuresDegrade checks that cache outages fall back to the remote.
*/
func TestClient_StoreFailuresDegrade(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	client := newTestClient(t, brokenStore{}, clock)
	ctx := context.Background()

	calls := 0
	got, err := retrycache.Read(ctx, client, "tags", countingFetch(&calls, 0, []string{"x"}), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got)

	result, err := retrycache.Write(ctx, client, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, result)
}

func TestConfig_Defaults(t *testing.T) {
	client := retrycache.New(retrycache.NewMemoryStore(), retrycache.Config{}, nil)

	config := client.Config()
	assert.Equal(t, retrycache.DefaultTTL, config.TTL)
	assert.Equal(t, retrycache.DefaultMaxRetries, config.MaxRetries)
	assert.Equal(t, time.Duration(0), config.RetryBaseDelay)
	assert.Equal(t, retrycache.DefaultConfig().RetryBaseDelay, time.Second)
}
