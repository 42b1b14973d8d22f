// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package retrycache

import (
	"context"
	"time"
)

// # Cache Storage

// Entry is a single cached read result.
type Entry struct {
	Key      string
	Payload  []byte
	StoredAt time.Time
}

// IsFresh reports whether the entry is still valid at now for the given TTL.
func (entry Entry) IsFresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(entry.StoredAt) < ttl
}

// Store is the backing storage for cached read results.
//
// Implementations only store and return entries; freshness is decided by the
// [Client] on read. ttl is a hint that backends with native expiry may use to
// reclaim space.
type Store interface {
	// Get returns the entry stored under key. ok is false on a miss.
	Get(ctx context.Context, key string) (entry Entry, ok bool, err error)

	// Set stores entry under entry.Key, replacing any previous value.
	Set(ctx context.Context, entry Entry, ttl time.Duration) error

	// Clear removes every entry.
	Clear(ctx context.Context) error
}
