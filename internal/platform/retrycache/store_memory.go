// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package retrycache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local [Store] safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Get implements [Store].
func (store *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	entry, ok := store.entries[key]
	if !ok {
		return Entry{}, false, nil
	}

	// Hand out a copy so callers cannot mutate the stored payload.
	entry.Payload = append([]byte(nil), entry.Payload...)
	return entry, true, nil
}

// Set implements [Store]. The ttl hint is ignored; expiry is lazy.
func (store *MemoryStore) Set(_ context.Context, entry Entry, _ time.Duration) error {
	entry.Payload = append([]byte(nil), entry.Payload...)

	store.mu.Lock()
	store.entries[entry.Key] = entry
	store.mu.Unlock()
	return nil
}

// Clear implements [Store].
func (store *MemoryStore) Clear(_ context.Context) error {
	store.mu.Lock()
	store.entries = make(map[string]Entry)
	store.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, fresh or not.
func (store *MemoryStore) Len() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.entries)
}
