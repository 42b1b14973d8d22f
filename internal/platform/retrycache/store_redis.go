// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package retrycache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldPayload  = "payload"
	fieldStoredAt = "stored_at"

	// scanBatch is the COUNT hint used while clearing the key space.
	scanBatch = 100
)

// RedisStore is a [Store] shared by every process pointing at the same Redis.
//
// Each entry is a hash under prefix+key holding the payload and the storage
// timestamp. Clear only touches keys under the prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a store that namespaces its keys with prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Get implements [Store].
func (store *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	fields, err := store.client.HGetAll(ctx, store.prefix+key).Result()
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis_cache_get_failed: %w", err)
	}

	payload, hasPayload := fields[fieldPayload]
	rawStoredAt, hasStoredAt := fields[fieldStoredAt]
	if !hasPayload || !hasStoredAt {
		return Entry{}, false, nil
	}

	nanos, err := strconv.ParseInt(rawStoredAt, 10, 64)
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis_cache_bad_timestamp: %w", err)
	}

	return Entry{
		Key:      key,
		Payload:  []byte(payload),
		StoredAt: time.Unix(0, nanos),
	}, true, nil
}

// Set implements [Store]. A positive ttl becomes the Redis key expiry.
func (store *RedisStore) Set(ctx context.Context, entry Entry, ttl time.Duration) error {
	redisKey := store.prefix + entry.Key

	_, err := store.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, redisKey)
		pipe.HSet(ctx, redisKey,
			fieldPayload, entry.Payload,
			fieldStoredAt, strconv.FormatInt(entry.StoredAt.UnixNano(), 10),
		)
		if ttl > 0 {
			pipe.Expire(ctx, redisKey, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_cache_set_failed: %w", err)
	}

	return nil
}

// Clear implements [Store] by deleting every key under the prefix.
func (store *RedisStore) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := store.client.Scan(ctx, cursor, store.prefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis_cache_scan_failed: %w", err)
		}

		if len(keys) > 0 {
			if err := store.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis_cache_clear_failed: %w", err)
			}
		}

		if next == 0 {
			return nil
		}
		cursor = next
	}
}
