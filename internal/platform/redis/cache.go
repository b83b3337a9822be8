// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Cache stores JSON-encoded values under a common key prefix.
type Cache struct {
	client redis.Cmdable
	prefix string
}

// NewCache creates a new Cache. Every key is stored as prefix+key.
func NewCache(client redis.Cmdable, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

/*
Get decodes the cached value for key into target.

Returns:
  - bool: false on a miss
  - error: Connectivity or decoding failures
*/
func (cache *Cache) Get(context stdctx.Context, key string, target any) (bool, error) {
	raw, err := cache.client.Get(context, cache.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_cache_get_failed: %w", err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("redis_cache_decode_failed: %w", err)
	}

	return true, nil
}

// Set encodes value and stores it with the given TTL.
func (cache *Cache) Set(context stdctx.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, cache.prefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis_cache_set_failed: %w", err)
	}

	return nil
}
