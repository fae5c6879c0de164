// Package cache implements the series cache on redis.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cardledger/backend/internal/application/adapter"
)

// keyPrefix namespaces every series payload so invalidation can sweep them
// without touching unrelated keys.
const keyPrefix = "cardledger:"

// seriesCache implements the adapter.SeriesCache interface on go-redis.
type seriesCache struct {
	client *redis.Client
}

// NewSeriesCache creates a new series cache instance.
func NewSeriesCache(client *redis.Client) adapter.SeriesCache {
	return &seriesCache{
		client: client,
	}
}

// Get returns the cached payload or adapter.ErrCacheMiss.
func (c *seriesCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, adapter.ErrCacheMiss
		}
		return nil, err
	}
	return payload, nil
}

// Set stores a payload with a TTL.
func (c *seriesCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, keyPrefix+key, payload, ttl).Err()
}

// Invalidate drops every cached series payload. SCAN keeps the sweep
// incremental instead of blocking redis the way KEYS would.
func (c *seriesCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
