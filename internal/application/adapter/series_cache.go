// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a cache key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// SeriesCache caches serialized dashboard payloads. It is a pure
// read-through layer: every ledger write invalidates it, so a miss only
// costs a recomputation, never staleness.
type SeriesCache interface {
	// Get returns the cached payload or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a payload with a TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Invalidate drops every cached series payload.
	Invalidate(ctx context.Context) error
}
