// Package cache defines the short-lived key-value store behind idempotent requests.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values with a time to live. Get returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
