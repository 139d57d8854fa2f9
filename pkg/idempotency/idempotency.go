// Package idempotency replays the stored result of a request that was already served
// under the same key.
package idempotency

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/opsledger/pkg/cache"
	"golang.org/x/sync/singleflight"
)

// Guard runs an operation at most once per key while its result is cached.
type Guard struct {
	cache    cache.Cache
	ttl      time.Duration
	prefix   string
	inflight singleflight.Group
	logger   *slog.Logger
}

// DefaultTTL is used when NewGuard is given a non-positive ttl.
const DefaultTTL = 24 * time.Hour

// NewGuard creates a guard that keeps results for ttl under prefix.
func NewGuard(c cache.Cache, ttl time.Duration, prefix string, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Guard{cache: c, ttl: ttl, prefix: prefix, logger: logger}
}

// Do returns the cached result for key, or runs fn and caches its result. Concurrent
// calls with the same key wait for the running one and share its outcome. Failed runs
// are not cached, so the caller may retry them. replayed reports a cache hit.
func (g *Guard) Do(ctx context.Context, key string, fn func() ([]byte, error)) (value []byte, replayed bool, err error) {
	if key == "" {
		value, err = fn()
		return value, false, err
	}
	key = g.prefix + key
	log := g.logger.With("idempotency_key", key)

	if cached, err := g.cache.Get(ctx, key); err != nil {
		log.Warn("Idempotency cache unavailable", "error", err)
	} else if cached != nil {
		log.Info("🔁 [SKIP] Request already processed")
		return cached, true, nil
	}

	v, err, _ := g.inflight.Do(key, func() (any, error) {
		// Another caller may have finished while we waited.
		if cached, err := g.cache.Get(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
		out, err := fn()
		if err != nil {
			return nil, err
		}
		if err := g.cache.Set(context.WithoutCancel(ctx), key, out, g.ttl); err != nil {
			log.Warn("Failed to store idempotent result", "error", err)
		}
		return out, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]byte), false, nil
}
