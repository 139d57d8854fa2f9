// Package retry re-runs optimistic read-decide-write operations that lost a race.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/opsledger/pkg/domain"
	"github.com/cenkalti/backoff/v4"
)

// ErrExhausted is returned when an operation still conflicts after the last retry.
var ErrExhausted = domain.NewError(domain.ErrConflict, "retries exhausted")

// Policy bounds the number of retries and the delay between them.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultPolicy retries five times starting at 10ms.
var DefaultPolicy = Policy{MaxRetries: 5, BaseDelay: 10 * time.Millisecond, MaxDelay: time.Second}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if p.BaseDelay > 0 {
		b.InitialInterval = p.BaseDelay
	}
	if p.MaxDelay > 0 {
		b.MaxInterval = p.MaxDelay
	}
	b.MaxElapsedTime = 0
	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

// IsConflict reports whether err is a version conflict.
func IsConflict(err error) bool {
	return errors.Is(err, domain.ErrVersionConflict)
}

// Do calls fn until it succeeds, returns an error that retryable rejects, or the policy
// runs out of retries. fn receives the 1-based attempt number and must be safe to re-run
// from scratch.
func Do(ctx context.Context, p Policy, retryable func(error) bool, fn func(attempt int) error) error {
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := fn(attempt)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, p.backOff(ctx))
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	if retryable(err) {
		return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempt, err)
	}
	return err
}
