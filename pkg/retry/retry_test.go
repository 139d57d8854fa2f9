package retry_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/opsledger/pkg/domain"
	"github.com/amirasaad/opsledger/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fast = retry.Policy{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestDo_SucceedsAfterConflicts(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fast, retry.IsConflict, func(attempt int) error {
		calls++
		assert.Equal(t, calls, attempt)
		if attempt < 3 {
			return domain.ErrVersionConflict
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_Exhausted(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fast, retry.IsConflict, func(int) error {
		calls++
		return domain.ErrVersionConflict
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, retry.ErrExhausted)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, fast.MaxRetries+1, calls)
}

func TestDo_PermanentErrorNotRetried(t *testing.T) {
	boom := domain.NewError(domain.ErrValidation, "boom")
	calls := 0
	err := retry.Do(context.Background(), fast, retry.IsConflict, func(int) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := retry.Do(ctx, retry.Policy{MaxRetries: 10, BaseDelay: time.Millisecond}, retry.IsConflict, func(int) error {
		calls++
		cancel()
		return domain.ErrVersionConflict
	})
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
