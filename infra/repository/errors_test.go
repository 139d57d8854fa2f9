package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/amirasaad/opsledger/pkg/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapGormErrorToDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "nil error returns nil",
			input:    nil,
			expected: nil,
		},
		{
			name:     "duplicate key error maps to ErrAlreadyExists",
			input:    gorm.ErrDuplicatedKey,
			expected: domain.ErrAlreadyExists,
		},
		{
			name:     "record not found error maps to ErrNotFound",
			input:    gorm.ErrRecordNotFound,
			expected: domain.ErrNotFound,
		},
		{
			name:     "wrapped record not found error maps correctly",
			input:    errors.Join(errors.New("outer error"), gorm.ErrRecordNotFound),
			expected: domain.ErrNotFound,
		},
		{
			name:     "postgres serialization failure maps to a version conflict",
			input:    fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001", Message: "could not serialize access"}),
			expected: domain.ErrVersionConflict,
		},
		{
			name:     "postgres deadlock maps to a version conflict",
			input:    &pgconn.PgError{Code: "40P01", Message: "deadlock detected"},
			expected: domain.ErrConflict,
		},
		{
			name:     "postgres unique violation maps to ErrAlreadyExists",
			input:    &pgconn.PgError{Code: "23505", Message: "duplicate key value"},
			expected: domain.ErrAlreadyExists,
		},
		{
			name:     "deadline maps to ErrUnavailable",
			input:    fmt.Errorf("query: %w", context.DeadlineExceeded),
			expected: domain.ErrUnavailable,
		},
		{
			name:     "sqlite lock maps to a version conflict",
			input:    errors.New("database is locked"),
			expected: domain.ErrVersionConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := MapGormErrorToDomain(tt.input)
			if tt.expected == nil {
				require.NoError(t, result)
				return
			}
			require.Error(t, result)
			assert.ErrorIs(t, result, tt.expected)
		})
	}
}

func TestMapGormErrorToDomain_UnknownErrorReturnedAsIs(t *testing.T) {
	t.Parallel()
	err := errors.New("some other error")
	assert.Same(t, err, MapGormErrorToDomain(err))
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	assert.NoError(t, WrapError(func() error { return nil }))
	assert.ErrorIs(t, WrapError(func() error { return gorm.ErrRecordNotFound }), domain.ErrNotFound)
}
