package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirasaad/opsledger/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewError_MatchesClassAndItself(t *testing.T) {
	errEmpty := domain.NewError(domain.ErrValidation, "empty description")
	wrapped := fmt.Errorf("transfer: %w", errEmpty)

	assert.ErrorIs(t, wrapped, errEmpty)
	assert.ErrorIs(t, wrapped, domain.ErrValidation)
	assert.NotErrorIs(t, wrapped, domain.ErrNotFound)
	assert.Equal(t, "transfer: empty description", wrapped.Error())
}

func TestClass(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"validation", domain.NewError(domain.ErrValidation, "x"), domain.ErrValidation},
		{"version conflict", fmt.Errorf("commit: %w", domain.ErrVersionConflict), domain.ErrConflict},
		{"not found", domain.ErrNotFound, domain.ErrNotFound},
		{"unavailable", fmt.Errorf("%w: db down", domain.ErrUnavailable), domain.ErrUnavailable},
		{"unclassified", errors.New("boom"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Class(tt.err))
		})
	}
}
