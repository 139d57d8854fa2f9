// Package testutils wires real storage for tests.
package testutils

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/opsledger/infra/database"
	infrarepo "github.com/amirasaad/opsledger/infra/repository"
	"github.com/amirasaad/opsledger/pkg/config"
	"github.com/amirasaad/opsledger/pkg/domain/category"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a migrated in-memory SQLite database that lives as long as the test.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, driver, err := database.NewConnection(&config.DB{Url: "sqlite://:memory:"}, "test")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, driver))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewUoW returns a unit of work over a fresh SQLite database.
func NewUoW(t testing.TB) (*infrarepo.UoW, *gorm.DB) {
	t.Helper()
	db := NewSQLiteDB(t)
	return infrarepo.NewUoW(db), db
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SeedCategory stores an account with the given row and starting balance.
func SeedCategory(t testing.TB, uow *infrarepo.UoW, title string, row category.Row, balance money.Amount, opts ...func(*category.Builder)) *category.Category {
	t.Helper()
	b := category.New().WithTitle(title).WithRow(row).WithBalance(balance)
	if row.TracksStatus() {
		b = b.WithStatus(common.StatusDeposit)
	}
	for _, opt := range opts {
		opt(b)
	}
	c, err := b.Build()
	require.NoError(t, err)

	repo, err := uow.CategoryRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

// WithClient links a seeded account to a client.
func WithClient(id uuid.UUID) func(*category.Builder) {
	return func(b *category.Builder) { b.WithClientID(id) }
}
