// Package category provides business logic for standalone accounts such as employees
// and warehouses.
package category

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/amirasaad/opsledger/pkg/config"
	"github.com/amirasaad/opsledger/pkg/domain/category"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/repository"
	"github.com/google/uuid"
)

// Service provides account creation and listing.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		uow:    deps.Uow,
		logger: logger.With("service", "category"),
	}
}

// CreateCommand describes a new account. Empty Icon and Color fall back to the defaults.
type CreateCommand struct {
	Title    string
	Row      category.Row
	Icon     string
	Color    string
	Status   common.Status
	ClientID *uuid.UUID
}

// Create stores a new zero-balance, visible account. Person and project accounts start
// in the deposit status unless told otherwise; other rows carry no status.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (c *category.Category, err error) {
	logger := s.logger.With("title", cmd.Title, "row", cmd.Row)
	logger.Info("CreateCategory started")

	status := cmd.Status
	if !cmd.Row.TracksStatus() {
		status = ""
	} else if status == "" {
		status = common.StatusDeposit
	}
	b := category.New().
		WithTitle(cmd.Title).
		WithRow(cmd.Row).
		WithIcon(cmd.Icon).
		WithColor(cmd.Color).
		WithStatus(status)
	if cmd.ClientID != nil {
		b = b.WithClientID(*cmd.ClientID)
	}
	if c, err = b.Build(); err != nil {
		logger.Warn("CreateCategory failed: validation", "error", err)
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repoAny, err := uow.GetRepository(reflect.TypeOf((*repository.CategoryRepository)(nil)).Elem())
		if err != nil {
			return err
		}
		repo, ok := repoAny.(repository.CategoryRepository)
		if !ok {
			return fmt.Errorf("unexpected repository type")
		}
		return repo.Create(ctx, c)
	})
	if err != nil {
		logger.Error("CreateCategory failed", "error", err)
		return nil, err
	}
	logger.Info("CreateCategory successful", "categoryID", c.ID)
	return c, nil
}

// List returns accounts ordered by row and title. A zero row lists every row.
func (s *Service) List(ctx context.Context, row category.Row, visibleOnly bool) ([]*category.Category, error) {
	if row != 0 && !row.Valid() {
		return nil, fmt.Errorf("%w: %d", category.ErrInvalidRow, int(row))
	}
	repo, err := s.uow.CategoryRepository()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, repository.CategoryFilter{Row: row, VisibleOnly: visibleOnly})
}

// Get returns one account.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	repo, err := s.uow.CategoryRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}
