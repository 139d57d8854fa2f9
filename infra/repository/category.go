package repository

import (
	"context"
	"time"

	"github.com/amirasaad/opsledger/pkg/domain"
	"github.com/amirasaad/opsledger/pkg/domain/category"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/amirasaad/opsledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a ledger store backed by db.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(categoryFromDomain(c)).Error
	})
}

func (r *categoryRepository) Get(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	var m Category
	err := WrapError(func() error {
		return r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	})
	if err != nil {
		return nil, notFound(err, category.ErrCategoryNotFound)
	}
	return m.toDomain(), nil
}

func (r *categoryRepository) GetBalance(ctx context.Context, id uuid.UUID) (money.Amount, error) {
	var m Category
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Select("balance_minor").First(&m, "id = ?", id).Error
	})
	if err != nil {
		return 0, notFound(err, category.ErrCategoryNotFound)
	}
	return money.Amount(m.BalanceMinor), nil
}

// SetBalance performs a compare-and-set on the version column.
func (r *categoryRepository) SetBalance(ctx context.Context, c *category.Category, balance money.Amount) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&Category{}).
		Where("id = ? AND version = ?", c.ID, c.Version).
		Updates(map[string]any{
			"balance_minor": int64(balance),
			"version":       c.Version + 1,
			"updated_at":    now,
		})
	if err := MapGormErrorToDomain(res.Error); err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}
	c.Balance = balance
	c.Version++
	c.UpdatedAt = now
	return nil
}

func (r *categoryRepository) List(ctx context.Context, filter repository.CategoryFilter) ([]*category.Category, error) {
	q := r.db.WithContext(ctx).Model(&Category{})
	if filter.Row != 0 {
		q = q.Where("row_kind = ?", int(filter.Row))
	}
	if filter.VisibleOnly {
		q = q.Where("is_visible = ?", true)
	}
	var models []Category
	if err := WrapError(func() error {
		return q.Order("row_kind ASC").Order("title ASC").Find(&models).Error
	}); err != nil {
		return nil, err
	}
	return categoriesToDomain(models), nil
}

// FindLinked returns the accounts owned by a client. In client id mode accounts without a
// client reference are still matched by title so that legacy data is not orphaned.
func (r *categoryRepository) FindLinked(ctx context.Context, q repository.LinkQuery) ([]*category.Category, error) {
	query := r.db.WithContext(ctx).Model(&Category{})
	switch q.Mode {
	case repository.MatchTitle:
		query = query.Where("title = ?", q.Title)
	default:
		if q.Title != "" {
			query = query.Where("client_id = ? OR (client_id IS NULL AND title = ?)", q.ClientID, q.Title)
		} else {
			query = query.Where("client_id = ?", q.ClientID)
		}
	}
	var models []Category
	if err := WrapError(func() error {
		return query.Order("row_kind ASC").Find(&models).Error
	}); err != nil {
		return nil, err
	}
	return categoriesToDomain(models), nil
}

func (r *categoryRepository) UpdateFlags(ctx context.Context, ids []uuid.UUID, flags repository.CategoryFlags) error {
	if len(ids) == 0 {
		return nil
	}
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if flags.Status != nil {
		updates["status"] = string(*flags.Status)
	}
	if flags.IsVisible != nil {
		updates["is_visible"] = *flags.IsVisible
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Category{}).Where("id IN ?", ids).Updates(updates).Error
	})
}

func (r *categoryRepository) UpdateTitle(ctx context.Context, ids []uuid.UUID, title string) error {
	if len(ids) == 0 {
		return nil
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Category{}).Where("id IN ?", ids).
			Updates(map[string]any{"title": title, "updated_at": time.Now().UTC()}).Error
	})
}

func (r *categoryRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&Category{}).Error
	})
}

func categoriesToDomain(models []Category) []*category.Category {
	out := make([]*category.Category, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out
}
