package repository

import (
	"context"

	"github.com/amirasaad/opsledger/pkg/domain/client"
	"github.com/amirasaad/opsledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type clientHistoryRepository struct {
	db *gorm.DB
}

// NewClientHistoryRepository creates a client change history backed by db.
func NewClientHistoryRepository(db *gorm.DB) repository.ClientHistoryRepository {
	return &clientHistoryRepository{db: db}
}

func (r *clientHistoryRepository) Append(ctx context.Context, changes ...*client.Change) error {
	if len(changes) == 0 {
		return nil
	}
	models := make([]*ClientChange, 0, len(changes))
	for _, c := range changes {
		models = append(models, clientChangeFromDomain(c))
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(models).Error
	})
}

func (r *clientHistoryRepository) ListByClient(ctx context.Context, clientID uuid.UUID, page repository.Page) ([]*client.Change, error) {
	q := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true})
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
	}
	if page.Offset > 0 {
		q = q.Offset(page.Offset)
	}
	var models []ClientChange
	if err := WrapError(func() error { return q.Find(&models).Error }); err != nil {
		return nil, err
	}
	out := make([]*client.Change, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out, nil
}
