package repository

import (
	"context"
	"time"

	"github.com/amirasaad/opsledger/pkg/domain/history"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/amirasaad/opsledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transactionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTransactionRepository creates a history log backed by db.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Append stamps every record with the same commit time and inserts them in one statement.
func (r *transactionRepository) Append(ctx context.Context, txs ...*history.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	now := r.now()
	models := make([]*Transaction, 0, len(txs))
	for _, tx := range txs {
		tx.Date = now
		models = append(models, transactionFromDomain(tx))
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(models).Error
	})
}

func (r *transactionRepository) ListByCategory(ctx context.Context, categoryID string, page repository.Page) ([]*history.Transaction, error) {
	q := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true})
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
	}
	if page.Offset > 0 {
		q = q.Offset(page.Offset)
	}
	var models []Transaction
	if err := WrapError(func() error { return q.Find(&models).Error }); err != nil {
		return nil, err
	}
	out := make([]*history.Transaction, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out, nil
}

func (r *transactionRepository) SumByCategory(ctx context.Context, categoryID string) (money.Amount, error) {
	var sum int64
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Transaction{}).
			Where("category_id = ?", categoryID).
			Select("COALESCE(SUM(amount_minor), 0)").
			Scan(&sum).Error
	})
	if err != nil {
		return 0, err
	}
	return money.Amount(sum), nil
}

// DeleteByCategoryIDs removes the records of the given accounts in chunks of batchSize
// account ids. Callers run it inside a unit of work so the chunks commit together.
func (r *transactionRepository) DeleteByCategoryIDs(ctx context.Context, categoryIDs []string, batchSize int) ([]history.Ref, error) {
	if batchSize <= 0 {
		batchSize = len(categoryIDs)
	}
	var removed []history.Ref
	for start := 0; start < len(categoryIDs); start += batchSize {
		end := min(start+batchSize, len(categoryIDs))
		chunk := categoryIDs[start:end]

		var refs []transactionRef
		if err := WrapError(func() error {
			return r.db.WithContext(ctx).Model(&Transaction{}).
				Select("id", "category_id").
				Where("category_id IN ?", chunk).
				Find(&refs).Error
		}); err != nil {
			return nil, err
		}
		if len(refs) == 0 {
			continue
		}
		if err := WrapError(func() error {
			return r.db.WithContext(ctx).Where("category_id IN ?", chunk).Delete(&Transaction{}).Error
		}); err != nil {
			return nil, err
		}
		for _, ref := range refs {
			removed = append(removed, history.Ref{ID: ref.ID, CategoryID: ref.CategoryID})
		}
	}
	return removed, nil
}

type transactionRef struct {
	ID         uuid.UUID
	CategoryID string
}
