package repository

import (
	"context"
	"time"

	"github.com/amirasaad/opsledger/pkg/domain/client"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a client store backed by db.
func NewClientRepository(db *gorm.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, c *client.Client) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(clientFromDomain(c)).Error
	})
}

func (r *clientRepository) Get(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	var m Client
	err := WrapError(func() error {
		return r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	})
	if err != nil {
		return nil, notFound(err, client.ErrClientNotFound)
	}
	return m.toDomain(), nil
}

func (r *clientRepository) List(ctx context.Context, filter repository.ClientFilter) ([]*client.Client, error) {
	q := r.db.WithContext(ctx).Model(&Client{})
	if filter.Year != 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.VisibleOnly {
		q = q.Where("is_visible = ?", true)
	}
	var models []Client
	if err := WrapError(func() error {
		return q.Order("year DESC").Order("client_number ASC").Find(&models).Error
	}); err != nil {
		return nil, err
	}
	clients := clientsToDomain(models)
	terms := client.SearchTerms(filter.Query)
	if len(terms) == 0 {
		return clients, nil
	}
	// Matched in Go: SQLite's LOWER only folds ASCII.
	out := clients[:0]
	for _, c := range clients {
		if c.Matches(terms) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *clientRepository) Numbers(ctx context.Context, status common.Status, year int) ([]string, error) {
	var numbers []string
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Client{}).
			Where("status = ? AND year = ?", string(status), year).
			Pluck("client_number", &numbers).Error
	})
	return numbers, err
}

// ListOverdue loads clients under construction and keeps those past their deadline.
func (r *clientRepository) ListOverdue(ctx context.Context, now time.Time) ([]*client.Client, error) {
	var models []Client
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("status = ?", string(common.StatusBuilding)).
			Order("created_at ASC").
			Find(&models).Error
	}); err != nil {
		return nil, err
	}
	var out []*client.Client
	for _, c := range clientsToDomain(models) {
		if c.IsOverdue(now) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *clientRepository) Update(ctx context.Context, id uuid.UUID, update repository.ClientUpdate) error {
	updates := map[string]any{}
	if update.Details != nil {
		var m Client
		m.setDetails(*update.Details)
		updates["last_name"] = m.LastName
		updates["first_name"] = m.FirstName
		updates["middle_name"] = m.MiddleName
		updates["phone"] = m.Phone
		updates["email"] = m.Email
		updates["iin"] = m.IIN
		updates["construction_address"] = m.ConstructionAddress
		updates["living_address"] = m.LivingAddress
		updates["object_name"] = m.ObjectName
		updates["construction_days"] = m.ConstructionDays
		updates["total_amount"] = m.TotalAmount
		updates["deposit"] = m.Deposit
		updates["first_payment"] = m.FirstPayment
		updates["second_payment"] = m.SecondPayment
		updates["third_payment"] = m.ThirdPayment
		updates["fourth_payment"] = m.FourthPayment
		updates["year"] = m.Year
		updates["status"] = m.Status
	}
	if update.Status != nil {
		updates["status"] = string(*update.Status)
	}
	if update.IsVisible != nil {
		updates["is_visible"] = *update.IsVisible
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&Client{}).Where("id = ?", id).Updates(updates)
	if err := MapGormErrorToDomain(res.Error); err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return client.ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Client{})
	if err := MapGormErrorToDomain(res.Error); err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return client.ErrClientNotFound
	}
	return nil
}

func clientsToDomain(models []Client) []*client.Client {
	out := make([]*client.Client, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out
}
