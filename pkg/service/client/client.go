// Package client manages clients and the accounts they own: creation, deletion,
// edits, and the cascade of status and visibility onto linked accounts.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/opsledger/pkg/config"
	"github.com/amirasaad/opsledger/pkg/domain/category"
	"github.com/amirasaad/opsledger/pkg/domain/client"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/domain/events"
	"github.com/amirasaad/opsledger/pkg/domain/history"
	"github.com/amirasaad/opsledger/pkg/eventbus"
	"github.com/amirasaad/opsledger/pkg/notify"
	"github.com/amirasaad/opsledger/pkg/repository"
	"github.com/google/uuid"
)

// Service provides client lifecycle operations.
type Service struct {
	uow       repository.UnitOfWork
	bus       eventbus.Bus
	notifier  notify.Notifier
	logger    *slog.Logger
	match     repository.MatchMode
	batchSize int
	now       func() time.Time
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	cfg := deps.LedgerOrDefault()
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.Nop{}
	}
	match := repository.MatchMode(cfg.CascadeMatch)
	if !match.Valid() {
		match = repository.MatchClientID
	}
	return &Service{
		uow:       deps.Uow,
		bus:       deps.EventBus,
		notifier:  notifier,
		logger:    logger.With("service", "client"),
		match:     match,
		batchSize: cfg.DeleteBatchSize,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateResult holds a new client and its two accounts.
type CreateResult struct {
	Client  *client.Client
	Person  *category.Category
	Project *category.Category
}

// CreateClient stores a client together with its person and project accounts in one
// commit. Either all three records exist afterwards or none do.
func (s *Service) CreateClient(ctx context.Context, d client.Details) (*CreateResult, error) {
	logger := s.logger.With("name", d.FullName())
	logger.Info("CreateClient started")

	c, err := client.New(d, "", s.now())
	if err != nil {
		logger.Warn("CreateClient failed: validation", "error", err)
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	var result *CreateResult
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}

		numbers, err := clients.Numbers(ctx, c.Status, c.Year)
		if err != nil {
			return err
		}
		c.ClientNumber = client.NextNumber(c.Year, numbers)
		if err := clients.Create(ctx, c); err != nil {
			return err
		}

		person, err := newLinkedAccount(c, category.RowPerson, category.PersonIcon, category.PersonColor)
		if err != nil {
			return err
		}
		project, err := newLinkedAccount(c, category.RowProject, category.ProjectIcon, category.ProjectColor)
		if err != nil {
			return err
		}
		if err := categories.Create(ctx, person); err != nil {
			return err
		}
		if err := categories.Create(ctx, project); err != nil {
			return err
		}
		if err := s.record(ctx, uow, c.ID, client.ActionCreated, map[string]client.FieldChange{
			"clientNumber": {To: c.ClientNumber},
			"status":       {To: string(c.Status)},
		}); err != nil {
			return err
		}
		result = &CreateResult{Client: c, Person: person, Project: project}
		return nil
	})
	if err != nil {
		logger.Error("CreateClient failed", "error", err)
		s.notifier.Notify(ctx, fmt.Sprintf("Failed to create client %s: %v", c.FullName(), err), notify.LevelError)
		return nil, err
	}

	s.notifier.Notify(ctx, fmt.Sprintf("Client %s created", c.FullName()), notify.LevelSuccess)
	logger.Info("CreateClient successful", "clientID", c.ID, "number", c.ClientNumber)
	return result, nil
}

func newLinkedAccount(c *client.Client, row category.Row, icon, color string) (*category.Category, error) {
	return category.New().
		WithClientID(c.ID).
		WithTitle(c.FullName()).
		WithRow(row).
		WithIcon(icon).
		WithColor(color).
		WithStatus(c.Status).
		WithVisible(true).
		Build()
}

// DeleteResult lists what a client deletion removed.
type DeleteResult struct {
	ClientID    uuid.UUID
	CategoryIDs []uuid.UUID
	Removed     []history.Ref
}

// DeleteWithHistory removes the client, every linked account and every history record
// of those accounts in one commit.
func (s *Service) DeleteWithHistory(ctx context.Context, clientID uuid.UUID, clientName string) (*DeleteResult, error) {
	return s.delete(ctx, clientID, clientName, true)
}

// DeleteIconsOnly removes the client and its linked accounts but keeps their history,
// which stays readable by account id.
func (s *Service) DeleteIconsOnly(ctx context.Context, clientID uuid.UUID, clientName string) (*DeleteResult, error) {
	return s.delete(ctx, clientID, clientName, false)
}

func (s *Service) delete(ctx context.Context, clientID uuid.UUID, clientName string, withHistory bool) (*DeleteResult, error) {
	logger := s.logger.With("clientID", clientID, "withHistory", withHistory)
	logger.Info("DeleteClient started")

	ctx = context.WithoutCancel(ctx)
	result := &DeleteResult{ClientID: clientID}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}

		c, err := clients.Get(ctx, clientID)
		if err != nil {
			return err
		}
		linked, err := categories.FindLinked(ctx, s.linkQuery(c, clientName))
		if err != nil {
			return err
		}
		ids := categoryIDs(linked)

		if withHistory && len(ids) > 0 {
			keys := make([]string, len(ids))
			for i, id := range ids {
				keys[i] = id.String()
			}
			if result.Removed, err = txs.DeleteByCategoryIDs(ctx, keys, s.batchSize); err != nil {
				return err
			}
		}
		if err := categories.DeleteByIDs(ctx, ids); err != nil {
			return err
		}
		result.CategoryIDs = ids
		kept := "kept"
		if withHistory {
			kept = "removed"
		}
		if err := s.record(ctx, uow, clientID, client.ActionDeleted, map[string]client.FieldChange{
			"clientNumber": {From: c.ClientNumber},
			"history":      {To: kept},
		}); err != nil {
			return err
		}
		return clients.Delete(ctx, clientID)
	})
	if err != nil {
		logger.Error("DeleteClient failed", "error", err)
		s.notifier.Notify(ctx, fmt.Sprintf("Failed to delete client: %v", err), notify.LevelError)
		return nil, err
	}

	now := s.now()
	s.emit(ctx, events.CategoriesRemoved{
		ClientID:       clientID,
		CategoryIDs:    result.CategoryIDs,
		HistoryRemoved: withHistory,
		OccurredAt:     now,
	})
	if len(result.Removed) > 0 {
		s.emit(ctx, events.TransactionsRemoved{Removed: result.Removed, OccurredAt: now})
	}
	s.notifier.Notify(ctx, "Client deleted", notify.LevelSuccess)
	logger.Info("DeleteClient successful", "categories", len(result.CategoryIDs), "transactions", len(result.Removed))
	return result, nil
}

// GetClient returns one client.
func (s *Service) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	repo, err := s.uow.ClientRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

// ListClients returns the clients matching filter, ordered by client number.
func (s *Service) ListClients(ctx context.Context, filter repository.ClientFilter) ([]*client.Client, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidStatus, filter.Status)
	}
	repo, err := s.uow.ClientRepository()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, filter)
}

// UpdateClient replaces the editable details of a client. Status is left alone; it only
// changes through SetStatus. When the name changes, the titles of the linked accounts
// follow in the same commit.
func (s *Service) UpdateClient(ctx context.Context, id uuid.UUID, d client.Details) (*client.Client, error) {
	logger := s.logger.With("clientID", id)
	logger.Info("UpdateClient started")

	ctx = context.WithoutCancel(ctx)
	var updated *client.Client
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}

		c, err := clients.Get(ctx, id)
		if err != nil {
			return err
		}
		d.Status = c.Status
		if d.Year == 0 {
			d.Year = c.Year
		}
		if err := d.Validate(); err != nil {
			return err
		}

		if oldName, newName := c.FullName(), d.FullName(); oldName != newName {
			linked, err := categories.FindLinked(ctx, s.linkQuery(c, oldName))
			if err != nil {
				return err
			}
			if err := categories.UpdateTitle(ctx, categoryIDs(linked), newName); err != nil {
				return err
			}
		}
		if err := clients.Update(ctx, id, repository.ClientUpdate{Details: &d}); err != nil {
			return err
		}
		if diff := client.Diff(c.Details, d); len(diff) > 0 {
			if err := s.record(ctx, uow, id, client.ActionUpdated, diff); err != nil {
				return err
			}
		}
		c.Details = d
		updated = c
		return nil
	})
	if err != nil {
		logger.Error("UpdateClient failed", "error", err)
		return nil, err
	}
	logger.Info("UpdateClient successful")
	return updated, nil
}

// History returns the recorded changes of a client, newest first. It stays readable
// after the client is deleted.
func (s *Service) History(ctx context.Context, clientID uuid.UUID, page repository.Page) ([]*client.Change, error) {
	repo, err := s.uow.ClientHistoryRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByClient(ctx, clientID, page)
}

// PaymentProgress reports how much of the client's contract the payment schedule covers.
func (s *Service) PaymentProgress(ctx context.Context, id uuid.UUID) (client.Progress, error) {
	c, err := s.GetClient(ctx, id)
	if err != nil {
		return client.Progress{}, err
	}
	return c.PaymentProgress(), nil
}

// ListOverdue returns clients still building after their planned construction period.
func (s *Service) ListOverdue(ctx context.Context, now time.Time) ([]*client.Client, error) {
	repo, err := s.uow.ClientRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListOverdue(ctx, now)
}

// NotifyOverdue sends one warning per overdue client and returns how many were found.
func (s *Service) NotifyOverdue(ctx context.Context, now time.Time) (int, error) {
	overdue, err := s.ListOverdue(ctx, now)
	if err != nil {
		return 0, err
	}
	for _, c := range overdue {
		days := int(now.Sub(c.DeadlineAt()).Hours() / 24)
		s.notifier.Notify(ctx, fmt.Sprintf("Construction for %s (%s) is %d days overdue", c.FullName(), c.ClientNumber, days), notify.LevelWarning)
	}
	return len(overdue), nil
}

// linkQuery finds the accounts of c. An explicit name wins over the stored one so that
// callers can address accounts still titled with a previous name.
func (s *Service) linkQuery(c *client.Client, name string) repository.LinkQuery {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.FullName()
	}
	return repository.LinkQuery{ClientID: c.ID, Title: name, Mode: s.match}
}

// record appends a change to the client's history inside the running commit, on behalf
// of the operator stored in ctx.
func (s *Service) record(ctx context.Context, uow repository.UnitOfWork, clientID uuid.UUID, action client.Action, changes map[string]client.FieldChange) error {
	repo, err := uow.ClientHistoryRepository()
	if err != nil {
		return err
	}
	return repo.Append(ctx, client.NewChange(clientID, action, changes, common.OperatorFrom(ctx), s.now()))
}

func (s *Service) emit(ctx context.Context, evt events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, evt); err != nil {
		s.logger.Warn("failed to publish event", "type", evt.Type(), "error", err)
	}
}

func categoryIDs(cats []*category.Category) []uuid.UUID {
	ids := make([]uuid.UUID, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	return ids
}
