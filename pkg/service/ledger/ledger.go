// Package ledger moves money between accounts and answers balance and history queries.
//
// Every transfer is committed atomically: the history records and both balance writes
// land together or not at all. Concurrent transfers are isolated optimistically; a transfer
// whose accounts changed under it is re-run from scratch a bounded number of times.
package ledger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amirasaad/opsledger/pkg/config"
	"github.com/amirasaad/opsledger/pkg/domain"
	"github.com/amirasaad/opsledger/pkg/domain/category"
	"github.com/amirasaad/opsledger/pkg/domain/history"
	"github.com/amirasaad/opsledger/pkg/eventbus"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/amirasaad/opsledger/pkg/notify"
	"github.com/amirasaad/opsledger/pkg/repository"
	"github.com/amirasaad/opsledger/pkg/retry"
	"github.com/google/uuid"
)

var (
	// ErrSelfTransfer is returned when source and target are the same account.
	ErrSelfTransfer = domain.NewError(domain.ErrValidation, "source and target must be different accounts")
	// ErrCategoryIDRequired is returned when a history query names no account.
	ErrCategoryIDRequired = domain.NewError(domain.ErrValidation, "category id is required")
)

// Service provides the transfer engine and ledger queries.
type Service struct {
	uow               repository.UnitOfWork
	bus               eventbus.Bus
	notifier          notify.Notifier
	logger            *slog.Logger
	codec             money.Codec
	policy            retry.Policy
	allowSelfTransfer bool
	feed              *feed
}

// NewService creates a new Service with the provided dependencies. When an event bus is
// given, the service registers its subscription feed on it.
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
	s := &Service{
		uow:      deps.Uow,
		bus:      deps.EventBus,
		notifier: notifier,
		logger:   logger.With("service", "ledger"),
		codec:    money.NewCodec(cfg.CurrencySuffix),
		policy: retry.Policy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  cfg.RetryBaseDelay,
			MaxDelay:   cfg.RetryMaxDelay,
		},
		allowSelfTransfer: cfg.AllowSelfTransfer,
	}
	if deps.EventBus != nil {
		s.feed = newFeed(cfg.SubscriptionBuffer, s.logger)
		s.feed.register(deps.EventBus)
	}
	return s
}

// Codec returns the codec used for display strings.
func (s *Service) Codec() money.Codec {
	return s.codec
}

// GetCategory returns one account.
func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	repo, err := s.uow.CategoryRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

// GetBalance returns the committed balance of an account. It never writes.
func (s *Service) GetBalance(ctx context.Context, id uuid.UUID) (money.Amount, error) {
	repo, err := s.uow.CategoryRepository()
	if err != nil {
		return 0, err
	}
	return repo.GetBalance(ctx, id)
}

// History returns the records of an account, newest first. The account does not need
// to exist any more: records of deleted accounts stay readable.
func (s *Service) History(ctx context.Context, categoryID string, page repository.Page) ([]*history.Transaction, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return nil, ErrCategoryIDRequired
	}
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByCategory(ctx, categoryID, page)
}

// SystemBalance returns the total of every amount taken from person accounts.
func (s *Service) SystemBalance(ctx context.Context) (money.Amount, error) {
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return 0, err
	}
	return repo.SumByCategory(ctx, history.SystemBalanceID)
}

// Reconciliation compares the stored balance of an account with the sum of its history.
type Reconciliation struct {
	CategoryID uuid.UUID
	Stored     money.Amount
	HistorySum money.Amount
	Drift      money.Amount
}

// Consistent reports whether the stored balance matches the history.
func (r Reconciliation) Consistent() bool {
	return r.Drift == 0
}

// Reconcile reads the balance and the history sum of an account in one transaction.
func (s *Service) Reconcile(ctx context.Context, id uuid.UUID) (*Reconciliation, error) {
	logger := s.logger.With("categoryID", id)
	var rec *Reconciliation
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		cat, err := categories.Get(ctx, id)
		if err != nil {
			return err
		}
		sum, err := txs.SumByCategory(ctx, id.String())
		if err != nil {
			return err
		}
		rec = &Reconciliation{
			CategoryID: id,
			Stored:     cat.Balance,
			HistorySum: sum,
			Drift:      cat.Balance - sum,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !rec.Consistent() {
		logger.Warn("Reconcile found drift", "stored", rec.Stored, "history", rec.HistorySum)
	}
	return rec, nil
}
