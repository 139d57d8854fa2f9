package app

import (
	"context"
	"log/slog"

	"github.com/amirasaad/opsledger/pkg/domain/events"
	"github.com/amirasaad/opsledger/pkg/money"
)

// setupEventBus registers the audit handlers that record committed ledger changes.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	logger := a.Deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	audit := &auditLog{logger: logger.With("component", "audit"), codec: a.LedgerService.Codec()}

	bus.Register(events.EventTypeBalanceChanged, audit.handle)
	bus.Register(events.EventTypeCategoriesChanged, audit.handle)
	bus.Register(events.EventTypeCategoriesRemoved, audit.handle)
	bus.Register(events.EventTypeTransactionsRemoved, audit.handle)
}

type auditLog struct {
	logger *slog.Logger
	codec  money.Codec
}

func (l *auditLog) handle(_ context.Context, evt events.Event) error {
	switch e := evt.(type) {
	case *events.BalanceChanged:
		l.balanceChanged(*e)
	case events.BalanceChanged:
		l.balanceChanged(e)
	case *events.CategoriesChanged:
		l.categoriesChanged(*e)
	case events.CategoriesChanged:
		l.categoriesChanged(e)
	case *events.CategoriesRemoved:
		l.categoriesRemoved(*e)
	case events.CategoriesRemoved:
		l.categoriesRemoved(e)
	case *events.TransactionsRemoved:
		l.logger.Info("History removed", "records", len(e.Removed))
	case events.TransactionsRemoved:
		l.logger.Info("History removed", "records", len(e.Removed))
	}
	return nil
}

func (l *auditLog) balanceChanged(e events.BalanceChanged) {
	for _, c := range e.Changes {
		l.logger.Info("Balance changed",
			"transferID", e.TransferID,
			"categoryID", c.CategoryID,
			"balance", l.codec.Format(c.Balance),
			"version", c.Version,
		)
	}
}

func (l *auditLog) categoriesChanged(e events.CategoriesChanged) {
	attrs := []any{"categories", len(e.CategoryIDs)}
	if e.ClientID != nil {
		attrs = append(attrs, "clientID", *e.ClientID)
	}
	if e.Status != nil {
		attrs = append(attrs, "status", *e.Status)
	}
	if e.IsVisible != nil {
		attrs = append(attrs, "visible", *e.IsVisible)
	}
	l.logger.Info("Categories updated", attrs...)
}

func (l *auditLog) categoriesRemoved(e events.CategoriesRemoved) {
	l.logger.Info("Categories removed",
		"clientID", e.ClientID,
		"categories", len(e.CategoryIDs),
		"historyRemoved", e.HistoryRemoved,
	)
}
