package config

import (
	"log/slog"
	"time"

	"github.com/amirasaad/opsledger/pkg/cache"
	"github.com/amirasaad/opsledger/pkg/eventbus"
	"github.com/amirasaad/opsledger/pkg/notify"
	"github.com/amirasaad/opsledger/pkg/repository"
)

// Deps holds all infrastructure dependencies for building the app and services.
type Deps struct {
	Uow      repository.UnitOfWork
	EventBus eventbus.Bus
	Notifier notify.Notifier
	Cache    cache.Cache
	Logger   *slog.Logger
	Config   *App
}

// LedgerOrDefault returns the ledger section, or the built-in defaults when no
// configuration was loaded.
func (d Deps) LedgerOrDefault() Ledger {
	if d.Config != nil && d.Config.Ledger != nil {
		return *d.Config.Ledger
	}
	return Ledger{
		CurrencySuffix:       "₸",
		MaxRetries:           5,
		RetryBaseDelay:       10 * time.Millisecond,
		RetryMaxDelay:        time.Second,
		CascadeMatch:         "client_id",
		DeleteBatchSize:      500,
		SubscriptionBuffer:   64,
		OverdueCheckInterval: time.Hour,
		IdempotencyTTL:       24 * time.Hour,
	}
}
