// Package app assembles the ledger services from their dependencies.
package app

import (
	infracache "github.com/amirasaad/opsledger/infra/cache"
	"github.com/amirasaad/opsledger/pkg/config"
	"github.com/amirasaad/opsledger/pkg/idempotency"
	"github.com/amirasaad/opsledger/pkg/service/category"
	"github.com/amirasaad/opsledger/pkg/service/client"
	"github.com/amirasaad/opsledger/pkg/service/ledger"
)

type App struct {
	Deps            *config.Deps
	Config          *config.App
	LedgerService   *ledger.Service
	ClientService   *client.Service
	CategoryService *category.Service
	// Idempotency replays transfer responses sent with an Idempotency-Key header.
	Idempotency *idempotency.Guard
}

func New(deps *config.Deps, cfg *config.App) *App {
	if deps.Config == nil {
		deps.Config = cfg
	}
	if deps.Cache == nil {
		deps.Cache = infracache.NewMemoryCache()
	}
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.LedgerService = ledger.NewService(*deps)
	app.ClientService = client.NewService(*deps)
	app.CategoryService = category.NewService(*deps)
	app.Idempotency = idempotency.NewGuard(
		deps.Cache,
		deps.LedgerOrDefault().IdempotencyTTL,
		"idempotency:",
		deps.Logger,
	)
	app.setupEventBus()
	return app
}
