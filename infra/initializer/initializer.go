// Package initializer builds the process-wide dependencies from configuration.
package initializer

import (
	"fmt"
	"log/slog"
	"os"

	infra_cache "github.com/amirasaad/opsledger/infra/cache"
	"github.com/amirasaad/opsledger/infra/database"
	infra_eventbus "github.com/amirasaad/opsledger/infra/eventbus"
	infra_repository "github.com/amirasaad/opsledger/infra/repository"
	"github.com/amirasaad/opsledger/pkg/cache"
	"github.com/amirasaad/opsledger/pkg/config"
	"github.com/amirasaad/opsledger/pkg/domain/events"
	"github.com/amirasaad/opsledger/pkg/eventbus"
	"github.com/amirasaad/opsledger/pkg/notify"
)

// InitializeDependencies opens the database, runs migrations when enabled, and builds the
// event bus and notifier. The returned cleanup closes what was opened.
func InitializeDependencies(cfg *config.App) (deps *config.Deps, cleanup func(), err error) {
	logger := setupLogger(cfg.Log)
	deps = &config.Deps{Logger: logger, Config: cfg}

	db, driver, err := database.NewConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db, driver); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("Database migrated", "driver", driver)
	}
	deps.Uow = infra_repository.NewUoW(db)

	bus, closeBus := initEventBus(cfg, logger)
	deps.EventBus = bus
	deps.Notifier = notify.Multi{
		notify.NewLogNotifier(logger),
		notify.NewBusNotifier(bus, logger),
	}

	c, closeCache := initCache(cfg, logger)
	deps.Cache = c

	cleanup = func() {
		closeCache()
		closeBus()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return deps, cleanup, nil
}

// initEventBus returns a Redis Streams bus when REDIS_URL is set and reachable, and an
// in-memory bus otherwise.
func initEventBus(cfg *config.App, logger *slog.Logger) (eventbus.Bus, func()) {
	nop := func() {}
	if cfg.Redis == nil || cfg.Redis.URL == "" {
		logger.Info("Using in-memory event bus")
		return infra_eventbus.NewWithMemory(logger), nop
	}

	bus, err := infra_eventbus.NewWithRedis(
		cfg.Redis.URL,
		cfg.Redis.Stream,
		consumerGroup(cfg.Redis.Group),
		events.EventTypes,
		logger,
	)
	if err != nil {
		logger.Warn("Redis event bus unavailable, falling back to in-memory bus", "error", err)
		return infra_eventbus.NewWithMemory(logger), nop
	}
	logger.Info("Using Redis event bus", "stream", cfg.Redis.Stream)
	return bus, func() { _ = bus.Close() }
}

// initCache returns a Redis cache when REDIS_URL is set and an in-memory cache otherwise.
func initCache(cfg *config.App, logger *slog.Logger) (cache.Cache, func()) {
	if cfg.Redis != nil && cfg.Redis.URL != "" {
		c, err := infra_cache.NewRedisCache(cfg.Redis.URL, cfg.Redis.Stream+":", logger)
		if err == nil {
			logger.Info("Using Redis cache")
			return c, func() { _ = c.Close() }
		}
		logger.Warn("Invalid Redis URL, falling back to in-memory cache", "error", err)
	}
	c := infra_cache.NewMemoryCache()
	return c, c.Close
}

// consumerGroup gives every host its own group so that each one receives every event.
func consumerGroup(base string) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return base
	}
	return base + "-" + host
}
