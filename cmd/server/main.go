package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirasaad/opsledger/infra/initializer"
	"github.com/amirasaad/opsledger/pkg/app"
	"github.com/amirasaad/opsledger/pkg/config"
	"github.com/amirasaad/opsledger/webapi"
	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fiberApp, a, cleanup, err := newServer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	logger := a.Deps.Logger

	go watchOverdue(ctx, a, cfg.Ledger.OverdueCheckInterval, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	errCh := make(chan error, 1)
	go func() { errCh <- fiberApp.Listen(addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutting down server")
	return fiberApp.ShutdownWithTimeout(shutdownTimeout)
}

// newServer initializes all dependencies and the Fiber app with every route.
func newServer(cfg *config.App) (*fiber.App, *app.App, func(), error) {
	deps, cleanup, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	a := app.New(deps, cfg)
	return webapi.SetupApp(a), a, cleanup, nil
}

// watchOverdue warns about overdue construction once at start and then every interval
// until ctx is done. A non-positive interval disables the check.
func watchOverdue(ctx context.Context, a *app.App, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	check := func() {
		n, err := a.ClientService.NotifyOverdue(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Overdue check failed", "error", err)
			return
		}
		logger.Debug("Overdue check done", "overdue", n)
	}
	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
