package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrInvalidConfig is returned when a loaded value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Info("Loading environment variables")

	// If no specific paths provided, try default .env
	if len(envFilePath) == 0 {
		logger.Debug("No environment file specified, trying default .env")
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env file found in current directory")
		}
		return loadFromEnv()
	}

	// Try each provided path until we find a valid one
	for _, path := range envFilePath {
		logger.Debug("Looking for environment file", "path", path)
		foundPath, err := FindEnvTest(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}

		logger.Info("Loading environment from file", "path", foundPath)
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		return loadFromEnv()
	}

	logger.Info("No valid environment files found, using default .env")
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"db", maskValue(cfg.DB.Url),
		"redis", maskValue(cfg.Redis.URL),
		"jwt_secret", maskValue(cfg.Auth.JwtSecret),
		"ledger_max_retries", cfg.Ledger.MaxRetries,
		"ledger_cascade_match", cfg.Ledger.CascadeMatch,
		"ledger_allow_self_transfer", cfg.Ledger.AllowSelfTransfer,
	)
	return &cfg, nil
}

// Validate checks the ledger tuning values.
func (a *App) Validate() error {
	l := a.Ledger
	if l == nil {
		return fmt.Errorf("%w: ledger section missing", ErrInvalidConfig)
	}
	switch {
	case l.MaxRetries < 0:
		return fmt.Errorf("%w: LEDGER_MAX_RETRIES must not be negative", ErrInvalidConfig)
	case l.RetryBaseDelay < 0:
		return fmt.Errorf("%w: LEDGER_RETRY_BASE_DELAY must not be negative", ErrInvalidConfig)
	case l.CascadeMatch != "client_id" && l.CascadeMatch != "title":
		return fmt.Errorf("%w: LEDGER_CASCADE_MATCH must be client_id or title, got %q", ErrInvalidConfig, l.CascadeMatch)
	case l.DeleteBatchSize <= 0:
		return fmt.Errorf("%w: LEDGER_DELETE_BATCH_SIZE must be positive", ErrInvalidConfig)
	case l.SubscriptionBuffer <= 0:
		return fmt.Errorf("%w: LEDGER_SUBSCRIPTION_BUFFER must be positive", ErrInvalidConfig)
	case l.IdempotencyTTL <= 0:
		return fmt.Errorf("%w: LEDGER_IDEMPOTENCY_TTL must be positive", ErrInvalidConfig)
	}
	return nil
}

func maskValue(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
