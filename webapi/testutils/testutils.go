// Package testutils builds ledger services over in-memory storage for HTTP tests.
package testutils

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	infrabus "github.com/amirasaad/opsledger/infra/eventbus"
	"github.com/amirasaad/opsledger/pkg/app"
	"github.com/amirasaad/opsledger/pkg/config"
	"github.com/amirasaad/opsledger/pkg/notify"
	pkgtestutils "github.com/amirasaad/opsledger/pkg/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// TestSecret signs the tokens returned by Token.
const TestSecret = "test-secret"

// Config returns an application config suited to tests. Auth is disabled unless the
// caller sets a secret.
func Config() *config.App {
	return &config.App{
		Env:       "test",
		Server:    &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		Log:       &config.Log{Format: "text"},
		DB:        &config.DB{Url: "sqlite://:memory:"},
		Auth:      &config.Auth{},
		Redis:     &config.Redis{},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
		Ledger: &config.Ledger{
			CurrencySuffix:     "₸",
			MaxRetries:         5,
			RetryBaseDelay:     time.Millisecond,
			RetryMaxDelay:      5 * time.Millisecond,
			CascadeMatch:       "client_id",
			DeleteBatchSize:    500,
			SubscriptionBuffer: 8,
			IdempotencyTTL:     time.Hour,
		},
	}
}

// NewApp wires every service over a fresh SQLite database and the in-memory bus.
func NewApp(t testing.TB, cfg *config.App) *app.App {
	t.Helper()
	if cfg == nil {
		cfg = Config()
	}
	uow, _ := pkgtestutils.NewUoW(t)
	logger := pkgtestutils.Logger()
	log.SetOutput(io.Discard)
	return app.New(&config.Deps{
		Uow:      uow,
		EventBus: infrabus.NewWithMemory(logger),
		Notifier: notify.NewLogNotifier(logger),
		Logger:   logger,
		Config:   cfg,
	}, cfg)
}

// Token returns a bearer token for subject signed with secret.
func Token(t testing.TB, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// MakeRequest is a helper for making HTTP requests in tests
func MakeRequest(t testing.TB, app *fiber.App, method, path, body, token string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}
