package webapi_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/amirasaad/opsledger/pkg/config"
	"github.com/amirasaad/opsledger/webapi"
	"github.com/amirasaad/opsledger/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit(t *testing.T) {
	cfg := testutils.Config()
	cfg.RateLimit = &config.RateLimit{MaxRequests: 5, Window: time.Second}
	app := webapi.SetupApp(testutils.NewApp(t, cfg))

	// Send requests until rate limit is hit
	for i := 0; i < 6; i++ {
		resp := testutils.MakeRequest(t, app, fiber.MethodGet, "/", "", "")
		_ = resp.Body.Close()
		if i < 5 {
			assert.Equal(t, fiber.StatusOK, resp.StatusCode, "Expected OK for request %d", i+1)
		} else {
			assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode, "Expected Too Many Requests for request %d", i+1)
		}
	}

	// A different forwarded client has its own budget
	req, _ := http.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.7, 10.0.0.1")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Wait for the rate limit window to reset
	time.Sleep(1100 * time.Millisecond)

	resp = testutils.MakeRequest(t, app, fiber.MethodGet, "/", "", "")
	_ = resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "Expected OK after rate limit reset")
}
