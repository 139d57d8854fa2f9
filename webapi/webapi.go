// Package webapi provides the HTTP API of the ledger.
// It is organized into sub-packages for different domains:
// - ledger: transfers, accounts and history
// - client: client lifecycle and cascades
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/opsledger/pkg/app"
	clientweb "github.com/amirasaad/opsledger/webapi/client"
	"github.com/amirasaad/opsledger/webapi/common"
	ledgerweb "github.com/amirasaad/opsledger/webapi/ledger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	if rl := a.Config.RateLimit; rl != nil && rl.MaxRequests > 0 {
		// Uses X-Forwarded-For header when behind a proxy
		fiberApp.Use(limiter.New(limiter.Config{
			Max:          rl.MaxRequests,
			Expiration:   rl.Window,
			KeyGenerator: clientKey,
			LimitReached: func(c *fiber.Ctx) error {
				return common.ProblemDetailsJSON(
					c,
					"Too Many Requests",
					errors.New("rate limit exceeded"),
					fiber.StatusTooManyRequests,
				)
			},
		}))
	}
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())
	fiberApp.Use(cors.New())

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("OpsLedger API is running! 🚀")
		},
	)

	// Debug endpoint to list all routes
	fiberApp.Get("/debug/routes", func(c *fiber.Ctx) error {
		routes := fiberApp.GetRoutes()
		var routeList []map[string]any
		for _, route := range routes {
			if route.Path != "" {
				routeList = append(routeList, map[string]any{
					"method": route.Method,
					"path":   route.Path,
				})
			}
		}
		return c.JSON(routeList)
	})

	ledgerweb.Routes(fiberApp, a.LedgerService, a.CategoryService, a.ClientService, a.Idempotency, a.Config)
	clientweb.Routes(fiberApp, a.ClientService, a.LedgerService.Codec(), a.Config)
	return fiberApp
}

// clientKey uses the first X-Forwarded-For address, then X-Real-IP, then the peer address.
func clientKey(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		if first, _, found := strings.Cut(forwardedFor, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}
