// Package middleware holds fiber middleware shared by the HTTP routes.
package middleware

import (
	"errors"
	"strings"

	"github.com/amirasaad/opsledger/pkg/domain/common"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Protected requires a bearer token signed with secret. An empty secret disables the check.
// The token subject is carried in the user context as the operator of any change.
func Protected(secret string) fiber.Handler {
	if secret == "" {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return jwtware.New(jwtware.Config{
		SigningKey:     jwtware.SigningKey{Key: []byte(secret)},
		ErrorHandler:   jwtError,
		SuccessHandler: withOperator,
	})
}

func withOperator(c *fiber.Ctx) error {
	c.SetUserContext(common.WithOperator(c.UserContext(), Operator(c)))
	return c.Next()
}

// Operator returns the subject of the request's token, or "anonymous".
func Operator(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return "anonymous"
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "anonymous"
	}
	return sub
}

func jwtError(c *fiber.Ctx, err error) error {
	status, title := fiber.StatusUnauthorized, "Invalid or expired JWT"
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) || strings.EqualFold(err.Error(), "missing or malformed JWT") {
		status, title = fiber.StatusBadRequest, "Missing or malformed JWT"
	}
	return c.Status(status).JSON(fiber.Map{
		"type":   "about:blank",
		"title":  title,
		"status": status,
		"detail": err.Error(),
	}, "application/problem+json")
}
