package api

import (
	"strings"

	"supplier-core/internal/adapter/auth"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth verifies the Authorization bearer token on every request and
// stores the decoded claims in the request locals. The 401 body keeps the
// expired/invalid distinction visible to callers.
func RequireAuth(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}

		claims, err := tokens.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
