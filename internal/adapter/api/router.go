package api

import (
	"os"

	"supplier-core/internal/adapter/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRouter(app *fiber.App, handler *Handler, tokens *auth.TokenService) {
	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Authorization,Content-Type,X-Service-Key",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"version": os.Getenv("APP_VERSION"),
			"env":     os.Getenv("ENV"),
		})
	})

	group := app.Group("/api")
	group.Post("/auth/token", handler.HandleIssueToken)

	// Routes registered from here on require a bearer token.
	group.Use(RequireAuth(tokens))
	group.Post("/compare", handler.HandleCompare)
	group.Get("/analytics", handler.HandleAnalytics)
	group.Post("/query", handler.HandleQuery)
}
