package api

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(app *fiber.App, handler *Handler) {
	// Middleware
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"version": os.Getenv("APP_VERSION"),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API Versioning
	v1 := app.Group("/v1")
	v1.Post("/posts/generate", handler.GeneratePost)
	v1.Post("/menu/extract", handler.ExtractMenu)
	v1.Get("/alerts", handler.ListAlerts)
	v1.Get("/alerts/unread-count", handler.UnreadAlertCount)
	v1.Post("/alerts/:id/read", handler.MarkAlertRead)
	v1.Get("/bots/:id/usage", handler.BotUsage)
}
