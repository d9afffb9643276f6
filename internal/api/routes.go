package api

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, h *Handlers) {
	app.Get("/", h.Root)
	app.Get("/health", h.Health)

	// Newsletter generation endpoints
	newsletter := app.Group("/api/newsletter")
	{
		newsletter.Post("/generate/research", h.GenerateFromResearch)
		newsletter.Post("/generate/minutes", h.GenerateFromMinutes)
		newsletter.Post("/generate/hybrid", h.GenerateHybrid)
	}

	// WordPress pass-through endpoints
	wp := app.Group("/api/wordpress")
	{
		wp.Get("/test-connection", h.TestWordPressConnection)
		wp.Get("/categories", h.GetCategories)
		wp.Get("/tags", h.GetTags)
		wp.Get("/posts/drafts", h.GetDraftPosts)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": "Endpoint not found",
		})
	})
}
