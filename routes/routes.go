package routes

import (
	"cafeteria-analytics/handlers"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, analyzer *handlers.Analytics) {
	app.Get("/", handlers.HandleHealth)
	app.Get("/version", handlers.HandleVersion)
	app.Post("/analyze", analyzer.HandleAnalyze)
}
