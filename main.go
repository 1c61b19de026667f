package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"cafeteria-analytics/config"
	"cafeteria-analytics/database"
	"cafeteria-analytics/handlers"
	"cafeteria-analytics/routes"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	pool, err := database.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()
	log.Println("Successfully connected to the database")

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	routes.SetupRoutes(app, handlers.NewAnalytics(pool, cfg))

	log.Fatal(app.Listen(":" + cfg.Port))
}
