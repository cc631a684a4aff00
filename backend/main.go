package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/config"
	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/middleware"
	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/models"
	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/routes"
	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Quiz{}, &models.QuizResult{}); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
