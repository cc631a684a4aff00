package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/config"
	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/controllers"
	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/signup", authController.Signup)
	app.Post("/api/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// Quiz routes
	quizController := controllers.NewQuizController(db, cfg)
	app.Post("/api/generate", authMiddleware, quizController.Generate)
	app.Get("/api/quiz/:code", authMiddleware, quizController.GetQuiz)
	app.Post("/api/quiz/:code/submit", authMiddleware, quizController.SubmitScore)
	app.Get("/api/quiz/:code/leaderboard", authMiddleware, quizController.Leaderboard)
	app.Get("/api/result/:id", authMiddleware, quizController.GetResult)

	// Dashboard routes
	dashboardController := controllers.NewDashboardController(db, cfg)
	app.Get("/api/dashboard", authMiddleware, dashboardController.GetDashboard)
}
