package controllers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/config"
	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/models"
	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/utils"
)

type DashboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewDashboardController(db *gorm.DB, cfg *config.Config) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg}
}

// GetDashboard returns the user's history: quizzes they generated and
// quizzes they took, newest first.
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var user models.User
	if err := dc.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var created []models.Quiz
	dc.DB.Where("creator_id = ?", userID).Find(&created)

	var taken []models.QuizResult
	dc.DB.Preload("Quiz").Where("user_id = ?", userID).Find(&taken)

	var history []fiber.Map
	for _, q := range created {
		history = append(history, fiber.Map{
			"id":        q.ID,
			"title":     q.Title,
			"quiz_code": q.QuizCode,
			"type":      "Generated",
			"date":      q.CreatedAt.Format("2006-01-02"),
			"score":     "N/A",
		})
	}
	for _, r := range taken {
		// Keyed by result ID so taking the same quiz twice stays unique.
		history = append(history, fiber.Map{
			"id":        r.ID,
			"title":     r.Quiz.Title,
			"quiz_code": r.Quiz.QuizCode,
			"type":      "Assessed",
			"date":      r.CreatedAt.Format("2006-01-02"),
			"score":     r.Score,
		})
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i]["date"].(string) > history[j]["date"].(string)
	})

	return c.JSON(fiber.Map{
		"user":    fiber.Map{"name": user.Username},
		"history": history,
	})
}
