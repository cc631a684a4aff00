package controllers

import (
	"encoding/json"
	"errors"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/config"
	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/generator"
	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/models"
	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/utils"
)

var validate = validator.New()

type QuizController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQuizController(db *gorm.DB, cfg *config.Config) *QuizController {
	return &QuizController{DB: db, Cfg: cfg}
}

type GenerateInput struct {
	Title         string                `json:"title"`
	Text          string                `json:"text"`
	Questions     []models.QuizQuestion `json:"questions"`
	QuestionCount int                   `json:"question_count" validate:"omitempty,min=1,max=50"`
	TimeLimit     int                   `json:"time_limit" validate:"omitempty,min=5,max=600"`
	Difficulty    string                `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard Expert"`
	Attempts      int                   `json:"attempts" validate:"omitempty,min=1,max=10"`
}

// [+] Generate godoc
// @Summary Create a quiz from source text or explicit questions
// @Tags quiz
// @Accept json
// @Produce json
// @Router /generate [post]
func (qc *QuizController) Generate(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input GenerateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := validate.Struct(&input); err != nil {
		details := map[string]string{}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				details[fe.Field()] = fe.Tag()
			}
		}
		return utils.ValidationError(c, details)
	}

	if input.QuestionCount == 0 {
		input.QuestionCount = 5
	}
	if input.TimeLimit == 0 {
		input.TimeLimit = 30
	}
	if input.Difficulty == "" {
		input.Difficulty = "Medium"
	}
	if input.Attempts == 0 {
		input.Attempts = 1
	}
	if input.Title == "" {
		input.Title = "Generated Quiz"
	}

	questions := input.Questions
	if len(questions) == 0 {
		if strings.TrimSpace(input.Text) == "" {
			return utils.BadRequest(c, "Either text or questions must be provided")
		}
		r := rand.New(rand.NewSource(time.Now().UnixNano()))
		for _, q := range generator.Generate(input.Text, input.QuestionCount, input.Difficulty, r) {
			questions = append(questions, models.QuizQuestion{
				Question: q.Question,
				Options:  q.Options,
				Answer:   q.Answer,
			})
		}
		if len(questions) == 0 {
			return utils.BadRequest(c, "Could not generate any questions from the given text")
		}
	}

	if err := validateQuestions(questions); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	payload := models.QuizPayload{
		Meta: models.QuizMeta{
			Difficulty:      input.Difficulty,
			TimePerQuestion: input.TimeLimit,
			TotalQuestions:  len(questions),
			MaxAttempts:     input.Attempts,
		},
		Questions: questions,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not encode quiz data",
		})
	}

	quiz := models.Quiz{
		Title:     input.Title,
		QuizData:  data,
		CreatorID: userID,
	}

	// The code column is unique; retry a few times on collision.
	for attempt := 0; attempt < 5; attempt++ {
		quiz.QuizCode = utils.GenerateQuizCode()
		if err = qc.DB.Create(&quiz).Error; err == nil {
			break
		}
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create quiz",
		})
	}

	return c.JSON(fiber.Map{
		"message":   "Quiz generated successfully",
		"quiz_code": quiz.QuizCode,
		"title":     quiz.Title,
		"count":     len(questions),
	})
}

// validateQuestions enforces the content invariants: every question has
// options and an answer that matches one of them exactly.
func validateQuestions(questions []models.QuizQuestion) error {
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return errors.New("question " + strconv.Itoa(i+1) + " has no prompt")
		}
		if len(q.Options) == 0 {
			return errors.New("question " + strconv.Itoa(i+1) + " has no options")
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.Answer {
				found = true
				break
			}
		}
		if !found {
			return errors.New("question " + strconv.Itoa(i+1) + ": answer is not among its options")
		}
	}
	return nil
}

// [+] GetQuiz godoc
// @Summary Fetch a quiz payload by access code
// @Tags quiz
// @Produce json
// @Router /quiz/{code} [get]
func (qc *QuizController) GetQuiz(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromToken(c, qc.Cfg); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	// Any authenticated user may fetch the quiz: participants need this
	// route to play, not just the creator.
	var quiz models.Quiz
	if err := qc.DB.Where("quiz_code = ?", c.Params("code")).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Quiz not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var payload models.QuizPayload
	if err := json.Unmarshal(quiz.QuizData, &payload); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not decode quiz data",
		})
	}

	return c.JSON(fiber.Map{
		"title":      quiz.Title,
		"quiz_code":  quiz.QuizCode,
		"created_at": quiz.CreatedAt.Format("2006-01-02"),
		"data":       payload,
	})
}

// [+] SubmitScore godoc
// @Summary Save a participant's result for a quiz
// @Tags quiz
// @Accept json
// @Produce json
// @Router /quiz/{code}/submit [post]
func (qc *QuizController) SubmitScore(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	type SubmitInput struct {
		Score   string    `json:"score"`
		Answers []*string `json:"answers"`
	}

	var input SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Score == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Score is required",
		})
	}

	var quiz models.Quiz
	if err := qc.DB.Where("quiz_code = ?", c.Params("code")).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Quiz not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	answersJSON, err := json.Marshal(input.Answers)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not encode answers",
		})
	}

	// Upsert keyed by user+quiz: a retried submit overwrites the previous
	// row instead of duplicating it.
	var result models.QuizResult
	err = qc.DB.Where("user_id = ? AND quiz_id = ?", userID, quiz.ID).First(&result).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not query database",
			})
		}
		result = models.QuizResult{
			UserID: userID,
			QuizID: quiz.ID,
		}
	}
	result.Score = input.Score
	result.UserAnswers = answersJSON

	if err := qc.DB.Save(&result).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save result",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Score saved successfully",
	})
}

// [+] GetResult godoc
// @Summary Result review: quiz content plus the participant's answers
// @Tags quiz
// @Produce json
// @Router /result/{id} [get]
func (qc *QuizController) GetResult(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resultID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid result ID",
		})
	}

	var result models.QuizResult
	if err := qc.DB.Preload("Quiz").First(&result, resultID).Error; err != nil || result.UserID != userID {
		return utils.NotFound(c, "Result not found or unauthorized")
	}

	var payload models.QuizPayload
	if err := json.Unmarshal(result.Quiz.QuizData, &payload); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not decode quiz data",
		})
	}

	var answers []*string
	if len(result.UserAnswers) > 0 {
		json.Unmarshal(result.UserAnswers, &answers)
	}

	return c.JSON(fiber.Map{
		"title":        result.Quiz.Title,
		"quiz_code":    result.Quiz.QuizCode,
		"score":        result.Score,
		"date":         result.CreatedAt.Format("2006-01-02"),
		"quiz_data":    payload,
		"user_answers": answers,
	})
}

// [+] Leaderboard godoc
// @Summary All results for a quiz, best first; creator only
// @Tags quiz
// @Produce json
// @Router /quiz/{code}/leaderboard [get]
func (qc *QuizController) Leaderboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var quiz models.Quiz
	if err := qc.DB.Where("quiz_code = ?", c.Params("code")).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Quiz not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if quiz.CreatorID != userID {
		return utils.Forbidden(c, "Access restricted to quiz generator")
	}

	var results []models.QuizResult
	if err := qc.DB.Where("quiz_id = ?", quiz.ID).Find(&results).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	type entry struct {
		UserID     uint    `json:"user_id"`
		UserName   string  `json:"user_name"`
		Score      string  `json:"score"`
		Percentage float64 `json:"percentage"`
		Date       string  `json:"date"`
	}

	var leaderboard []entry
	for _, r := range results {
		var user models.User
		if err := qc.DB.First(&user, r.UserID).Error; err != nil {
			continue
		}
		leaderboard = append(leaderboard, entry{
			UserID:     user.ID,
			UserName:   user.Username,
			Score:      r.Score,
			Percentage: scorePercentage(r.Score),
			Date:       r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	sort.Slice(leaderboard, func(i, j int) bool {
		return leaderboard[i].Percentage > leaderboard[j].Percentage
	})

	return c.JSON(fiber.Map{
		"quiz_title":  quiz.Title,
		"leaderboard": leaderboard,
	})
}

// scorePercentage parses a "correct/total" score string. Malformed scores
// count as zero.
func scorePercentage(score string) float64 {
	parts := strings.Split(score, "/")
	if len(parts) != 2 {
		return 0
	}
	correct, err1 := strconv.Atoi(parts[0])
	total, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}
