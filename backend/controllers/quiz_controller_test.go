package controllers

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/backend/models"
)

func sampleQuestions() []models.QuizQuestion {
	return []models.QuizQuestion{
		{Question: "The capital of France is ______.", Options: []string{"Paris", "Lyon", "Nice", "Lille"}, Answer: "Paris"},
		{Question: "2 + 2 equals ______.", Options: []string{"3", "4", "5"}, Answer: "4"},
	}
}

// createQuiz stores a quiz through the generate endpoint and returns its
// access code.
func createQuiz(t *testing.T, token string) string {
	t.Helper()
	resp := doJSON(t, "POST", "/api/generate", token, fiber.Map{
		"title":      "Geography Basics",
		"questions":  sampleQuestions(),
		"time_limit": 20,
		"attempts":   2,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	code, _ := body["quiz_code"].(string)
	assert.Len(t, code, 10)
	return code
}

func TestSignupAndLogin(t *testing.T) {
	requireDB(t)

	resp := doJSON(t, "POST", "/api/signup", "", fiber.Map{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, decodeBody(t, resp)["token"])

	// Duplicate username is rejected.
	resp = doJSON(t, "POST", "/api/signup", "", fiber.Map{
		"username": "newuser",
		"email":    "other@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doJSON(t, "POST", "/api/login", "", fiber.Map{
		"username": "newuser",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decodeBody(t, resp)["token"])

	resp = doJSON(t, "POST", "/api/login", "", fiber.Map{
		"username": "newuser",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGenerateAndFetchQuiz(t *testing.T) {
	requireDB(t)

	code := createQuiz(t, creatorToken)

	resp := doJSON(t, "GET", "/api/quiz/"+code, participantToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Geography Basics", body["title"])
	assert.Equal(t, code, body["quiz_code"])

	data := body["data"].(map[string]interface{})
	meta := data["meta"].(map[string]interface{})
	assert.Equal(t, float64(20), meta["time_per_question"])
	assert.Equal(t, float64(2), meta["max_attempts"])
	assert.Len(t, data["questions"].([]interface{}), 2)
}

func TestGetQuizNotFound(t *testing.T) {
	requireDB(t)

	resp := doJSON(t, "GET", "/api/quiz/NOSUCHCODE", participantToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGenerateRejectsInvalidQuestions(t *testing.T) {
	requireDB(t)

	resp := doJSON(t, "POST", "/api/generate", creatorToken, fiber.Map{
		"title": "Broken",
		"questions": []models.QuizQuestion{
			{Question: "q", Options: []string{"A", "B"}, Answer: "Z"},
		},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGenerateFromText(t *testing.T) {
	requireDB(t)

	resp := doJSON(t, "POST", "/api/generate", creatorToken, fiber.Map{
		"title":          "Reading Comprehension",
		"question_count": 2,
		"text": "Photosynthesis converts sunlight into chemical energy inside green plants. " +
			"During photosynthesis the chlorophyll absorbs sunlight and drives the whole reaction. " +
			"Plants release oxygen as a byproduct of photosynthesis during daytime hours.",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["quiz_code"])
	assert.Greater(t, body["count"].(float64), float64(0))
}

func TestSubmitUpserts(t *testing.T) {
	requireDB(t)

	code := createQuiz(t, creatorToken)

	answers := []interface{}{"Paris", nil}
	resp := doJSON(t, "POST", fmt.Sprintf("/api/quiz/%s/submit", code), participantToken, fiber.Map{
		"score":   "1/2",
		"answers": answers,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// A retried submit overwrites instead of duplicating.
	resp = doJSON(t, "POST", fmt.Sprintf("/api/quiz/%s/submit", code), participantToken, fiber.Map{
		"score":   "2/2",
		"answers": []interface{}{"Paris", "4"},
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var quiz models.Quiz
	db.Where("quiz_code = ?", code).First(&quiz)

	var count int64
	db.Model(&models.QuizResult{}).Where("user_id = ? AND quiz_id = ?", participant.ID, quiz.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	var result models.QuizResult
	db.Where("user_id = ? AND quiz_id = ?", participant.ID, quiz.ID).First(&result)
	assert.Equal(t, "2/2", result.Score)
}

func TestSubmitUnknownQuiz(t *testing.T) {
	requireDB(t)

	resp := doJSON(t, "POST", "/api/quiz/NOSUCHCODE/submit", participantToken, fiber.Map{
		"score": "0/2",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLeaderboardRestrictedToCreator(t *testing.T) {
	requireDB(t)

	code := createQuiz(t, creatorToken)
	doJSON(t, "POST", fmt.Sprintf("/api/quiz/%s/submit", code), participantToken, fiber.Map{
		"score":   "2/2",
		"answers": []interface{}{"Paris", "4"},
	})

	resp := doJSON(t, "GET", fmt.Sprintf("/api/quiz/%s/leaderboard", code), participantToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, "GET", fmt.Sprintf("/api/quiz/%s/leaderboard", code), creatorToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	entries := body["leaderboard"].([]interface{})
	assert.Len(t, entries, 1)
	first := entries[0].(map[string]interface{})
	assert.Equal(t, "participant", first["user_name"])
	assert.Equal(t, float64(100), first["percentage"])
}

func TestGetResultOwnership(t *testing.T) {
	requireDB(t)

	code := createQuiz(t, creatorToken)
	doJSON(t, "POST", fmt.Sprintf("/api/quiz/%s/submit", code), participantToken, fiber.Map{
		"score":   "1/2",
		"answers": []interface{}{"Paris", nil},
	})

	var quiz models.Quiz
	db.Where("quiz_code = ?", code).First(&quiz)
	var result models.QuizResult
	db.Where("user_id = ? AND quiz_id = ?", participant.ID, quiz.ID).First(&result)

	resp := doJSON(t, "GET", fmt.Sprintf("/api/result/%d", result.ID), participantToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "1/2", body["score"])
	answers := body["user_answers"].([]interface{})
	assert.Equal(t, "Paris", answers[0])
	assert.Nil(t, answers[1])

	// Another user cannot read it.
	resp = doJSON(t, "GET", fmt.Sprintf("/api/result/%d", result.ID), creatorToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDashboardHistory(t *testing.T) {
	requireDB(t)

	code := createQuiz(t, creatorToken)
	doJSON(t, "POST", fmt.Sprintf("/api/quiz/%s/submit", code), participantToken, fiber.Map{
		"score":   "1/2",
		"answers": []interface{}{"Paris", nil},
	})

	resp := doJSON(t, "GET", "/api/dashboard", creatorToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "creator", body["user"].(map[string]interface{})["name"])
	assert.True(t, historyContains(body, code, "Generated"))

	resp = doJSON(t, "GET", "/api/dashboard", participantToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, historyContains(decodeBody(t, resp), code, "Assessed"))
}

func historyContains(body map[string]interface{}, code, entryType string) bool {
	history, _ := body["history"].([]interface{})
	for _, item := range history {
		entry := item.(map[string]interface{})
		if entry["quiz_code"] == code && entry["type"] == entryType {
			return true
		}
	}
	return false
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	requireDB(t)

	resp := doJSON(t, "GET", "/api/quiz/ANYCODE123", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestScorePercentage(t *testing.T) {
	assert.Equal(t, float64(80), scorePercentage("4/5"))
	assert.Equal(t, float64(0), scorePercentage("0/5"))
	assert.Equal(t, float64(100), scorePercentage("3/3"))
	assert.Equal(t, float64(0), scorePercentage("garbage"))
	assert.Equal(t, float64(0), scorePercentage("1/0"))
}
