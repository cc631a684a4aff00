// Package api is the HTTP client for the quiz persistence service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/player/session"
)

var ErrQuizNotFound = errors.New("quiz not found")

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a client for the given service base URL, e.g.
// "http://localhost:5000". token is the JWT sent in the Authorization
// header; it may be empty against an unauthenticated service.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Login exchanges credentials for a JWT accepted by the other endpoints.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed: HTTP %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	c.token = body.Token
	return body.Token, nil
}

type quizResponse struct {
	Title    string `json:"title"`
	QuizCode string `json:"quiz_code"`
	Data     struct {
		Meta struct {
			TimePerQuestion int `json:"time_per_question"`
			MaxAttempts     int `json:"max_attempts"`
		} `json:"meta"`
		Questions []struct {
			Question string   `json:"question"`
			Options  []string `json:"options"`
			Answer   string   `json:"answer"`
		} `json:"questions"`
	} `json:"data"`
}

// FetchQuiz loads the quiz payload for an access code. Any non-200 response
// is treated as "quiz not found".
func (c *Client) FetchQuiz(ctx context.Context, code string) (*session.Quiz, error) {
	url := fmt.Sprintf("%s/api/quiz/%s", c.baseURL, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w (HTTP %d)", ErrQuizNotFound, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload quizResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("malformed quiz payload: %v", err)
	}

	quiz := &session.Quiz{
		Code:            payload.QuizCode,
		Title:           payload.Title,
		TimePerQuestion: payload.Data.Meta.TimePerQuestion,
		MaxAttempts:     payload.Data.Meta.MaxAttempts,
	}
	if quiz.Code == "" {
		quiz.Code = code
	}
	for _, q := range payload.Data.Questions {
		quiz.Questions = append(quiz.Questions, session.Question{
			Prompt:  q.Question,
			Options: q.Options,
			Answer:  q.Answer,
		})
	}
	return quiz, nil
}

type submitRequest struct {
	Score   string    `json:"score"`
	Answers []*string `json:"answers"`
}

// SubmitResult posts the final score and answer log. Only the response
// status is observed.
func (c *Client) SubmitResult(ctx context.Context, result *session.Result) error {
	payload, err := json.Marshal(submitRequest{
		Score:   result.ScoreString(),
		Answers: result.Answers,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/quiz/%s/submit", c.baseURL, result.QuizCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return nil
}
