package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz stores one generated quiz under its access code. QuizData holds the
// full QuizPayload as JSON; the content is immutable once created.
type Quiz struct {
	gorm.Model
	QuizCode  string         `gorm:"unique;not null"`
	Title     string         `gorm:"default:Untitled Quiz"`
	QuizData  datatypes.JSON `gorm:"not null"`
	CreatorID uint
}

// QuizResult is one participant's outcome for one quiz. Submission is an
// upsert keyed by user and quiz, so a retried submit overwrites rather than
// duplicates.
type QuizResult struct {
	gorm.Model
	Score       string `gorm:"not null"` // stored as "4/5"
	UserAnswers datatypes.JSON
	UserID      uint
	QuizID      uint

	Quiz Quiz `gorm:"foreignKey:QuizID"`
}

// QuizPayload is the JSON document stored in Quiz.QuizData and served to the
// player verbatim.
type QuizPayload struct {
	Meta      QuizMeta       `json:"meta"`
	Questions []QuizQuestion `json:"questions"`
}

type QuizMeta struct {
	Difficulty      string `json:"difficulty"`
	TimePerQuestion int    `json:"time_per_question"`
	TotalQuestions  int    `json:"total_questions"`
	MaxAttempts     int    `json:"max_attempts"`
}

// QuizQuestion keeps options in display order; the answer must match one of
// them exactly.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}
