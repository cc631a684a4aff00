package session

import (
	"context"
	"fmt"
)

// DefaultTimePerQuestion is used when the quiz payload carries no time limit.
const DefaultTimePerQuestion = 30

type Question struct {
	Prompt  string
	Options []string
	Answer  string
}

// Quiz is the immutable content of one attempt, loaded once at session start.
type Quiz struct {
	Code            string
	Title           string
	TimePerQuestion int
	MaxAttempts     int
	Questions       []Question
}

// Validate checks the payload invariants: at least one question, non-empty
// options and an answer that is one of its own options.
func (q *Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("quiz %s has no questions", q.Code)
	}
	for i, question := range q.Questions {
		if len(question.Options) == 0 {
			return fmt.Errorf("question %d has no options", i+1)
		}
		found := false
		for _, opt := range question.Options {
			if opt == question.Answer {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("question %d: answer is not among its options", i+1)
		}
	}
	return nil
}

// Result is the outcome of a finished session.
type Result struct {
	QuizCode string
	Correct  int
	Total    int
	Answers  []*string
}

// ScoreString formats the score the way the persistence service stores it,
// e.g. "4/5".
func (r *Result) ScoreString() string {
	return fmt.Sprintf("%d/%d", r.Correct, r.Total)
}

// QuizSource fetches quiz content by access code.
type QuizSource interface {
	FetchQuiz(ctx context.Context, code string) (*Quiz, error)
}

// ResultSink persists a finished session's result.
type ResultSink interface {
	SubmitResult(ctx context.Context, result *Result) error
}
