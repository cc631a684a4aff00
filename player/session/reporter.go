package session

import (
	"context"
	"log"
)

// Reporter sends a finished session's result to the persistence service at
// most once. A failed submit is logged and otherwise swallowed: the locally
// computed result is still shown to the player.
type Reporter struct {
	sink      ResultSink
	logger    *log.Logger
	submitted bool
}

func NewReporter(sink ResultSink, logger *log.Logger) *Reporter {
	return &Reporter{sink: sink, logger: logger}
}

// Submit reports the result. Repeat calls are no-ops, whatever the outcome
// of the first attempt; the service treats submission as an upsert keyed by
// user and quiz, so there is no local retry loop.
func (r *Reporter) Submit(ctx context.Context, result *Result) error {
	if r.submitted {
		return nil
	}
	r.submitted = true

	if err := r.sink.SubmitResult(ctx, result); err != nil {
		if r.logger != nil {
			r.logger.Printf("failed to save score for quiz %s: %v", result.QuizCode, err)
		}
		return err
	}
	return nil
}

// Submitted reports whether a submit attempt has been made.
func (r *Reporter) Submitted() bool {
	return r.submitted
}
