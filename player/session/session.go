// Package session implements the quiz attempt engine: one state machine per
// attempt that drives question progression, the per-question countdown,
// answer locking, scoring and the final submission.
package session

import (
	"context"
	"errors"
	"log"
)

type State int

const (
	StateLoading State = iota
	StateActive
	StateFinished
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StateFinished:
		return "finished"
	case StateError:
		return "error"
	}
	return "unknown"
}

var (
	ErrNotActive     = errors.New("session is not active")
	ErrAlreadyLoaded = errors.New("session already loaded")
	ErrUnknownOption = errors.New("option is not part of the current question")
)

// Session owns one quiz attempt from load to submission. All mutation goes
// through Load, Select, Confirm and Tick, which the caller must invoke from
// a single event loop; the engine itself never starts goroutines.
type Session struct {
	source QuizSource
	sink   ResultSink
	logger *log.Logger

	quiz     *Quiz
	state    State
	current  int
	score    int
	timer    *CountdownTimer
	tracker  *AnswerTracker
	reporter *Reporter
	result   *Result
}

func New(source QuizSource, sink ResultSink, logger *log.Logger) *Session {
	return &Session{
		source: source,
		sink:   sink,
		logger: logger,
		state:  StateLoading,
		timer:  NewCountdownTimer(),
	}
}

// Load fetches the quiz and moves the session to its first question. A fetch
// or validation failure is terminal: the session lands in StateError and no
// timer is ever started.
func (s *Session) Load(ctx context.Context, code string) error {
	if s.state != StateLoading {
		return ErrAlreadyLoaded
	}

	quiz, err := s.source.FetchQuiz(ctx, code)
	if err != nil {
		s.state = StateError
		return err
	}
	if err := quiz.Validate(); err != nil {
		s.state = StateError
		return err
	}
	if quiz.TimePerQuestion <= 0 {
		quiz.TimePerQuestion = DefaultTimePerQuestion
	}

	s.quiz = quiz
	s.tracker = NewAnswerTracker(len(quiz.Questions))
	s.reporter = NewReporter(s.sink, s.logger)
	s.current = 0
	s.state = StateActive
	s.timer.Start(quiz.TimePerQuestion, nil)
	return nil
}

// Select records a tentative choice for the current question. Re-selection
// overwrites; nothing is locked until Confirm or the timer expires.
func (s *Session) Select(option string) error {
	if s.state != StateActive {
		return ErrNotActive
	}
	for _, opt := range s.quiz.Questions[s.current].Options {
		if opt == option {
			s.tracker.Select(option)
			return nil
		}
	}
	return ErrUnknownOption
}

// Confirm locks in the current selection and advances. Confirming with
// nothing selected is a no-op, mirroring a disabled confirm button.
func (s *Session) Confirm(ctx context.Context) {
	if s.state != StateActive {
		return
	}
	if s.tracker.Selected() == nil {
		return
	}
	s.advance(ctx)
}

// Tick drives the countdown by one second. Expiry locks whatever was
// tentatively selected, through the same path as Confirm, so a selection
// left unconfirmed at the deadline is still credited. Ticks arriving after
// the session finished are ignored.
func (s *Session) Tick(ctx context.Context) {
	if s.state != StateActive {
		return
	}
	if s.timer.Tick() {
		s.advance(ctx)
	}
}

// advance is the single mutator of question index, score and answer log.
// Both the confirm and the timeout event funnel through here, so every
// question gets exactly one log entry and at most one score increment.
func (s *Session) advance(ctx context.Context) {
	_, correct := s.tracker.Confirm(s.quiz.Questions[s.current].Answer)
	if correct {
		s.score++
	}

	next := s.current + 1
	if next < len(s.quiz.Questions) {
		s.current = next
		s.timer.Start(s.quiz.TimePerQuestion, nil)
		return
	}
	s.finish(ctx)
}

// finish snapshots the result after the last score increment has been
// applied, then reports it. There is no way back to an active state.
func (s *Session) finish(ctx context.Context) {
	s.timer.Cancel()
	s.state = StateFinished
	s.result = &Result{
		QuizCode: s.quiz.Code,
		Correct:  s.score,
		Total:    len(s.quiz.Questions),
		Answers:  s.tracker.Entries(),
	}
	// Non-fatal: the result stays available locally either way.
	s.reporter.Submit(ctx, s.result)
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Quiz() *Quiz {
	return s.quiz
}

// CurrentIndex is the 0-based index of the active question.
func (s *Session) CurrentIndex() int {
	return s.current
}

func (s *Session) CurrentQuestion() *Question {
	if s.state != StateActive {
		return nil
	}
	return &s.quiz.Questions[s.current]
}

// Selected returns the tentative choice for the active question, or nil.
func (s *Session) Selected() *string {
	if s.tracker == nil {
		return nil
	}
	return s.tracker.Selected()
}

// Remaining returns the seconds left on the current question.
func (s *Session) Remaining() int {
	return s.timer.Remaining()
}

func (s *Session) Score() int {
	return s.score
}

// Result returns the final outcome, or nil before the session finished.
func (s *Session) Result() *Result {
	return s.result
}
