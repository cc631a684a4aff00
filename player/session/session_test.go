package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSource struct {
	quiz *Quiz
	err  error
}

func (f *fakeSource) FetchQuiz(ctx context.Context, code string) (*Quiz, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.quiz, nil
}

type fakeSink struct {
	calls   int
	results []*Result
	err     error
}

func (f *fakeSink) SubmitResult(ctx context.Context, result *Result) error {
	f.calls++
	f.results = append(f.results, result)
	return f.err
}

func threeQuestionQuiz() *Quiz {
	return &Quiz{
		Code:            "TESTCODE01",
		Title:           "Test Quiz",
		TimePerQuestion: 30,
		Questions: []Question{
			{Prompt: "q1", Options: []string{"A", "B", "C"}, Answer: "B"},
			{Prompt: "q2", Options: []string{"A", "B", "C"}, Answer: "C"},
			{Prompt: "q3", Options: []string{"A", "B", "C"}, Answer: "A"},
		},
	}
}

func loadSession(t *testing.T, quiz *Quiz, sink ResultSink) *Session {
	t.Helper()
	sess := New(&fakeSource{quiz: quiz}, sink, nil)
	assert.NoError(t, sess.Load(context.Background(), quiz.Code))
	assert.Equal(t, StateActive, sess.State())
	return sess
}

func expire(sess *Session) {
	for i := 0; i < sess.Quiz().TimePerQuestion; i++ {
		sess.Tick(context.Background())
	}
}

func TestSessionFullRun(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	sess := loadSession(t, threeQuestionQuiz(), sink)

	// Q1: correct answer confirmed.
	assert.NoError(t, sess.Select("B"))
	sess.Confirm(ctx)
	assert.Equal(t, 1, sess.CurrentIndex())
	assert.Equal(t, 30, sess.Remaining())

	// Q2: clock runs out with nothing selected.
	expire(sess)
	assert.Equal(t, 2, sess.CurrentIndex())

	// Q3: correct answer confirmed on the last question.
	assert.NoError(t, sess.Select("A"))
	sess.Confirm(ctx)

	assert.Equal(t, StateFinished, sess.State())
	result := sess.Result()
	assert.NotNil(t, result)
	assert.Equal(t, "2/3", result.ScoreString())
	assert.Len(t, result.Answers, 3)
	assert.Equal(t, "B", *result.Answers[0])
	assert.Nil(t, result.Answers[1])
	assert.Equal(t, "A", *result.Answers[2])

	assert.Equal(t, 1, sink.calls)
	assert.Equal(t, result, sink.results[0])
}

func TestSessionLoadFailure(t *testing.T) {
	sess := New(&fakeSource{err: errors.New("quiz not found (HTTP 404)")}, &fakeSink{}, nil)

	err := sess.Load(context.Background(), "NOPE")
	assert.Error(t, err)
	assert.Equal(t, StateError, sess.State())
	// No timer was ever started.
	assert.False(t, sess.timer.Active())
	assert.Error(t, sess.Select("A"))
}

func TestSessionRejectsMalformedQuiz(t *testing.T) {
	quiz := &Quiz{
		Code: "BADANSWER1",
		Questions: []Question{
			{Prompt: "q", Options: []string{"A", "B"}, Answer: "Z"},
		},
	}
	sess := New(&fakeSource{quiz: quiz}, &fakeSink{}, nil)

	assert.Error(t, sess.Load(context.Background(), quiz.Code))
	assert.Equal(t, StateError, sess.State())
}

func TestSessionTimeoutCreditsSelection(t *testing.T) {
	// A player who picked the right answer but never confirmed is still
	// credited when the clock expires.
	ctx := context.Background()
	quiz := &Quiz{
		Code:            "ONESHOT001",
		TimePerQuestion: 2,
		Questions: []Question{
			{Prompt: "q", Options: []string{"A", "B"}, Answer: "A"},
		},
	}
	sess := loadSession(t, quiz, &fakeSink{})

	assert.NoError(t, sess.Select("A"))
	sess.Tick(ctx)
	sess.Tick(ctx)

	assert.Equal(t, StateFinished, sess.State())
	assert.Equal(t, "1/1", sess.Result().ScoreString())
	assert.Equal(t, "A", *sess.Result().Answers[0])
}

func TestSessionConfirmWithoutSelectionIsNoop(t *testing.T) {
	ctx := context.Background()
	sess := loadSession(t, threeQuestionQuiz(), &fakeSink{})

	sess.Confirm(ctx)
	assert.Equal(t, 0, sess.CurrentIndex())
	assert.Equal(t, StateActive, sess.State())
}

func TestSessionTickAfterFinishedIsIgnored(t *testing.T) {
	ctx := context.Background()
	quiz := &Quiz{
		Code:            "TINY000001",
		TimePerQuestion: 5,
		Questions: []Question{
			{Prompt: "q", Options: []string{"A", "B"}, Answer: "A"},
		},
	}
	sink := &fakeSink{}
	sess := loadSession(t, quiz, sink)

	assert.NoError(t, sess.Select("A"))
	sess.Confirm(ctx)
	assert.Equal(t, StateFinished, sess.State())

	// A stale tick or a second confirm must not change anything.
	sess.Tick(ctx)
	sess.Confirm(ctx)

	assert.Equal(t, "1/1", sess.Result().ScoreString())
	assert.Len(t, sess.Result().Answers, 1)
	assert.Equal(t, 1, sink.calls)
}

func TestSessionSubmitFailureKeepsResult(t *testing.T) {
	ctx := context.Background()
	quiz := &Quiz{
		Code:            "FLAKY00001",
		TimePerQuestion: 5,
		Questions: []Question{
			{Prompt: "q1", Options: []string{"A", "B"}, Answer: "A"},
			{Prompt: "q2", Options: []string{"A", "B"}, Answer: "B"},
		},
	}
	sink := &fakeSink{err: errors.New("connection refused")}
	sess := loadSession(t, quiz, sink)

	assert.NoError(t, sess.Select("A"))
	sess.Confirm(ctx)
	assert.NoError(t, sess.Select("B"))
	sess.Confirm(ctx)

	// The result screen still has the locally computed score, and there is
	// no retry loop.
	assert.Equal(t, StateFinished, sess.State())
	assert.Equal(t, "2/2", sess.Result().ScoreString())
	assert.Equal(t, 1, sink.calls)
}

func TestSessionFinalScoreIncludesLastAnswer(t *testing.T) {
	// The reported score must reflect the increment applied by the very
	// transition that finished the session.
	ctx := context.Background()
	quiz := &Quiz{
		Code:            "LASTONE001",
		TimePerQuestion: 5,
		Questions: []Question{
			{Prompt: "q1", Options: []string{"A", "B"}, Answer: "B"},
			{Prompt: "q2", Options: []string{"A", "B"}, Answer: "A"},
		},
	}
	sink := &fakeSink{}
	sess := loadSession(t, quiz, sink)

	assert.NoError(t, sess.Select("B"))
	sess.Confirm(ctx)
	assert.NoError(t, sess.Select("A"))
	sess.Confirm(ctx)

	assert.Equal(t, "2/2", sink.results[0].ScoreString())
}

func TestSessionSelectValidation(t *testing.T) {
	sess := loadSession(t, threeQuestionQuiz(), &fakeSink{})

	assert.ErrorIs(t, sess.Select("Z"), ErrUnknownOption)
	assert.NoError(t, sess.Select("A"))
	// Re-selection overwrites the tentative choice.
	assert.NoError(t, sess.Select("C"))
	assert.Equal(t, "C", *sess.Selected())
}

func TestSessionDefaultTimeLimit(t *testing.T) {
	quiz := threeQuestionQuiz()
	quiz.TimePerQuestion = 0
	sess := loadSession(t, quiz, &fakeSink{})

	assert.Equal(t, DefaultTimePerQuestion, sess.Remaining())
}

func TestSessionLoadTwice(t *testing.T) {
	sess := loadSession(t, threeQuestionQuiz(), &fakeSink{})
	assert.ErrorIs(t, sess.Load(context.Background(), "TESTCODE01"), ErrAlreadyLoaded)
}
