package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerSelectOverwrites(t *testing.T) {
	tracker := NewAnswerTracker(1)
	tracker.Select("A")
	tracker.Select("B")

	assert.Equal(t, "B", *tracker.Selected())

	locked, correct := tracker.Confirm("B")
	assert.Equal(t, "B", *locked)
	assert.True(t, correct)
}

func TestTrackerConfirmWithoutSelection(t *testing.T) {
	tracker := NewAnswerTracker(2)

	locked, correct := tracker.Confirm("C")
	assert.Nil(t, locked)
	assert.False(t, correct)
	assert.Equal(t, 1, tracker.Len())
	assert.Nil(t, tracker.Entries()[0])
}

func TestTrackerClearsSelectionBetweenQuestions(t *testing.T) {
	tracker := NewAnswerTracker(2)
	tracker.Select("A")
	tracker.Confirm("A")

	assert.Nil(t, tracker.Selected())
}

func TestTrackerEntriesWriteOnce(t *testing.T) {
	tracker := NewAnswerTracker(1)
	tracker.Select("A")
	tracker.Confirm("A")

	// A second confirm for a full log must not append or overwrite.
	tracker.Select("B")
	_, correct := tracker.Confirm("B")

	assert.False(t, correct)
	assert.Equal(t, 1, tracker.Len())
	assert.Equal(t, "A", *tracker.Entries()[0])
}

func TestTrackerLogOrder(t *testing.T) {
	tracker := NewAnswerTracker(3)
	tracker.Select("B")
	tracker.Confirm("B")
	tracker.Confirm("C") // timeout, nothing selected
	tracker.Select("A")
	tracker.Confirm("A")

	entries := tracker.Entries()
	assert.Len(t, entries, 3)
	assert.Equal(t, "B", *entries[0])
	assert.Nil(t, entries[1])
	assert.Equal(t, "A", *entries[2])
}
