package session

// AnswerTracker holds the tentative selection for the active question and
// the ordered log of locked-in answers. A nil entry means the question timed
// out with nothing selected.
type AnswerTracker struct {
	total     int
	tentative *string
	entries   []*string
}

func NewAnswerTracker(total int) *AnswerTracker {
	return &AnswerTracker{
		total:   total,
		entries: make([]*string, 0, total),
	}
}

// Select records a tentative choice, overwriting any prior one.
func (t *AnswerTracker) Select(option string) {
	t.tentative = &option
}

// Selected returns the current tentative choice, or nil.
func (t *AnswerTracker) Selected() *string {
	return t.tentative
}

// Confirm locks in the tentative selection (nil when nothing was picked),
// appends it to the log and clears the selection for the next question.
// Entries are write-once: confirming past the question count is a no-op.
func (t *AnswerTracker) Confirm(answer string) (locked *string, correct bool) {
	if len(t.entries) >= t.total {
		return nil, false
	}
	locked = t.tentative
	t.entries = append(t.entries, locked)
	t.tentative = nil
	correct = locked != nil && *locked == answer
	return locked, correct
}

// Entries returns the answer log in question order.
func (t *AnswerTracker) Entries() []*string {
	return t.entries
}

func (t *AnswerTracker) Len() int {
	return len(t.entries)
}
