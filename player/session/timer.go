package session

// CountdownTimer is a per-question countdown driven by external 1-second
// ticks. It never spawns goroutines; the owner calls Tick from its event
// loop, which keeps timer expiry serialized with user input.
type CountdownTimer struct {
	remaining int
	active    bool
	onExpire  func()
}

func NewCountdownTimer() *CountdownTimer {
	return &CountdownTimer{}
}

// Start begins a new countdown, cancelling any previous one. onExpire may be
// nil; when set it fires exactly once, at the tick that reaches zero.
func (t *CountdownTimer) Start(seconds int, onExpire func()) {
	t.Cancel()
	if seconds < 0 {
		seconds = 0
	}
	t.remaining = seconds
	t.onExpire = onExpire
	t.active = true
}

// Tick decrements the remaining time. It reports whether the countdown
// expired on this tick. Ticking an inactive timer is a no-op.
func (t *CountdownTimer) Tick() bool {
	if !t.active {
		return false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining > 0 {
		return false
	}
	t.active = false
	if t.onExpire != nil {
		t.onExpire()
	}
	return true
}

// Reset cancels the pending countdown and restarts it at the given duration,
// keeping the expiry callback.
func (t *CountdownTimer) Reset(seconds int) {
	if !t.active {
		return
	}
	if seconds < 0 {
		seconds = 0
	}
	t.remaining = seconds
}

// Cancel stops the countdown without firing expiry.
func (t *CountdownTimer) Cancel() {
	t.active = false
	t.onExpire = nil
}

func (t *CountdownTimer) Active() bool {
	return t.active
}

// Remaining returns the seconds left, for display. Always >= 0.
func (t *CountdownTimer) Remaining() int {
	return t.remaining
}
