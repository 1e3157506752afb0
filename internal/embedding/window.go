package embedding

import "time"

// rateWindow caps real backend calls per wall-clock hour. The counter
// resets when the hour boundary passes; this is a simple rolling counter,
// not a sliding window.
type rateWindow struct {
	cap     int
	count   int
	resetAt time.Time
	now     func() time.Time // injectable clock
}

func newRateWindow(cap int, now func() time.Time) *rateWindow {
	if now == nil {
		now = time.Now
	}
	w := &rateWindow{cap: cap, now: now}
	w.resetAt = nextHourBoundary(now())
	return w
}

// allow reports whether another backend call fits in the current window.
// It does not consume a slot; record does.
func (w *rateWindow) allow() bool {
	w.roll()
	return w.count < w.cap
}

// record consumes one call slot in the current window.
func (w *rateWindow) record() {
	w.roll()
	w.count++
}

// remaining returns the unused call slots in the current window.
func (w *rateWindow) remaining() int {
	w.roll()
	if w.count >= w.cap {
		return 0
	}
	return w.cap - w.count
}

// roll resets the counter once the hour boundary has passed.
func (w *rateWindow) roll() {
	now := w.now()
	if !now.Before(w.resetAt) {
		w.count = 0
		w.resetAt = nextHourBoundary(now)
	}
}

func nextHourBoundary(t time.Time) time.Time {
	return t.Truncate(time.Hour).Add(time.Hour)
}
