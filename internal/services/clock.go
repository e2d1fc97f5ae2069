package services

import "time"

// Clock abstracts wall-clock time so day-boundary logic (quest dates,
// streaks, timing quests) is deterministic in tests.
type Clock interface {
	// Now returns the current local time
	Now() time.Time
}

// systemClock implements Clock with the real wall clock
type systemClock struct{}

// NewSystemClock creates a Clock backed by time.Now
func NewSystemClock() *systemClock {
	return &systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// dayOf formats a time as its calendar day, "2006-01-02"
func dayOf(t time.Time) string {
	return t.Format("2006-01-02")
}
