package session

import "time"

// Clock schedules the session's timers.
type Clock interface {
	Now() time.Time
	// AfterFunc runs f on its own goroutine after d. Timers are never cancelled.
	AfterFunc(d time.Duration, f func())
	// NewTicker returns a channel that fires every d and a function that stops it.
	NewTicker(d time.Duration) (<-chan time.Time, func())
}

type systemClock struct{}

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

func (systemClock) NewTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}
