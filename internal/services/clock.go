package services

import "time"

// Clock abstracts time for the scheduler so tests can drive timers with a
// virtual clock.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// SystemClock is the real time implementation
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time { return time.Now() }

// After waits for the duration to elapse
func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
