package reveal

import "time"

// Timer is a pending fire-once callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call stopped it.
	Stop() bool
}

// Scheduler defers callbacks. Implementations run f on a goroutine of their choosing
// after roughly d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// ClockScheduler schedules ticks on the runtime timer heap.
type ClockScheduler struct{}

// NewClockScheduler returns the wall-clock scheduler.
func NewClockScheduler() ClockScheduler {
	return ClockScheduler{}
}

// AfterFunc implements Scheduler.
func (ClockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
