// Package clock abstracts the timer facility used by sleepflow schedulers so
// tests can drive time by hand.
package clock

import "time"

// Clock provides the current time and one-shot timers.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

// Timer is a one-shot timer. C delivers a single value when the timer fires.
type Timer interface {
	C() <-chan time.Time

	// Stop prevents the timer from firing. It returns false if the timer
	// already fired or was stopped.
	Stop() bool
}

// System implements Clock using the runtime timers.
type System struct{}

// Now returns the current system time.
func (System) Now() time.Time {
	return time.Now()
}

// NewTimer starts a runtime timer that fires after d.
func (System) NewTimer(d time.Duration) Timer {
	return systemTimer{time.NewTimer(d)}
}

type systemTimer struct {
	t *time.Timer
}

func (st systemTimer) C() <-chan time.Time { return st.t.C }

func (st systemTimer) Stop() bool { return st.t.Stop() }
