package vlist

import "time"

// Clock is the timer facility behind scroll-end detection. AfterFunc arms a
// one-shot timer and returns a cancel function; cancelling after the timer
// has fired is a no-op. The Store keeps at most one timer armed at a time.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// SystemClock is the default Clock, backed by time.AfterFunc. Callbacks run
// on a runtime timer goroutine; the Store serializes them against reported
// actions internally.
type SystemClock struct{}

// AfterFunc implements Clock.
func (SystemClock) AfterFunc(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
