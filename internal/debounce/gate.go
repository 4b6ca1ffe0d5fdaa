// Package debounce rate-limits bursts of events.
//
// Gate is a leading-edge filter: the first event passes and later events are
// rejected until the interval has elapsed since the last accepted one.
// Debouncer is trailing-edge: a burst collapses into one callback after a
// quiet period.
package debounce

import (
	"sync"
	"time"
)

// Clock returns the current time.
type Clock func() time.Time

// Gate accepts at most one event per interval.
//
// Allow is a compare-and-update under a mutex, so concurrent callers cannot
// both pass within one interval.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      Clock
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithClock replaces time.Now, for tests.
func WithClock(c Clock) GateOption {
	return func(g *Gate) { g.now = c }
}

// NewGate creates a gate with the given interval. A non-positive interval
// accepts every event.
func NewGate(interval time.Duration, opts ...GateOption) *Gate {
	g := &Gate{interval: interval, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Allow reports whether an event arriving now is accepted. Accepted events
// restart the interval; rejected ones do not.
func (g *Gate) Allow() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if g.interval > 0 && !g.last.IsZero() && now.Sub(g.last) < g.interval {
		return false
	}
	g.last = now
	return true
}

// Interval returns the configured interval.
func (g *Gate) Interval() time.Duration {
	return g.interval
}

// Reset forgets the last accepted event.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = time.Time{}
}
