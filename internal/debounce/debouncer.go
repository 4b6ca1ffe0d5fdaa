package debounce

import (
	"sync"
	"time"
)

// Debouncer groups rapid successive triggers into a single callback that
// runs once no trigger has arrived for the delay.
//
// All methods are safe for concurrent use. The callback never runs
// concurrently with itself from one Debouncer.
type Debouncer struct {
	mu       sync.Mutex
	run      sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	pending  bool
	seq      uint64 // detects stale timer callbacks
	callback func()
}

// NewDebouncer creates a debouncer that calls fn after delay of quiet.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{
		delay:    delay,
		callback: fn,
	}
}

// Trigger schedules the callback, pushing back any pending one.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = true
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if !d.pending || d.seq != seq {
			d.mu.Unlock()
			return
		}
		d.pending = false
		d.mu.Unlock()
		d.fire()
	})
}

// Flush runs a pending callback now and cancels its timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.mu.Unlock()
	d.fire()
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = false
}

// Pending reports whether a callback is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer) fire() {
	if d.callback == nil {
		return
	}
	d.run.Lock()
	defer d.run.Unlock()
	d.callback()
}
