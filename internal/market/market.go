// Package market broadcasts demand changes to subscribed services.
//
// A Market owns a list of observers and a debounce gate. Demand changes that
// arrive inside the gate interval are dropped before any observer sees them.
// A failing or panicking observer is reported and skipped; the remaining
// observers are still notified.
package market

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dshills/patternlab/internal/debounce"
	"github.com/dshills/patternlab/internal/logging"
)

// Level is a demand level.
type Level string

// Demand levels.
const (
	High   Level = "high"
	Medium Level = "medium"
	Low    Level = "low"
)

// ParseLevel maps a name to a Level. Unknown names map to Low.
func ParseLevel(s string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case High:
		return High
	case Medium:
		return Medium
	default:
		return Low
	}
}

// Observer reacts to accepted demand changes.
//
// Observers are compared with == for Attach/Detach, so implementations
// should be pointer types.
type Observer interface {
	Name() string
	Update(level Level) error
}

// ObserverError records a failure of one observer.
type ObserverError struct {
	Observer string
	Err      error
}

func (e *ObserverError) Error() string {
	return fmt.Sprintf("observer %s: %v", e.Observer, e.Err)
}

func (e *ObserverError) Unwrap() error {
	return e.Err
}

// Notification is the outcome of one SetDemand call.
type Notification struct {
	Level    Level
	Accepted bool
	Notified int
	Failures []*ObserverError
}

// Market is the subject of the observer relationship.
type Market struct {
	mu        sync.Mutex
	observers []Observer
	gate      *debounce.Gate
	out       io.Writer
	logger    *logging.Logger
}

// Option configures a Market.
type Option func(*Market)

// WithDebounce drops changes arriving less than d after the last accepted one.
func WithDebounce(d time.Duration) Option {
	return func(m *Market) { m.gate = debounce.NewGate(d) }
}

// WithGate installs a prepared gate, for tests with a fake clock.
func WithGate(g *debounce.Gate) Option {
	return func(m *Market) { m.gate = g }
}

// WithLogger sets the logger for observer failures.
func WithLogger(l *logging.Logger) Option {
	return func(m *Market) { m.logger = l }
}

// New creates a market that prints demand lines to out.
func New(out io.Writer, opts ...Option) *Market {
	m := &Market{
		gate:   debounce.NewGate(0),
		out:    out,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attach subscribes o. It returns false if o is already subscribed.
func (m *Market) Attach(o Observer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.observers {
		if existing == o {
			return false
		}
	}
	m.observers = append(m.observers, o)
	return true
}

// Detach unsubscribes o. It returns false if o was not subscribed.
func (m *Market) Detach(o Observer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.observers {
		if existing == o {
			m.observers = append(m.observers[:i], m.observers[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of subscribed observers.
func (m *Market) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.observers)
}

// SetDemand publishes a demand change to every observer unless the gate
// rejects it.
func (m *Market) SetDemand(level Level) Notification {
	n := Notification{Level: level}

	if !m.gate.Allow() {
		fmt.Fprintf(m.out, "Demand: %s - change ignored (interval too short)\n", level)
		m.logger.Debug("demand change ignored", "level", string(level))
		return n
	}
	n.Accepted = true
	fmt.Fprintf(m.out, "Demand: %s\n", level)

	m.mu.Lock()
	observers := make([]Observer, len(m.observers))
	copy(observers, m.observers)
	m.mu.Unlock()

	for _, o := range observers {
		if err := safeUpdate(o, level); err != nil {
			oerr := &ObserverError{Observer: o.Name(), Err: err}
			n.Failures = append(n.Failures, oerr)
			fmt.Fprintf(m.out, "Observer error: %s - %v\n", o.Name(), err)
			m.logger.Warn("observer failed", "observer", o.Name(), "error", err)
			continue
		}
		n.Notified++
	}
	return n
}

func safeUpdate(o Observer, level Level) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return o.Update(level)
}
