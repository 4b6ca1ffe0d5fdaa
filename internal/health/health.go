// Package health runs a fixed set of system probes behind one call.
//
// Facade hides three unrelated subsystems (filesystem, network, SQLite)
// behind Run, which returns a Report with one Result per probe and an
// overall verdict.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/dshills/patternlab/internal/logging"
)

// Overall verdicts.
const (
	StatusHealthy  = "HEALTHY"
	StatusProblems = "PROBLEMS"
)

// Check is a single probe.
type Check interface {
	Name() string
	// Run performs the probe and returns a short detail message.
	Run(ctx context.Context) (string, error)
}

// Result is the outcome of one probe.
type Result struct {
	Name     string
	OK       bool
	Message  string
	Duration time.Duration
}

// State returns "OK" or "ERROR".
func (r Result) State() string {
	if r.OK {
		return "OK"
	}
	return "ERROR"
}

// Report aggregates probe results in registration order.
type Report struct {
	Results []Result
}

// Healthy reports whether every probe passed.
func (r Report) Healthy() bool {
	for _, res := range r.Results {
		if !res.OK {
			return false
		}
	}
	return true
}

// Overall returns StatusHealthy or StatusProblems.
func (r Report) Overall() string {
	if r.Healthy() {
		return StatusHealthy
	}
	return StatusProblems
}

// Facade runs all registered checks.
type Facade struct {
	checks  []Check
	timeout time.Duration
	logger  *logging.Logger
}

// Option configures a Facade.
type Option func(*Facade)

// WithTimeout bounds each check. Zero means no per-check deadline.
func WithTimeout(d time.Duration) Option {
	return func(f *Facade) { f.timeout = d }
}

// WithLogger sets the logger used to record failed checks.
func WithLogger(l *logging.Logger) Option {
	return func(f *Facade) { f.logger = l }
}

// WithChecks replaces the check list.
func WithChecks(checks ...Check) Option {
	return func(f *Facade) { f.checks = checks }
}

// NewFacade creates a facade. Without WithChecks it has no checks.
func NewFacade(opts ...Option) *Facade {
	f := &Facade{logger: logging.Nop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run executes every check concurrently and waits for all of them.
func (f *Facade) Run(ctx context.Context) Report {
	results := make([]Result, len(f.checks))

	var wg sync.WaitGroup
	for i, c := range f.checks {
		wg.Add(1)
		go func(i int, c Check) {
			defer wg.Done()
			results[i] = f.runOne(ctx, c)
		}(i, c)
	}
	wg.Wait()

	return Report{Results: results}
}

func (f *Facade) runOne(ctx context.Context, c Check) Result {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	start := time.Now()
	msg, err := c.Run(ctx)
	res := Result{Name: c.Name(), OK: err == nil, Message: msg, Duration: time.Since(start)}
	if err != nil {
		res.Message = err.Error()
		f.logger.Warn("health check failed", "check", c.Name(), "error", err)
	}
	return res
}
