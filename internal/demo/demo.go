// Package demo registers the six pattern demos.
//
// Each demo is a closed, non-interactive scenario that prints its report
// through the Env printer. Demos are looked up by menu number or key.
package demo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/patternlab/internal/config"
	"github.com/dshills/patternlab/internal/logging"
	"github.com/dshills/patternlab/internal/report"
)

// ErrUnknownDemo is returned by Lookup.
var ErrUnknownDemo = errors.New("unknown demo")

// Env is what a demo needs from the application.
type Env struct {
	Printer *report.Printer
	Config  *config.Config
	Logger  *logging.Logger
	// Sleep waits for d or until ctx is done. Nil means a real timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (e Env) sleep(ctx context.Context, d time.Duration) error {
	if e.Sleep != nil {
		return e.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (e Env) config() *config.Config {
	if e.Config != nil {
		return e.Config
	}
	return config.Default()
}

func (e Env) logger() *logging.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return logging.Nop()
}

// Demo is one runnable pattern scenario.
type Demo struct {
	Number  int
	Key     string
	Pattern string
	Title   string
	Run     func(ctx context.Context, env Env) error
}

// All returns the demos in menu order.
func All() []Demo {
	return []Demo{
		{1, "factory", "Factory Method", "Multichannel notifications", runFactory},
		{2, "singleton", "Singleton", "Multi-series ID generator", runSingleton},
		{3, "adapter", "Adapter", "Payment gateway", runAdapter},
		{4, "facade", "Facade", "System health check", runFacade},
		{5, "observer", "Observer", "Dynamic transport pricing", runObserver},
		{6, "command", "Command", "Undo/redo over a simulated filesystem", runCommand},
	}
}

// Lookup finds a demo by menu number or key (case-insensitive).
func Lookup(name string) (Demo, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	n, numErr := strconv.Atoi(name)
	for _, d := range All() {
		if d.Key == name || (numErr == nil && d.Number == n) {
			return d, nil
		}
	}
	return Demo{}, fmt.Errorf("%w: %q", ErrUnknownDemo, name)
}

// Heading returns "<Pattern> - <Title>".
func (d Demo) Heading() string {
	return d.Pattern + " - " + d.Title
}
