package script

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/patternlab/internal/debounce"
	"github.com/dshills/patternlab/internal/logging"
)

// DefaultWatchDelay is the quiet period before a changed file is re-run.
const DefaultWatchDelay = 200 * time.Millisecond

// Watcher calls a function whenever a file is saved.
type Watcher struct {
	// Delay collapses bursts of events (editors often write several times).
	Delay  time.Duration
	Logger *logging.Logger
}

// Watch blocks until ctx is done, calling fn after each change to path.
//
// The parent directory is watched rather than the file so that editors
// that save by rename are still seen.
func (w Watcher) Watch(ctx context.Context, path string, fn func()) error {
	delay := w.Delay
	if delay <= 0 {
		delay = DefaultWatchDelay
	}
	logger := w.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	d := debounce.NewDebouncer(delay, fn)
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				logger.Debug("script changed", "path", path, "op", ev.Op.String())
				d.Trigger()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				logger.Warn("watch event overflow", "path", path)
				d.Trigger()
				continue
			}
			return fmt.Errorf("watching %s: %w", path, err)
		}
	}
}
