// Package app wires configuration, logging and output into the demo runner,
// the interactive menu, scenario replay and Lua scripting.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/patternlab/internal/config"
	"github.com/dshills/patternlab/internal/demo"
	"github.com/dshills/patternlab/internal/logging"
	"github.com/dshills/patternlab/internal/report"
	"github.com/dshills/patternlab/internal/scenario"
	"github.com/dshills/patternlab/internal/script"
	"github.com/dshills/patternlab/internal/session"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the TOML configuration file. Optional.
	ConfigPath string

	// LogLevel overrides logging.level when set.
	LogLevel string

	// Debug forces the debug log level.
	Debug bool

	// NoPause disables the ENTER prompt between menu demos.
	NoPause bool

	// In, Out and Err default to the process streams.
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Sleep replaces real waits in demos, for tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

// App is the patternlab application.
type App struct {
	cfg     *config.Config
	logger  *logging.Logger
	printer *report.Printer
	in      *bufio.Reader
	sleep   func(ctx context.Context, d time.Duration) error
}

// New loads configuration and builds the application.
func New(opts Options) (*App, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	if opts.LogLevel != "" && !logging.ValidLevel(opts.LogLevel) {
		return nil, &InitError{Component: "logging", Err: fmt.Errorf("unknown level %q", opts.LogLevel)}
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Debug {
		cfg.Logging.Level = "debug"
	}
	if opts.NoPause {
		cfg.Menu.Pause = false
	}

	lc := cfg.Logging.LoggerConfig()
	lc.Output = opts.Err

	a := &App{
		cfg:     cfg,
		logger:  logging.New(lc),
		printer: report.NewPrinter(opts.Out),
		in:      bufio.NewReader(opts.In),
		sleep:   opts.Sleep,
	}
	a.logger.Debug("configuration loaded",
		"path", opts.ConfigPath,
		"level", cfg.Logging.Level,
		"max_entries", cfg.History.MaxEntries,
	)
	return a, nil
}

// Config returns the effective configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *App) Logger() *logging.Logger { return a.logger }

// Demos returns the registered demos.
func (a *App) Demos() []demo.Demo { return demo.All() }

// ListDemos prints the demo table.
func (a *App) ListDemos() {
	var rows [][]string
	for _, d := range demo.All() {
		rows = append(rows, []string{strconv.Itoa(d.Number), d.Key, d.Pattern, d.Title})
	}
	a.printer.Table([]string{"#", "key", "pattern", "title"}, rows)
}

// RunDemo runs one demo by number or key.
func (a *App) RunDemo(ctx context.Context, name string) error {
	d, err := demo.Lookup(name)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := a.logger.WithFields(map[string]any{"run_id": runID, "demo": d.Key})
	logger.Info("demo started")

	a.printer.Banner(d.Heading())
	start := time.Now()
	err = d.Run(ctx, demo.Env{
		Printer: a.printer,
		Config:  a.cfg,
		Logger:  logger,
		Sleep:   a.sleep,
	})
	if err != nil {
		logger.Error("demo failed", "error", err, "elapsed", time.Since(start))
		return fmt.Errorf("demo %s: %w", d.Key, err)
	}
	logger.Info("demo finished", "elapsed", time.Since(start))
	return nil
}

// RunScenario replays a YAML scenario file against a fresh session.
func (a *App) RunScenario(ctx context.Context, path string) (scenario.Summary, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return scenario.Summary{}, err
	}

	logger := a.logger.WithFields(map[string]any{"run_id": uuid.NewString(), "scenario": sc.Name})
	a.printer.Banner("Scenario - " + sc.Name)
	if sc.Description != "" {
		a.printer.Note("%s", sc.Description)
	}

	sum, err := scenario.NewRunner(a.newSession(logger), logger).Run(ctx, sc)
	if err != nil {
		return sum, err
	}
	logger.Info("scenario finished", "steps", sum.Steps, "failed", sum.Failed)
	return sum, nil
}

// RunScript runs a Lua file against a fresh session. With watch set it
// re-runs the file on every save until ctx is done.
func (a *App) RunScript(ctx context.Context, path string, watch bool) error {
	if !watch {
		return a.runScriptOnce(ctx, path)
	}

	if err := a.runScriptOnce(ctx, path); err != nil {
		a.printer.Error(err)
	}
	a.printer.Note("watching %s (Ctrl+C to stop)", path)

	w := script.Watcher{Logger: a.logger.WithComponent("watch")}
	return w.Watch(ctx, path, func() {
		if err := a.runScriptOnce(ctx, path); err != nil {
			a.printer.Error(err)
		}
	})
}

func (a *App) runScriptOnce(ctx context.Context, path string) error {
	logger := a.logger.WithFields(map[string]any{"run_id": uuid.NewString(), "script": path})
	a.printer.Banner("Script - " + path)

	e := script.New(a.newSession(logger))
	defer e.Close()

	start := time.Now()
	if err := e.RunFile(ctx, path); err != nil {
		logger.Warn("script failed", "error", err)
		return err
	}
	logger.Info("script finished", "elapsed", time.Since(start))
	return nil
}

func (a *App) newSession(logger *logging.Logger) *session.Session {
	return session.New(a.printer,
		session.WithMaxEntries(a.cfg.History.MaxEntries),
		session.WithLogger(logger),
	)
}

// Menu shows the numbered menu until the user picks 0, input ends or ctx
// is done.
func (a *App) Menu(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.printMenu()

		choice, err := a.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if choice == "0" {
			a.printer.Line("Goodbye.")
			return nil
		}
		if !validChoice(choice) {
			a.printer.Line("Invalid option.")
			continue
		}

		if err := a.RunDemo(ctx, choice); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			a.printer.Error(err)
		}

		if a.cfg.Menu.Pause {
			a.printer.Note("Press ENTER to continue...")
			if _, err := a.readLine(); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}
	}
}

// validChoice accepts menu numbers only; keys are for the run command.
func validChoice(s string) bool {
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	for _, d := range demo.All() {
		if d.Number == n {
			return true
		}
	}
	return false
}

func (a *App) printMenu() {
	a.printer.Banner("Design patterns")
	for _, d := range demo.All() {
		a.printer.Line("%d) %s", d.Number, d.Heading())
	}
	a.printer.Line("0) Exit")
	a.printer.Line("Choose an option:")
}

// readLine returns the next trimmed line. A final line without a newline
// is returned before io.EOF.
func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
