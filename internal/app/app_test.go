package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/patternlab/internal/demo"
)

func noSleep(context.Context, time.Duration) error { return nil }

func newTestApp(t *testing.T, input string, opts Options) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	opts.In = strings.NewReader(input)
	opts.Out = &out
	opts.Err = &errOut
	opts.Sleep = noSleep
	a, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return a, &out, &errOut
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewOverrides(t *testing.T) {
	path := writeFile(t, "patternlab.toml", "[logging]\nlevel = \"warn\"\n[menu]\npause = true\n")

	a, _, _ := newTestApp(t, "", Options{ConfigPath: path, Debug: true, NoPause: true})
	if got := a.Config().Logging.Level; got != "debug" {
		t.Errorf("Logging.Level = %q, want debug", got)
	}
	if a.Config().Menu.Pause {
		t.Error("NoPause should disable the menu pause")
	}
}

func TestNewErrors(t *testing.T) {
	bad := writeFile(t, "bad.toml", "[history]\nmax_entries = -4\n")

	tests := []struct {
		name      string
		opts      Options
		component string
	}{
		{"bad level flag", Options{LogLevel: "chatty"}, "logging"},
		{"invalid config", Options{ConfigPath: bad}, "config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Out, tt.opts.Err = &bytes.Buffer{}, &bytes.Buffer{}
			_, err := New(tt.opts)
			if !errors.Is(err, ErrInitialization) {
				t.Fatalf("New() error = %v, want ErrInitialization", err)
			}
			var ie *InitError
			if !errors.As(err, &ie) || ie.Component != tt.component {
				t.Errorf("InitError = %v, want component %s", err, tt.component)
			}
		})
	}
}

func TestRunDemo(t *testing.T) {
	a, out, logs := newTestApp(t, "", Options{})

	if err := a.RunDemo(context.Background(), "factory"); err != nil {
		t.Fatalf("RunDemo failed: %v", err)
	}
	if !strings.Contains(out.String(), "Factory Method - Multichannel notifications") {
		t.Errorf("output missing banner:\n%s", out.String())
	}
	if !strings.Contains(logs.String(), "run_id") {
		t.Errorf("log missing run_id:\n%s", logs.String())
	}

	if err := a.RunDemo(context.Background(), "visitor"); !errors.Is(err, demo.ErrUnknownDemo) {
		t.Errorf("RunDemo(visitor) = %v, want ErrUnknownDemo", err)
	}
}

func TestMenu(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  []string
	}{
		{
			name:  "exit",
			input: "0\n",
			want:  []string{"1) Factory Method", "6) Command", "0) Exit", "Goodbye."},
		},
		{
			name:  "invalid options",
			input: "9\nfactory\n\n0\n",
			want:  []string{"Invalid option."},
		},
		{
			name:  "run then pause",
			input: "2\n\n0\n",
			want:  []string{"Singleton - Multi-series ID generator", "Press ENTER to continue..."},
		},
		{
			name:  "end of input",
			input: "1",
			opts:  Options{NoPause: true},
			want:  []string{"Factory Method - Multichannel notifications"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, out, _ := newTestApp(t, tt.input, tt.opts)
			if err := a.Menu(context.Background()); err != nil {
				t.Fatalf("Menu failed: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestMenuNoPause(t *testing.T) {
	a, out, _ := newTestApp(t, "1\n0\n", Options{NoPause: true})
	if err := a.Menu(context.Background()); err != nil {
		t.Fatalf("Menu failed: %v", err)
	}
	if strings.Contains(out.String(), "Press ENTER") {
		t.Error("pause prompt shown with NoPause")
	}
	if !strings.Contains(out.String(), "Goodbye.") {
		t.Error("second line should have been read as the exit choice")
	}
}

func TestMenuCancelled(t *testing.T) {
	a, _, _ := newTestApp(t, "0\n", Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Menu(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Menu() = %v, want context.Canceled", err)
	}
}

func TestRunScenario(t *testing.T) {
	path := writeFile(t, "s.yaml", `
name: quick
description: create then undo
steps:
  - create: {path: a.txt, content: hi}
  - delete: {path: missing.txt}
  - undo: 1
  - show: after undo
`)
	a, out, _ := newTestApp(t, "", Options{})

	sum, err := a.RunScenario(context.Background(), path)
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if sum.Steps != 4 || sum.Failed != 1 {
		t.Errorf("Summary = %+v, want 4 steps, 1 failed", sum)
	}
	for _, w := range []string{"Scenario - quick", "create then undo", "Create: a.txt", "Undo Create: a.txt"} {
		if !strings.Contains(out.String(), w) {
			t.Errorf("output missing %q:\n%s", w, out.String())
		}
	}
}

func TestRunScript(t *testing.T) {
	path := writeFile(t, "s.lua", `
print(fs.create("a.txt", "hi"))
print(fs.undo())
print(fs.exists("a.txt"))
`)
	a, out, _ := newTestApp(t, "", Options{})

	if err := a.RunScript(context.Background(), path, false); err != nil {
		t.Fatalf("RunScript failed: %v", err)
	}
	for _, w := range []string{"Create: a.txt", "Undo Create: a.txt", "false"} {
		if !strings.Contains(out.String(), w) {
			t.Errorf("output missing %q:\n%s", w, out.String())
		}
	}

	bad := writeFile(t, "bad.lua", `error("boom")`)
	if err := a.RunScript(context.Background(), bad, false); err == nil {
		t.Error("RunScript should fail for a raising script")
	}
}

func TestListDemos(t *testing.T) {
	a, out, _ := newTestApp(t, "", Options{})
	a.ListDemos()
	for _, d := range demo.All() {
		if !strings.Contains(out.String(), d.Key) || !strings.Contains(out.String(), d.Title) {
			t.Errorf("list missing %s:\n%s", d.Key, out.String())
		}
	}
}
