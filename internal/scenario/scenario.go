// Package scenario loads YAML command scenarios and replays them against a
// session.
//
// A scenario is a named list of steps. Each step holds exactly one action:
//
//	steps:
//	  - create: {path: /a.txt, content: x}
//	  - move: {from: /a.txt, to: /b.txt}
//	  - undo: 1
//	  - show: After undo
//	  - history: Command log
package scenario

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Errors returned while loading scenarios.
var (
	ErrInvalidStep   = errors.New("invalid step")
	ErrEmptyScenario = errors.New("scenario has no steps")
	ErrUnknownName   = errors.New("unknown built-in scenario")
)

//go:embed scenarios/*.yaml
var builtin embed.FS

// Scenario is a replayable list of steps.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// FileArgs names a path and optional content.
type FileArgs struct {
	Path    string `yaml:"path"`
	Content string `yaml:"content"`
}

// MoveArgs names a source and destination.
type MoveArgs struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Step is one action. Exactly one field must be set.
type Step struct {
	Create     *FileArgs `yaml:"create,omitempty"`
	Delete     *FileArgs `yaml:"delete,omitempty"`
	Move       *MoveArgs `yaml:"move,omitempty"`
	Write      *FileArgs `yaml:"write,omitempty"`
	Undo       int       `yaml:"undo,omitempty"`
	Redo       int       `yaml:"redo,omitempty"`
	Show       string    `yaml:"show,omitempty"`
	BeginGroup string    `yaml:"begin_group,omitempty"`
	EndGroup   bool      `yaml:"end_group,omitempty"`
	History    string    `yaml:"history,omitempty"`
	Clear      bool      `yaml:"clear_history,omitempty"`
}

// Kind returns the name of the action the step holds, or "" if it holds
// none or several.
func (s Step) Kind() string {
	var kinds []string
	if s.Create != nil {
		kinds = append(kinds, "create")
	}
	if s.Delete != nil {
		kinds = append(kinds, "delete")
	}
	if s.Move != nil {
		kinds = append(kinds, "move")
	}
	if s.Write != nil {
		kinds = append(kinds, "write")
	}
	if s.Undo != 0 {
		kinds = append(kinds, "undo")
	}
	if s.Redo != 0 {
		kinds = append(kinds, "redo")
	}
	if s.Show != "" {
		kinds = append(kinds, "show")
	}
	if s.BeginGroup != "" {
		kinds = append(kinds, "begin_group")
	}
	if s.EndGroup {
		kinds = append(kinds, "end_group")
	}
	if s.History != "" {
		kinds = append(kinds, "history")
	}
	if s.Clear {
		kinds = append(kinds, "clear_history")
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// Validate checks every step.
func (sc *Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return ErrEmptyScenario
	}
	for i, st := range sc.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (s Step) validate() error {
	switch s.Kind() {
	case "":
		return fmt.Errorf("%w: exactly one action required", ErrInvalidStep)
	case "create", "write":
		args := s.Create
		if args == nil {
			args = s.Write
		}
		if args.Path == "" {
			return fmt.Errorf("%w: %s needs a path", ErrInvalidStep, s.Kind())
		}
	case "delete":
		if s.Delete.Path == "" {
			return fmt.Errorf("%w: delete needs a path", ErrInvalidStep)
		}
	case "move":
		if s.Move.From == "" || s.Move.To == "" {
			return fmt.Errorf("%w: move needs from and to", ErrInvalidStep)
		}
	case "undo", "redo":
		if s.Undo < 0 || s.Redo < 0 {
			return fmt.Errorf("%w: %s count must be positive", ErrInvalidStep, s.Kind())
		}
	}
	return nil
}

// Parse decodes and validates a scenario. Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyScenario
		}
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads a scenario file from disk.
func Load(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	}
	return sc, nil
}

// Builtin returns an embedded scenario by name.
func Builtin(name string) (*Scenario, error) {
	data, err := builtin.ReadFile("scenarios/" + name + ".yaml")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownName, name)
		}
		return nil, err
	}
	return Parse(data)
}

// BuiltinNames lists the embedded scenarios.
func BuiltinNames() []string {
	entries, _ := builtin.ReadDir("scenarios")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
