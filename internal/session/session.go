// Package session binds a store, a command history and a printer into the
// unit that scenarios, scripts and the command demo drive.
package session

import (
	"time"

	"github.com/dshills/patternlab/internal/history"
	"github.com/dshills/patternlab/internal/logging"
	"github.com/dshills/patternlab/internal/report"
	"github.com/dshills/patternlab/internal/vfs"
)

// Session is a fresh store with its own undo/redo history.
type Session struct {
	store   *vfs.Store
	history *history.History
	printer *report.Printer
	logger  *logging.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithMaxEntries bounds the undo stack.
func WithMaxEntries(n int) Option {
	return func(s *Session) { s.history.SetMaxEntries(n) }
}

// WithLogger sets the logger that records every operation at debug level.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates a session that prints tables through p.
func New(p *report.Printer, opts ...Option) *Session {
	s := &Session{
		store:   vfs.NewStore(),
		history: history.NewHistory(history.DefaultMaxEntries),
		printer: p,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the session's store.
func (s *Session) Store() *vfs.Store { return s.store }

// History returns the session's history.
func (s *Session) History() *history.History { return s.history }

// Printer returns the session's printer.
func (s *Session) Printer() *report.Printer { return s.printer }

// Create runs a create command.
func (s *Session) Create(path, content string) (string, error) {
	return s.run(history.NewCreate(s.store, path, content))
}

// Delete runs a delete command.
func (s *Session) Delete(path string) (string, error) {
	return s.run(history.NewDelete(s.store, path))
}

// Move runs a move command.
func (s *Session) Move(src, dst string) (string, error) {
	return s.run(history.NewMove(s.store, src, dst))
}

// Write modifies the store directly, outside the history. It is how a
// conflicting external change is simulated.
func (s *Session) Write(path, content string) string {
	s.store.Write(path, content)
	s.logger.Debug("direct write", "path", path)
	return "Write: " + path
}

// Read returns the content at path.
func (s *Session) Read(path string) (string, error) {
	return s.store.Read(path)
}

// Undo undoes the most recent command.
func (s *Session) Undo() string {
	out := s.history.Undo()
	s.logger.Debug("undo", "result", out, "undo_depth", s.history.UndoCount())
	return out
}

// Redo re-applies the most recently undone command.
func (s *Session) Redo() (string, error) {
	out, err := s.history.Redo()
	if err != nil {
		s.logger.Debug("redo failed", "error", err)
		return "", err
	}
	s.logger.Debug("redo", "result", out, "redo_depth", s.history.RedoCount())
	return out, nil
}

// BeginGroup starts collecting commands into one undo unit.
func (s *Session) BeginGroup(name string) {
	s.history.BeginGroup(name)
}

// EndGroup closes the current group.
func (s *Session) EndGroup() {
	s.history.EndGroup()
}

// Grouping reports whether a group is open.
func (s *Session) Grouping() bool {
	return s.history.IsGrouping()
}

// ClearHistory forgets every undo and redo entry. The store is unchanged.
func (s *Session) ClearHistory() string {
	s.history.Clear()
	s.logger.Debug("history cleared")
	return "History cleared"
}

// ShowHistory prints both stacks, oldest first, and what undo and redo
// would act on next.
func (s *Session) ShowHistory(title string) {
	h := s.history
	undo, redo := h.UndoInfo(), h.RedoInfo()

	s.printer.Section(title)
	s.printer.Note("undo %d/%d, redo %d", len(undo), h.MaxEntries(), len(redo))
	if h.IsGrouping() {
		s.printer.Note("group open")
	}
	if op, ok := h.PeekUndo(); ok {
		s.printer.Line("next undo: %s", op.Description)
	}
	if op, ok := h.PeekRedo(); ok {
		s.printer.Line("next redo: %s", op.Description)
	}
	if len(undo)+len(redo) == 0 {
		s.printer.Note("(empty)")
		return
	}

	rows := make([][]string, 0, len(undo)+len(redo))
	for _, op := range undo {
		rows = append(rows, []string{"undo", op.Description, op.Timestamp.Format(time.TimeOnly)})
	}
	for _, op := range redo {
		rows = append(rows, []string{"redo", op.Description, op.Timestamp.Format(time.TimeOnly)})
	}
	s.printer.Table([]string{"stack", "command", "at"}, rows)
}

// Show prints the store as a table.
func (s *Session) Show(title string) {
	s.printer.StoreTable(title, s.store.List())
}

func (s *Session) run(cmd history.Command) (string, error) {
	out, err := s.history.Run(cmd)
	if err != nil {
		s.logger.Debug("command failed", "command", cmd.Description(), "error", err)
		return "", err
	}
	s.logger.Debug("command executed", "command", cmd.Description())
	return out, nil
}
