package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/patternlab/internal/history"
	"github.com/dshills/patternlab/internal/report"
	"github.com/dshills/patternlab/internal/vfs"
)

func newSession(t *testing.T, opts ...Option) (*Session, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return New(report.NewPrinter(&buf), opts...), &buf
}

func TestSession_Commands(t *testing.T) {
	s, _ := newSession(t)

	steps := []struct {
		name string
		do   func() (string, error)
		want string
	}{
		{"create", func() (string, error) { return s.Create("/a.txt", "x") }, "Create: /a.txt"},
		{"move", func() (string, error) { return s.Move("/a.txt", "/b.txt") }, "Move: /a.txt -> /b.txt"},
		{"delete", func() (string, error) { return s.Delete("/b.txt") }, "Delete: /b.txt"},
		{"undo", func() (string, error) { return s.Undo(), nil }, "Undo Delete: /b.txt restored"},
		{"redo", s.Redo, "Delete: /b.txt"},
	}

	for _, st := range steps {
		got, err := st.do()
		if err != nil {
			t.Fatalf("%s: error = %v", st.name, err)
		}
		if got != st.want {
			t.Errorf("%s = %q, want %q", st.name, got, st.want)
		}
	}

	if s.Store().Len() != 0 {
		t.Errorf("store has %d entries, want 0", s.Store().Len())
	}
	if s.History().UndoCount() != 3 {
		t.Errorf("UndoCount() = %d, want 3", s.History().UndoCount())
	}
}

func TestSession_Errors(t *testing.T) {
	s, _ := newSession(t)
	s.Create("/a", "1")

	if _, err := s.Create("/a", "2"); !errors.Is(err, vfs.ErrAlreadyExists) {
		t.Errorf("Create existing error = %v, want ErrAlreadyExists", err)
	}
	if _, err := s.Move("/missing", "/x"); !errors.Is(err, vfs.ErrNotFound) {
		t.Errorf("Move missing error = %v, want ErrNotFound", err)
	}
	if got, err := s.Redo(); err != nil || got != history.MsgNothingToRedo {
		t.Errorf("Redo() = %q, %v, want %q", got, err, history.MsgNothingToRedo)
	}
}

func TestSession_WriteBypassesHistory(t *testing.T) {
	s, _ := newSession(t)

	if got := s.Write("/x", "external"); got != "Write: /x" {
		t.Errorf("Write() = %q", got)
	}
	if s.History().CanUndo() {
		t.Error("direct writes must not be undoable")
	}
	if got, _ := s.Read("/x"); got != "external" {
		t.Errorf("Read(/x) = %q, want external", got)
	}
}

func TestSession_Group(t *testing.T) {
	s, _ := newSession(t)

	s.BeginGroup("setup")
	s.Create("/a", "1")
	s.Create("/b", "2")
	s.EndGroup()

	if s.History().UndoCount() != 1 {
		t.Fatalf("UndoCount() = %d, want 1", s.History().UndoCount())
	}
	s.Undo()
	if s.Store().Len() != 0 {
		t.Errorf("group undo left %d entries", s.Store().Len())
	}
}

func TestSession_MaxEntries(t *testing.T) {
	s, _ := newSession(t, WithMaxEntries(2))
	s.Create("/a", "")
	s.Create("/b", "")
	s.Create("/c", "")

	if got := s.History().UndoCount(); got != 2 {
		t.Errorf("UndoCount() = %d, want 2", got)
	}
}

func TestSession_Show(t *testing.T) {
	s, buf := newSession(t)
	s.Create("/notes.txt", "Hello world")
	s.Show("After create")

	out := buf.String()
	if !strings.Contains(out, "/notes.txt") || !strings.Contains(out, "11") {
		t.Errorf("Show output = %q", out)
	}
}

func TestSession_ShowHistory(t *testing.T) {
	s, buf := newSession(t, WithMaxEntries(5))

	s.ShowHistory("Empty")
	if !strings.Contains(buf.String(), "undo 0/5, redo 0") || !strings.Contains(buf.String(), "(empty)") {
		t.Errorf("empty history output:\n%s", buf.String())
	}

	for _, f := range []struct{ path, content string }{{"/a.txt", "x"}, {"/b.txt", "yy"}} {
		if _, err := s.Create(f.path, f.content); err != nil {
			t.Fatal(err)
		}
	}
	s.Undo()
	s.BeginGroup("batch")

	buf.Reset()
	s.ShowHistory("After undo")
	for _, want := range []string{
		"undo 1/5, redo 1",
		"group open",
		"next undo: Create /a.txt (1 bytes)",
		"next redo: Create /b.txt (2 bytes)",
		"stack",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
	if !s.Grouping() {
		t.Error("Grouping() = false inside a group")
	}
	s.EndGroup()

	if got := s.ClearHistory(); got != "History cleared" {
		t.Errorf("ClearHistory() = %q", got)
	}
	if got := s.Undo(); got != history.MsgNothingToUndo {
		t.Errorf("Undo() after clear = %q", got)
	}
	if !s.Store().Exists("/a.txt") {
		t.Error("ClearHistory must not touch the store")
	}
}

