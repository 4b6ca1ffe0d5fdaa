package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/patternlab/internal/history"
	"github.com/dshills/patternlab/internal/session"
)

// fsModule implements the Lua fs table.
type fsModule struct {
	s *session.Session
}

func newFSModule(s *session.Session) *fsModule {
	return &fsModule{s: s}
}

func (m *fsModule) table(L *lua.LState) *lua.LTable {
	mod := L.NewTable()

	L.SetField(mod, "create", L.NewFunction(m.create))
	L.SetField(mod, "delete", L.NewFunction(m.delete))
	L.SetField(mod, "move", L.NewFunction(m.move))
	L.SetField(mod, "write", L.NewFunction(m.write))
	L.SetField(mod, "read", L.NewFunction(m.read))
	L.SetField(mod, "exists", L.NewFunction(m.exists))
	L.SetField(mod, "undo", L.NewFunction(m.undo))
	L.SetField(mod, "redo", L.NewFunction(m.redo))
	L.SetField(mod, "list", L.NewFunction(m.list))
	L.SetField(mod, "show", L.NewFunction(m.show))
	L.SetField(mod, "begin_group", L.NewFunction(m.beginGroup))
	L.SetField(mod, "end_group", L.NewFunction(m.endGroup))
	L.SetField(mod, "history", L.NewFunction(m.history))
	L.SetField(mod, "clear_history", L.NewFunction(m.clearHistory))

	return mod
}

// pushResult pushes out or raises err.
func pushResult(L *lua.LState, out string, err error) int {
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LString(out))
	return 1
}

// create(path, content?) -> string
func (m *fsModule) create(L *lua.LState) int {
	out, err := m.s.Create(L.CheckString(1), L.OptString(2, ""))
	return pushResult(L, out, err)
}

// delete(path) -> string
func (m *fsModule) delete(L *lua.LState) int {
	out, err := m.s.Delete(L.CheckString(1))
	return pushResult(L, out, err)
}

// move(src, dst) -> string
func (m *fsModule) move(L *lua.LState) int {
	out, err := m.s.Move(L.CheckString(1), L.CheckString(2))
	return pushResult(L, out, err)
}

// write(path, content) -> string
// Writes directly, outside the history.
func (m *fsModule) write(L *lua.LState) int {
	L.Push(lua.LString(m.s.Write(L.CheckString(1), L.CheckString(2))))
	return 1
}

// read(path) -> string
func (m *fsModule) read(L *lua.LState) int {
	out, err := m.s.Read(L.CheckString(1))
	return pushResult(L, out, err)
}

// exists(path) -> bool
func (m *fsModule) exists(L *lua.LState) int {
	L.Push(lua.LBool(m.s.Store().Exists(L.CheckString(1))))
	return 1
}

// undo() -> string
func (m *fsModule) undo(L *lua.LState) int {
	L.Push(lua.LString(m.s.Undo()))
	return 1
}

// redo() -> string
func (m *fsModule) redo(L *lua.LState) int {
	out, err := m.s.Redo()
	return pushResult(L, out, err)
}

// list() -> {{path=, size=}, ...}
func (m *fsModule) list(L *lua.LState) int {
	entries := m.s.Store().List()
	tbl := L.CreateTable(len(entries), 0)
	for _, e := range entries {
		row := L.CreateTable(0, 2)
		row.RawSetString("path", lua.LString(e.Path))
		row.RawSetString("size", lua.LNumber(e.Size))
		tbl.Append(row)
	}
	L.Push(tbl)
	return 1
}

// show(title?)
func (m *fsModule) show(L *lua.LState) int {
	m.s.Show(L.OptString(1, "Store"))
	return 0
}

// begin_group(name?)
func (m *fsModule) beginGroup(L *lua.LState) int {
	m.s.BeginGroup(L.OptString(1, "script"))
	return 0
}

// end_group()
func (m *fsModule) endGroup(L *lua.LState) int {
	m.s.EndGroup()
	return 0
}

// history() -> {undo={...}, redo={...}, next_undo=, next_redo=, grouping=, max=}
// Stacks list descriptions oldest first; next_* are nil when empty.
func (m *fsModule) history(L *lua.LState) int {
	h := m.s.History()

	tbl := L.CreateTable(0, 6)
	tbl.RawSetString("undo", descriptions(L, h.UndoInfo()))
	tbl.RawSetString("redo", descriptions(L, h.RedoInfo()))
	if op, ok := h.PeekUndo(); ok {
		tbl.RawSetString("next_undo", lua.LString(op.Description))
	}
	if op, ok := h.PeekRedo(); ok {
		tbl.RawSetString("next_redo", lua.LString(op.Description))
	}
	tbl.RawSetString("grouping", lua.LBool(h.IsGrouping()))
	tbl.RawSetString("max", lua.LNumber(h.MaxEntries()))

	L.Push(tbl)
	return 1
}

func descriptions(L *lua.LState, ops []history.OperationInfo) *lua.LTable {
	t := L.CreateTable(len(ops), 0)
	for _, op := range ops {
		t.Append(lua.LString(op.Description))
	}
	return t
}

// clear_history() -> string
func (m *fsModule) clearHistory(L *lua.LState) int {
	L.Push(lua.LString(m.s.ClearHistory()))
	return 1
}
