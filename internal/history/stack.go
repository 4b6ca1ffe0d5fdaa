package history

import (
	"sync"
	"time"
)

// Messages returned when a stack is empty.
const (
	MsgNothingToUndo = "nothing to undo"
	MsgNothingToRedo = "nothing to redo"
)

// DefaultMaxEntries is the undo depth used when none is configured.
const DefaultMaxEntries = 1000

// OperationInfo describes an entry on one of the stacks.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}

// undoEntry wraps a command with metadata.
type undoEntry struct {
	command   Command
	timestamp time.Time
}

// History manages undo/redo state for a store.
//
// All methods are safe for concurrent use. The lock is held while a command
// runs so that the store mutation and the stack update happen as one unit;
// commands must not call back into the History that runs them.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	// Grouping state
	grouping  bool
	groupName string
	groupCmds []Command

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Run executes a command and adds it to the undo stack.
// Execute errors are returned unchanged and leave both stacks untouched.
// A successful command always invalidates the redo stack, even inside a group.
func (h *History) Run(cmd Command) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	out, err := cmd.Execute()
	if err != nil {
		return "", err
	}
	h.redoStack = nil

	if h.grouping {
		h.groupCmds = append(h.groupCmds, cmd)
		return out, nil
	}

	h.pushLocked(cmd)
	return out, nil
}

// pushLocked adds a command without acquiring the lock.
// Clears the redo stack.
func (h *History) pushLocked(cmd Command) {
	h.undoStack = append(h.undoStack, &undoEntry{
		command:   cmd,
		timestamp: time.Now(),
	})

	h.redoStack = nil
	h.trimLocked()
}

// trimLocked drops the oldest undo entries beyond maxEntries. The survivors
// are copied so the dropped commands and their snapshots can be collected.
func (h *History) trimLocked() {
	excess := len(h.undoStack) - h.maxEntries
	if excess <= 0 {
		return
	}
	kept := make([]*undoEntry, h.maxEntries, h.maxEntries+1)
	copy(kept, h.undoStack[excess:])
	h.undoStack = kept
}

// Undo undoes the last command and moves it to the redo stack.
// The command's own result message is returned even when it reports a conflict.
func (h *History) Undo() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return MsgNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	out := entry.command.Undo()
	h.redoStack = append(h.redoStack, entry)
	return out
}

// Redo re-executes the last undone command and moves it back to the undo stack.
// If the store has diverged the command's Execute error is returned and the
// entry stays on the redo stack.
func (h *History) Redo() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return MsgNothingToRedo, nil
	}

	entry := h.redoStack[len(h.redoStack)-1]
	out, err := entry.command.Execute()
	if err != nil {
		return "", err
	}

	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	entry.timestamp = time.Now()
	h.undoStack = append(h.undoStack, entry)
	return out, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// BeginGroup starts a command group.
// Commands run while grouping will be combined into a single undo unit.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		// Already grouping, ignore nested calls
		return
	}

	h.grouping = true
	h.groupName = name
	h.groupCmds = nil
}

// EndGroup finishes a command group.
// All commands since BeginGroup are combined into a CompoundCommand.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}

	h.grouping = false

	if len(h.groupCmds) == 0 {
		h.groupCmds = nil
		return
	}

	h.pushLocked(NewCompoundCommand(h.groupName, h.groupCmds...))
	h.groupCmds = nil
}

// CancelGroup discards the open group without recording it. Commands already
// run keep their effect on the store and cannot be undone.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.grouping = false
	h.groupCmds = nil
}

// IsGrouping returns true if currently in a command group.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupCmds = nil
}

// UndoInfo lists the undo stack, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return describe(h.undoStack)
}

// RedoInfo lists the redo stack, oldest first. The last element is what
// Redo would re-apply.
func (h *History) RedoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return describe(h.redoStack)
}

// PeekUndo describes what Undo would reverse.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return top(h.undoStack)
}

// PeekRedo describes what Redo would re-apply.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return top(h.redoStack)
}

func (e *undoEntry) info() OperationInfo {
	return OperationInfo{Description: e.command.Description(), Timestamp: e.timestamp}
}

func describe(stack []*undoEntry) []OperationInfo {
	out := make([]OperationInfo, len(stack))
	for i, e := range stack {
		out[i] = e.info()
	}
	return out
}

func top(stack []*undoEntry) (OperationInfo, bool) {
	if len(stack) == 0 {
		return OperationInfo{}, false
	}
	return stack[len(stack)-1].info(), true
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	h.trimLocked()
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
