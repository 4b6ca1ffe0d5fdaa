// Package history provides a reversible command log over a vfs.Store.
//
// The history system uses the Command pattern to encapsulate file operations,
// enabling them to be executed, undone, and redone. Key concepts:
//
// # Commands
//
// Commands implement the Command interface with Execute and Undo methods.
// Each command is bound to the store it mutates and keeps whatever snapshot it
// needs to reverse itself exactly once:
//   - Create: writes a new path; undo removes it again
//   - Delete: remembers the removed content; undo restores it
//   - Move: remembers the source content; undo moves it back
//   - Compound: groups several commands as one undo unit
//
// Execute returns an error when the store refuses the operation. Undo never
// fails: conflicts (for example a move whose source has been re-occupied) are
// reported in the returned message and leave the store untouched.
//
// # History Stack
//
// The History type manages undo/redo stacks and command grouping:
//
//	store := vfs.NewStore()
//	h := history.NewHistory(1000) // Max 1000 undo entries
//
//	out, err := h.Run(history.NewCreate(store, "/a.txt", "x"))
//
//	h.Undo()
//	h.Redo()
//
// Running a new command always discards the redo stack.
//
// # Command Grouping
//
// Multiple commands can be grouped as a single undo unit:
//
//	h.BeginGroup("Reorganize")
//	// ... several Run calls ...
//	h.EndGroup()
package history
