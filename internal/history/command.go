package history

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/dshills/patternlab/internal/vfs"
)

// Command represents a reversible file operation bound to a store.
type Command interface {
	// Execute performs the command and returns a result message.
	Execute() (string, error)

	// Undo reverses the last successful Execute and returns a result message.
	Undo() string

	// Description returns a human-readable description of the command.
	Description() string
}

// CreateCommand writes a new path.
type CreateCommand struct {
	store    *vfs.Store
	Path     string
	Content  string
	executed bool
}

// NewCreate creates a command that writes content to a path that must not exist yet.
func NewCreate(store *vfs.Store, path, content string) *CreateCommand {
	return &CreateCommand{store: store, Path: path, Content: content}
}

// Execute writes the path, failing if it is already taken.
func (c *CreateCommand) Execute() (string, error) {
	if c.store.Exists(c.Path) {
		return "", &fs.PathError{Op: "create", Path: c.Path, Err: vfs.ErrAlreadyExists}
	}
	c.store.Write(c.Path, c.Content)
	c.executed = true
	return "Create: " + c.Path, nil
}

// Undo removes the created path if it is still there.
func (c *CreateCommand) Undo() string {
	if c.executed && c.store.Exists(c.Path) {
		if err := c.store.Delete(c.Path); err == nil {
			return "Undo Create: " + c.Path + " removed"
		}
	}
	return "Undo Create: nothing to undo"
}

// Description returns a human-readable description.
func (c *CreateCommand) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", c.Path, len(c.Content))
}

// DeleteCommand removes a path and keeps its content for undo.
type DeleteCommand struct {
	store   *vfs.Store
	Path    string
	backup  string
	deleted bool
}

// NewDelete creates a command that removes an existing path.
func NewDelete(store *vfs.Store, path string) *DeleteCommand {
	return &DeleteCommand{store: store, Path: path}
}

// Execute snapshots and removes the path.
func (c *DeleteCommand) Execute() (string, error) {
	content, err := c.store.Read(c.Path)
	if err != nil {
		return "", &fs.PathError{Op: "delete", Path: c.Path, Err: vfs.ErrNotFound}
	}
	if err := c.store.Delete(c.Path); err != nil {
		return "", err
	}
	c.backup = content
	c.deleted = true
	return "Delete: " + c.Path, nil
}

// Undo restores the snapshot if the path is still free.
func (c *DeleteCommand) Undo() string {
	if c.deleted && !c.store.Exists(c.Path) {
		c.store.Write(c.Path, c.backup)
		return "Undo Delete: " + c.Path + " restored"
	}
	return "Undo Delete: nothing to undo"
}

// Description returns a human-readable description.
func (c *DeleteCommand) Description() string {
	return "Delete " + c.Path
}

// MoveCommand relocates a path and keeps the source content for undo.
type MoveCommand struct {
	store    *vfs.Store
	Src      string
	Dst      string
	snapshot string
	moved    bool
}

// NewMove creates a command that moves src to a free dst.
func NewMove(store *vfs.Store, src, dst string) *MoveCommand {
	return &MoveCommand{store: store, Src: src, Dst: dst}
}

// Execute snapshots src and moves it to dst.
func (c *MoveCommand) Execute() (string, error) {
	content, err := c.store.Read(c.Src)
	if err != nil {
		return "", &fs.PathError{Op: "move", Path: c.Src, Err: vfs.ErrNotFound}
	}
	if c.store.Exists(c.Dst) {
		return "", &fs.PathError{Op: "move", Path: c.Dst, Err: vfs.ErrAlreadyExists}
	}
	if err := c.store.Move(c.Src, c.Dst); err != nil {
		return "", err
	}
	c.snapshot = content
	c.moved = true
	return fmt.Sprintf("Move: %s -> %s", c.Src, c.Dst), nil
}

// Undo reverses the move.
//
// When dst still exists it is moved back. When dst is gone the source is
// rewritten from the snapshot, unless something now occupies it; an occupied
// source is reported as a conflict and the store is left as is.
func (c *MoveCommand) Undo() string {
	if !c.moved {
		return "Undo Move: nothing to undo"
	}

	if c.store.Exists(c.Dst) {
		err := c.store.Move(c.Dst, c.Src)
		switch {
		case err == nil:
			return fmt.Sprintf("Undo Move: %s -> %s", c.Dst, c.Src)
		case vfs.IsAlreadyExists(err):
			return msgSrcOccupied
		default:
			return fmt.Sprintf("Undo Move: could not revert: %v", err)
		}
	}

	if c.store.Exists(c.Src) {
		return msgSrcOccupied
	}
	c.store.Write(c.Src, c.snapshot)
	return "Undo Move: " + c.Src + " restored"
}

const msgSrcOccupied = "Undo Move: src occupied, could not revert"

// Description returns a human-readable description.
func (c *MoveCommand) Description() string {
	return fmt.Sprintf("Move %s to %s", c.Src, c.Dst)
}

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{
		Name:     name,
		Commands: commands,
	}
}

// Execute runs all commands in order.
// If a step fails, the steps already executed are undone before returning.
func (c *CompoundCommand) Execute() (string, error) {
	results := make([]string, 0, len(c.Commands))
	for i, cmd := range c.Commands {
		out, err := cmd.Execute()
		if err != nil {
			for j := i - 1; j >= 0; j-- {
				c.Commands[j].Undo()
			}
			return "", fmt.Errorf("compound command '%s' step %d: %w", c.Name, i, err)
		}
		results = append(results, out)
	}
	return strings.Join(results, "; "), nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo() string {
	results := make([]string, 0, len(c.Commands))
	for i := len(c.Commands) - 1; i >= 0; i-- {
		results = append(results, c.Commands[i].Undo())
	}
	return strings.Join(results, "; ")
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// Add adds a command to the compound command.
func (c *CompoundCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// IsEmpty returns true if the compound command has no commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}
