// Package vfs provides the simulated file system the command log operates on.
//
// The file system is a flat, in-memory namespace: every path is an opaque key
// mapped to its content. There are no directories, permissions or parent/child
// relationships between paths.
package vfs

import (
	"errors"
	"io/fs"
)

// Errors reported through *fs.PathError by Store operations.
// They alias the io/fs sentinels so callers can use either with errors.Is.
var (
	// ErrNotFound indicates the operation targeted an absent path.
	ErrNotFound = fs.ErrNotExist

	// ErrAlreadyExists indicates the operation would overwrite an existing path.
	ErrAlreadyExists = fs.ErrExist
)

// Entry describes one file in a listing.
type Entry struct {
	Path string
	Size int // content length in bytes
}

// IsNotFound reports whether err was caused by an absent path.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists reports whether err was caused by an occupied path.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}
