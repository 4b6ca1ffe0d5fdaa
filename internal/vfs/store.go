package vfs

import (
	"io/fs"
	"sort"
	"sync"
)

// Store is an in-memory path to content mapping.
//
// Store is safe for concurrent use. Each method is atomic on its own; callers
// that need several operations to appear as one unit (the command history, for
// instance) must serialize them with their own lock.
type Store struct {
	mu    sync.RWMutex
	files map[string]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		files: make(map[string]string),
	}
}

// Exists returns true if path is present.
func (s *Store) Exists(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.files[path]
	return ok
}

// Write stores content at path, replacing any previous content.
func (s *Store) Write(path, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[path] = content
}

// Read returns the content stored at path.
func (s *Store) Read(path string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[path]
	if !ok {
		return "", &fs.PathError{Op: "read", Path: path, Err: ErrNotFound}
	}
	return content, nil
}

// Delete removes path.
func (s *Store) Delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[path]; !ok {
		return &fs.PathError{Op: "delete", Path: path, Err: ErrNotFound}
	}
	delete(s.files, path)
	return nil
}

// Move relocates the content at src to dst.
// The destination must be free; nothing is modified when Move fails.
func (s *Store) Move(src, dst string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.files[src]
	if !ok {
		return &fs.PathError{Op: "move", Path: src, Err: ErrNotFound}
	}
	if _, taken := s.files[dst]; taken {
		return &fs.PathError{Op: "move", Path: dst, Err: ErrAlreadyExists}
	}

	s.files[dst] = content
	delete(s.files, src)
	return nil
}

// List returns a snapshot of all entries sorted by path.
func (s *Store) List() []Entry {
	s.mu.RLock()
	entries := make([]Entry, 0, len(s.files))
	for path, content := range s.files {
		entries = append(entries, Entry{Path: path, Size: len(content)})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// Len returns the number of stored paths.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
