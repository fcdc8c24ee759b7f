// Package jsonstore keeps the collection in a single JSON file.
// Human-readable and portable; no locking, fine for a local single-user tool.
package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Makepad-fr/tada/internal/store"
)

const dataFileName = "todos.json"

// Slot is a store.Slot backed by <dir>/<key>.json.
type Slot struct {
	path string
}

// New returns a file slot inside dir. An empty key uses todos.json.
// Only the last path element of key is used, so the file stays in dir.
func New(dir, key string) *Slot {
	name := dataFileName
	if k := strings.TrimSpace(key); k != "" {
		name = filepath.Base(filepath.Clean("/"+k)) + ".json"
	}
	if name == "/.json" {
		name = dataFileName
	}
	return &Slot{path: filepath.Join(dir, name)}
}

// Path is the data file location.
func (s *Slot) Path() string { return s.path }

func (s *Slot) Get(_ context.Context) ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

// Put replaces the file atomically: write to a sibling temp file, then rename.
func (s *Slot) Put(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *Slot) Close() error { return nil }
