// Package diskvstore keeps the collection as one key in a diskv store.
package diskvstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"github.com/Makepad-fr/tada/internal/store"
)

// DefaultKey is used when no key is configured.
const DefaultKey = "todos"

// Slot is a store.Slot over a single diskv key.
type Slot struct {
	d   *diskv.Diskv
	key string
}

// New opens (lazily) a diskv store rooted at basePath.
func New(basePath, key string) *Slot {
	key = filepath.Base(filepath.Clean("/" + key))
	if key == "/" {
		key = DefaultKey
	}
	return &Slot{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		key: key,
	}
}

func (s *Slot) Get(_ context.Context) ([]byte, error) {
	b, err := s.d.Read(s.key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("diskv read %s: %w", s.key, err)
	}
	return b, nil
}

func (s *Slot) Put(_ context.Context, data []byte) error {
	if err := s.d.Write(s.key, data); err != nil {
		return fmt.Errorf("diskv write %s: %w", s.key, err)
	}
	return nil
}

func (s *Slot) Close() error { return nil }
