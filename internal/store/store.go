// Package store persists the todo collection to a single key-value slot.
//
// A Slot holds raw bytes; Store layers the JSON encoding, schema validation
// and the fail-soft load semantics on top of it. Backends live in the
// subpackages (jsonstore, diskvstore, sqlitestore, redisstore).
package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
)

// ErrNotFound is returned by a Slot when nothing has been persisted yet.
var ErrNotFound = errors.New("slot not found")

// Slot is a single persistent key holding the serialized collection.
type Slot interface {
	Get(ctx context.Context) ([]byte, error)
	Put(ctx context.Context, data []byte) error
	Close() error
}

// Store loads and saves the whole collection. Load never fails; anything
// missing, unreadable or malformed comes back as an empty collection.
type Store struct {
	slot Slot
	log  *log.Logger
}

// New returns a Store over slot. A nil logger discards diagnostics.
func New(slot Slot, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{slot: slot, log: logger}
}

// Load reads the collection from the slot.
func (s *Store) Load(ctx context.Context) []model.Item {
	b, err := s.slot.Get(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("load: slot unreadable, starting empty", "err", err)
		}
		return []model.Item{}
	}
	items, err := Decode(b)
	if err != nil {
		s.log.Warn("load: stored collection is invalid, starting empty", "err", err)
		return []model.Item{}
	}
	s.log.Debug("loaded collection", "items", len(items))
	return items
}

// Save overwrites the slot with the full collection.
func (s *Store) Save(ctx context.Context, items []model.Item) error {
	b, err := Encode(items)
	if err != nil {
		return err
	}
	if err := s.slot.Put(ctx, b); err != nil {
		return fmt.Errorf("put: %w", err)
	}
	s.log.Debug("saved collection", "items", len(items), "bytes", len(b))
	return nil
}

// Close releases the underlying slot.
func (s *Store) Close() error {
	return s.slot.Close()
}
