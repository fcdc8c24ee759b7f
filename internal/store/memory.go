package store

import "context"

// Memory is an in-process Slot. It backs the "memory" backend and tests.
type Memory struct {
	data []byte
	set  bool
}

// NewMemory returns a Memory slot. A nil data argument means nothing is stored.
func NewMemory(data []byte) *Memory {
	m := &Memory{}
	if data != nil {
		m.data = append([]byte(nil), data...)
		m.set = true
	}
	return m
}

func (m *Memory) Get(_ context.Context) ([]byte, error) {
	if !m.set {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *Memory) Put(_ context.Context, data []byte) error {
	m.data = append(m.data[:0], data...)
	m.set = true
	return nil
}

func (m *Memory) Close() error { return nil }

// Bytes returns the stored payload, or nil when nothing was stored.
func (m *Memory) Bytes() []byte {
	if !m.set {
		return nil
	}
	return append([]byte(nil), m.data...)
}
