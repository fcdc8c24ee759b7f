// Package redisstore keeps the collection under a single Redis string key.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Makepad-fr/tada/internal/store"
)

// DefaultKey is used when no key is configured.
const DefaultKey = "tada:todos"

// Slot is a store.Slot over one Redis key. The key never expires.
type Slot struct {
	client *redis.Client
	key    string
}

// New wraps an existing client. Close closes the client.
func New(client *redis.Client, key string) *Slot {
	if client == nil {
		panic("redisstore.New: client is nil")
	}
	if key == "" {
		key = DefaultKey
	}
	return &Slot{client: client, key: key}
}

// Dial connects to addr and checks the connection with PING.
func Dial(ctx context.Context, addr string, db int, key string) (*Slot, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return New(client, key), nil
}

func (s *Slot) Get(ctx context.Context) ([]byte, error) {
	b, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return b, nil
}

func (s *Slot) Put(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *Slot) Close() error { return s.client.Close() }
