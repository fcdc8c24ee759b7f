// Package backend opens the store.Slot selected by configuration.
package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/diskvstore"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/redisstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

type opener func(ctx context.Context, cfg config.Config) (store.Slot, error)

var openers = map[string]opener{
	"file": func(_ context.Context, cfg config.Config) (store.Slot, error) {
		return jsonstore.New(cfg.Path, cfg.Key), nil
	},
	"diskv": func(_ context.Context, cfg config.Config) (store.Slot, error) {
		return diskvstore.New(filepath.Join(cfg.Path, "diskv"), cfg.Key), nil
	},
	"sqlite": func(ctx context.Context, cfg config.Config) (store.Slot, error) {
		return sqlitestore.Open(ctx, filepath.Join(cfg.Path, sqlitestore.DefaultFileName), cfg.Key)
	},
	"redis": func(ctx context.Context, cfg config.Config) (store.Slot, error) {
		return redisstore.Dial(ctx, cfg.Redis.Addr, cfg.Redis.DB, cfg.Key)
	},
	"memory": func(context.Context, config.Config) (store.Slot, error) {
		return store.NewMemory(nil), nil
	},
}

// Names lists the known backends, sorted.
func Names() []string {
	names := make([]string, 0, len(openers))
	for n := range openers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Open returns the slot for cfg.Backend. An empty name means "file".
func Open(ctx context.Context, cfg config.Config) (store.Slot, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if name == "" {
		name = config.DefaultBackend
	}
	open, ok := openers[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (want one of %s)", cfg.Backend, strings.Join(Names(), ", "))
	}
	slot, err := open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", name, err)
	}
	return slot, nil
}
