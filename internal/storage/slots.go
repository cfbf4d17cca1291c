package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// BackendSQLite keeps slots in a SQLite table.
	BackendSQLite = "sqlite"
	// BackendBolt keeps slots in a bbolt bucket.
	BackendBolt = "bolt"
)

// SlotStore is a durable key-value store of string slots.
type SlotStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
	Close() error
}

// Open opens the slot store for the configured backend.
func Open(backend, path string) (SlotStore, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		db, err := New(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := Migrate(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return NewSlotRepo(db), nil
	case BackendBolt:
		return NewBoltSlotRepo(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
