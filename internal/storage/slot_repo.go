package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SlotRepo stores slot values in the SQLite slots table.
// It implements the SlotStore interface.
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo creates a new SlotRepo.
func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

// Get returns the value stored under key.
// found is false when the slot has never been written.
func (r *SlotRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query slot %q: %w", key, err)
	}
	return value, true, nil
}

// Set replaces the value stored under key.
func (r *SlotRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO slots (key, value, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET
		 value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SlotRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the underlying database.
func (r *SlotRepo) Close() error {
	return r.db.Close()
}
