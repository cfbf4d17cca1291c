package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketSlots = []byte("slots")

// BoltSlotRepo stores slot values in a single bbolt bucket.
type BoltSlotRepo struct {
	db *bolt.DB
}

// NewBoltSlotRepo opens (or creates) the bbolt file at path.
// bbolt holds an exclusive file lock, so only one process can use the file at a time.
func NewBoltSlotRepo(path string) (*BoltSlotRepo, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("slot db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSlots)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltSlotRepo{db: db}, nil
}

// Get returns the value stored under key.
func (r *BoltSlotRepo) Get(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := r.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketSlots).Get([]byte(key))
		if raw == nil {
			return nil
		}
		// raw is only valid inside the transaction
		value = string(raw)
		found = true
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}

// Set replaces the value stored under key.
func (r *BoltSlotRepo) Set(_ context.Context, key, value string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSlots).Put([]byte(key), []byte(value))
	})
}

// Ping reports whether the bucket can be read.
func (r *BoltSlotRepo) Ping(_ context.Context) error {
	return r.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketSlots) == nil {
			return errors.New("slots bucket missing")
		}
		return nil
	})
}

// Close closes the bbolt file.
func (r *BoltSlotRepo) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
