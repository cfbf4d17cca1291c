package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpen_Backends(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		file    string
		wantErr bool
	}{
		{name: "default is sqlite", backend: "", file: "slots.db"},
		{name: "sqlite", backend: BackendSQLite, file: "slots.db"},
		{name: "bolt", backend: BackendBolt, file: "slots.bolt"},
		{name: "unknown backend", backend: "redis", file: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", tt.file)
			store, err := Open(tt.backend, path)
			if tt.wantErr {
				if err == nil {
					_ = store.Close()
					t.Fatal("Open() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer func() {
				_ = store.Close()
			}()

			ctx := context.Background()
			if err := store.Ping(ctx); err != nil {
				t.Errorf("Ping() error = %v", err)
			}

			if _, found, err := store.Get(ctx, "notekeeperDB"); err != nil || found {
				t.Fatalf("Get() on empty store = found %v, err %v", found, err)
			}

			if err := store.Set(ctx, "notekeeperDB", `{"notebooks":[]}`); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := store.Set(ctx, "notekeeperDB", `{"notebooks":[{"id":"1","name":"Work","notes":[]}]}`); err != nil {
				t.Fatalf("Set() overwrite error = %v", err)
			}

			value, found, err := store.Get(ctx, "notekeeperDB")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if !found {
				t.Fatal("Get() found = false after Set")
			}
			if value != `{"notebooks":[{"id":"1","name":"Work","notes":[]}]}` {
				t.Errorf("Get() = %q, want last written value", value)
			}

			if _, found, _ := store.Get(ctx, "theme"); found {
				t.Error("slots must be independent")
			}
		})
	}
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	for _, backend := range []string{BackendSQLite, BackendBolt} {
		t.Run(backend, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "slots")
			ctx := context.Background()

			store, err := Open(backend, path)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if err := store.Set(ctx, "theme", "dark"); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := store.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			reopened, err := Open(backend, path)
			if err != nil {
				t.Fatalf("Open() second time error = %v", err)
			}
			defer func() {
				_ = reopened.Close()
			}()

			value, found, err := reopened.Get(ctx, "theme")
			if err != nil || !found || value != "dark" {
				t.Errorf("Get() after reopen = %q, %v, %v; want dark, true, nil", value, found, err)
			}
		})
	}
}

func TestNewBoltSlotRepo_EmptyPath(t *testing.T) {
	if _, err := NewBoltSlotRepo("  "); err == nil {
		t.Error("NewBoltSlotRepo() with empty path should return error")
	}
}
