package backend

import (
	"path/filepath"
	"testing"

	"parksmart/internal/config"
)

func TestOpenMemory(t *testing.T) {
	res, err := Open(&config.Config{DataBackend: "memory"}, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if res.Store == nil {
		t.Fatal("expected a store")
	}
	if res.Cleanup != nil {
		t.Error("memory backend needs no cleanup")
	}
}

func TestOpenSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	res, err := Open(&config.Config{DataBackend: "sqlite", SQLiteDBPath: dbPath}, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer res.Cleanup()

	if err := res.Store.Set("k", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := res.Store.Get("k")
	if err != nil || !ok || got != "v" {
		t.Fatalf("Get() = %q, %v, %v", got, ok, err)
	}
}

func TestOpenUnsupported(t *testing.T) {
	if _, err := Open(&config.Config{DataBackend: "redis"}, nil); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}
