// Package backend builds the key-value store the application persists into.
package backend

import (
	"fmt"
	"log/slog"

	"parksmart/internal/config"
	"parksmart/internal/kv"
	"parksmart/internal/storage"
)

// Result carries the store plus an optional cleanup to run at shutdown.
type Result struct {
	Store   kv.Store
	Cleanup func() error
}

// Open builds the store selected by cfg.DataBackend.
func Open(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.DataBackend {
	case "sqlite":
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case "memory":
		logger.Info("Initialized memory backend")
		return &Result{Store: kv.NewMemory()}, nil

	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}
