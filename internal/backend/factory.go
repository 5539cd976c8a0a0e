package backend

import (
	"fmt"
	"log/slog"

	"hajeri/internal/kv"
	kvfile "hajeri/internal/kv/file"
	kvmem "hajeri/internal/kv/memory"
	kvsqlite "hajeri/internal/kv/sqlite"
)

// New builds the kv backend described by cfg.
func New(cfg Config, logger *slog.Logger) (kv.Backend, CleanupFunc, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLite:
		store, err := kvsqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return store, store.Close, nil

	case File:
		dir := cfg.DataDirectory
		if dir == "" {
			dir = "data"
		}
		store, err := kvfile.New(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize file backend: %w", err)
		}
		logger.Info("Initialized file backend", "data_directory", dir)
		return store, nil, nil

	default:
		logger.Info("Initialized memory backend")
		return kvmem.New(), nil, nil
	}
}
