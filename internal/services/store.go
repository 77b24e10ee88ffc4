package services

import (
	"github.com/j-veylop/timekeeper-tui/internal/config"
	"github.com/j-veylop/timekeeper-tui/internal/db"
	"github.com/j-veylop/timekeeper-tui/internal/storage"
)

// OpenStore returns the store for a configured backend.
func OpenStore(backend, location string) (storage.Store, error) {
	switch backend {
	case config.BackendSQLite:
		s, err := db.NewBlobStore(location, db.LedgerBlobName)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return storage.NewFileStore(location), nil
	}
}
