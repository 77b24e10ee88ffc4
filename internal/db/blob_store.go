package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/j-veylop/timekeeper-tui/internal/storage"
)

// LedgerBlobName is the row the ledger is stored under.
const LedgerBlobName = "time-tracking"

// BlobStore implements storage.Store on top of the blobs table.
type BlobStore struct {
	db   *DB
	name string
}

// NewBlobStore opens the database at path and returns a store for name.
func NewBlobStore(path, name string) (*BlobStore, error) {
	db, err := New(path)
	if err != nil {
		return nil, storage.Unavailable("open database", err)
	}
	return &BlobStore{db: db, name: name}, nil
}

// Location returns "<path>#<name>".
func (s *BlobStore) Location() string {
	return s.db.Path() + "#" + s.name
}

// Load returns the stored blob or storage.ErrNotFound.
func (s *BlobStore) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM blobs WHERE name = ?", s.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, storage.Unavailable("query blob", err)
	}
	return data, nil
}

// Save replaces the stored blob.
func (s *BlobStore) Save(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO blobs (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`
	if data == nil {
		data = []byte{}
	}
	if _, err := s.db.ExecContext(ctx, query, s.name, data, time.Now().UTC().Format("2006-01-02 15:04:05")); err != nil {
		return storage.Unavailable("upsert blob", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BlobStore) Close() error {
	return s.db.Close()
}
