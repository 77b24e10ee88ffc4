// Package storage persists the serialized ledger as a single named blob.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/j-veylop/timekeeper-tui/internal/logger"
)

var (
	// ErrNotFound is returned by Load when nothing has been saved yet.
	ErrNotFound = errors.New("storage: blob not found")

	// ErrStorageUnavailable wraps I/O failures from a backend.
	ErrStorageUnavailable = errors.New("storage: unavailable")
)

// Store reads and replaces the whole ledger blob.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Location() string
	Close() error
}

// Unavailable wraps err so callers can match ErrStorageUnavailable.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}

// FileStore keeps the blob in one file, replaced atomically on save.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path. The parent directory is
// created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Location returns the file path.
func (s *FileStore) Location() string {
	return s.path
}

// Load reads the whole file.
func (s *FileStore) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, Unavailable("read", err)
	}
	return data, nil
}

// Save writes to a fresh temp file in the target directory, syncs it and
// renames it over the target.
func (s *FileStore) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return Unavailable("create directory", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return Unavailable("create temp file", err)
	}
	tmpName := tmp.Name()

	discard := func() {
		if removeErr := os.Remove(tmpName); removeErr != nil && !os.IsNotExist(removeErr) {
			logger.Error("failed to remove temp file", "path", tmpName, "error", removeErr)
		}
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		discard()
		return Unavailable("write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		discard()
		return Unavailable("sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		discard()
		return Unavailable("close temp file", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		discard()
		return Unavailable("rename temp file", err)
	}

	return nil
}

// Close is a no-op for files.
func (s *FileStore) Close() error {
	return nil
}
