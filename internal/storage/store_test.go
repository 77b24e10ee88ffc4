package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_LoadMissing(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "time-tracking.json"))

	data, err := s.Load(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}
	if data != nil {
		t.Errorf("Load() data = %q, want nil", data)
	}
}

func TestFileStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "time-tracking.json")
	s := NewFileStore(path)
	ctx := context.Background()

	if err := s.Save(ctx, []byte(`[]`)); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := s.Save(ctx, []byte(`[{"date":"2024-03-01"}]`)); err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}

	data, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if string(data) != `[{"date":"2024-03-01"}]` {
		t.Errorf("Load() = %q", data)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "time-tracking.json" {
		t.Errorf("temp files should not remain after save, dir has %v", entries)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestFileStore_SaveUnavailable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	s := NewFileStore(filepath.Join(blocker, "time-tracking.json"))
	err := s.Save(context.Background(), []byte(`[]`))
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("Save() error = %v, want ErrStorageUnavailable", err)
	}
}

func TestFileStore_SaveIgnoresStaleTempPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "time-tracking.json")
	if err := os.Mkdir(path+".tmp", 0o750); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	s := NewFileStore(path)
	if err := s.Save(context.Background(), []byte(`[]`)); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if data, err := s.Load(context.Background()); err != nil || string(data) != `[]` {
		t.Errorf("Load() = %q, %v", data, err)
	}
}

func TestFileStore_SaveRenameFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "time-tracking.json")
	if err := os.Mkdir(path, 0o750); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	s := NewFileStore(path)
	err := s.Save(context.Background(), []byte(`[]`))
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("Save() error = %v, want ErrStorageUnavailable", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}

func TestFileStore_LoadUnavailable(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	_, err := s.Load(context.Background())
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("Load() of a directory error = %v, want ErrStorageUnavailable", err)
	}
}

func TestFileStore_Location(t *testing.T) {
	s := NewFileStore("/tmp/x.json")
	if s.Location() != "/tmp/x.json" {
		t.Errorf("Location() = %q", s.Location())
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
