package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME and the working directory at an empty temp dir and
// clears every key Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	for _, key := range []string{
		"TRACKING_ENABLED", "SHOW_NOTIFICATIONS", "SESSION_TIMEOUT",
		"STORAGE_LOCATION", "STORAGE_BACKEND", "TIMEOUT_CHECK_INTERVAL",
		"DISPLAY_REFRESH_INTERVAL", "LOG_FILE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(tmpDir)
	return tmpDir
}

func TestGetString(t *testing.T) {
	key := "TEST_ENV_STRING"
	t.Setenv(key, "test_value")

	v := values{file: map[string]string{"FROM_FILE": "file_value", key: "ignored"}}
	if got := v.getString(key, "default"); got != "test_value" {
		t.Errorf("getString() = %q, want environment to win", got)
	}
	if got := v.getString("FROM_FILE", "default"); got != "file_value" {
		t.Errorf("getString() = %q, want file_value", got)
	}
	if got := v.getString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getString() = %q, want default", got)
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name       string
		val        string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"ValidSeconds", "60", time.Second, 60 * time.Second},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Negative", "-5s", time.Second, time.Second},
		{"Zero", "0", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := values{file: map[string]string{"D": tt.val}}
			if got := v.getDuration("D", tt.defaultVal); got != tt.want {
				t.Errorf("getDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetBool(t *testing.T) {
	tests := []struct {
		val  string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"ON", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"off", true, false},
		{"maybe", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		v := values{file: map[string]string{"B": tt.val}}
		if got := v.getBool("B", tt.def); got != tt.want {
			t.Errorf("getBool(%q, %v) = %v, want %v", tt.val, tt.def, got, tt.want)
		}
	}
}

func TestGetSessionTimeout(t *testing.T) {
	tests := []struct {
		val  string
		want time.Duration
	}{
		{"", 5 * time.Minute},
		{"10", 10 * time.Minute},
		{"0", time.Minute},
		{"-3", time.Minute},
		{"45", 30 * time.Minute},
		{"abc", 5 * time.Minute},
	}

	for _, tt := range tests {
		v := values{file: map[string]string{"SESSION_TIMEOUT": tt.val}}
		if got := v.getSessionTimeout("SESSION_TIMEOUT"); got != tt.want {
			t.Errorf("getSessionTimeout(%q) = %v, want %v", tt.val, got, tt.want)
		}
	}
}

func TestGetBackend(t *testing.T) {
	tests := map[string]string{
		"":        BackendFile,
		"file":    BackendFile,
		"SQLite":  BackendSQLite,
		"sqlite3": BackendSQLite,
		"redis":   BackendFile,
	}
	for val, want := range tests {
		v := values{file: map[string]string{"STORAGE_BACKEND": val}}
		if got := v.getBackend("STORAGE_BACKEND"); got != want {
			t.Errorf("getBackend(%q) = %q, want %q", val, got, want)
		}
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestGetDefaultPaths(t *testing.T) {
	home := isolate(t)

	want := filepath.Join(home, ".config", "timekeeper", "time-tracking.json")
	if got := getDefaultStoragePath(BackendFile); got != want {
		t.Errorf("getDefaultStoragePath(file) = %q, want %q", got, want)
	}
	want = filepath.Join(home, ".config", "timekeeper", "timekeeper.db")
	if got := getDefaultStoragePath(BackendSQLite); got != want {
		t.Errorf("getDefaultStoragePath(sqlite) = %q, want %q", got, want)
	}
	want = filepath.Join(home, ".config", "timekeeper", "timekeeper.log")
	if got := getDefaultLogPath(); got != want {
		t.Errorf("getDefaultLogPath() = %q, want %q", got, want)
	}
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Error("getEnvPaths() returned empty list")
	}

	// Basic check that it contains current directory
	cwd, _ := os.Getwd()
	found := false
	for _, p := range paths {
		if p == filepath.Join(cwd, ".env") {
			found = true
			break
		}
	}
	if !found {
		t.Error("getEnvPaths() missing current directory .env")
	}
}

func TestExpandHome(t *testing.T) {
	home := isolate(t)

	if got := expandHome("~/data/x.json"); got != filepath.Join(home, "data", "x.json") {
		t.Errorf("expandHome() = %q", got)
	}
	if got := expandHome("/abs/x.json"); got != "/abs/x.json" {
		t.Errorf("expandHome() = %q", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if !cfg.TrackingEnabled || !cfg.ShowNotifications {
		t.Errorf("booleans should default to true: %+v", cfg)
	}
	if cfg.SessionTimeout != 5*time.Minute {
		t.Errorf("SessionTimeout = %v, want 5m", cfg.SessionTimeout)
	}
	if cfg.TimeoutCheckInterval != defaultTimeoutCheckInterval {
		t.Errorf("TimeoutCheckInterval = %v", cfg.TimeoutCheckInterval)
	}
	if cfg.DisplayRefreshInterval != defaultDisplayRefreshInterval {
		t.Errorf("DisplayRefreshInterval = %v", cfg.DisplayRefreshInterval)
	}
	if cfg.StorageBackend != BackendFile {
		t.Errorf("StorageBackend = %q", cfg.StorageBackend)
	}
	if cfg.EnvFile != "" {
		t.Errorf("EnvFile = %q, want none", cfg.EnvFile)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "timekeeper")); err != nil {
		t.Errorf("storage directory was not created: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv("TRACKING_ENABLED", "false")
	t.Setenv("SESSION_TIMEOUT", "90")
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("STORAGE_LOCATION", filepath.Join(tmpDir, "data", "tk.db"))
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.TrackingEnabled {
		t.Error("TrackingEnabled should be false")
	}
	if cfg.SessionTimeout != 30*time.Minute {
		t.Errorf("SessionTimeout = %v, want clamped 30m", cfg.SessionTimeout)
	}
	if cfg.StorageBackend != BackendSQLite {
		t.Errorf("StorageBackend = %q", cfg.StorageBackend)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "data")); err != nil {
		t.Errorf("storage directory was not created: %v", err)
	}
}

func TestLoad_WithEnvFile(t *testing.T) {
	tmpDir := isolate(t)
	content := "SHOW_NOTIFICATIONS=false\nSESSION_TIMEOUT=12\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ShowNotifications {
		t.Error("ShowNotifications should come from .env")
	}
	if cfg.SessionTimeout != 12*time.Minute {
		t.Errorf("SessionTimeout = %v, want 12m", cfg.SessionTimeout)
	}
	if filepath.Base(cfg.EnvFile) != ".env" {
		t.Errorf("EnvFile = %q", cfg.EnvFile)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	isolate(t)
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("LoadFrom() should fail for a missing explicit file")
	}
}

func TestClampSessionTimeout(t *testing.T) {
	if got := ClampSessionTimeout(0); got != time.Minute {
		t.Errorf("ClampSessionTimeout(0) = %v", got)
	}
	if got := ClampSessionTimeout(31); got != 30*time.Minute {
		t.Errorf("ClampSessionTimeout(31) = %v", got)
	}
	if got := ClampSessionTimeout(7); got != 7*time.Minute {
		t.Errorf("ClampSessionTimeout(7) = %v", got)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.SessionTimeout != 5*time.Minute || cfg.StorageBackend != BackendFile {
		t.Errorf("Default() = %+v", cfg)
	}
}
