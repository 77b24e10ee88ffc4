// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Session timeout bounds, in minutes.
const (
	MinSessionTimeoutMinutes = 1
	MaxSessionTimeoutMinutes = 30
)

// Config holds the application configuration. It is an immutable snapshot:
// reloads produce a new value.
type Config struct {
	TrackingEnabled        bool
	ShowNotifications      bool
	SessionTimeout         time.Duration
	StorageLocation        string
	StorageBackend         string
	TimeoutCheckInterval   time.Duration
	DisplayRefreshInterval time.Duration
	LogFile                string
	LogLevel               string

	// EnvFile is the .env file the snapshot was read from, if any.
	EnvFile string
}

// Default values
const (
	defaultSessionTimeoutMinutes  = 5
	defaultTimeoutCheckInterval   = 30 * time.Second
	defaultDisplayRefreshInterval = time.Second
	defaultLogLevel               = "info"
)

// Load reads configuration from the first .env file found and the
// environment. Environment variables win over file values.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom is Load with an explicit .env file. An empty path searches the
// default locations; a non-empty path must exist.
func LoadFrom(envFile string) (*Config, error) {
	if envFile == "" {
		for _, path := range getEnvPaths() {
			if _, err := os.Stat(path); err == nil {
				envFile = path
				break
			}
		}
	} else if _, err := os.Stat(envFile); err != nil {
		return nil, fmt.Errorf("env file %s: %w", envFile, err)
	}

	v := values{}
	if envFile != "" {
		file, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
		v.file = file
	}

	backend := v.getBackend("STORAGE_BACKEND")
	defaults := Default()

	cfg := &Config{
		TrackingEnabled:        v.getBool("TRACKING_ENABLED", defaults.TrackingEnabled),
		ShowNotifications:      v.getBool("SHOW_NOTIFICATIONS", defaults.ShowNotifications),
		SessionTimeout:         v.getSessionTimeout("SESSION_TIMEOUT"),
		StorageLocation:        expandHome(v.getString("STORAGE_LOCATION", getDefaultStoragePath(backend))),
		StorageBackend:         backend,
		TimeoutCheckInterval:   v.getDuration("TIMEOUT_CHECK_INTERVAL", defaults.TimeoutCheckInterval),
		DisplayRefreshInterval: v.getDuration("DISPLAY_REFRESH_INTERVAL", defaults.DisplayRefreshInterval),
		LogFile:                expandHome(v.getString("LOG_FILE", defaults.LogFile)),
		LogLevel:               strings.ToLower(v.getString("LOG_LEVEL", defaults.LogLevel)),
		EnvFile:                envFile,
	}

	// Ensure storage directory exists
	if err := ensureDir(filepath.Dir(cfg.StorageLocation)); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		TrackingEnabled:        true,
		ShowNotifications:      true,
		SessionTimeout:         defaultSessionTimeoutMinutes * time.Minute,
		StorageLocation:        getDefaultStoragePath(BackendFile),
		StorageBackend:         BackendFile,
		TimeoutCheckInterval:   defaultTimeoutCheckInterval,
		DisplayRefreshInterval: defaultDisplayRefreshInterval,
		LogFile:                getDefaultLogPath(),
		LogLevel:               defaultLogLevel,
	}
}

// ClampSessionTimeout bounds a timeout in minutes to the supported range.
func ClampSessionTimeout(minutes int) time.Duration {
	switch {
	case minutes < MinSessionTimeoutMinutes:
		minutes = MinSessionTimeoutMinutes
	case minutes > MaxSessionTimeoutMinutes:
		minutes = MaxSessionTimeoutMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// values resolves keys from the environment first, then the .env file.
type values struct {
	file map[string]string
}

func (v values) lookup(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return strings.TrimSpace(v.file[key])
}

// getString retrieves a string value or returns the default.
func (v values) getString(key, defaultValue string) string {
	if value := v.lookup(key); value != "" {
		return value
	}
	return defaultValue
}

// getBool accepts the forms strconv.ParseBool does plus yes/no and on/off.
func (v values) getBool(key string, defaultValue bool) bool {
	value := strings.ToLower(v.lookup(key))
	switch value {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// getDuration retrieves a duration value or returns the default.
// Accepts values like "30s", "1m", "500ms". Non-positive values fall back.
func (v values) getDuration(key string, defaultValue time.Duration) time.Duration {
	value := v.lookup(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	// Try parsing as seconds if no unit specified
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getSessionTimeout reads whole minutes, clamped to the supported range.
func (v values) getSessionTimeout(key string) time.Duration {
	value := v.lookup(key)
	if value == "" {
		return defaultSessionTimeoutMinutes * time.Minute
	}
	minutes, err := strconv.Atoi(value)
	if err != nil {
		return defaultSessionTimeoutMinutes * time.Minute
	}
	return ClampSessionTimeout(minutes)
}

func (v values) getBackend(key string) string {
	switch strings.ToLower(v.lookup(key)) {
	case BackendSQLite, "sqlite3", "db":
		return BackendSQLite
	default:
		return BackendFile
	}
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "timekeeper", ".env"),
			filepath.Join(home, ".timekeeper", ".env"),
		)
	}

	return paths
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "timekeeper")
}

// getDefaultStoragePath returns the default ledger location for a backend.
func getDefaultStoragePath(backend string) string {
	name := "time-tracking.json"
	if backend == BackendSQLite {
		name = "timekeeper.db"
	}
	dir := configDir()
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// getDefaultLogPath returns the default log file path.
func getDefaultLogPath() string {
	dir := configDir()
	if dir == "" {
		return "timekeeper.log"
	}
	return filepath.Join(dir, "timekeeper.log")
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
