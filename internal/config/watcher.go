package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/timekeeper-tui/internal/logger"
)

const debounceInterval = 100 * time.Millisecond

// Change is one reload result. Exactly one of Config and Err is set.
type Change struct {
	Config *Config
	Err    error
}

// Watcher reloads the configuration when its .env file is written.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan Change
	stop    chan struct{}

	mu            sync.Mutex
	debounceTimer *time.Timer
	closed        bool
}

// Watch starts watching envFile. The directory is watched so editors that
// replace the file on save are seen too.
func Watch(envFile string) (*Watcher, error) {
	if envFile == "" {
		return nil, fmt.Errorf("no env file to watch")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(envFile)); err != nil {
		if closeErr := fw.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to watch %s: %w", envFile, err)
	}

	w := &Watcher{
		path:    envFile,
		watcher: fw,
		changes: make(chan Change, 8),
		stop:    make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// Changes delivers reloaded snapshots.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// watchLoop handles file system events with debouncing.
func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.mu.Lock()
			if !w.closed {
				if w.debounceTimer != nil {
					w.debounceTimer.Stop()
				}
				w.debounceTimer = time.AfterFunc(debounceInterval, w.reload)
			}
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(Change{Err: err})

		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFrom(w.path)
	if err != nil {
		logger.Warn("config reload failed", "path", w.path, "error", err)
		w.send(Change{Err: err})
		return
	}
	logger.Debug("config reloaded", "path", w.path)
	w.send(Change{Config: cfg})
}

// send delivers a change without blocking, dropping the oldest if full.
func (w *Watcher) send(c Change) {
	select {
	case w.changes <- c:
	default:
		select {
		case <-w.changes:
		default:
		}
		select {
		case w.changes <- c:
		default:
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()

	close(w.stop)
	return w.watcher.Close()
}
