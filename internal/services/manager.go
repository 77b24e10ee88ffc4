// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/timekeeper-tui/internal/activity"
	"github.com/j-veylop/timekeeper-tui/internal/config"
	"github.com/j-veylop/timekeeper-tui/internal/ledger"
	"github.com/j-veylop/timekeeper-tui/internal/logger"
	"github.com/j-veylop/timekeeper-tui/internal/models"
	"github.com/j-veylop/timekeeper-tui/internal/notify"
	"github.com/j-veylop/timekeeper-tui/internal/storage"
	"github.com/j-veylop/timekeeper-tui/internal/tracker"
)

// NotificationTitle is the title used for desktop notifications.
const NotificationTitle = "Timekeeper"

type (
	// TrackingStartedEvent is emitted when a session opens.
	TrackingStartedEvent struct {
		Summary string
	}

	// TrackingStoppedEvent is emitted when a session is stopped explicitly.
	TrackingStoppedEvent struct {
		Summary string
	}

	// TrackingPausedEvent is emitted when a session is closed for inactivity.
	TrackingPausedEvent struct {
		Summary string
	}

	// DataResetEvent is emitted after all tracked time was cleared.
	DataResetEvent struct {
		Summary string
	}

	// ConfigChangedEvent is emitted when the settings file was reloaded.
	// The host applies it with ApplyConfig on its own loop.
	ConfigChangedEvent struct {
		Config *config.Config
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (TrackingStartedEvent) isServiceEvent() {}
func (TrackingStoppedEvent) isServiceEvent() {}
func (TrackingPausedEvent) isServiceEvent()  {}
func (DataResetEvent) isServiceEvent()       {}
func (ConfigChangedEvent) isServiceEvent()   {}
func (ErrorEvent) isServiceEvent()           {}

// Manager wires configuration, storage, the tracker and the activity bus,
// and routes tracker signals to subscribers.
//
// Methods that touch the tracker must be called from one goroutine.
type Manager struct {
	mu          sync.RWMutex
	subscribers []chan<- ServiceEvent
	stopChan    chan struct{}
	closeOnce   sync.Once

	cfg      *config.Config
	store    storage.Store
	tracker  *tracker.Tracker
	bus      *activity.Bus
	notifier notify.Notifier
	watcher  *config.Watcher

	unsubscribeActivity func()
	now                 func() time.Time
	contextLabel        string
	logLevel            string
	autoStart           bool
	watch               bool
	startupErrors       []error
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore replaces the store selected by the configuration.
func WithStore(s storage.Store) Option {
	return func(m *Manager) { m.store = s }
}

// WithNotifier replaces the desktop notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithContextLabel sets the label recorded on new sessions.
func WithContextLabel(label string) Option {
	return func(m *Manager) { m.contextLabel = label }
}

// WithLogLevel pins the log level. Reloaded settings keep it.
func WithLogLevel(level string) Option {
	return func(m *Manager) { m.logLevel = level }
}

// WithoutAutoStart keeps tracking idle even when it is enabled. One-shot
// CLI commands use it so they never record a session of their own.
func WithoutAutoStart() Option {
	return func(m *Manager) { m.autoStart = false }
}

// WithoutWatcher disables settings hot reload.
func WithoutWatcher() Option {
	return func(m *Manager) { m.watch = false }
}

// NewManager creates a new service manager. Storage problems never fail
// construction: the manager starts with whatever data could be read and
// reports the problems through StartupErrors.
func NewManager(cfg *config.Config, opts ...Option) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	m := &Manager{
		stopChan:  make(chan struct{}),
		cfg:       cfg,
		bus:       activity.NewBus(),
		notifier:  notify.Desktop{},
		now:       time.Now,
		autoStart: true,
		watch:     true,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cfg = m.withOverrides(cfg)

	if m.store == nil {
		store, err := OpenStore(cfg.StorageBackend, cfg.StorageLocation)
		if err != nil {
			logger.Error("failed to open storage, tracking will not be saved",
				"backend", cfg.StorageBackend, "location", cfg.StorageLocation, "error", err)
			m.startupErrors = append(m.startupErrors, err)
		} else {
			m.store = store
		}
	}

	m.tracker = tracker.New(m.loadLedger(), m.store,
		tracker.WithTimeout(cfg.SessionTimeout),
		tracker.WithListener(m.listener()),
	)
	m.unsubscribeActivity = m.bus.OnActivity(m.tracker.NotifyActivity)

	if m.watch && cfg.EnvFile != "" {
		w, err := config.Watch(cfg.EnvFile)
		if err != nil {
			logger.Warn("settings hot reload disabled", "path", cfg.EnvFile, "error", err)
		} else {
			m.watcher = w
			go m.routeEvents()
		}
	}

	if m.autoStart && cfg.TrackingEnabled {
		m.StartTracking()
	}

	return m, nil
}

// loadLedger reads the stored ledger. Missing data is an empty ledger;
// unreadable or malformed data is logged and recorded as a startup error.
func (m *Manager) loadLedger() *ledger.Ledger {
	if m.store == nil {
		return ledger.New()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	raw, err := m.store.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		logger.Info("no tracking data yet", "location", m.store.Location())
		return ledger.New()
	case err != nil:
		logger.Warn("failed to load tracking data, starting empty", "location", m.store.Location(), "error", err)
		m.startupErrors = append(m.startupErrors, err)
		return ledger.New()
	}

	l, err := ledger.LoadChecked(raw)
	if err != nil {
		logger.Warn("tracking data had invalid records", "location", m.store.Location(), "error", err)
		m.startupErrors = append(m.startupErrors, err)
	}
	logger.Info("tracking data loaded", "location", m.store.Location(), "days", l.Len())
	return l
}

// listener turns tracker signals into notifications and service events.
func (m *Manager) listener() tracker.Listener {
	return tracker.ListenerFuncs{
		Started: func(summary string) {
			m.notify(summary)
			m.broadcast(TrackingStartedEvent{Summary: summary})
		},
		Stopped: func(summary string) {
			m.notify(summary)
			m.broadcast(TrackingStoppedEvent{Summary: summary})
		},
		PausedForInactivity: func(summary string) {
			m.notify(summary)
			m.broadcast(TrackingPausedEvent{Summary: summary})
		},
		DataReset: func(summary string) {
			m.notify(summary)
			m.broadcast(DataResetEvent{Summary: summary})
		},
		Error: func(err error) {
			m.broadcast(ErrorEvent{Service: "storage", Error: err})
		},
	}
}

func (m *Manager) notify(message string) {
	if !m.cfg.ShowNotifications || m.notifier == nil {
		return
	}
	if err := m.notifier.Notify(NotificationTitle, message); err != nil {
		logger.Debug("notification failed", "error", err)
	}
}

// routeEvents forwards settings reloads to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case change := <-m.watcher.Changes():
			if change.Err != nil {
				m.broadcast(ErrorEvent{Service: "config", Error: change.Err})
				continue
			}
			m.broadcast(ConfigChangedEvent{Config: change.Config})

		case <-m.stopChan:
			return
		}
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// StartupErrors returns problems found while opening storage and loading
// data. The manager keeps running on an empty or partial ledger.
func (m *Manager) StartupErrors() []error {
	return m.startupErrors
}

// Config returns the current configuration snapshot.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// StoreLocation describes where tracking data is saved.
func (m *Manager) StoreLocation() string {
	if m.store == nil {
		return "(not saved)"
	}
	return m.store.Location()
}

// NotifyActivity reports user activity at t.
func (m *Manager) NotifyActivity(t time.Time) {
	m.bus.Emit(t)
}

// StartTracking opens a session. It returns false if one is already open.
func (m *Manager) StartTracking() bool {
	return m.tracker.Start(m.now(), m.contextLabel)
}

// StopTracking closes the open session. It returns false when idle.
func (m *Manager) StopTracking() bool {
	_, ok := m.tracker.Stop(m.now())
	return ok
}

// CheckTimeout closes the session after inactivity. It returns true if a
// session was closed.
func (m *Manager) CheckTimeout() bool {
	return m.tracker.CheckTimeout(m.now())
}

// IsTracking reports whether a session is open.
func (m *Manager) IsTracking() bool {
	return m.tracker.IsActive()
}

// CurrentSession returns the open session, if any.
func (m *Manager) CurrentSession() (models.Session, bool) {
	return m.tracker.Current()
}

// LastActivity returns the latest activity of the open session.
func (m *Manager) LastActivity() time.Time {
	return m.tracker.LastActivity()
}

// Timeout returns the effective inactivity timeout.
func (m *Manager) Timeout() time.Duration {
	return m.tracker.Timeout()
}

// ElapsedToday returns today's total including the open session.
func (m *Manager) ElapsedToday() time.Duration {
	return m.tracker.ElapsedToday(m.now())
}

// ElapsedAllTime returns the all-time total including the open session.
func (m *Manager) ElapsedAllTime() time.Duration {
	return m.tracker.ElapsedAllTime(m.now())
}

// Statistics returns the summary view.
func (m *Manager) Statistics() models.Summary {
	return m.tracker.Summary(m.now())
}

// History returns per-day totals for a time range, newest first.
func (m *Manager) History(r models.TimeRange) []models.DaySummary {
	return m.tracker.History(r.Days(), m.now())
}

// Export writes the serialized ledger to w.
func (m *Manager) Export(w io.Writer) error {
	data, err := m.tracker.Export()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// ExportTo writes the serialized ledger to a file.
func (m *Manager) ExportTo(path string) error {
	data, err := m.tracker.Export()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	logger.Info("tracking data exported", "path", path, "bytes", len(data))
	return nil
}

// ResetData discards the open session and all recorded time. Callers must
// have obtained confirmation. The error reports a failed save.
func (m *Manager) ResetData() error {
	return m.tracker.Reset(m.now())
}

// ApplyConfig switches to a new configuration snapshot.
func (m *Manager) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	cfg = m.withOverrides(cfg)
	old := m.cfg
	m.cfg = cfg

	m.tracker.SetTimeout(cfg.SessionTimeout)
	logger.SetLevel(cfg.LogLevel)

	if cfg.StorageBackend != old.StorageBackend || cfg.StorageLocation != old.StorageLocation {
		logger.Warn("storage settings change on next start",
			"backend", cfg.StorageBackend, "location", cfg.StorageLocation)
	}

	if cfg.TrackingEnabled != old.TrackingEnabled {
		if cfg.TrackingEnabled {
			m.StartTracking()
		} else {
			m.StopTracking()
		}
	}
	logger.Info("configuration applied",
		"tracking_enabled", cfg.TrackingEnabled, "timeout", m.tracker.Timeout())
}

// withOverrides returns cfg with the pinned settings applied. The snapshot
// passed in is never modified.
func (m *Manager) withOverrides(cfg *config.Config) *config.Config {
	if m.logLevel == "" || cfg.LogLevel == m.logLevel {
		return cfg
	}
	c := *cfg
	c.LogLevel = m.logLevel
	return &c
}

// Close flushes the open session and releases every resource.
func (m *Manager) Close() error {
	var errs []error

	m.closeOnce.Do(func() {
		if m.tracker != nil {
			m.tracker.Shutdown(m.now())
		}
		if m.unsubscribeActivity != nil {
			m.unsubscribeActivity()
		}

		close(m.stopChan)

		if m.watcher != nil {
			if err := m.watcher.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if m.store != nil {
			if err := m.store.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})

	return errors.Join(errs...)
}
