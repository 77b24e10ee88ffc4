// Package tracker implements the Idle/Active session state machine and the
// display-time merge of the open session with recorded history.
//
// A Tracker is driven from a single goroutine (the UI update loop or a CLI
// command) and holds no locks.
package tracker

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/j-veylop/timekeeper-tui/internal/ledger"
	"github.com/j-veylop/timekeeper-tui/internal/logger"
	"github.com/j-veylop/timekeeper-tui/internal/models"
	"github.com/j-veylop/timekeeper-tui/internal/storage"
)

const (
	// MinTimeout is the floor applied to non-positive inactivity timeouts.
	MinTimeout = time.Minute

	// DefaultTimeout is used when no timeout is configured.
	DefaultTimeout = 5 * time.Minute

	// SummaryDays is the length of the recent-days breakdown in Summary.
	SummaryDays = 7

	saveTimeout = 5 * time.Second
)

// State is the tracker state.
type State int

const (
	// Idle means no session is open.
	Idle State = iota
	// Active means exactly one session is open.
	Active
)

// String returns the display name of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "tracking"
	default:
		return "unknown"
	}
}

// Tracker owns the open session and decides when it becomes durable.
type Tracker struct {
	ledger   *ledger.Ledger
	store    storage.Store
	listener Listener
	timeout  time.Duration

	session      *models.Session
	lastActivity time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithListener sets the signal receiver.
func WithListener(l Listener) Option {
	return func(t *Tracker) {
		if l != nil {
			t.listener = l
		}
	}
}

// WithTimeout sets the inactivity timeout.
func WithTimeout(d time.Duration) Option {
	return func(t *Tracker) {
		t.timeout = clampTimeout(d)
	}
}

// New creates an idle tracker over l. A nil store disables persistence.
func New(l *ledger.Ledger, store storage.Store, opts ...Option) *Tracker {
	if l == nil {
		l = ledger.New()
	}
	t := &Tracker{
		ledger:   l,
		store:    store,
		listener: NopListener{},
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func clampTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return MinTimeout
	}
	return d
}

// SetTimeout applies a new inactivity timeout. The open session, if any,
// is judged against the new value from the next CheckTimeout on.
func (t *Tracker) SetTimeout(d time.Duration) {
	t.timeout = clampTimeout(d)
}

// Timeout returns the effective inactivity timeout.
func (t *Tracker) Timeout() time.Duration {
	return t.timeout
}

// State returns Idle or Active.
func (t *Tracker) State() State {
	if t.session != nil {
		return Active
	}
	return Idle
}

// IsActive reports whether a session is open.
func (t *Tracker) IsActive() bool {
	return t.session != nil
}

// Current returns a copy of the open session.
func (t *Tracker) Current() (models.Session, bool) {
	if t.session == nil {
		return models.Session{}, false
	}
	return *t.session, true
}

// LastActivity returns the latest activity seen by the open session, or the
// zero time when idle.
func (t *Tracker) LastActivity() time.Time {
	if t.session == nil {
		return time.Time{}
	}
	return t.lastActivity
}

// Ledger returns the underlying ledger for read-only queries.
func (t *Tracker) Ledger() *ledger.Ledger {
	return t.ledger
}

// Start opens a session at now. It is a no-op returning false while a
// session is already open.
func (t *Tracker) Start(now time.Time, activeFile string) bool {
	if t.session != nil {
		return false
	}

	s := models.NewSession(now, activeFile)
	t.session = &s
	t.lastActivity = now

	logger.Info("tracking started", "day", s.DayKey, "active_file", activeFile)
	t.listener.OnStarted(fmt.Sprintf("Tracking started (today %s)",
		models.FormatMinutes(t.ElapsedToday(now))))
	return true
}

// NotifyActivity extends the open session. Out-of-order or duplicate
// timestamps are harmless.
func (t *Tracker) NotifyActivity(at time.Time) {
	if t.session == nil {
		return
	}
	if at.After(t.lastActivity) {
		t.lastActivity = at
	}
}

// CheckTimeout closes the open session when no activity was seen for longer
// than the timeout. It returns true if the session was closed.
func (t *Tracker) CheckTimeout(now time.Time) bool {
	if t.session == nil {
		return false
	}
	idle := now.Sub(t.lastActivity)
	if idle <= t.timeout {
		return false
	}

	closed := t.close(now)
	logger.Info("tracking paused for inactivity",
		"day", closed.DayKey, "idle", idle.Round(time.Second), "duration", closed.Length())
	t.listener.OnPausedForInactivity(fmt.Sprintf("Tracking paused after %s of inactivity (today %s)",
		models.FormatMinutes(t.timeout), models.FormatMinutes(t.ElapsedToday(now))))
	return true
}

// Stop closes the open session at now. It returns the closed session, or
// false when idle.
func (t *Tracker) Stop(now time.Time) (models.Session, bool) {
	if t.session == nil {
		return models.Session{}, false
	}

	closed := t.close(now)
	logger.Info("tracking stopped", "day", closed.DayKey, "duration", closed.Length())
	t.listener.OnStopped(fmt.Sprintf("Tracking stopped: session %s, today %s",
		models.FormatMinutes(closed.Length()), models.FormatMinutes(t.ElapsedToday(now))))
	return closed, true
}

// Shutdown is the final flush: an open session is closed and recorded.
func (t *Tracker) Shutdown(now time.Time) {
	t.Stop(now)
}

// Reset discards the open session without recording it, then clears the
// ledger and persists the empty state. Callers must confirm with the user
// first. A failed save is returned; memory stays cleared and the stored
// data is left as it was.
func (t *Tracker) Reset(now time.Time) error {
	if t.session != nil {
		logger.Warn("discarding open session on reset",
			"day", t.session.DayKey, "elapsed", t.session.ElapsedAt(now))
		t.session = nil
		t.lastActivity = time.Time{}
	}

	t.ledger.Reset()
	if err := t.persist(); err != nil {
		return err
	}

	logger.Info("tracking data reset")
	t.listener.OnDataReset("All tracked time was cleared")
	return nil
}

// ElapsedToday is today's recorded total plus the open session when it
// belongs to today. A session that crossed midnight stays credited to the
// day it started on.
func (t *Tracker) ElapsedToday(now time.Time) time.Duration {
	today := models.DayKey(now)

	var total time.Duration
	if b, ok := t.ledger.BucketFor(today); ok {
		total = b.Total()
	}
	if t.session != nil && t.session.DayKey == today {
		total += t.session.ElapsedAt(now)
	}
	return total
}

// ElapsedAllTime is the recorded total plus the open session.
func (t *Tracker) ElapsedAllTime(now time.Time) time.Duration {
	total := t.ledger.AllTimeTotal()
	if t.session != nil {
		total += t.session.ElapsedAt(now)
	}
	return total
}

// History returns per-day totals within [now-days, now], newest first and
// capped at days rows, with the open session merged into its day. Zero or
// negative days returns every recorded day.
func (t *Tracker) History(days int, now time.Time) []models.DaySummary {
	var buckets []models.DailyBucket
	if days > 0 {
		buckets = t.ledger.Recent(days, now)
	} else {
		buckets = t.ledger.Buckets()
	}

	rows := make([]models.DaySummary, 0, len(buckets)+1)
	for _, b := range buckets {
		rows = append(rows, models.DaySummary{
			Date:     b.Date,
			Total:    b.Total(),
			Sessions: len(b.Sessions),
		})
	}

	if t.session != nil && inWindow(t.session.DayKey, days, now) {
		elapsed := t.session.ElapsedAt(now)
		merged := false
		for i := range rows {
			if rows[i].Date == t.session.DayKey {
				rows[i].Total += elapsed
				rows[i].Sessions++
				merged = true
				break
			}
		}
		if !merged {
			rows = append(rows, models.DaySummary{Date: t.session.DayKey, Total: elapsed, Sessions: 1})
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	if days > 0 && len(rows) > days {
		rows = rows[:days]
	}
	return rows
}

func inWindow(day string, days int, now time.Time) bool {
	if days <= 0 {
		return true
	}
	return day >= models.DayKey(now.AddDate(0, 0, -days)) && day <= models.DayKey(now)
}

// Summary builds the statistics view at now.
func (t *Tracker) Summary(now time.Time) models.Summary {
	today := models.DayKey(now)

	sessionsToday := 0
	if b, ok := t.ledger.BucketFor(today); ok {
		sessionsToday = len(b.Sessions)
	}
	if t.session != nil && t.session.DayKey == today {
		sessionsToday++
	}

	return models.Summary{
		GeneratedAt:   now,
		Tracking:      t.IsActive(),
		Today:         t.ElapsedToday(now),
		SessionsToday: sessionsToday,
		AllTime:       t.ElapsedAllTime(now),
		LastDays:      t.History(SummaryDays, now),
	}
}

// Export returns the serialized ledger. The open session is not included.
func (t *Tracker) Export() ([]byte, error) {
	return t.ledger.Serialize()
}

// close records the open session ended at now and persists the ledger.
func (t *Tracker) close(now time.Time) models.Session {
	closed := t.session.Close(now)
	t.session = nil
	t.lastActivity = time.Time{}

	bucket := t.ledger.Record(closed)
	logger.Debug("session recorded",
		"day", bucket.Date, "sessions", len(bucket.Sessions), "total", bucket.Total())

	_ = t.persist()
	return closed
}

// persist saves the ledger. Failures are logged and reported to the
// listener; in-memory state is kept so the next save includes it.
func (t *Tracker) persist() error {
	if t.store == nil {
		return nil
	}

	data, err := t.ledger.Serialize()
	if err != nil {
		logger.Error("failed to serialize ledger", "error", err)
		t.listener.OnError(err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := t.store.Save(ctx, data); err != nil {
		err = fmt.Errorf("failed to save tracking data to %s: %w", t.store.Location(), err)
		logger.Error("failed to save ledger", "error", err)
		t.listener.OnError(err)
		return err
	}
	return nil
}
