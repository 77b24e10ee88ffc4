// Package models defines data structures and domain types.
package models

import (
	"fmt"
	"time"
)

// DayLayout is the calendar date format used for day keys.
const DayLayout = "2006-01-02"

// Session is one contiguous interval of tracked activity.
// Timestamps are wall-clock milliseconds since the Unix epoch.
type Session struct {
	DayKey     string `json:"date"`
	StartTime  int64  `json:"startTime"`
	EndTime    int64  `json:"endTime"`
	Duration   int64  `json:"duration"`
	ActiveFile string `json:"activeFile,omitempty"`
}

// NewSession opens a session at the given instant. The day key is fixed
// here and never changes, even if the session crosses midnight.
func NewSession(start time.Time, activeFile string) Session {
	ms := start.UnixMilli()
	return Session{
		DayKey:     DayKey(start),
		StartTime:  ms,
		EndTime:    ms,
		ActiveFile: activeFile,
	}
}

// Close returns a closed copy of the session ending at end. An end before
// the start is clamped so the duration is never negative.
func (s Session) Close(end time.Time) Session {
	ms := end.UnixMilli()
	if ms < s.StartTime {
		ms = s.StartTime
	}
	s.EndTime = ms
	s.Duration = ms - s.StartTime
	return s
}

// Started returns the session start as a time.Time in local time.
func (s Session) Started() time.Time {
	return time.UnixMilli(s.StartTime)
}

// Length returns the closed duration as a time.Duration.
func (s Session) Length() time.Duration {
	return time.Duration(s.Duration) * time.Millisecond
}

// ElapsedAt returns how long an open session has been running at now.
func (s Session) ElapsedAt(now time.Time) time.Duration {
	d := now.UnixMilli() - s.StartTime
	if d < 0 {
		return 0
	}
	return time.Duration(d) * time.Millisecond
}

// Validate reports why a closed session violates its invariants, or nil.
func (s Session) Validate() error {
	if _, err := ParseDayKey(s.DayKey); err != nil {
		return fmt.Errorf("invalid session date %q", s.DayKey)
	}
	if s.Duration < 0 {
		return fmt.Errorf("negative duration %d", s.Duration)
	}
	if s.EndTime < s.StartTime {
		return fmt.Errorf("end time %d before start time %d", s.EndTime, s.StartTime)
	}
	if s.EndTime-s.StartTime != s.Duration {
		return fmt.Errorf("duration %d does not match interval %d", s.Duration, s.EndTime-s.StartTime)
	}
	return nil
}

// DailyBucket is the durable per-day aggregate of closed sessions.
type DailyBucket struct {
	Date      string    `json:"date"`
	TotalTime int64     `json:"totalTime"`
	Sessions  []Session `json:"sessions"`
}

// Total returns the bucket total as a time.Duration.
func (b DailyBucket) Total() time.Duration {
	return time.Duration(b.TotalTime) * time.Millisecond
}

// Clone returns a deep copy of the bucket.
func (b DailyBucket) Clone() DailyBucket {
	sessions := make([]Session, len(b.Sessions))
	copy(sessions, b.Sessions)
	b.Sessions = sessions
	return b
}

// SessionSum returns the sum of all session durations in milliseconds.
func (b DailyBucket) SessionSum() int64 {
	var sum int64
	for _, s := range b.Sessions {
		sum += s.Duration
	}
	return sum
}

// DayKey returns the calendar date of t in t's location.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDayKey parses a day key in local time.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, key, time.Local)
}

// FormatDuration renders a duration as "1h 02m 03s", "4m 05s" or "12s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatMinutes renders a duration at minute resolution, e.g. "3h 25m".
func FormatMinutes(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Minute)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
