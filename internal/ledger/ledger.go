// Package ledger stores historical tracked time as per-day buckets and
// owns the on-disk JSON format.
package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bytedance/sonic"

	"github.com/j-veylop/timekeeper-tui/internal/models"
)

// ErrMalformedData is wrapped by LoadChecked when records were rejected.
var ErrMalformedData = errors.New("ledger: malformed data")

// codec keeps encoding/json compatible output so exports stay readable by
// other tools.
var codec = sonic.ConfigStd

// Ledger is the ordered collection of daily buckets, keyed by date.
// It is not safe for concurrent use.
type Ledger struct {
	buckets []models.DailyBucket
	index   map[string]int
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{
		buckets: make([]models.DailyBucket, 0),
		index:   make(map[string]int),
	}
}

// Load parses serialized buckets. Absent, unparseable or invalid input never
// fails: whatever cannot be used is dropped and an empty ledger is the floor.
func Load(raw []byte) *Ledger {
	l, _ := LoadChecked(raw)
	return l
}

// LoadChecked is Load that also reports what was rejected. The returned
// ledger is always usable; a non-nil error wraps ErrMalformedData.
func LoadChecked(raw []byte) (*Ledger, error) {
	l := New()
	if len(bytes.TrimSpace(raw)) == 0 {
		return l, nil
	}

	var decoded []models.DailyBucket
	if err := codec.Unmarshal(raw, &decoded); err != nil {
		return l, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	var problems []error
	for i, b := range decoded {
		if _, err := models.ParseDayKey(b.Date); err != nil {
			problems = append(problems, fmt.Errorf("bucket %d: invalid date %q", i, b.Date))
			continue
		}
		if _, dup := l.index[b.Date]; dup {
			problems = append(problems, fmt.Errorf("bucket %d: duplicate date %s", i, b.Date))
			continue
		}

		bucket := models.DailyBucket{Date: b.Date, Sessions: make([]models.Session, 0, len(b.Sessions))}
		for j, s := range b.Sessions {
			if err := s.Validate(); err != nil {
				problems = append(problems, fmt.Errorf("bucket %s session %d: %v", b.Date, j, err))
				continue
			}
			if s.DayKey != b.Date {
				problems = append(problems, fmt.Errorf("bucket %s session %d: belongs to %s", b.Date, j, s.DayKey))
				continue
			}
			bucket.Sessions = append(bucket.Sessions, s)
		}
		bucket.TotalTime = bucket.SessionSum()
		if bucket.TotalTime != b.TotalTime {
			problems = append(problems, fmt.Errorf("bucket %s: total %d rebuilt as %d", b.Date, b.TotalTime, bucket.TotalTime))
		}

		l.index[bucket.Date] = len(l.buckets)
		l.buckets = append(l.buckets, bucket)
	}

	if len(problems) > 0 {
		return l, fmt.Errorf("%w: %w", ErrMalformedData, errors.Join(problems...))
	}
	return l, nil
}

// Serialize encodes the ledger in insertion order with a stable field order.
// Load(Serialize(l)) reproduces l exactly.
func (l *Ledger) Serialize() ([]byte, error) {
	data, err := codec.MarshalIndent(l.buckets, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ledger: %w", err)
	}
	return data, nil
}

// Record folds a closed session into the bucket for its day, creating the
// bucket if needed, and returns a copy of the updated bucket.
func (l *Ledger) Record(s models.Session) models.DailyBucket {
	i, ok := l.index[s.DayKey]
	if !ok {
		i = len(l.buckets)
		l.index[s.DayKey] = i
		l.buckets = append(l.buckets, models.DailyBucket{
			Date:     s.DayKey,
			Sessions: make([]models.Session, 0, 1),
		})
	}

	b := &l.buckets[i]
	b.Sessions = append(b.Sessions, s)
	b.TotalTime += s.Duration
	return b.Clone()
}

// BucketFor returns the bucket for a day key, if any session was recorded.
func (l *Ledger) BucketFor(day string) (models.DailyBucket, bool) {
	i, ok := l.index[day]
	if !ok {
		return models.DailyBucket{}, false
	}
	return l.buckets[i].Clone(), true
}

// Recent returns buckets dated within [asOf-n days, asOf], newest first,
// capped at n entries.
func (l *Ledger) Recent(n int, asOf time.Time) []models.DailyBucket {
	if n <= 0 {
		return nil
	}
	from := models.DayKey(asOf.AddDate(0, 0, -n))
	to := models.DayKey(asOf)

	var out []models.DailyBucket
	for _, b := range l.buckets {
		if b.Date >= from && b.Date <= to {
			out = append(out, b.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// AllTimeTotal sums every bucket. Open sessions are not part of the ledger.
func (l *Ledger) AllTimeTotal() time.Duration {
	var total int64
	for _, b := range l.buckets {
		total += b.TotalTime
	}
	return time.Duration(total) * time.Millisecond
}

// Buckets returns a copy of all buckets in insertion order.
func (l *Ledger) Buckets() []models.DailyBucket {
	out := make([]models.DailyBucket, len(l.buckets))
	for i, b := range l.buckets {
		out[i] = b.Clone()
	}
	return out
}

// Len returns the number of buckets.
func (l *Ledger) Len() int {
	return len(l.buckets)
}

// Reset discards every bucket. Callers must obtain confirmation first.
func (l *Ledger) Reset() {
	l.buckets = make([]models.DailyBucket, 0)
	l.index = make(map[string]int)
}
