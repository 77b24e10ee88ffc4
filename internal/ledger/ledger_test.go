package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/timekeeper-tui/internal/models"
)

func at(day string, clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", day+" "+clock, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func closedSession(day, from string, d time.Duration) models.Session {
	start := at(day, from)
	return models.NewSession(start, "").Close(start.Add(d))
}

func TestLoad_EmptyInputs(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("  \n")} {
		l, err := LoadChecked(raw)
		require.NoError(t, err)
		assert.Equal(t, 0, l.Len())
	}
}

func TestLoad_CorruptFallsBackToEmpty(t *testing.T) {
	l, err := LoadChecked([]byte(`{"not": "a list"`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedData)
	assert.Equal(t, 0, l.Len())

	assert.Equal(t, 0, Load([]byte("garbage")).Len())
}

func TestLoad_IgnoresUnknownFields(t *testing.T) {
	raw := []byte(`[
	  {"date": "2024-03-01", "totalTime": 1000, "color": "blue",
	   "sessions": [{"date": "2024-03-01", "startTime": 5000, "endTime": 6000, "duration": 1000, "project": "x"}]}
	]`)

	l, err := LoadChecked(raw)
	require.NoError(t, err)

	b, ok := l.BucketFor("2024-03-01")
	require.True(t, ok)
	assert.Equal(t, int64(1000), b.TotalTime)
	assert.Len(t, b.Sessions, 1)
}

func TestLoad_RejectsMalformedRecords(t *testing.T) {
	raw := []byte(`[
	  {"date": "2024-03-01", "totalTime": 3000, "sessions": [
	    {"date": "2024-03-01", "startTime": 1000, "endTime": 2000, "duration": 1000},
	    {"date": "2024-03-01", "startTime": 5000, "endTime": 3000, "duration": -2000}
	  ]},
	  {"date": "2024-03-01", "totalTime": 500, "sessions": []},
	  {"date": "yesterday", "totalTime": 0, "sessions": []}
	]`)

	l, err := LoadChecked(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedData)

	assert.Equal(t, 1, l.Len(), "duplicate and undated buckets are dropped")
	b, ok := l.BucketFor("2024-03-01")
	require.True(t, ok)
	assert.Len(t, b.Sessions, 1)
	assert.Equal(t, int64(1000), b.TotalTime, "total is rebuilt from surviving sessions")
}

func TestRecord_TotalMatchesSessionSum(t *testing.T) {
	l := New()
	durations := []time.Duration{4 * time.Minute, 90 * time.Second, 0, time.Hour}

	for i, d := range durations {
		b := l.Record(closedSession("2024-03-01", fmt.Sprintf("1%d:00:00", i), d))
		assert.Equal(t, b.SessionSum(), b.TotalTime, "after record %d", i)
		assert.Len(t, b.Sessions, i+1)
	}

	other := l.Record(closedSession("2024-03-02", "09:00:00", time.Minute))
	assert.Equal(t, int64(60000), other.TotalTime)
	assert.Equal(t, 2, l.Len())
}

func TestRecord_ReturnsCopy(t *testing.T) {
	l := New()
	b := l.Record(closedSession("2024-03-01", "10:00:00", time.Minute))
	b.Sessions[0].Duration = 1

	stored, ok := l.BucketFor("2024-03-01")
	require.True(t, ok)
	assert.Equal(t, int64(60000), stored.Sessions[0].Duration)
}

func TestSerialize_RoundTrip(t *testing.T) {
	l := New()
	l.Record(closedSession("2024-03-02", "10:00:00", 4*time.Minute))
	l.Record(closedSession("2024-03-01", "08:00:00", 30*time.Second))
	s := closedSession("2024-03-02", "12:00:00", time.Hour)
	s.ActiveFile = "/work/main.go"
	l.Record(s)

	data, err := l.Serialize()
	require.NoError(t, err)

	loaded, err := LoadChecked(data)
	require.NoError(t, err)
	assert.Equal(t, l.Buckets(), loaded.Buckets())
	assert.Equal(t, l.AllTimeTotal(), loaded.AllTimeTotal())

	again, err := loaded.Serialize()
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again), "load/save cycle must be byte-stable")
}

func TestSerialize_FieldOrder(t *testing.T) {
	l := New()
	l.Record(models.Session{DayKey: "2024-03-01", StartTime: 1, EndTime: 3, Duration: 2})

	data, err := l.Serialize()
	require.NoError(t, err)

	want := `[
  {
    "date": "2024-03-01",
    "totalTime": 2,
    "sessions": [
      {
        "date": "2024-03-01",
        "startTime": 1,
        "endTime": 3,
        "duration": 2
      }
    ]
  }
]`
	assert.Equal(t, want, string(data))
}

func TestSerialize_Empty(t *testing.T) {
	data, err := New().Serialize()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestBucketFor_Missing(t *testing.T) {
	_, ok := New().BucketFor("2024-03-01")
	assert.False(t, ok)
}

func TestRecent_LastSevenDays(t *testing.T) {
	today := at("2024-03-20", "15:00:00")
	l := New()
	for offset := 0; offset <= 10; offset++ {
		day := models.DayKey(today.AddDate(0, 0, -offset))
		l.Record(closedSession(day, "09:00:00", time.Duration(offset+1)*time.Minute))
	}
	l.Record(closedSession("2024-03-21", "09:00:00", time.Minute))

	recent := l.Recent(7, today)
	require.Len(t, recent, 7)

	assert.Equal(t, "2024-03-20", recent[0].Date)
	for i := 1; i < len(recent); i++ {
		assert.Greater(t, recent[i-1].Date, recent[i].Date, "sorted newest first")
	}
	for _, b := range recent {
		assert.NotEqual(t, "2024-03-12", b.Date, "today-8 is outside the window")
		assert.NotEqual(t, "2024-03-21", b.Date, "future days are outside the window")
		assert.GreaterOrEqual(t, b.Date, "2024-03-13")
	}
}

func TestRecent_SparseWindowIncludesLowerBound(t *testing.T) {
	today := at("2024-03-20", "15:00:00")
	l := New()
	l.Record(closedSession("2024-03-13", "09:00:00", time.Minute))
	l.Record(closedSession("2024-03-12", "09:00:00", time.Minute))

	recent := l.Recent(7, today)
	require.Len(t, recent, 1)
	assert.Equal(t, "2024-03-13", recent[0].Date)

	assert.Nil(t, l.Recent(0, today))
}

func TestAllTimeTotalAndReset(t *testing.T) {
	l := New()
	l.Record(closedSession("2024-03-01", "10:00:00", time.Hour))
	l.Record(closedSession("2024-03-02", "10:00:00", 30*time.Minute))
	assert.Equal(t, 90*time.Minute, l.AllTimeTotal())

	l.Reset()
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, time.Duration(0), l.AllTimeTotal())
	_, ok := l.BucketFor("2024-03-01")
	assert.False(t, ok)

	b := l.Record(closedSession("2024-03-01", "11:00:00", time.Minute))
	assert.Equal(t, int64(60000), b.TotalTime, "ledger is usable after reset")
}
