package models

import "time"

// DaySummary is one row of the recent-days breakdown.
type DaySummary struct {
	Date     string
	Total    time.Duration
	Sessions int
}

// Summary is the statistics view produced for front ends.
// Totals already include the in-flight session, if any.
type Summary struct {
	GeneratedAt   time.Time
	Tracking      bool
	Today         time.Duration
	SessionsToday int
	AllTime       time.Duration
	LastDays      []DaySummary
}

// TrackedDays returns how many days in the breakdown have any time.
func (s Summary) TrackedDays() int {
	n := 0
	for _, d := range s.LastDays {
		if d.Total > 0 {
			n++
		}
	}
	return n
}

// DailyAverage returns the mean time over tracked days in the breakdown.
func (s Summary) DailyAverage() time.Duration {
	n := s.TrackedDays()
	if n == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range s.LastDays {
		sum += d.Total
	}
	return sum / time.Duration(n)
}

// PeakDay returns the busiest day in the breakdown, or "" when empty.
func (s Summary) PeakDay() (string, time.Duration) {
	var peak DaySummary
	for _, d := range s.LastDays {
		if d.Total > peak.Total {
			peak = d
		}
	}
	return peak.Date, peak.Total
}
