package models

// TimeRange represents the selected history time range.
type TimeRange int

const (
	// TimeRange7Days shows the last 7 days.
	TimeRange7Days TimeRange = iota
	// TimeRange14Days shows the last 14 days.
	TimeRange14Days
	// TimeRange30Days shows the last 30 days.
	TimeRange30Days
	// TimeRangeAllTime shows every recorded day.
	TimeRangeAllTime
)

// String returns the display name for a time range.
func (t TimeRange) String() string {
	switch t {
	case TimeRange7Days:
		return "7 Days"
	case TimeRange14Days:
		return "14 Days"
	case TimeRange30Days:
		return "30 Days"
	case TimeRangeAllTime:
		return "All Time"
	default:
		return "Unknown"
	}
}

// Days returns the number of days for the time range (0 = unlimited).
func (t TimeRange) Days() int {
	switch t {
	case TimeRange7Days:
		return 7
	case TimeRange14Days:
		return 14
	case TimeRange30Days:
		return 30
	case TimeRangeAllTime:
		return 0
	default:
		return 7
	}
}

// Next cycles to the next time range.
func (t TimeRange) Next() TimeRange {
	return (t + 1) % 4
}
