package util

import (
	"time"
)

const DateFormat = "2006-01-02"

// StartOfDay returns midnight of the calendar day containing t, in t's location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last millisecond of the calendar day containing t
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// ParseDate parses a YYYY-MM-DD calendar day, falling back to RFC3339 timestamps.
// Calendar days are interpreted in UTC.
func ParseDate(value string) (time.Time, error) {
	if day, err := time.ParseInLocation(DateFormat, value, time.UTC); err == nil {
		return day, nil
	}

	return time.Parse(time.RFC3339, value)
}

func WithinInclusive(t time.Time, start time.Time, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
