package weather

import (
	"fmt"
	"strings"
	"time"

	iso8601 "github.com/senseyeio/duration"
)

// ParseStep reads a generation step given either as an ISO-8601 duration
// (PT15M) or a Go duration (15m). An empty value is zero, meaning the default.
func ParseStep(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	if strings.HasPrefix(strings.ToUpper(value), "P") {
		duration, err := iso8601.ParseISO8601(strings.ToUpper(value))
		if err != nil {
			return 0, fmt.Errorf("parsing step %q: %w", value, err)
		}
		if duration.Y != 0 || duration.M != 0 {
			return 0, fmt.Errorf("step %q: years and months have no fixed length", value)
		}

		// Days and weeks are fixed length here so the cadence never drifts across DST changes
		reference := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
		return duration.Shift(reference).Sub(reference), nil
	}

	step, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parsing step %q: %w", value, err)
	}

	return step, nil
}
