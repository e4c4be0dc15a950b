package synthetic

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultStep   = 15 * time.Minute
	DefaultLength = 24 * time.Hour

	// MaxObservations bounds a single generation call. One day at a one second step fits.
	MaxObservations = 100_000
)

var (
	ErrInvalidStep    = errors.New("step must be a positive duration")
	ErrWindowTooLarge = fmt.Errorf("window produces more than %d observations", MaxObservations)
)

type Window struct {
	Start time.Time
	End   time.Time
	Step  time.Duration
}

// NewWindow resolves the optional window bounds. A missing start is now, a
// missing end is one day after start and a zero step is DefaultStep.
func NewWindow(start *time.Time, end *time.Time, step time.Duration, now time.Time) (Window, error) {
	window := Window{
		Start: now,
		Step:  step,
	}

	if start != nil && !start.IsZero() {
		window.Start = *start
	}

	if end != nil && !end.IsZero() {
		window.End = *end
	} else {
		window.End = window.Start.Add(DefaultLength)
	}

	if window.Step == 0 {
		window.Step = DefaultStep
	}
	if window.Step < 0 {
		return Window{}, ErrInvalidStep
	}
	if window.Count() > MaxObservations {
		return Window{}, ErrWindowTooLarge
	}

	return window, nil
}

// Count is the number of observations the window produces
func (w Window) Count() int {
	if w.Step <= 0 || w.End.Before(w.Start) {
		return 0
	}

	return int(w.End.Sub(w.Start)/w.Step) + 1
}
