// Package timeshift re-derives a train's stop times from a new start time
// while keeping the spacing of the original timetable.
package timeshift

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/travigo/railresched/pkg/model"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")
var ErrInvalidStop = errors.New("invalid stop")

const (
	PlaceholderStationCode = "ORG"
	PlaceholderStationName = "Origin Station"
)

// Delta returns the signed difference between newAnchor and the original anchor of stops.
// ok is false when there is no original anchor to measure against.
func Delta(stops []*model.Stop, newAnchor time.Time) (delta time.Duration, ok bool) {
	if len(stops) == 0 || stops[0] == nil {
		return 0, false
	}

	originalAnchor := stops[0].AnchorTime()
	if originalAnchor == nil {
		return 0, false
	}

	return newAnchor.Sub(*originalAnchor), true
}

// Shift returns a copy of stops with the first stop moved to newAnchor and every
// later stop moved by the same delta. The input is never modified.
//
// The anchor stop's departure always mirrors its new arrival. An empty input
// produces a single placeholder stop at newAnchor.
func Shift(stops []*model.Stop, newAnchor time.Time) ([]*model.Stop, error) {
	if err := check(stops, newAnchor); err != nil {
		return nil, err
	}

	if len(stops) == 0 {
		return []*model.Stop{placeholder(newAnchor)}, nil
	}

	delta, _ := Delta(stops, newAnchor)

	var shifted []*model.Stop
	if err := copier.CopyWithOption(&shifted, stops, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("copying stops: %w", err)
	}

	// Timestamps are always rebuilt from the source stops so no pointer is shared with the input
	for i, stop := range stops {
		shifted[i].ScheduledArrival = offset(stop.ScheduledArrival, delta)
		shifted[i].ScheduledDeparture = offset(stop.ScheduledDeparture, delta)
	}

	shifted[0].ScheduledArrival = timePointer(newAnchor)
	shifted[0].ScheduledDeparture = timePointer(newAnchor)

	return shifted, nil
}

// check rejects input that would otherwise only be partially shifted
func check(stops []*model.Stop, newAnchor time.Time) error {
	if newAnchor.IsZero() {
		return fmt.Errorf("%w: new start time is not set", ErrInvalidTimestamp)
	}

	for i, stop := range stops {
		if stop == nil {
			return fmt.Errorf("%w: stop %d is empty", ErrInvalidStop, i)
		}
		if stop.ScheduledArrival != nil && stop.ScheduledArrival.IsZero() {
			return fmt.Errorf("%w: stop %d (%s) arrival", ErrInvalidTimestamp, i, stop.StationCode)
		}
		if stop.ScheduledDeparture != nil && stop.ScheduledDeparture.IsZero() {
			return fmt.Errorf("%w: stop %d (%s) departure", ErrInvalidTimestamp, i, stop.StationCode)
		}
	}

	return nil
}

func placeholder(anchor time.Time) *model.Stop {
	return &model.Stop{
		StationCode:        PlaceholderStationCode,
		StationName:        PlaceholderStationName,
		ScheduledArrival:   timePointer(anchor),
		ScheduledDeparture: timePointer(anchor),
	}
}

func offset(t *time.Time, delta time.Duration) *time.Time {
	if t == nil {
		return nil
	}

	return timePointer(t.Add(delta))
}

func timePointer(t time.Time) *time.Time {
	return &t
}
