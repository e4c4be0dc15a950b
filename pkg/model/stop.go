package model

import (
	"time"

	"github.com/travigo/railresched/pkg/util"
)

type Stop struct {
	StationCode string `json:"station_code" groups:"basic" validate:"required"`
	StationName string `json:"station_name" groups:"basic" validate:"required"`

	Lat      float64 `json:"lat" groups:"detailed"`
	Lon      float64 `json:"lon" groups:"detailed"`
	Altitude float64 `json:"altitude" groups:"detailed"`

	DayOfWeek    string `json:"day_of_week" groups:"detailed"`
	DayOfJourney int    `json:"day_of_journey" groups:"detailed"`

	TracksOnRoute int `json:"tracks_on_route" groups:"detailed"`
	TrainsNearby  int `json:"trains_nearby" groups:"detailed"`

	ScheduledArrival   *time.Time `json:"scheduled_arrival,omitempty" groups:"basic" bson:",omitempty"`
	ScheduledDeparture *time.Time `json:"scheduled_departure,omitempty" groups:"basic" bson:",omitempty"`
}

// AnchorTime returns the arrival if present, otherwise the departure
func (s *Stop) AnchorTime() *time.Time {
	if s.ScheduledArrival != nil {
		return s.ScheduledArrival
	}

	return s.ScheduledDeparture
}

func (s *Stop) ArrivesWithin(start time.Time, end time.Time) bool {
	if s.ScheduledArrival == nil {
		return false
	}

	return util.WithinInclusive(*s.ScheduledArrival, start, end)
}
