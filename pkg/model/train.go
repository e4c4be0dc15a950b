package model

import (
	"strconv"
	"time"
)

type Train struct {
	TrainNumber int    `json:"train_number" groups:"basic" validate:"gt=0"`
	TrainName   string `json:"train_name" groups:"basic" validate:"required"`

	OriginCode string `json:"origin_code" groups:"basic" validate:"required"`
	OriginName string `json:"origin_name" groups:"basic" validate:"required"`
	DestCode   string `json:"dest_code" groups:"basic" validate:"required"`
	DestName   string `json:"dest_name" groups:"basic" validate:"required"`

	TotalJourneyDays int `json:"total_journey_days" groups:"basic"`

	// Stops in visiting order along the route
	Schedule []*Stop `json:"schedule" groups:"detailed" validate:"dive"`

	CreationDateTime     time.Time `json:"created_at" groups:"internal"`
	ModificationDateTime time.Time `json:"updated_at" groups:"internal"`
}

func (t *Train) Identifier() string {
	return strconv.Itoa(t.TrainNumber)
}

// StartTime is the anchor time of the train: the first stop's arrival, falling back to its departure
func (t *Train) StartTime() *time.Time {
	if len(t.Schedule) == 0 || t.Schedule[0] == nil {
		return nil
	}

	return t.Schedule[0].AnchorTime()
}

// ArrivalsOrdered reports whether the present arrival times never decrease in visiting order
func (t *Train) ArrivalsOrdered() bool {
	var previous *time.Time

	for _, stop := range t.Schedule {
		if stop == nil || stop.ScheduledArrival == nil {
			continue
		}

		if previous != nil && stop.ScheduledArrival.Before(*previous) {
			return false
		}
		previous = stop.ScheduledArrival
	}

	return true
}
