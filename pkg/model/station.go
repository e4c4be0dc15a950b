package model

import (
	"sort"
	"time"
)

type Station struct {
	StationCode string `json:"station_code" groups:"basic" validate:"required"`
	StationName string `json:"station_name" groups:"basic" validate:"required"`

	Lat      float64 `json:"lat" groups:"basic"`
	Lon      float64 `json:"lon" groups:"basic"`
	Altitude float64 `json:"altitude" groups:"basic"`

	// Ordered by Timestamp, see SortForecasts
	Forecasts []*Forecast `json:"forecasts" groups:"detailed" validate:"dive"`

	CreationDateTime     time.Time `json:"created_at" groups:"internal"`
	ModificationDateTime time.Time `json:"updated_at" groups:"internal"`
}

func (s *Station) SortForecasts() {
	sort.SliceStable(s.Forecasts, func(i, j int) bool {
		return s.Forecasts[i].Timestamp.Before(s.Forecasts[j].Timestamp)
	})
}

// ApplyDefaults fills the default maintenance type and orders the forecasts by time
func (s *Station) ApplyDefaults() {
	for _, forecast := range s.Forecasts {
		if forecast != nil && forecast.MaintenanceType == "" {
			forecast.MaintenanceType = MaintenanceTypeNone
		}
	}

	s.SortForecasts()
}
