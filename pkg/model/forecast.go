package model

import "time"

type MaintenanceType string

const (
	MaintenanceTypeNone  MaintenanceType = "None"
	MaintenanceTypeMinor MaintenanceType = "Minor"
	MaintenanceTypeMajor MaintenanceType = "Major"
)

var MaintenanceTypes = []MaintenanceType{MaintenanceTypeNone, MaintenanceTypeMinor, MaintenanceTypeMajor}

type Forecast struct {
	Timestamp       time.Time       `json:"timestamp" groups:"basic" validate:"required"`
	TracksOnRoute   int             `json:"tracks_on_route" groups:"basic"`
	MaintenanceType MaintenanceType `json:"maintenance_type" groups:"basic" validate:"omitempty,oneof=None Minor Major"`
	TrainsNearby    int             `json:"trains_nearby" groups:"basic"`
}
