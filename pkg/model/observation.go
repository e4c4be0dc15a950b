package model

import "time"

type Condition string

const (
	ConditionSunny  Condition = "Sunny"
	ConditionCloudy Condition = "Cloudy"
	ConditionRainy  Condition = "Rainy"
	ConditionStormy Condition = "Stormy"
	ConditionFoggy  Condition = "Foggy"
	ConditionSnowy  Condition = "Snowy"
)

var Conditions = []Condition{
	ConditionSunny,
	ConditionCloudy,
	ConditionRainy,
	ConditionStormy,
	ConditionFoggy,
	ConditionSnowy,
}

// Observation is a single synthetic weather reading for a station
type Observation struct {
	StationCode string    `json:"station_code" csv:"station_code" validate:"required"`
	Timestamp   time.Time `json:"timestamp" csv:"timestamp" validate:"required"`

	Temperature float64 `json:"temperature" csv:"temperature"` // Celsius
	Rainfall    float64 `json:"rainfall" csv:"rainfall"`       // mm
	WindSpeed   float64 `json:"wind_speed" csv:"wind_speed"`   // km/h
	Visibility  float64 `json:"visibility" csv:"visibility"`   // metres

	Condition Condition `json:"condition" csv:"condition" validate:"required,oneof=Sunny Cloudy Rainy Stormy Foggy Snowy"`

	BatchID string `json:"batch_id,omitempty" csv:"batch_id" bson:",omitempty"`
}
