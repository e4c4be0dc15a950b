package timetable

import (
	"encoding/json"

	"github.com/travigo/railresched/pkg/model"
)

// fieldsOf returns the top level keys present in a JSON object body
func fieldsOf(body []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, &model.ValidationError{Err: err}
	}

	return fields, nil
}

// mergeTrain applies the submitted fields onto train. A submitted schedule
// replaces the stored one outright.
func mergeTrain(train *model.Train, body []byte) error {
	fields, err := fieldsOf(body)
	if err != nil {
		return err
	}

	trainNumber := train.TrainNumber
	created := train.CreationDateTime

	if _, ok := fields["schedule"]; ok {
		train.Schedule = nil
	}

	if err := json.Unmarshal(body, train); err != nil {
		return &model.ValidationError{Err: err}
	}

	train.TrainNumber = trainNumber
	train.CreationDateTime = created

	return nil
}

func mergeStation(station *model.Station, body []byte) error {
	fields, err := fieldsOf(body)
	if err != nil {
		return err
	}

	stationCode := station.StationCode
	created := station.CreationDateTime

	if _, ok := fields["forecasts"]; ok {
		station.Forecasts = nil
	}

	if err := json.Unmarshal(body, station); err != nil {
		return &model.ValidationError{Err: err}
	}

	station.StationCode = stationCode
	station.CreationDateTime = created

	return nil
}
