package dbwatch

import (
	"github.com/travigo/railresched/pkg/events"
	"github.com/travigo/railresched/pkg/model"
	"go.mongodb.org/mongo-driver/bson"
)

func TrainChangeEvent(change *Change) (*events.Event, error) {
	var train model.Train
	if err := bson.Unmarshal(change.FullDocument, &train); err != nil {
		return nil, err
	}

	eventType := events.EventTypeTrainUpdated
	if change.OperationType == "insert" {
		eventType = events.EventTypeTrainCreated
	}

	return events.NewEvent(eventType, map[string]interface{}{
		"train_number": train.TrainNumber,
		"operation":    change.OperationType,
		"source":       "dbwatch",
	}), nil
}

func StationChangeEvent(change *Change) (*events.Event, error) {
	var station model.Station
	if err := bson.Unmarshal(change.FullDocument, &station); err != nil {
		return nil, err
	}

	eventType := events.EventTypeStationUpdated
	if change.OperationType == "insert" {
		eventType = events.EventTypeStationCreated
	}

	return events.NewEvent(eventType, map[string]interface{}{
		"station_code": station.StationCode,
		"operation":    change.OperationType,
		"source":       "dbwatch",
	}), nil
}
