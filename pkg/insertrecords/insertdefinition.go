package insertrecords

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/travigo/railresched/pkg/database"
	"github.com/travigo/railresched/pkg/model"
	"github.com/travigo/railresched/pkg/timetable"
)

// InsertDefinition is one seed record. Data uses the same field names as the API.
type InsertDefinition struct {
	Collection string                 `yaml:"Collection"`
	Data       map[string]interface{} `yaml:"Data"`
}

func (i *InsertDefinition) body() ([]byte, error) {
	return json.Marshal(i.Data)
}

// Upsert creates the record, or overwrites the fields it names when the record already exists
func (i *InsertDefinition) Upsert(ctx context.Context, service *timetable.Service) error {
	body, err := i.body()
	if err != nil {
		return err
	}

	switch i.Collection {
	case database.TrainsCollection:
		var train model.Train
		if err := json.Unmarshal(body, &train); err != nil {
			return err
		}

		_, err = service.CreateTrain(ctx, &train)
		if errors.Is(err, timetable.ErrDuplicate) {
			_, err = service.UpdateTrain(ctx, train.TrainNumber, body)
		}

		return err
	case database.StationsCollection:
		var station model.Station
		if err := json.Unmarshal(body, &station); err != nil {
			return err
		}

		_, err = service.CreateStation(ctx, &station)
		if errors.Is(err, timetable.ErrDuplicate) {
			_, err = service.UpdateStation(ctx, station.StationCode, body)
		}

		return err
	default:
		return fmt.Errorf("unknown collection %q", i.Collection)
	}
}
