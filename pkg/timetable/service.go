package timetable

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/cachedresults"
	"github.com/travigo/railresched/pkg/elastic_client"
	"github.com/travigo/railresched/pkg/events"
	"github.com/travigo/railresched/pkg/metrics"
	"github.com/travigo/railresched/pkg/model"
	"github.com/travigo/railresched/pkg/pagination"
	"github.com/travigo/railresched/pkg/timeshift"
)

// Service is the administrative surface over trains and stations.
// Caches and Events are optional.
type Service struct {
	Trains   TrainStore
	Stations StationStore

	TrainCache   *cachedresults.Cache
	StationCache *cachedresults.Cache

	Events events.Publisher

	Now func() time.Time
}

type RetimeResult struct {
	Train *model.Train `json:"train"`

	// Delta is how far downstream stops moved, zero when the train had no anchor time
	Delta     time.Duration `json:"delta"`
	HadAnchor bool          `json:"had_anchor"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}

	return time.Now()
}

func (s *Service) ListTrains(ctx context.Context, query TrainQuery) (pagination.Result[*model.Train], error) {
	return s.Trains.ListTrains(ctx, query)
}

func (s *Service) GetTrain(ctx context.Context, trainNumber int) (*model.Train, error) {
	identifier := fmt.Sprint(trainNumber)

	var cached model.Train
	if s.TrainCache.Get(ctx, identifier, &cached) {
		return &cached, nil
	}

	train, err := s.Trains.GetTrain(ctx, trainNumber)
	if err != nil {
		return nil, err
	}

	s.TrainCache.Set(ctx, identifier, train)

	return train, nil
}

func (s *Service) CreateTrain(ctx context.Context, train *model.Train) (*model.Train, error) {
	if err := train.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	train.CreationDateTime = now
	train.ModificationDateTime = now

	if err := s.Trains.InsertTrain(ctx, train); err != nil {
		return nil, err
	}

	events.Emit(s.Events, events.NewEvent(events.EventTypeTrainCreated, map[string]interface{}{
		"train_number": train.TrainNumber,
	}))

	return train, nil
}

// UpdateTrain overwrites the fields present in body on the stored train.
// The train number is the path identity and cannot be changed.
func (s *Service) UpdateTrain(ctx context.Context, trainNumber int, body []byte) (*model.Train, error) {
	train, err := s.Trains.GetTrain(ctx, trainNumber)
	if err != nil {
		return nil, err
	}

	if err := mergeTrain(train, body); err != nil {
		return nil, err
	}
	train.ModificationDateTime = s.now()

	if err := train.Validate(); err != nil {
		return nil, err
	}

	if err := s.Trains.ReplaceTrain(ctx, train); err != nil {
		return nil, err
	}
	s.TrainCache.Invalidate(ctx, train.Identifier())

	events.Emit(s.Events, events.NewEvent(events.EventTypeTrainUpdated, map[string]interface{}{
		"train_number": train.TrainNumber,
	}))

	return train, nil
}

// RetimeTrain moves the train to start at newStart, carrying every downstream
// stop by the same amount, and persists the corrected schedule.
func (s *Service) RetimeTrain(ctx context.Context, trainNumber int, newStart time.Time) (*RetimeResult, error) {
	train, err := s.Trains.GetTrain(ctx, trainNumber)
	if err != nil {
		return nil, err
	}

	delta, hadAnchor := timeshift.Delta(train.Schedule, newStart)

	schedule, err := timeshift.Shift(train.Schedule, newStart)
	if err != nil {
		return nil, &model.ValidationError{Err: err}
	}

	train.Schedule = schedule
	train.ModificationDateTime = s.now()

	if err := s.Trains.ReplaceTrain(ctx, train); err != nil {
		return nil, err
	}
	s.TrainCache.Invalidate(ctx, train.Identifier())
	metrics.TrainsRetimed.Inc()

	log.Info().
		Int("train", train.TrainNumber).
		Time("start", newStart).
		Dur("delta", delta).
		Bool("anchor", hadAnchor).
		Msg("Retimed train")

	body := map[string]interface{}{
		"train_number": train.TrainNumber,
		"start_time":   newStart,
		"delta":        delta.String(),
		"had_anchor":   hadAnchor,
	}
	events.Emit(s.Events, events.NewEvent(events.EventTypeTrainRetimed, body))
	elastic_client.IndexDocument(elastic_client.IndexName("retimes", train.ModificationDateTime), body)

	return &RetimeResult{
		Train:     train,
		Delta:     delta,
		HadAnchor: hadAnchor,
	}, nil
}

func (s *Service) ListStations(ctx context.Context, params pagination.Params) (pagination.Result[*model.Station], error) {
	return s.Stations.ListStations(ctx, params)
}

func (s *Service) GetStation(ctx context.Context, stationCode string) (*model.Station, error) {
	var cached model.Station
	if s.StationCache.Get(ctx, stationCode, &cached) {
		return &cached, nil
	}

	station, err := s.Stations.GetStation(ctx, stationCode)
	if err != nil {
		return nil, err
	}

	s.StationCache.Set(ctx, stationCode, station)

	return station, nil
}

func (s *Service) CreateStation(ctx context.Context, station *model.Station) (*model.Station, error) {
	station.ApplyDefaults()

	if err := station.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	station.CreationDateTime = now
	station.ModificationDateTime = now

	if err := s.Stations.InsertStation(ctx, station); err != nil {
		return nil, err
	}

	events.Emit(s.Events, events.NewEvent(events.EventTypeStationCreated, map[string]interface{}{
		"station_code": station.StationCode,
	}))

	return station, nil
}

func (s *Service) UpdateStation(ctx context.Context, stationCode string, body []byte) (*model.Station, error) {
	station, err := s.Stations.GetStation(ctx, stationCode)
	if err != nil {
		return nil, err
	}

	if err := mergeStation(station, body); err != nil {
		return nil, err
	}
	station.ApplyDefaults()
	station.ModificationDateTime = s.now()

	if err := station.Validate(); err != nil {
		return nil, err
	}

	if err := s.Stations.ReplaceStation(ctx, station); err != nil {
		return nil, err
	}
	s.StationCache.Invalidate(ctx, station.StationCode)

	events.Emit(s.Events, events.NewEvent(events.EventTypeStationUpdated, map[string]interface{}{
		"station_code": station.StationCode,
	}))

	return station, nil
}
