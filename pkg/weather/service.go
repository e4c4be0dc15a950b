// Package weather provisions and serves synthetic weather observations for stations.
package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/elastic_client"
	"github.com/travigo/railresched/pkg/events"
	"github.com/travigo/railresched/pkg/metrics"
	"github.com/travigo/railresched/pkg/model"
	"github.com/travigo/railresched/pkg/synthetic"
)

var ErrStationRequired = errors.New("station code is required")

type SimulateRequest struct {
	Start *time.Time
	End   *time.Time
	Step  time.Duration
}

type SimulateResult struct {
	InsertedCount int    `json:"inserted_count"`
	StationCode   string `json:"station_code"`
	BatchID       string `json:"batch_id"`
}

type Service struct {
	Observations ObservationStore
	Events       events.Publisher

	Now          func() time.Time
	NewGenerator func() *synthetic.Generator
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}

	return time.Now()
}

func (s *Service) generator() *synthetic.Generator {
	if s.NewGenerator != nil {
		return s.NewGenerator()
	}

	return synthetic.NewGenerator(time.Now().UnixNano())
}

// Simulate generates the series for the requested window and stores it in a
// single bulk write. Nothing is retried; a failed write stores nothing.
func (s *Service) Simulate(ctx context.Context, stationCode string, request SimulateRequest) (*SimulateResult, error) {
	if stationCode == "" {
		return nil, &model.ValidationError{Err: ErrStationRequired}
	}

	window, err := synthetic.NewWindow(request.Start, request.End, request.Step, s.now())
	if err != nil {
		return nil, &model.ValidationError{Err: err}
	}

	batchID := uuid.NewString()

	observations := s.generator().GenerateWindow(stationCode, window)
	for _, observation := range observations {
		observation.BatchID = batchID
	}

	inserted, err := s.Observations.InsertObservations(ctx, observations)
	if err != nil {
		return nil, fmt.Errorf("storing observations for %s: %w", stationCode, err)
	}
	metrics.ObservationsGenerated.WithLabelValues(stationCode).Add(float64(inserted))

	log.Info().
		Str("station", stationCode).
		Str("batch", batchID).
		Time("start", window.Start).
		Time("end", window.End).
		Dur("step", window.Step).
		Int("inserted", inserted).
		Msg("Generated weather observations")

	for _, observation := range observations {
		elastic_client.IndexDocument(elastic_client.IndexName("weather", observation.Timestamp), observation)
	}

	events.Emit(s.Events, events.NewEvent(events.EventTypeObservationsGenerated, map[string]interface{}{
		"station_code":   stationCode,
		"batch_id":       batchID,
		"inserted_count": inserted,
	}))

	return &SimulateResult{
		InsertedCount: inserted,
		StationCode:   stationCode,
		BatchID:       batchID,
	}, nil
}

func (s *Service) ListObservations(ctx context.Context, stationCode string) ([]*model.Observation, error) {
	return s.Observations.ListObservations(ctx, stationCode)
}
