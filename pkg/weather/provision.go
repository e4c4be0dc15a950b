package weather

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/railresched/pkg/model"
)

const provisionConcurrency = 8

type ProvisionOutcome struct {
	StationCode string
	Result      *SimulateResult
	Err         error
}

// Provision runs Simulate for every station concurrently. Each station is its
// own bulk write so one failure does not affect the others.
func (s *Service) Provision(ctx context.Context, stations []*model.Station, request SimulateRequest) []ProvisionOutcome {
	p := pool.NewWithResults[ProvisionOutcome]().WithMaxGoroutines(provisionConcurrency)

	for _, station := range stations {
		stationCode := station.StationCode

		p.Go(func() ProvisionOutcome {
			result, err := s.Simulate(ctx, stationCode, request)
			if err != nil {
				log.Error().Err(err).Str("station", stationCode).Msg("Failed to provision weather")
			}

			return ProvisionOutcome{
				StationCode: stationCode,
				Result:      result,
				Err:         err,
			}
		})
	}

	return p.Wait()
}
