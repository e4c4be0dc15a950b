package weather

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/timetable"
)

// Scheduler periodically provisions the next interval of observations for the selected stations
type Scheduler struct {
	scheduler *gocron.Scheduler

	service  *Service
	stations timetable.StationStore
	selector Selector
	interval time.Duration
	step     time.Duration
}

func NewScheduler(service *Service, stations timetable.StationStore, selector Selector, interval time.Duration, step time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}

	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		stations:  stations,
		selector:  selector,
		interval:  interval,
		step:      step,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunOnce provisions one interval starting now
func (s *Scheduler) RunOnce() {
	log.Info().Msg("Running scheduled weather provisioning")

	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	stations, err := s.stations.AllStations(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load stations")
		return
	}

	selected, err := Select(stations, s.selector)
	if err != nil {
		log.Error().Err(err).Msg("Failed to select stations")
		return
	}

	start := s.service.now()
	// Windows include their end, stop short of the next run's start
	end := start.Add(s.interval - time.Millisecond)

	outcomes := s.service.Provision(ctx, selected, SimulateRequest{
		Start: &start,
		End:   &end,
		Step:  s.step,
	})

	inserted := 0
	for _, outcome := range outcomes {
		if outcome.Result != nil {
			inserted += outcome.Result.InsertedCount
		}
	}

	log.Info().Int("stations", len(outcomes)).Int("inserted", inserted).Msg("Completed scheduled weather provisioning")
}
