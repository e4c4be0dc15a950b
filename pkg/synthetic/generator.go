// Package synthetic produces fixed-cadence series of bounded random weather observations.
package synthetic

import (
	"math/rand"
	"time"

	"github.com/travigo/railresched/pkg/model"
)

// Generator samples observations. It is not safe for concurrent use; create one per goroutine.
type Generator struct {
	Ranges Ranges
	Random *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		Ranges: DefaultRanges,
		Random: rand.New(rand.NewSource(seed)),
	}
}

// Generate emits one observation at every step from start up to and including end.
// An end before start or a non-positive step produces nothing. Output stops
// after MaxObservations records; NewWindow rejects windows that would reach it.
func (g *Generator) Generate(stationCode string, start time.Time, end time.Time, step time.Duration) []*model.Observation {
	window := Window{Start: start, End: end, Step: step}
	observations := make([]*model.Observation, 0, min(window.Count(), MaxObservations))

	if step <= 0 {
		return observations
	}

	for current := start; !current.After(end) && len(observations) < MaxObservations; current = current.Add(step) {
		observations = append(observations, g.sample(stationCode, current))
	}

	return observations
}

func (g *Generator) GenerateWindow(stationCode string, window Window) []*model.Observation {
	return g.Generate(stationCode, window.Start, window.End, window.Step)
}

func (g *Generator) sample(stationCode string, timestamp time.Time) *model.Observation {
	return &model.Observation{
		StationCode: stationCode,
		Timestamp:   timestamp,
		Temperature: g.Ranges.Temperature.Sample(g.Random),
		Rainfall:    g.Ranges.Rainfall.Sample(g.Random),
		WindSpeed:   g.Ranges.WindSpeed.Sample(g.Random),
		Visibility:  g.Ranges.Visibility.Sample(g.Random),
		Condition:   model.Conditions[g.Random.Intn(len(model.Conditions))],
	}
}
