package synthetic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/railresched/pkg/model"
)

var midnight = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

func TestGenerateOneHourEveryFifteenMinutes(t *testing.T) {
	generator := NewGenerator(1)
	observations := generator.Generate("NDLS", midnight, midnight.Add(time.Hour), 15*time.Minute)

	require.Len(t, observations, 5)
	for i, observation := range observations {
		assert.Equal(t, "NDLS", observation.StationCode)
		assert.True(t, midnight.Add(time.Duration(i)*15*time.Minute).Equal(observation.Timestamp))
	}
}

func TestGenerateCountAndCadence(t *testing.T) {
	generator := NewGenerator(7)

	cases := []struct {
		start time.Time
		end   time.Time
		step  time.Duration
	}{
		{midnight, midnight, 15 * time.Minute},
		{midnight, midnight.Add(14 * time.Minute), 15 * time.Minute},
		{midnight.Add(7 * time.Minute), midnight.Add(24 * time.Hour), 15 * time.Minute},
		{midnight, midnight.Add(24 * time.Hour), 15 * time.Minute},
		{midnight.Add(13 * time.Second), midnight.Add(3*time.Hour + 59*time.Minute), 37 * time.Minute},
	}

	for _, c := range cases {
		observations := generator.Generate("SBC", c.start, c.end, c.step)
		expected := int(c.end.Sub(c.start)/c.step) + 1

		require.Len(t, observations, expected)
		assert.Equal(t, expected, Window{Start: c.start, End: c.end, Step: c.step}.Count())
		assert.True(t, observations[0].Timestamp.Equal(c.start))

		last := observations[len(observations)-1].Timestamp
		assert.False(t, last.After(c.end))
		assert.True(t, last.Add(c.step).After(c.end))

		for i := 1; i < len(observations); i++ {
			assert.Equal(t, c.step, observations[i].Timestamp.Sub(observations[i-1].Timestamp))
		}
	}
}

func TestGenerateEndBeforeStartIsEmpty(t *testing.T) {
	observations := NewGenerator(1).Generate("MAS", midnight, midnight.Add(-time.Minute), 15*time.Minute)
	assert.Empty(t, observations)
}

func TestGenerateNonPositiveStepIsEmpty(t *testing.T) {
	assert.Empty(t, NewGenerator(1).Generate("MAS", midnight, midnight.Add(time.Hour), 0))
	assert.Empty(t, NewGenerator(1).Generate("MAS", midnight, midnight.Add(time.Hour), -time.Minute))
}

func TestGenerateTinyStepIsBounded(t *testing.T) {
	var observations []*model.Observation
	assert.NotPanics(t, func() {
		observations = NewGenerator(1).Generate("MAS", midnight, midnight.Add(DefaultLength), time.Nanosecond)
	})
	require.Len(t, observations, MaxObservations)
	assert.Equal(t, midnight, observations[0].Timestamp)
	assert.Equal(t, midnight.Add((MaxObservations-1)*time.Nanosecond), observations[MaxObservations-1].Timestamp)
}

func TestNewWindowRejectsOversizedWindows(t *testing.T) {
	now := midnight

	_, err := NewWindow(nil, nil, time.Nanosecond, now)
	assert.ErrorIs(t, err, ErrWindowTooLarge)

	_, err = NewWindow(nil, nil, time.Millisecond, now)
	assert.ErrorIs(t, err, ErrWindowTooLarge)

	window, err := NewWindow(nil, nil, time.Second, now)
	require.NoError(t, err)
	assert.Equal(t, 86401, window.Count())
}

func TestGenerateValuesWithinRanges(t *testing.T) {
	generator := NewGenerator(time.Now().UnixNano())

	// 10,001 records at one-minute steps, both boundaries included
	observations := generator.Generate("HWH", midnight, midnight.Add(10000*time.Minute), time.Minute)
	require.Len(t, observations, 10001)

	seen := map[model.Condition]bool{}
	for _, observation := range observations {
		assert.True(t, DefaultRanges.Temperature.Contains(observation.Temperature), "temperature %f", observation.Temperature)
		assert.True(t, DefaultRanges.Rainfall.Contains(observation.Rainfall), "rainfall %f", observation.Rainfall)
		assert.True(t, DefaultRanges.WindSpeed.Contains(observation.WindSpeed), "wind %f", observation.WindSpeed)
		assert.True(t, DefaultRanges.Visibility.Contains(observation.Visibility), "visibility %f", observation.Visibility)
		assert.GreaterOrEqual(t, observation.Rainfall, 0.0)
		assert.True(t, observation.Condition.Valid())

		seen[observation.Condition] = true
	}

	assert.Len(t, seen, len(model.Conditions))
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	first := NewGenerator(99).Generate("MAS", midnight, midnight.Add(2*time.Hour), 15*time.Minute)
	second := NewGenerator(99).Generate("MAS", midnight, midnight.Add(2*time.Hour), 15*time.Minute)

	assert.Equal(t, first, second)
}

func TestNewWindowDefaults(t *testing.T) {
	now := midnight.Add(5*time.Hour + 3*time.Minute)

	window, err := NewWindow(nil, nil, 0, now)
	require.NoError(t, err)
	assert.Equal(t, now, window.Start)
	assert.Equal(t, now.Add(24*time.Hour), window.End)
	assert.Equal(t, DefaultStep, window.Step)
	assert.Equal(t, 97, window.Count())

	start := midnight
	window, err = NewWindow(&start, nil, time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, midnight.Add(24*time.Hour), window.End)
	assert.Equal(t, 25, window.Count())

	end := midnight.Add(-time.Hour)
	window, err = NewWindow(&start, &end, 0, now)
	require.NoError(t, err)
	assert.Equal(t, 0, window.Count())

	_, err = NewWindow(&start, nil, -time.Minute, now)
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestRangeSampleRoundsInsideBounds(t *testing.T) {
	generator := NewGenerator(3)
	narrow := Range{Min: 0.04, Max: 0.06, Precision: 1}

	for i := 0; i < 1000; i++ {
		assert.True(t, narrow.Contains(narrow.Sample(generator.Random)))
	}
}
