package timeshift

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/railresched/pkg/model"
)

var day = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

func clock(hour, minute int) *time.Time {
	t := day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	return &t
}

func train101() []*model.Stop {
	return []*model.Stop{
		{StationCode: "NDLS", StationName: "New Delhi", DayOfJourney: 1, ScheduledArrival: clock(8, 0)},
		{StationCode: "CNB", StationName: "Kanpur Central", DayOfJourney: 1, ScheduledArrival: clock(9, 30), ScheduledDeparture: clock(9, 35)},
		{StationCode: "PRYJ", StationName: "Prayagraj", DayOfJourney: 1, ScheduledArrival: clock(11, 0)},
	}
}

func assertTime(t *testing.T, expected *time.Time, actual *time.Time) {
	t.Helper()

	require.NotNil(t, actual)
	assert.True(t, expected.Equal(*actual), "expected %s, got %s", expected, actual)
}

func TestShiftTrain101(t *testing.T) {
	shifted, err := Shift(train101(), *clock(8, 45))
	require.NoError(t, err)
	require.Len(t, shifted, 3)

	assertTime(t, clock(8, 45), shifted[0].ScheduledArrival)
	assertTime(t, clock(8, 45), shifted[0].ScheduledDeparture)
	assertTime(t, clock(10, 15), shifted[1].ScheduledArrival)
	assertTime(t, clock(10, 20), shifted[1].ScheduledDeparture)
	assertTime(t, clock(11, 45), shifted[2].ScheduledArrival)
	assert.Nil(t, shifted[2].ScheduledDeparture)

	assert.Equal(t, "CNB", shifted[1].StationCode)
	assert.Equal(t, "Kanpur Central", shifted[1].StationName)
}

func TestShiftNegativeDelta(t *testing.T) {
	shifted, err := Shift(train101(), *clock(7, 0))
	require.NoError(t, err)

	assertTime(t, clock(8, 30), shifted[1].ScheduledArrival)
	assertTime(t, clock(10, 0), shifted[2].ScheduledArrival)
}

func TestShiftDoesNotModifyInput(t *testing.T) {
	stops := train101()
	_, err := Shift(stops, *clock(12, 0))
	require.NoError(t, err)

	assertTime(t, clock(8, 0), stops[0].ScheduledArrival)
	assert.Nil(t, stops[0].ScheduledDeparture)
	assertTime(t, clock(9, 30), stops[1].ScheduledArrival)
	assertTime(t, clock(11, 0), stops[2].ScheduledArrival)
}

func TestShiftZeroDeltaIsIdentity(t *testing.T) {
	stops := train101()
	shifted, err := Shift(stops, *clock(8, 0))
	require.NoError(t, err)

	assertTime(t, clock(8, 0), shifted[0].ScheduledArrival)
	assertTime(t, clock(8, 0), shifted[0].ScheduledDeparture)

	for i := 1; i < len(stops); i++ {
		assert.Equal(t, stops[i].ScheduledArrival == nil, shifted[i].ScheduledArrival == nil)
		assert.Equal(t, stops[i].ScheduledDeparture == nil, shifted[i].ScheduledDeparture == nil)

		if stops[i].ScheduledArrival != nil {
			assertTime(t, stops[i].ScheduledArrival, shifted[i].ScheduledArrival)
		}
		if stops[i].ScheduledDeparture != nil {
			assertTime(t, stops[i].ScheduledDeparture, shifted[i].ScheduledDeparture)
		}
	}
}

func TestShiftEmptyProducesPlaceholder(t *testing.T) {
	shifted, err := Shift(nil, *clock(6, 15))
	require.NoError(t, err)
	require.Len(t, shifted, 1)

	assert.Equal(t, PlaceholderStationCode, shifted[0].StationCode)
	assertTime(t, clock(6, 15), shifted[0].ScheduledArrival)
	assertTime(t, clock(6, 15), shifted[0].ScheduledDeparture)
}

func TestShiftAnchorFallsBackToDeparture(t *testing.T) {
	stops := train101()
	stops[0].ScheduledArrival = nil
	stops[0].ScheduledDeparture = clock(8, 10)

	shifted, err := Shift(stops, *clock(8, 40))
	require.NoError(t, err)

	assertTime(t, clock(8, 40), shifted[0].ScheduledArrival)
	assertTime(t, clock(10, 0), shifted[1].ScheduledArrival)
	assertTime(t, clock(10, 5), shifted[1].ScheduledDeparture)
}

func TestShiftWithoutOriginalAnchorOnlyReplacesFirstStop(t *testing.T) {
	stops := train101()
	stops[0].ScheduledArrival = nil

	shifted, err := Shift(stops, *clock(5, 0))
	require.NoError(t, err)

	assertTime(t, clock(5, 0), shifted[0].ScheduledArrival)
	assertTime(t, clock(5, 0), shifted[0].ScheduledDeparture)
	assertTime(t, clock(9, 30), shifted[1].ScheduledArrival)
	assertTime(t, clock(11, 0), shifted[2].ScheduledArrival)

	_, ok := Delta(stops, *clock(5, 0))
	assert.False(t, ok)
}

func TestShiftNeverFabricatesFields(t *testing.T) {
	stops := []*model.Stop{
		{StationCode: "A", ScheduledArrival: clock(1, 0)},
		{StationCode: "B"},
		{StationCode: "C", ScheduledDeparture: clock(3, 0)},
	}

	shifted, err := Shift(stops, *clock(2, 0))
	require.NoError(t, err)

	assert.Nil(t, shifted[1].ScheduledArrival)
	assert.Nil(t, shifted[1].ScheduledDeparture)
	assert.Nil(t, shifted[2].ScheduledArrival)
	assertTime(t, clock(4, 0), shifted[2].ScheduledDeparture)
}

func TestShiftRejectsInvalidInput(t *testing.T) {
	_, err := Shift(train101(), time.Time{})
	assert.ErrorIs(t, err, ErrInvalidTimestamp)

	stops := train101()
	stops[2].ScheduledArrival = &time.Time{}
	_, err = Shift(stops, *clock(9, 0))
	assert.ErrorIs(t, err, ErrInvalidTimestamp)

	stops = train101()
	stops[1] = nil
	_, err = Shift(stops, *clock(9, 0))
	assert.ErrorIs(t, err, ErrInvalidStop)
}

func TestShiftPreservesSpacing(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		var stops []*model.Stop
		current := day
		for i := 0; i < 1+random.Intn(12); i++ {
			current = current.Add(time.Duration(random.Intn(180)) * time.Minute)
			stop := &model.Stop{StationCode: "S"}
			if random.Intn(4) != 0 {
				arrival := current
				stop.ScheduledArrival = &arrival
			}
			if random.Intn(2) == 0 {
				departure := current.Add(5 * time.Minute)
				stop.ScheduledDeparture = &departure
			}
			stops = append(stops, stop)
		}

		newAnchor := day.Add(time.Duration(random.Intn(48*60)-24*60) * time.Minute)
		delta, hasAnchor := Delta(stops, newAnchor)

		shifted, err := Shift(stops, newAnchor)
		require.NoError(t, err)
		require.Len(t, shifted, len(stops))

		assert.True(t, shifted[0].ScheduledArrival.Equal(newAnchor))
		assert.True(t, shifted[0].ScheduledDeparture.Equal(newAnchor))

		for i := 1; i < len(stops); i++ {
			if !hasAnchor {
				delta = 0
			}
			if stops[i].ScheduledArrival != nil {
				assert.Equal(t, delta, shifted[i].ScheduledArrival.Sub(*stops[i].ScheduledArrival))
			} else {
				assert.Nil(t, shifted[i].ScheduledArrival)
			}
			if stops[i].ScheduledDeparture != nil {
				assert.Equal(t, delta, shifted[i].ScheduledDeparture.Sub(*stops[i].ScheduledDeparture))
			} else {
				assert.Nil(t, shifted[i].ScheduledDeparture)
			}
		}
	}
}
