package timetable

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eko/gocache/lib/v4/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/railresched/pkg/cachedresults"
	"github.com/travigo/railresched/pkg/events"
	"github.com/travigo/railresched/pkg/model"
	"github.com/travigo/railresched/pkg/pagination"
	"github.com/travigo/railresched/pkg/timeshift"
	"go.mongodb.org/mongo-driver/bson"
)

func at(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}

	return &t
}

func stop(code string, arrival string, departure string) *model.Stop {
	s := &model.Stop{StationCode: code, StationName: code + " Junction"}
	if arrival != "" {
		s.ScheduledArrival = at(arrival)
	}
	if departure != "" {
		s.ScheduledDeparture = at(departure)
	}

	return s
}

func train(number int, name string, schedule ...*model.Stop) *model.Train {
	return &model.Train{
		TrainNumber: number,
		TrainName:   name,
		OriginCode:  "MAS",
		OriginName:  "Chennai Central",
		DestCode:    "SBC",
		DestName:    "Bengaluru",
		Schedule:    schedule,
	}
}

func train101() *model.Train {
	return train(101, "Shatabdi Express",
		stop("MAS", "2024-05-01T08:00:00Z", "2024-05-01T08:05:00Z"),
		stop("KPD", "2024-05-01T09:30:00Z", "2024-05-01T09:32:00Z"),
		stop("SBC", "2024-05-01T11:00:00Z", ""),
	)
}

type recordingPublisher struct {
	published []*events.Event
}

func (p *recordingPublisher) Publish(event *events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func newService(t *testing.T) (*Service, *recordingPublisher) {
	t.Helper()

	publisher := &recordingPublisher{}
	memory := NewMemoryStore()

	return &Service{
		Trains:   memory,
		Stations: memory,
		Events:   publisher,
		Now: func() time.Time {
			return time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC)
		},
	}, publisher
}

func trainNumbers(result pagination.Result[*model.Train]) []int {
	numbers := []int{}
	for _, train := range result.Items {
		numbers = append(numbers, train.TrainNumber)
	}

	return numbers
}

func TestMemoryStoreTrains(t *testing.T) {
	ctx := context.Background()
	memory := NewMemoryStore()

	require.NoError(t, memory.InsertTrain(ctx, train101()))
	assert.ErrorIs(t, memory.InsertTrain(ctx, train101()), ErrDuplicate)

	stored, err := memory.GetTrain(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, "Shatabdi Express", stored.TrainName)
	require.Len(t, stored.Schedule, 3)
	assert.True(t, stored.Schedule[1].ScheduledArrival.Equal(*at("2024-05-01T09:30:00Z")))
	assert.Nil(t, stored.Schedule[2].ScheduledDeparture)

	// the store hands out copies
	stored.TrainName = "Changed"
	again, err := memory.GetTrain(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, "Shatabdi Express", again.TrainName)

	_, err = memory.GetTrain(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, memory.ReplaceTrain(ctx, train(999, "Ghost")), ErrNotFound)
}

func TestListTrainsFilters(t *testing.T) {
	ctx := context.Background()
	memory := NewMemoryStore()

	require.NoError(t, memory.InsertTrain(ctx, train101()))
	require.NoError(t, memory.InsertTrain(ctx, train(102, "Brindavan Express",
		stop("MAS", "2024-05-02T07:00:00Z", ""),
	)))
	require.NoError(t, memory.InsertTrain(ctx, train(103, "Chennai Mail",
		stop("CBE", "", "2024-04-30T22:00:00Z"),
		stop("ED", "2024-05-01T23:59:59.999Z", ""),
	)))
	require.NoError(t, memory.InsertTrain(ctx, train(104, "Night Mail",
		stop("MAS", "2024-05-02T00:00:00Z", ""),
	)))

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		query    TrainQuery
		expected []int
		total    int
	}{
		{
			name:     "no filter",
			query:    TrainQuery{Params: pagination.Params{Page: 1, Limit: 10}},
			expected: []int{101, 102, 103, 104},
			total:    4,
		},
		{
			name:     "date includes the last millisecond and excludes midnight after",
			query:    TrainQuery{Params: pagination.Params{Page: 1, Limit: 10}, Date: &day},
			expected: []int{101, 103},
			total:    2,
		},
		{
			name:     "text",
			query:    TrainQuery{Params: pagination.Params{Page: 1, Limit: 10}, Text: "MAIL"},
			expected: []int{103, 104},
			total:    2,
		},
		{
			name:     "text on station code",
			query:    TrainQuery{Params: pagination.Params{Page: 1, Limit: 10}, Text: "kpd"},
			expected: []int{101},
			total:    1,
		},
		{
			name:     "text on number",
			query:    TrainQuery{Params: pagination.Params{Page: 1, Limit: 10}, Text: "10"},
			expected: []int{101, 102, 103, 104},
			total:    4,
		},
		{
			name:     "date and text intersect",
			query:    TrainQuery{Params: pagination.Params{Page: 1, Limit: 10}, Date: &day, Text: "mail"},
			expected: []int{103},
			total:    1,
		},
		{
			name:     "second page",
			query:    TrainQuery{Params: pagination.Params{Page: 2, Limit: 3}},
			expected: []int{104},
			total:    4,
		},
		{
			name:     "beyond range",
			query:    TrainQuery{Params: pagination.Params{Page: 5, Limit: 3}},
			expected: []int{},
			total:    4,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := memory.ListTrains(ctx, test.query)
			require.NoError(t, err)

			assert.Equal(t, test.expected, trainNumbers(result))
			assert.Equal(t, test.total, result.Total)
		})
	}
}

func TestTrainFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, TrainFilter(TrainQuery{}))

	day := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)
	filter := TrainFilter(TrainQuery{Date: &day})

	elemMatch := filter["schedule"].(bson.M)["$elemMatch"].(bson.M)["scheduledarrival"].(bson.M)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), elemMatch["$gte"])
	assert.Equal(t, time.Date(2024, 5, 1, 23, 59, 59, 999000000, time.UTC), elemMatch["$lte"])

	combined := TrainFilter(TrainQuery{Date: &day, Text: "a.b"})
	clauses := combined["$and"].(bson.A)
	require.Len(t, clauses, 2)

	or := clauses[1].(bson.M)["$or"].(bson.A)
	assert.Equal(t, bson.M{"$regex": `a\.b`, "$options": "i"}, or[0].(bson.M)["trainname"])
}

func TestServiceRetimeTrain(t *testing.T) {
	ctx := context.Background()
	service, publisher := newService(t)

	_, err := service.CreateTrain(ctx, train101())
	require.NoError(t, err)

	result, err := service.RetimeTrain(ctx, 101, *at("2024-05-01T08:45:00Z"))
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, result.Delta)
	assert.True(t, result.HadAnchor)

	stored, err := service.GetTrain(ctx, 101)
	require.NoError(t, err)

	expected := []string{"2024-05-01T08:45:00Z", "2024-05-01T10:15:00Z", "2024-05-01T11:45:00Z"}
	for i, arrival := range expected {
		assert.True(t, stored.Schedule[i].ScheduledArrival.Equal(*at(arrival)), "stop %d", i)
	}
	assert.True(t, stored.Schedule[0].ScheduledDeparture.Equal(*at("2024-05-01T08:45:00Z")))
	assert.True(t, stored.Schedule[1].ScheduledDeparture.Equal(*at("2024-05-01T10:17:00Z")))
	assert.Nil(t, stored.Schedule[2].ScheduledDeparture)

	require.Len(t, publisher.published, 2)
	assert.Equal(t, events.EventTypeTrainCreated, publisher.published[0].Type)
	assert.Equal(t, events.EventTypeTrainRetimed, publisher.published[1].Type)
}

func TestServiceRetimeEmptySchedule(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	_, err := service.CreateTrain(ctx, train(201, "Empty"))
	require.NoError(t, err)

	result, err := service.RetimeTrain(ctx, 201, *at("2024-05-01T06:00:00Z"))
	require.NoError(t, err)
	assert.False(t, result.HadAnchor)

	require.Len(t, result.Train.Schedule, 1)
	assert.Equal(t, timeshift.PlaceholderStationCode, result.Train.Schedule[0].StationCode)
}

func TestServiceRetimeErrors(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	_, err := service.RetimeTrain(ctx, 101, *at("2024-05-01T06:00:00Z"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.CreateTrain(ctx, train101())
	require.NoError(t, err)

	_, err = service.RetimeTrain(ctx, 101, time.Time{})
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, timeshift.ErrInvalidTimestamp)
}

func TestServiceCreateTrainValidation(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	invalid := train101()
	invalid.TrainName = ""
	_, err := service.CreateTrain(ctx, invalid)
	assert.ErrorIs(t, err, ErrValidation)

	created, err := service.CreateTrain(ctx, train101())
	require.NoError(t, err)
	assert.Equal(t, service.Now(), created.CreationDateTime)

	_, err = service.CreateTrain(ctx, train101())
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestServiceUpdateTrain(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	_, err := service.CreateTrain(ctx, train101())
	require.NoError(t, err)

	updated, err := service.UpdateTrain(ctx, 101, []byte(`{"train_name": "Vande Bharat", "train_number": 555}`))
	require.NoError(t, err)
	assert.Equal(t, 101, updated.TrainNumber)
	assert.Equal(t, "Vande Bharat", updated.TrainName)
	assert.Len(t, updated.Schedule, 3, "fields not submitted are kept")

	updated, err = service.UpdateTrain(ctx, 101, []byte(`{"schedule": [{"station_code": "MAS", "station_name": "Chennai Central", "scheduled_arrival": "2024-05-03T06:00:00Z"}]}`))
	require.NoError(t, err)
	require.Len(t, updated.Schedule, 1)
	assert.Nil(t, updated.Schedule[0].ScheduledDeparture)

	stored, err := service.GetTrain(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, "Vande Bharat", stored.TrainName)
	assert.Len(t, stored.Schedule, 1)

	_, err = service.UpdateTrain(ctx, 101, []byte(`{"train_name": ""}`))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.UpdateTrain(ctx, 101, []byte(`not json`))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.UpdateTrain(ctx, 404, []byte(`{}`))
	assert.ErrorIs(t, err, ErrNotFound)
}

type cacheStore struct {
	values map[string]string
}

func (c *cacheStore) Get(_ context.Context, key any) (string, error) {
	value, ok := c.values[key.(string)]
	if !ok {
		return "", errors.New("value not found in store")
	}

	return value, nil
}

func (c *cacheStore) Set(_ context.Context, key any, object string, _ ...store.Option) error {
	c.values[key.(string)] = object
	return nil
}

func (c *cacheStore) Delete(_ context.Context, key any) error {
	delete(c.values, key.(string))
	return nil
}

func TestServiceTrainCache(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	backing := &cacheStore{values: map[string]string{}}
	service.TrainCache = &cachedresults.Cache{Cache: backing, Prefix: "train"}

	_, err := service.CreateTrain(ctx, train101())
	require.NoError(t, err)

	_, err = service.GetTrain(ctx, 101)
	require.NoError(t, err)
	assert.Contains(t, backing.values, "train:101")

	_, err = service.UpdateTrain(ctx, 101, []byte(`{"train_name": "Renamed"}`))
	require.NoError(t, err)
	assert.NotContains(t, backing.values, "train:101")

	fetched, err := service.GetTrain(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fetched.TrainName)
}

func TestServiceStations(t *testing.T) {
	ctx := context.Background()
	service, publisher := newService(t)

	station := &model.Station{
		StationCode: "MAS",
		StationName: "Chennai Central",
		Forecasts: []*model.Forecast{
			{Timestamp: *at("2024-05-01T12:00:00Z"), MaintenanceType: model.MaintenanceTypeMajor},
			{Timestamp: *at("2024-05-01T06:00:00Z")},
		},
	}

	created, err := service.CreateStation(ctx, station)
	require.NoError(t, err)
	assert.Equal(t, model.MaintenanceTypeNone, created.Forecasts[0].MaintenanceType)
	assert.True(t, created.Forecasts[0].Timestamp.Before(created.Forecasts[1].Timestamp))

	_, err = service.CreateStation(ctx, &model.Station{StationCode: "MAS", StationName: "Again"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = service.CreateStation(ctx, &model.Station{StationCode: "X"})
	assert.ErrorIs(t, err, ErrValidation)

	require.Len(t, publisher.published, 1, "failed creates emit nothing")
	assert.Equal(t, events.EventTypeStationCreated, publisher.published[0].Type)
	assert.Equal(t, "MAS", publisher.published[0].Body["station_code"])

	updated, err := service.UpdateStation(ctx, "MAS", []byte(`{"altitude": 6.5, "forecasts": [{"timestamp": "2024-05-02T00:00:00Z", "maintenance_type": "Minor"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "Chennai Central", updated.StationName)
	assert.Equal(t, 6.5, updated.Altitude)
	require.Len(t, updated.Forecasts, 1)
	assert.Equal(t, model.MaintenanceTypeMinor, updated.Forecasts[0].MaintenanceType)

	_, err = service.UpdateStation(ctx, "MAS", []byte(`{"forecasts": [{"timestamp": "2024-05-02T00:00:00Z", "maintenance_type": "Severe"}]}`))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.UpdateStation(ctx, "NOPE", []byte(`{}`))
	assert.ErrorIs(t, err, ErrNotFound)

	result, err := service.ListStations(ctx, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)

	require.Len(t, publisher.published, 2)
	assert.Equal(t, events.EventTypeStationUpdated, publisher.published[1].Type)
}
