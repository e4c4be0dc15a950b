package timetable

import (
	"context"
	"sort"
	"sync"

	"github.com/travigo/railresched/pkg/model"
	"github.com/travigo/railresched/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson"
)

// MemoryStore keeps trains and stations in process. Documents round-trip
// through BSON on every read and write so callers never share state with the
// store and see the same encoding the Mongo store produces.
type MemoryStore struct {
	mu sync.RWMutex

	trains   map[int][]byte
	stations map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trains:   map[int][]byte{},
		stations: map[string][]byte{},
	}
}

func decode[T any](document []byte) (*T, error) {
	var value T
	if err := bson.Unmarshal(document, &value); err != nil {
		return nil, err
	}

	return &value, nil
}

func (s *MemoryStore) GetTrain(_ context.Context, trainNumber int) (*model.Train, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	document, ok := s.trains[trainNumber]
	if !ok {
		return nil, ErrNotFound
	}

	return decode[model.Train](document)
}

func (s *MemoryStore) ListTrains(_ context.Context, query TrainQuery) (pagination.Result[*model.Train], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trainNumbers := make([]int, 0, len(s.trains))
	for trainNumber := range s.trains {
		trainNumbers = append(trainNumbers, trainNumber)
	}
	sort.Ints(trainNumbers)

	trains := make([]*model.Train, 0, len(trainNumbers))
	for _, trainNumber := range trainNumbers {
		train, err := decode[model.Train](s.trains[trainNumber])
		if err != nil {
			return pagination.Result[*model.Train]{}, err
		}
		trains = append(trains, train)
	}

	return pagination.Page(trains, query.Params, query.Predicate()), nil
}

func (s *MemoryStore) InsertTrain(_ context.Context, train *model.Train) error {
	document, err := bson.Marshal(train)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.trains[train.TrainNumber]; exists {
		return ErrDuplicate
	}
	s.trains[train.TrainNumber] = document

	return nil
}

func (s *MemoryStore) ReplaceTrain(_ context.Context, train *model.Train) error {
	document, err := bson.Marshal(train)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.trains[train.TrainNumber]; !exists {
		return ErrNotFound
	}
	s.trains[train.TrainNumber] = document

	return nil
}

func (s *MemoryStore) GetStation(_ context.Context, stationCode string) (*model.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	document, ok := s.stations[stationCode]
	if !ok {
		return nil, ErrNotFound
	}

	return decode[model.Station](document)
}

func (s *MemoryStore) AllStations(_ context.Context) ([]*model.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stationCodes := make([]string, 0, len(s.stations))
	for stationCode := range s.stations {
		stationCodes = append(stationCodes, stationCode)
	}
	sort.Strings(stationCodes)

	stations := make([]*model.Station, 0, len(stationCodes))
	for _, stationCode := range stationCodes {
		station, err := decode[model.Station](s.stations[stationCode])
		if err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}

	return stations, nil
}

func (s *MemoryStore) ListStations(ctx context.Context, params pagination.Params) (pagination.Result[*model.Station], error) {
	stations, err := s.AllStations(ctx)
	if err != nil {
		return pagination.Result[*model.Station]{}, err
	}

	return pagination.Page(stations, params, nil), nil
}

func (s *MemoryStore) InsertStation(_ context.Context, station *model.Station) error {
	document, err := bson.Marshal(station)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.stations[station.StationCode]; exists {
		return ErrDuplicate
	}
	s.stations[station.StationCode] = document

	return nil
}

func (s *MemoryStore) ReplaceStation(_ context.Context, station *model.Station) error {
	document, err := bson.Marshal(station)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.stations[station.StationCode]; !exists {
		return ErrNotFound
	}
	s.stations[station.StationCode] = document

	return nil
}
