package weather

import (
	"context"
	"sort"
	"sync"

	"github.com/travigo/railresched/pkg/database"
	"github.com/travigo/railresched/pkg/model"
	"github.com/travigo/railresched/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ObservationStore interface {
	// InsertObservations writes the whole batch in one operation and returns how many were stored
	InsertObservations(ctx context.Context, observations []*model.Observation) (int, error)
	// ListObservations returns a station's observations in ascending time order
	ListObservations(ctx context.Context, stationCode string) ([]*model.Observation, error)
}

type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection(database.ObservationsCollection)}
}

func (s *MongoStore) InsertObservations(ctx context.Context, observations []*model.Observation) (int, error) {
	if len(observations) == 0 {
		return 0, nil
	}

	documents := make([]interface{}, 0, len(observations))
	for _, observation := range observations {
		documents = append(documents, observation)
	}

	result, err := s.collection.InsertMany(ctx, documents)
	if err != nil {
		return 0, err
	}

	return len(result.InsertedIDs), nil
}

func (s *MongoStore) ListObservations(ctx context.Context, stationCode string) ([]*model.Observation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{"stationcode": stationCode}, opts)
	if err != nil {
		return nil, err
	}

	observations := []*model.Observation{}
	if err := cursor.All(ctx, &observations); err != nil {
		return nil, err
	}

	return observations, nil
}

type MemoryStore struct {
	mu           sync.RWMutex
	observations []model.Observation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) InsertObservations(_ context.Context, observations []*model.Observation) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, observation := range observations {
		s.observations = append(s.observations, *observation)
	}

	return len(observations), nil
}

func (s *MemoryStore) ListObservations(_ context.Context, stationCode string) ([]*model.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	observations := make([]*model.Observation, 0, len(s.observations))
	for _, observation := range s.observations {
		observation := observation
		observations = append(observations, &observation)
	}
	util.InPlaceFilter(&observations, func(observation *model.Observation) bool {
		return observation.StationCode == stationCode
	})

	sort.SliceStable(observations, func(i, j int) bool {
		return observations[i].Timestamp.Before(observations[j].Timestamp)
	})

	return observations, nil
}
