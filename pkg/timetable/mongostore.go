package timetable

import (
	"context"
	"errors"
	"regexp"

	"github.com/travigo/railresched/pkg/database"
	"github.com/travigo/railresched/pkg/model"
	"github.com/travigo/railresched/pkg/pagination"
	"github.com/travigo/railresched/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	trains   *mongo.Collection
	stations *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		trains:   db.Collection(database.TrainsCollection),
		stations: db.Collection(database.StationsCollection),
	}
}

func trainNumberQuery(trainNumber int) bson.M {
	return bson.M{"trainnumber": trainNumber}
}

func stationCodeQuery(stationCode string) bson.M {
	return bson.M{"stationcode": stationCode}
}

// TrainFilter is the Mongo form of TrainQuery.Predicate
func TrainFilter(query TrainQuery) bson.M {
	var clauses bson.A

	if query.Date != nil {
		clauses = append(clauses, bson.M{
			"schedule": bson.M{
				"$elemMatch": bson.M{
					"scheduledarrival": bson.M{
						"$gte": util.StartOfDay(*query.Date),
						"$lte": util.EndOfDay(*query.Date),
					},
				},
			},
		})
	}

	if query.Text != "" {
		pattern := regexp.QuoteMeta(query.Text)
		textRegex := bson.M{"$regex": pattern, "$options": "i"}

		clauses = append(clauses, bson.M{
			"$or": bson.A{
				bson.M{"trainname": textRegex},
				bson.M{"$expr": bson.M{
					"$regexMatch": bson.M{
						"input": bson.M{"$toString": "$trainnumber"},
						"regex": pattern,
					},
				}},
				bson.M{"schedule": bson.M{
					"$elemMatch": bson.M{
						"$or": bson.A{
							bson.M{"stationname": textRegex},
							bson.M{"stationcode": textRegex},
						},
					},
				}},
			},
		})
	}

	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0].(bson.M)
	default:
		return bson.M{"$and": clauses}
	}
}

func findPage[T any](ctx context.Context, collection *mongo.Collection, filter bson.M, sortKey string, params pagination.Params) (pagination.Result[*T], error) {
	params = params.Normalised()

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return pagination.Result[*T]{}, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortKey, Value: 1}}).
		SetSkip(int64(params.Skip())).
		SetLimit(int64(params.Limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return pagination.Result[*T]{}, err
	}

	var items []*T
	if err := cursor.All(ctx, &items); err != nil {
		return pagination.Result[*T]{}, err
	}

	return pagination.NewResult(items, int(total), params), nil
}

func findOne[T any](ctx context.Context, collection *mongo.Collection, query bson.M) (*T, error) {
	var value *T
	err := collection.FindOne(ctx, query).Decode(&value)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return value, nil
}

func insert(ctx context.Context, collection *mongo.Collection, document interface{}) error {
	_, err := collection.InsertOne(ctx, document)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}

	return err
}

func replace(ctx context.Context, collection *mongo.Collection, query bson.M, document interface{}) error {
	result, err := collection.ReplaceOne(ctx, query, document)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *MongoStore) GetTrain(ctx context.Context, trainNumber int) (*model.Train, error) {
	return findOne[model.Train](ctx, s.trains, trainNumberQuery(trainNumber))
}

func (s *MongoStore) ListTrains(ctx context.Context, query TrainQuery) (pagination.Result[*model.Train], error) {
	return findPage[model.Train](ctx, s.trains, TrainFilter(query), "trainnumber", query.Params)
}

func (s *MongoStore) InsertTrain(ctx context.Context, train *model.Train) error {
	return insert(ctx, s.trains, train)
}

func (s *MongoStore) ReplaceTrain(ctx context.Context, train *model.Train) error {
	return replace(ctx, s.trains, trainNumberQuery(train.TrainNumber), train)
}

func (s *MongoStore) GetStation(ctx context.Context, stationCode string) (*model.Station, error) {
	return findOne[model.Station](ctx, s.stations, stationCodeQuery(stationCode))
}

func (s *MongoStore) ListStations(ctx context.Context, params pagination.Params) (pagination.Result[*model.Station], error) {
	return findPage[model.Station](ctx, s.stations, bson.M{}, "stationcode", params)
}

func (s *MongoStore) AllStations(ctx context.Context) ([]*model.Station, error) {
	cursor, err := s.stations.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "stationcode", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var stations []*model.Station
	if err := cursor.All(ctx, &stations); err != nil {
		return nil, err
	}

	return stations, nil
}

func (s *MongoStore) InsertStation(ctx context.Context, station *model.Station) error {
	return insert(ctx, s.stations, station)
}

func (s *MongoStore) ReplaceStation(ctx context.Context, station *model.Station) error {
	return replace(ctx, s.stations, stationCodeQuery(station.StationCode), station)
}
