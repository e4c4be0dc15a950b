package dbwatch

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/events"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Change is the part of a change stream document the watchers read
type Change struct {
	OperationType string   `bson:"operationType"`
	FullDocument  bson.Raw `bson:"fullDocument"`
}

// Watch follows writes to one collection, including those made outside the
// service, and publishes an event for each
type Watch struct {
	Collection *mongo.Collection
	Publisher  events.Publisher
	ToEvent    func(change *Change) (*events.Event, error)
}

var watchedOperations = bson.A{"insert", "replace", "update"}

func (w *Watch) Run(ctx context.Context) error {
	log.Info().Str("collection", w.Collection.Name()).Msg("Starting dbwatch")

	matchPipeline := bson.D{
		{
			Key: "$match", Value: bson.D{
				{Key: "operationType", Value: bson.M{"$in": watchedOperations}},
			},
		},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := w.Collection.Watch(ctx, mongo.Pipeline{matchPipeline}, opts)
	if err != nil {
		return err
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var change Change
		if err := stream.Decode(&change); err != nil {
			log.Error().Err(err).Msg("Failed to decode change")
			continue
		}

		w.handle(&change)
	}

	return stream.Err()
}

func (w *Watch) handle(change *Change) {
	if change.FullDocument == nil {
		return
	}

	event, err := w.ToEvent(change)
	if err != nil {
		log.Error().Err(err).Str("collection", w.Collection.Name()).Msg("Failed to read changed document")
		return
	}

	events.Emit(w.Publisher, event)
}
