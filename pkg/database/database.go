package database

import (
	"context"
	"time"

	"github.com/travigo/railresched/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const defaultMongoConnectionString = "mongodb://localhost:27017/"
const defaultMongoDatabase = "railresched"

const (
	TrainsCollection       = "trains"
	StationsCollection     = "stations"
	ObservationsCollection = "weather"
)

func Connect() error {
	if MongoGlobalInstance != nil {
		return nil
	}

	connectionString := defaultMongoConnectionString
	dbName := defaultMongoDatabase

	env := util.GetEnvironmentVariables()

	if env["RAILRESCHED_MONGODB_CONNECTION"] != "" {
		connectionString = env["RAILRESCHED_MONGODB_CONNECTION"]
	}

	if env["RAILRESCHED_MONGODB_DATABASE"] != "" {
		dbName = env["RAILRESCHED_MONGODB_DATABASE"]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	createIndexes()

	return nil
}

func Disconnect() error {
	if MongoGlobalInstance == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := MongoGlobalInstance.Client.Disconnect(ctx)
	MongoGlobalInstance = nil

	return err
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}
