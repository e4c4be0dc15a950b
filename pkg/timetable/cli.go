package timetable

import (
	"context"
	"fmt"
	"time"

	"github.com/kr/pretty"
	"github.com/travigo/railresched/pkg/cachedresults"
	"github.com/travigo/railresched/pkg/database"
	"github.com/travigo/railresched/pkg/elastic_client"
	"github.com/travigo/railresched/pkg/events"
	"github.com/travigo/railresched/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

// NewGlobalService wires a Service to the global Mongo instance and to the
// optional redis and elasticsearch backed collaborators
func NewGlobalService() (*Service, error) {
	if err := database.Connect(); err != nil {
		return nil, err
	}
	if err := redis_client.Connect(false); err != nil {
		return nil, err
	}
	if err := elastic_client.Connect(false); err != nil {
		return nil, err
	}

	store := NewMongoStore(database.MongoGlobalInstance.Database)
	service := &Service{
		Trains:       store,
		Stations:     store,
		TrainCache:   cachedresults.NewRedisCache("train"),
		StationCache: cachedresults.NewRedisCache("station"),
	}

	if redis_client.Configured() {
		publisher, err := events.NewQueuePublisher(redis_client.QueueConnection)
		if err != nil {
			return nil, err
		}
		service.Events = publisher
	}

	return service, nil
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "timetable",
		Usage: "Inspect and retime trains",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print a stored train",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "train",
						Usage:    "train number",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					service, err := NewGlobalService()
					if err != nil {
						return err
					}
					defer database.Disconnect()

					train, err := service.GetTrain(c.Context, c.Int("train"))
					if err != nil {
						return err
					}

					pretty.Println(train)

					return nil
				},
			},
			{
				Name:  "shift",
				Usage: "move a train to a new start time, keeping the spacing of its stops",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "train",
						Usage:    "train number",
						Required: true,
					},
					&cli.TimestampFlag{
						Name:     "start",
						Usage:    "new start time",
						Layout:   time.RFC3339,
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					service, err := NewGlobalService()
					if err != nil {
						return err
					}
					defer database.Disconnect()
					defer elastic_client.WaitUntilQueueEmpty()

					result, err := service.RetimeTrain(context.Background(), c.Int("train"), *c.Timestamp("start"))
					if err != nil {
						return err
					}

					fmt.Printf("Train %d moved by %s\n", result.Train.TrainNumber, result.Delta)
					pretty.Println(result.Train.Schedule)

					return nil
				},
			},
		},
	}
}
