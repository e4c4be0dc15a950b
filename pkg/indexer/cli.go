package indexer

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/database"
	"github.com/travigo/railresched/pkg/elastic_client"
	"github.com/travigo/railresched/pkg/timetable"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "indexer",
		Usage: "Indexes data into Elasticsearch",
		Before: func(c *cli.Context) error {
			if err := database.Connect(); err != nil {
				return err
			}
			return elastic_client.Connect(true)
		},
		After: func(c *cli.Context) error {
			elastic_client.WaitUntilQueueEmpty()
			log.Info().Msg("Index queue emptied")

			return database.Disconnect()
		},
		Subcommands: []*cli.Command{
			{
				Name:  "stations",
				Usage: "do an index of the Stations",
				Action: func(c *cli.Context) error {
					store := timetable.NewMongoStore(database.MongoGlobalInstance.Database)
					return IndexStations(c.Context, store)
				},
			},
			{
				Name:  "trains",
				Usage: "do an index of the Trains",
				Action: func(c *cli.Context) error {
					store := timetable.NewMongoStore(database.MongoGlobalInstance.Database)
					return IndexTrains(c.Context, store)
				},
			},
		},
	}
}
