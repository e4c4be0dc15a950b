package dbwatch

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/database"
	"github.com/travigo/railresched/pkg/events"
	"github.com/travigo/railresched/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "dbwatch",
		Usage: "Watches the database and raises events",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the collection watchers (requires a replica set)",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					defer database.Disconnect()
					if err := redis_client.Connect(true); err != nil {
						return err
					}

					publisher, err := events.NewQueuePublisher(redis_client.QueueConnection)
					if err != nil {
						return err
					}

					log.Info().Msg("Starting dbwatch server")

					ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
					defer cancel()

					watches := []*Watch{
						{Collection: database.GetCollection(database.TrainsCollection), Publisher: publisher, ToEvent: TrainChangeEvent},
						{Collection: database.GetCollection(database.StationsCollection), Publisher: publisher, ToEvent: StationChangeEvent},
					}

					errs := make(chan error, len(watches))
					for _, watch := range watches {
						watch := watch
						go func() {
							errs <- watch.Run(ctx)
						}()
					}

					select {
					case <-ctx.Done():
						return nil
					case err := <-errs:
						return err
					}
				},
			},
		},
	}
}
