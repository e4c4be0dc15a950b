package weather

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/database"
	"github.com/travigo/railresched/pkg/elastic_client"
	"github.com/travigo/railresched/pkg/events"
	"github.com/travigo/railresched/pkg/redis_client"
	"github.com/travigo/railresched/pkg/timetable"
	"github.com/urfave/cli/v2"
)

// NewGlobalService wires a Service to the global Mongo instance and the optional queue and index
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

	service := &Service{
		Observations: NewMongoStore(database.MongoGlobalInstance.Database),
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

func windowFlags() []cli.Flag {
	return []cli.Flag{
		&cli.TimestampFlag{
			Name:   "start",
			Usage:  "first observation time, defaults to now",
			Layout: time.RFC3339,
		},
		&cli.TimestampFlag{
			Name:   "end",
			Usage:  "last possible observation time, defaults to a day after start",
			Layout: time.RFC3339,
		},
		&cli.StringFlag{
			Name:  "step",
			Usage: "time between observations, eg. PT15M or 15m",
		},
	}
}

func requestFromFlags(c *cli.Context) (SimulateRequest, error) {
	step, err := ParseStep(c.String("step"))
	if err != nil {
		return SimulateRequest{}, err
	}

	return SimulateRequest{
		Start: c.Timestamp("start"),
		End:   c.Timestamp("end"),
		Step:  step,
	}, nil
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "weather",
		Usage: "Provision and export synthetic weather observations",
		Subcommands: []*cli.Command{
			{
				Name:  "simulate",
				Usage: "generate observations for one station or every selected station",
				Flags: append(windowFlags(),
					&cli.StringFlag{
						Name:  "station",
						Usage: "station code, when unset stations are chosen with --where",
					},
					&cli.StringFlag{
						Name:  "where",
						Usage: "station selector expression, eg. altitude > 500",
					},
				),
				Action: func(c *cli.Context) error {
					service, err := NewGlobalService()
					if err != nil {
						return err
					}
					defer database.Disconnect()
					defer elastic_client.WaitUntilQueueEmpty()

					request, err := requestFromFlags(c)
					if err != nil {
						return err
					}

					if stationCode := c.String("station"); stationCode != "" {
						result, err := service.Simulate(c.Context, stationCode, request)
						if err != nil {
							return err
						}

						fmt.Printf("Inserted %d observations for %s (batch %s)\n", result.InsertedCount, result.StationCode, result.BatchID)
						return nil
					}

					selector, err := CompileSelector(c.String("where"))
					if err != nil {
						return err
					}

					stations, err := timetable.NewMongoStore(database.MongoGlobalInstance.Database).AllStations(c.Context)
					if err != nil {
						return err
					}
					selected, err := Select(stations, selector)
					if err != nil {
						return err
					}

					failures := 0
					for _, outcome := range service.Provision(c.Context, selected, request) {
						if outcome.Err != nil {
							failures++
							continue
						}
						fmt.Printf("Inserted %d observations for %s (batch %s)\n", outcome.Result.InsertedCount, outcome.StationCode, outcome.Result.BatchID)
					}

					if failures > 0 {
						return fmt.Errorf("%d of %d stations failed", failures, len(selected))
					}

					return nil
				},
			},
			{
				Name:  "schedule",
				Usage: "keep provisioning the next interval of observations",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "interval",
						Value: time.Hour,
						Usage: "how often to provision and how far ahead each run reaches",
					},
					&cli.StringFlag{
						Name:  "step",
						Usage: "time between observations, eg. PT15M or 15m",
					},
					&cli.StringFlag{
						Name:  "where",
						Usage: "station selector expression",
					},
				},
				Action: func(c *cli.Context) error {
					service, err := NewGlobalService()
					if err != nil {
						return err
					}
					defer database.Disconnect()
					defer elastic_client.WaitUntilQueueEmpty()

					step, err := ParseStep(c.String("step"))
					if err != nil {
						return err
					}
					selector, err := CompileSelector(c.String("where"))
					if err != nil {
						return err
					}

					stations := timetable.NewMongoStore(database.MongoGlobalInstance.Database)
					scheduler := NewScheduler(service, stations, selector, c.Duration("interval"), step)
					if err := scheduler.Start(); err != nil {
						return err
					}
					defer scheduler.Stop()

					log.Info().Dur("interval", c.Duration("interval")).Msg("Weather scheduler started")

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					<-signals

					return nil
				},
			},
			{
				Name:  "export",
				Usage: "write a station's observations as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "station",
						Usage:    "station code",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "output file, defaults to stdout",
					},
				},
				Action: func(c *cli.Context) error {
					service, err := NewGlobalService()
					if err != nil {
						return err
					}
					defer database.Disconnect()

					observations, err := service.ListObservations(context.Background(), c.String("station"))
					if err != nil {
						return err
					}

					var out io.Writer = os.Stdout
					if output := c.String("output"); output != "" {
						file, err := os.Create(output)
						if err != nil {
							return err
						}
						defer file.Close()
						out = file
					}

					return WriteCSV(out, observations)
				},
			},
		},
	}
}
