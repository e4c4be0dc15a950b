package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/api"
	"github.com/travigo/railresched/pkg/dbwatch"
	"github.com/travigo/railresched/pkg/events"
	"github.com/travigo/railresched/pkg/indexer"
	"github.com/travigo/railresched/pkg/insertrecords"
	"github.com/travigo/railresched/pkg/timetable"
	"github.com/travigo/railresched/pkg/weather"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	if os.Getenv("RAILRESCHED_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("RAILRESCHED_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "railresched",
		Description: "Railway timetable rescheduling and synthetic weather service",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			timetable.RegisterCLI(),
			weather.RegisterCLI(),
			insertrecords.RegisterCLI(),
			events.RegisterCLI(),
			dbwatch.RegisterCLI(),
			indexer.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
