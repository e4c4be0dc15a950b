package insertrecords

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/database"
	"github.com/travigo/railresched/pkg/timetable"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Upsert the trains and stations described in YAML insert-record files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Value: DefaultDirectory,
				Usage: "directory of insert-record files",
			},
		},
		Action: func(c *cli.Context) error {
			service, err := timetable.NewGlobalService()
			if err != nil {
				return err
			}
			defer database.Disconnect()

			applied, err := Insert(c.Context, service, c.String("path"))
			if err != nil {
				return err
			}

			log.Info().Int("records", applied).Msg("Seeded insert-records")

			return nil
		},
	}
}
