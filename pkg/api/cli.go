package api

import (
	"github.com/travigo/railresched/pkg/database"
	"github.com/travigo/railresched/pkg/elastic_client"
	"github.com/travigo/railresched/pkg/simulation"
	"github.com/travigo/railresched/pkg/timetable"
	"github.com/travigo/railresched/pkg/weather"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					timetableService, err := timetable.NewGlobalService()
					if err != nil {
						return err
					}
					defer database.Disconnect()
					defer elastic_client.WaitUntilQueueEmpty()

					weatherService, err := weather.NewGlobalService()
					if err != nil {
						return err
					}

					services := Services{
						Timetable: timetableService,
						Weather:   weatherService,
					}

					simulator, err := simulation.NewHTTPClientFromEnvironment()
					if err != nil {
						return err
					}
					if simulator != nil {
						services.Simulator = simulator
					}

					return SetupServer(c.String("listen"), services)
				},
			},
		},
	}
}
