package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/travigo/railresched/pkg/api/routes"
	"github.com/travigo/railresched/pkg/metrics"
	"github.com/travigo/railresched/pkg/simulation"
	"github.com/travigo/railresched/pkg/timetable"
	"github.com/travigo/railresched/pkg/weather"
)

type Services struct {
	Timetable *timetable.Service
	Weather   *weather.Service
	Simulator simulation.Simulator
}

func NewApp(services Services) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())
	webApp.Use(recover.New())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)
	webApp.Get("/metrics", metrics.Handler())

	routes.TrainsRouter(group.Group("/trains"), services.Timetable)
	routes.StationsRouter(group.Group("/stations"), services.Timetable)

	routes.WeatherRouter(group.Group("/weather"), services.Weather)

	routes.MLRouter(group.Group("/ml"), services.Simulator)

	return webApp
}

func SetupServer(listen string, services Services) error {
	return NewApp(services).Listen(listen)
}
