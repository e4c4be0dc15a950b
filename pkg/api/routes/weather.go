package routes

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/railresched/pkg/weather"
)

func WeatherRouter(router fiber.Router, service *weather.Service) {
	router.Post("/simulate/:station_code", simulateWeather(service))
	router.Get("/:station_code", listWeather(service))
}

type simulateRequest struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
	Step  string     `json:"step"`
}

func simulateWeather(service *weather.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request simulateRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&request); err != nil {
				return sendError(c, fiber.StatusBadRequest, err.Error())
			}
		}

		step, err := weather.ParseStep(request.Step)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}

		result, err := service.Simulate(c.UserContext(), c.Params("station_code"), weather.SimulateRequest{
			Start: request.Start,
			End:   request.End,
			Step:  step,
		})
		if err != nil {
			return sendServiceError(c, err, stationNotFound)
		}

		return c.JSON(result)
	}
}

func listWeather(service *weather.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationCode := c.Params("station_code")

		observations, err := service.ListObservations(c.UserContext(), stationCode)
		if err != nil {
			return sendServiceError(c, err, stationNotFound)
		}

		if c.Query("format") == "csv" {
			var buffer bytes.Buffer
			if err := weather.WriteCSV(&buffer, observations); err != nil {
				return sendError(c, fiber.StatusInternalServerError, err.Error())
			}

			c.Set(fiber.HeaderContentType, "text/csv")
			c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+stationCode+`-weather.csv"`)
			return c.Send(buffer.Bytes())
		}

		return c.JSON(observations)
	}
}
