package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/railresched/pkg/model"
	"github.com/travigo/railresched/pkg/timetable"
)

const stationNotFound = "Station not found"

func StationsRouter(router fiber.Router, service *timetable.Service) {
	router.Get("/", listStations(service))
	router.Post("/", createStation(service))
	router.Get("/:station_code", getStation(service))
	router.Put("/:station_code", updateStation(service))
}

func listStations(service *timetable.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := service.ListStations(c.UserContext(), paginationParams(c))
		if err != nil {
			return sendServiceError(c, err, stationNotFound)
		}

		response, err := listResponse(result, "stations")
		if err != nil {
			return sendError(c, fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(response)
	}
}

func getStation(service *timetable.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		station, err := service.GetStation(c.UserContext(), c.Params("station_code"))
		if err != nil {
			return sendServiceError(c, err, stationNotFound)
		}

		return sendDetailed(c, fiber.StatusOK, station)
	}
}

func createStation(service *timetable.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var station model.Station
		if err := c.BodyParser(&station); err != nil {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}

		created, err := service.CreateStation(c.UserContext(), &station)
		if err != nil {
			return sendServiceError(c, err, stationNotFound)
		}

		return sendDetailed(c, fiber.StatusCreated, created)
	}
}

func updateStation(service *timetable.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		updated, err := service.UpdateStation(c.UserContext(), c.Params("station_code"), c.Body())
		if err != nil {
			return sendServiceError(c, err, stationNotFound)
		}

		return sendDetailed(c, fiber.StatusOK, updated)
	}
}
