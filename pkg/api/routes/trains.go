package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/railresched/pkg/model"
	"github.com/travigo/railresched/pkg/timetable"
)

const trainNotFound = "Train not found"

func TrainsRouter(router fiber.Router, service *timetable.Service) {
	router.Get("/", listTrains(service))
	router.Post("/", createTrain(service))
	router.Get("/:train_number", getTrain(service))
	router.Put("/:train_number", updateTrain(service))
	router.Put("/:train_number/start", retimeTrain(service))
}

func listTrains(service *timetable.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query, err := trainQuery(c)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}

		result, err := service.ListTrains(c.UserContext(), query)
		if err != nil {
			return sendServiceError(c, err, trainNotFound)
		}

		response, err := listResponse(result, "trains")
		if err != nil {
			return sendError(c, fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(response)
	}
}

func getTrain(service *timetable.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trainNumber, err := trainNumberParam(c)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}

		train, err := service.GetTrain(c.UserContext(), trainNumber)
		if err != nil {
			return sendServiceError(c, err, trainNotFound)
		}

		return sendDetailed(c, fiber.StatusOK, train)
	}
}

func createTrain(service *timetable.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var train model.Train
		if err := c.BodyParser(&train); err != nil {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}

		created, err := service.CreateTrain(c.UserContext(), &train)
		if err != nil {
			return sendServiceError(c, err, trainNotFound)
		}

		return sendDetailed(c, fiber.StatusCreated, created)
	}
}

func updateTrain(service *timetable.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trainNumber, err := trainNumberParam(c)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}

		updated, err := service.UpdateTrain(c.UserContext(), trainNumber, c.Body())
		if err != nil {
			return sendServiceError(c, err, trainNotFound)
		}

		return sendDetailed(c, fiber.StatusOK, updated)
	}
}

type retimeRequest struct {
	StartTime *time.Time `json:"start_time"`
}

func retimeTrain(service *timetable.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trainNumber, err := trainNumberParam(c)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}

		var request retimeRequest
		if err := c.BodyParser(&request); err != nil {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}
		if request.StartTime == nil || request.StartTime.IsZero() {
			return sendError(c, fiber.StatusBadRequest, "start_time is required")
		}

		result, err := service.RetimeTrain(c.UserContext(), trainNumber, *request.StartTime)
		if err != nil {
			return sendServiceError(c, err, trainNotFound)
		}

		train, err := sheriff.Marshal(detailGroups, result.Train)
		if err != nil {
			return sendError(c, fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(fiber.Map{
			"train":         train,
			"delta_seconds": result.Delta.Seconds(),
			"had_anchor":    result.HadAnchor,
		})
	}
}
