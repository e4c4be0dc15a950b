package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/railresched/pkg/simulation"
)

func MLRouter(router fiber.Router, simulator simulation.Simulator) {
	router.Post("/simulate", simulate(simulator))
}

type simulateTrainRequest struct {
	TrainNumber int `json:"train_number"`
}

func simulate(simulator simulation.Simulator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request simulateTrainRequest
		if err := c.BodyParser(&request); err != nil || request.TrainNumber == 0 {
			return sendError(c, fiber.StatusBadRequest, "train_number is required")
		}

		if simulator == nil {
			return sendError(c, fiber.StatusInternalServerError, simulation.ErrSimulationFailed.Error())
		}

		result, err := simulator.Simulate(c.UserContext(), request.TrainNumber)
		if err != nil {
			return sendError(c, fiber.StatusInternalServerError, simulation.ErrSimulationFailed.Error())
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(result)
	}
}
