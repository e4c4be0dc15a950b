package routes

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/model"
	"github.com/travigo/railresched/pkg/pagination"
	"github.com/travigo/railresched/pkg/timetable"
	"github.com/travigo/railresched/pkg/util"
)

const maxSearchLength = 100

var detailGroups = &sheriff.Options{Groups: []string{"basic", "detailed"}}

func sendError(c *fiber.Ctx, status int, message string) error {
	c.Status(status)
	return c.JSON(fiber.Map{
		"error": message,
	})
}

// sendServiceError maps store and validation failures onto HTTP statuses
func sendServiceError(c *fiber.Ctx, err error, notFoundMessage string) error {
	switch {
	case errors.Is(err, timetable.ErrNotFound):
		return sendError(c, fiber.StatusNotFound, notFoundMessage)
	case errors.Is(err, model.ErrValidation):
		return sendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, timetable.ErrDuplicate):
		return sendError(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}
}

func sendDetailed(c *fiber.Ctx, status int, v interface{}) error {
	reduced, err := sheriff.Marshal(detailGroups, v)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Status(status)
	return c.JSON(reduced)
}

func paginationParams(c *fiber.Ctx) pagination.Params {
	return pagination.ParseParams(c.Query("page"), c.Query("limit"))
}

// listResponse is the envelope for paginated listings, the items go under key
func listResponse[T any](result pagination.Result[T], key string) (fiber.Map, error) {
	items, err := sheriff.Marshal(detailGroups, result.Items)
	if err != nil {
		return nil, err
	}

	return fiber.Map{
		"total":      result.Total,
		"page":       result.Page,
		"totalPages": result.TotalPages,
		"count":      result.Count(),
		key:          items,
	}, nil
}

func trainQuery(c *fiber.Ctx) (timetable.TrainQuery, error) {
	query := timetable.TrainQuery{
		Params: paginationParams(c),
		Text:   util.TrimString(strings.TrimSpace(c.Query("q")), maxSearchLength),
	}

	if date := c.Query("date"); date != "" {
		day, err := util.ParseDate(date)
		if err != nil {
			return query, errors.New("date must be formatted as YYYY-MM-DD")
		}
		query.Date = &day
	}

	return query, nil
}

func trainNumberParam(c *fiber.Ctx) (int, error) {
	trainNumber, err := strconv.Atoi(strings.TrimSpace(c.Params("train_number")))
	if err != nil || trainNumber < 1 {
		return 0, errors.New("train_number must be a positive integer")
	}

	return trainNumber, nil
}
