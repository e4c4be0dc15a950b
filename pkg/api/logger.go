package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/metrics"
)

// NewLogger logs every request, warning on client errors and erroring on server errors
func NewLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()
		err := c.Next()

		msg := "HTTP Request"
		code := c.Response().StatusCode()

		if err != nil {
			msg = err.Error()

			var fiberError *fiber.Error
			if errors.As(err, &fiberError) {
				code = fiberError.Code
			} else {
				code = fiber.StatusInternalServerError
			}
		}

		metrics.RecordRequest(c.Method(), c.Route().Path, code)

		ipAddress := c.IP()

		if forwardedFor := c.Get(fiber.HeaderXForwardedFor, ""); forwardedFor != "" {
			ipAddress = strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
		}

		requestLogger := log.With().
			Int("status", code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", ipAddress).
			Str("latency", time.Since(startTime).String()).
			Str("user-agent", c.Get(fiber.HeaderUserAgent)).
			Logger()

		switch {
		case code >= fiber.StatusBadRequest && code < fiber.StatusInternalServerError:
			requestLogger.Warn().Msg(msg)
		case code >= http.StatusInternalServerError:
			requestLogger.Error().Msg(msg)
		default:
			requestLogger.Info().Msg(msg)
		}

		return err
	}
}
