// Package metrics holds the Prometheus collectors shared by the service surfaces.
package metrics

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "railresched",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code",
	}, []string{"method", "route", "status"})

	TrainsRetimed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "railresched",
		Name:      "trains_retimed_total",
		Help:      "Trains moved to a new start time",
	})

	ObservationsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "railresched",
		Name:      "observations_generated_total",
		Help:      "Synthetic weather observations stored, by station",
	}, []string{"station"})

	SimulationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "railresched",
		Name:      "ml_simulation_failures_total",
		Help:      "Failed relays to the ML simulation service",
	})
)

// Handler serves the default registry
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// RecordRequest counts a finished request against its route pattern
func RecordRequest(method string, route string, status int) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
