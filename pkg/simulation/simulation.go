// Package simulation relays delay simulation requests to the external model service.
package simulation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"github.com/travigo/railresched/pkg/metrics"
	"github.com/travigo/railresched/pkg/util"
)

const (
	DefaultTimeout = 60 * time.Second
	simulatePath   = "/api/ml/simulate"
)

var ErrSimulationFailed = errors.New("ML simulation failed")

// Result is the collaborator's response, relayed untouched
type Result = json.RawMessage

type Simulator interface {
	Simulate(ctx context.Context, trainNumber int) (Result, error)
}

// Response is the known shape of a Result. The relay never decodes into it.
type Response struct {
	TrainNumber int                      `json:"train_number"`
	BestVariant map[string]interface{}   `json:"best_variant"`
	AllVariants []map[string]interface{} `json:"all_variants"`
	DetailDF    []map[string]interface{} `json:"detail_df"`
}

type request struct {
	TrainNumber int `json:"train_number"`
}

type HTTPClient struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client

	circuit *gobreaker.CircuitBreaker
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HTTPClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Timeout: timeout,
		Client:  &http.Client{},
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "ml-simulate",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
		}),
	}
}

// NewHTTPClientFromEnvironment reads RAILRESCHED_ML_BASE_URL and RAILRESCHED_ML_TIMEOUT.
// It returns nil when no base URL is configured.
func NewHTTPClientFromEnvironment() (*HTTPClient, error) {
	baseURL := util.GetEnvironmentVariable("ML_BASE_URL", "")
	if baseURL == "" {
		log.Info().Msg("Skipping ML simulation setup")
		return nil, nil
	}

	timeout := DefaultTimeout
	if value := util.GetEnvironmentVariable("ML_TIMEOUT", ""); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("parsing RAILRESCHED_ML_TIMEOUT: %w", err)
		}
		timeout = parsed
	}

	return NewHTTPClient(baseURL, timeout), nil
}

// Simulate makes exactly one attempt. Transport errors, non 2xx statuses and
// an open circuit all surface as ErrSimulationFailed.
func (c *HTTPClient) Simulate(ctx context.Context, trainNumber int) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	payload, err := json.Marshal(request{TrainNumber: trainNumber})
	if err != nil {
		return nil, err
	}

	output, err := c.circuit.Execute(func() (interface{}, error) {
		return c.post(ctx, payload)
	})
	if err != nil {
		metrics.SimulationFailures.Inc()
		log.Error().Err(err).Int("train", trainNumber).Msg("ML simulation request failed")
		return nil, fmt.Errorf("%w: %v", ErrSimulationFailed, err)
	}

	return output.(Result), nil
}

func (c *HTTPClient) post(ctx context.Context, payload []byte) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+simulatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}
	if !json.Valid(body) {
		return nil, errors.New("response is not JSON")
	}

	return Result(body), nil
}
