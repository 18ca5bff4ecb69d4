// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package prediction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/maritimus/internal/config"
	"github.com/tomtom215/maritimus/internal/logging"
	"github.com/tomtom215/maritimus/internal/metrics"
	"github.com/tomtom215/maritimus/internal/models"
)

const breakerName = "prediction-service"

// Client is an HTTP Predictor for the remote model service, wrapped in a
// circuit breaker so a dead model service fails fast instead of tying up
// request handlers for the full transport timeout.
type Client struct {
	baseURL string
	client  *http.Client
	cb      *gobreaker.CircuitBreaker[models.PredictionResult]
}

// NewClient creates a prediction service client. The circuit breaker opens
// after a 60% failure rate across at least 10 requests in a one-minute
// window, and probes recovery after two minutes.
func NewClient(cfg *config.PredictionConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL: cfg.URL,
		client:  &http.Client{Timeout: timeout},
	}

	if cfg.BreakerDisabled {
		return c
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	c.cb = gobreaker.NewCircuitBreaker[models.PredictionResult](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return c
}

// Predict runs the model on one feature row through the circuit breaker.
func (c *Client) Predict(ctx context.Context, features FeatureRow) (models.PredictionResult, error) {
	start := time.Now()

	var result models.PredictionResult
	var err error
	if c.cb != nil {
		result, err = c.cb.Execute(func() (models.PredictionResult, error) {
			return c.predict(ctx, features)
		})
	} else {
		result, err = c.predict(ctx, features)
	}

	metrics.RecordCollaboratorCall("prediction", time.Since(start), err)

	if err != nil {
		outcome := "failure"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "rejected"
		}
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, outcome).Inc()
		return models.PredictionResult{}, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	return result, nil
}

// predictResponse is the model service's wire shape. success, prediction
// and confidence are always present; the score fields are optional and
// default to zero.
type predictResponse struct {
	Success            bool    `json:"success"`
	Prediction         string  `json:"prediction"`
	Confidence         float64 `json:"confidence"`
	AnomalyScore       float64 `json:"anomaly_score"`
	FishingProbability float64 `json:"fishing_probability"`
	Error              string  `json:"error"`
}

// predict performs the actual HTTP round trip.
func (c *Client) predict(ctx context.Context, features FeatureRow) (models.PredictionResult, error) {
	body, err := json.Marshal(features)
	if err != nil {
		return models.PredictionResult{}, fmt.Errorf("failed to encode feature row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return models.PredictionResult{}, fmt.Errorf("failed to create prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.PredictionResult{}, fmt.Errorf("prediction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return models.PredictionResult{}, fmt.Errorf("prediction service returned status %d: %s", resp.StatusCode, msg)
	}

	var wire predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return models.PredictionResult{}, fmt.Errorf("failed to decode prediction response: %w", err)
	}

	if !wire.Success {
		msg := wire.Error
		if msg == "" {
			msg = "Unknown prediction error"
		}
		return models.PredictionError(msg), nil
	}

	label := wire.Prediction
	if label == "" {
		label = "unknown"
	}

	return models.PredictionResult{
		OK:                   true,
		VesselTypePrediction: label,
		AnomalyScore:         wire.AnomalyScore,
		FishingProbability:   wire.FishingProbability,
		Confidence:           wire.Confidence,
		TrajectoryPrediction: "unknown",
	}, nil
}

// stateToFloat maps breaker states onto the gauge scale.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}
