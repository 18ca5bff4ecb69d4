// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package detection

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/maritimus/internal/config"
	"github.com/tomtom215/maritimus/internal/metrics"
	"github.com/tomtom215/maritimus/internal/models"
)

// Client is an HTTP implementation of ViolationDetector backed by the
// remote detection service.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a violation detector client.
func NewClient(cfg *config.DetectionConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: cfg.URL,
		client:  &http.Client{Timeout: timeout},
	}
}

// detectRequest is the wire shape sent to the detection service.
type detectRequest struct {
	VesselID   string  `json:"vessel_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Speed      float64 `json:"speed"`
	Course     float64 `json:"course"`
	VesselType string  `json:"vessel_type,omitempty"`
}

// detectResponse wraps the indicator list.
type detectResponse struct {
	Violations []models.ViolationIndicator `json:"violations"`
}

// Detect asks the remote service for behavioral violation indicators.
func (c *Client) Detect(ctx context.Context, obs *models.VesselObservation) ([]models.ViolationIndicator, error) {
	start := time.Now()
	indicators, err := c.detect(ctx, obs)
	metrics.RecordCollaboratorCall("detection", time.Since(start), err)
	return indicators, err
}

func (c *Client) detect(ctx context.Context, obs *models.VesselObservation) ([]models.ViolationIndicator, error) {
	body, err := json.Marshal(detectRequest{
		VesselID:   obs.VesselID,
		Latitude:   obs.Latitude,
		Longitude:  obs.Longitude,
		Speed:      obs.Speed,
		Course:     obs.Course,
		VesselType: obs.VesselType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode detection request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create detection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detection request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("detection service returned status %d: %s", resp.StatusCode, msg)
	}

	var wire detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode detection response: %w", err)
	}

	if wire.Violations == nil {
		return []models.ViolationIndicator{}, nil
	}
	return wire.Violations, nil
}
