// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package geofence

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

// Client is an HTTP implementation of ZoneChecker backed by the remote
// geofencing service.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a geofencing service client.
func NewClient(cfg *config.GeofenceConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: cfg.URL,
		client:  &http.Client{Timeout: timeout},
	}
}

// vesselCheckRequest is the wire shape for per-vessel checks.
type vesselCheckRequest struct {
	VesselID  string  `json:"vessel_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CheckVessel checks one vessel coordinate against all protected zones.
func (c *Client) CheckVessel(ctx context.Context, vesselID string, lat, lon float64) (*VesselCheck, error) {
	start := time.Now()

	var check VesselCheck
	err := c.post(ctx, "/check", vesselCheckRequest{
		VesselID:  vesselID,
		Latitude:  lat,
		Longitude: lon,
	}, &check)

	metrics.RecordCollaboratorCall("geofence", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &check, nil
}

// pointCheckRequest is the wire shape for single-point checks.
type pointCheckRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CheckPoint reports whether a coordinate lies inside a restricted zone.
func (c *Client) CheckPoint(ctx context.Context, lat, lon float64) (models.PointCheck, error) {
	start := time.Now()

	var check models.PointCheck
	err := c.post(ctx, "/check-point", pointCheckRequest{Latitude: lat, Longitude: lon}, &check)

	metrics.RecordCollaboratorCall("geofence", time.Since(start), err)
	if err != nil {
		return models.PointCheck{}, err
	}
	return check, nil
}

// post sends a JSON request to the geofencing service and decodes the reply.
func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode geofence request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create geofence request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("geofence request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("geofence service returned status %d: %s", resp.StatusCode, msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode geofence response: %w", err)
	}
	return nil
}
