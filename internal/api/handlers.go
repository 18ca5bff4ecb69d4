// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/maritimus/internal/analysis"
	"github.com/tomtom215/maritimus/internal/csvfetch"
	"github.com/tomtom215/maritimus/internal/geofence"
	"github.com/tomtom215/maritimus/internal/prediction"
)

// Handler holds the dependencies shared by all route handlers.
type Handler struct {
	aggregator *geofence.Aggregator
	pipeline   *analysis.Pipeline
	predictor  prediction.Predictor
	fetcher    *csvfetch.Fetcher
	startTime  time.Time
}

// NewHandler creates the route handler set.
func NewHandler(
	aggregator *geofence.Aggregator,
	pipeline *analysis.Pipeline,
	predictor prediction.Predictor,
	fetcher *csvfetch.Fetcher,
) *Handler {
	return &Handler{
		aggregator: aggregator,
		pipeline:   pipeline,
		predictor:  predictor,
		fetcher:    fetcher,
		startTime:  time.Now(),
	}
}

// healthStatus is the GET /health payload.
type healthStatus struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime_seconds"`
}

// Health reports service liveness with a timestamp.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).OK(healthStatus{
		Status:    "healthy",
		Timestamp: Timestamp(),
		Uptime:    time.Since(h.startTime).Seconds(),
	})
}

// HealthLive is the Kubernetes-style liveness probe. It answers 200 as long
// as the process is serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).OK(map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe. The service holds no connections of
// its own; collaborators are dialed per request, so ready equals alive.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).OK(map[string]string{"status": "ready"})
}
