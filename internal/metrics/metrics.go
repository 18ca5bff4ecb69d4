// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

// Package metrics provides Prometheus instrumentation for Maritimus.
//
// Metrics cover the API surface, the external collaborator calls
// (prediction service, zone checker, violation detector), CSV fetching,
// AIS ingestion, and circuit breaker state. They are exposed at /metrics
// in Prometheus text format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// External collaborator metrics (prediction, geofence, detection)

	CollaboratorRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "collaborator_request_duration_seconds",
			Help:    "Duration of external collaborator calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collaborator"},
	)

	CollaboratorErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collaborator_errors_total",
			Help: "Total number of failed external collaborator calls",
		},
		[]string{"collaborator"},
	)

	// Circuit breaker metrics (prediction service client)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker by outcome",
		},
		[]string{"name", "outcome"},
	)

	// Zone check metrics

	VesselsChecked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zone_check_vessels_total",
			Help: "Total number of vessels checked against protected zones",
		},
	)

	ZoneViolationsFound = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zone_violations_total",
			Help: "Total number of zone violation records by zone type",
		},
		[]string{"zone_type"},
	)

	// Analysis metrics

	RiskScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_risk_score",
			Help:    "Distribution of computed vessel risk scores",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)

	// CSV fetch and AIS ingestion metrics

	CSVFetchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "csv_fetch_requests_total",
			Help: "Total number of remote CSV fetch attempts by outcome",
		},
		[]string{"outcome"},
	)

	CSVFetchBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "csv_fetch_bytes_total",
			Help: "Total bytes of CSV data fetched from remote URLs",
		},
	)

	IngestRecordsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_records_processed_total",
			Help: "Total number of AIS records processed from uploads by format",
		},
		[]string{"format"},
	)
)

// RecordAPIRequest records metrics for a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCollaboratorCall records the duration of an external collaborator
// call, and the error counter when it failed.
func RecordCollaboratorCall(collaborator string, duration time.Duration, err error) {
	CollaboratorRequestDuration.WithLabelValues(collaborator).Observe(duration.Seconds())
	if err != nil {
		CollaboratorErrors.WithLabelValues(collaborator).Inc()
	}
}
