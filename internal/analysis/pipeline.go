// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

// Package analysis implements the vessel analysis pipeline: it fans a
// single observation through the prediction, geofencing and violation
// detection collaborators sequentially, then derives a risk score and an
// ordered recommendation list from the combined output.
package analysis

import (
	"context"
	"fmt"

	"github.com/tomtom215/maritimus/internal/detection"
	"github.com/tomtom215/maritimus/internal/geofence"
	"github.com/tomtom215/maritimus/internal/logging"
	"github.com/tomtom215/maritimus/internal/metrics"
	"github.com/tomtom215/maritimus/internal/models"
	"github.com/tomtom215/maritimus/internal/prediction"
)

// Risk score weights. The three terms are non-negative, so the clamp only
// has to truncate at the top.
const (
	anomalyWeight       = 0.4
	zoneViolationWeight = 0.3
	perViolationWeight  = 0.1
)

// Recommendation texts, emitted in fixed rule order.
const (
	recRestrictedZone = "Vessel is in restricted zone - immediate attention required"
	recAnomalous      = "Vessel showing anomalous behavior - monitor closely"
	recFishing        = "High probability of fishing activity - verify permits"
	recNoAction       = "No immediate action required - continue monitoring"
)

// Pipeline orchestrates the three external capabilities for one vessel.
type Pipeline struct {
	predictor prediction.Predictor
	zones     geofence.ZoneChecker
	detector  detection.ViolationDetector
}

// NewPipeline wires the pipeline's collaborators.
func NewPipeline(p prediction.Predictor, z geofence.ZoneChecker, d detection.ViolationDetector) *Pipeline {
	return &Pipeline{predictor: p, zones: z, detector: d}
}

// Analyze runs the full analysis for one observation.
//
// A failed prediction is not fatal: it degrades to an error payload with
// zeroed anomaly and fishing scores. A zone check or detection failure
// aborts the whole analysis; no partial result is returned.
func (p *Pipeline) Analyze(ctx context.Context, obs *models.VesselObservation) (*models.AnalysisResult, error) {
	log := logging.Ctx(ctx)
	log.Info().Str("vessel_id", obs.VesselID).Msg("Analyzing vessel")

	features := prediction.FeaturesFromObservation(obs)

	pred, err := p.predictor.Predict(ctx, features)
	if err != nil {
		log.Error().Err(err).Str("vessel_id", obs.VesselID).Msg("Model prediction failed, degrading")
		pred = models.PredictionError(err.Error())
	}

	zoneCheck, err := p.zones.CheckPoint(ctx, obs.Latitude, obs.Longitude)
	if err != nil {
		return nil, fmt.Errorf("zone check failed: %w", err)
	}

	violations, err := p.detector.Detect(ctx, obs)
	if err != nil {
		return nil, fmt.Errorf("violation detection failed: %w", err)
	}
	if violations == nil {
		violations = []models.ViolationIndicator{}
	}

	result := &models.AnalysisResult{
		VesselID:        obs.VesselID,
		Predictions:     pred,
		ZoneCheck:       zoneCheck,
		Violations:      violations,
		AnomalyScore:    pred.AnomalyScore,
		RiskScore:       riskScore(pred, zoneCheck, violations),
		Recommendations: recommendations(pred, zoneCheck),
	}

	metrics.RiskScores.Observe(result.RiskScore)
	log.Info().
		Str("vessel_id", obs.VesselID).
		Float64("risk_score", result.RiskScore).
		Int("violations", len(violations)).
		Bool("zone_violation", zoneCheck.IsViolation).
		Msg("Vessel analysis complete")

	return result, nil
}

// riskScore is the clamped weighted sum of the anomaly score, the zone
// violation flag and the violation count.
func riskScore(pred models.PredictionResult, zone models.PointCheck, violations []models.ViolationIndicator) float64 {
	score := pred.AnomalyScore * anomalyWeight
	if zone.IsViolation {
		score += zoneViolationWeight
	}
	if len(violations) > 0 {
		score += float64(len(violations)) * perViolationWeight
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// recommendations evaluates the advisory rules in fixed order. A failed
// prediction carries zero scores, so only the zone rule can still fire.
func recommendations(pred models.PredictionResult, zone models.PointCheck) []string {
	recs := []string{}
	if zone.IsViolation {
		recs = append(recs, recRestrictedZone)
	}
	if pred.AnomalyScore > 0.7 {
		recs = append(recs, recAnomalous)
	}
	if pred.FishingProbability > 0.8 {
		recs = append(recs, recFishing)
	}
	if len(recs) == 0 {
		recs = append(recs, recNoAction)
	}
	return recs
}
