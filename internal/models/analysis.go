// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package models

import "github.com/goccy/go-json"

// PredictionResult is the tagged outcome of a model prediction call.
// Either OK is true and the prediction fields are populated, or OK is
// false and Err carries the upstream failure message.
//
// A failed prediction is not fatal to the analysis pipeline: it degrades
// to a `{"error": ...}` payload and zeroed anomaly/fishing scores.
type PredictionResult struct {
	OK                   bool    `json:"-"`
	VesselTypePrediction string  `json:"vessel_type_prediction"`
	AnomalyScore         float64 `json:"anomaly_score"`
	FishingProbability   float64 `json:"fishing_probability"`
	Confidence           float64 `json:"confidence"`
	TrajectoryPrediction string  `json:"trajectory_prediction"`
	Err                  string  `json:"-"`
}

// PredictionError builds a failed PredictionResult from an upstream message.
func PredictionError(msg string) PredictionResult {
	return PredictionResult{OK: false, Err: msg}
}

// MarshalJSON renders the degraded `{"error": ...}` shape for failed
// predictions and the full prediction payload otherwise.
func (p PredictionResult) MarshalJSON() ([]byte, error) {
	if !p.OK {
		return json.Marshal(map[string]string{"error": p.Err})
	}

	type prediction PredictionResult // shed the method to avoid recursion
	return json.Marshal(prediction(p))
}

// UnmarshalJSON mirrors MarshalJSON so results round-trip in tests and
// client code.
func (p *PredictionResult) UnmarshalJSON(data []byte) error {
	var failed struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(data, &failed); err == nil && failed.Error != nil {
		*p = PredictionError(*failed.Error)
		return nil
	}

	type prediction PredictionResult
	var ok prediction
	if err := json.Unmarshal(data, &ok); err != nil {
		return err
	}
	*p = PredictionResult(ok)
	p.OK = true
	return nil
}

// ViolationIndicator is one entry from the violation detector. The analysis
// pipeline treats these as opaque: only their count feeds the risk score.
type ViolationIndicator struct {
	Type     string `json:"type"`
	Severity string `json:"severity,omitempty"`
	Details  string `json:"details,omitempty"`
}

// AnalysisResult is the combined outcome of the vessel analysis pipeline.
// RiskScore is always clamped into [0,1].
type AnalysisResult struct {
	VesselID        string               `json:"vessel_id"`
	Predictions     PredictionResult     `json:"predictions"`
	ZoneCheck       PointCheck           `json:"zone_check"`
	Violations      []ViolationIndicator `json:"violations"`
	AnomalyScore    float64              `json:"anomaly_score"`
	RiskScore       float64              `json:"risk_score"`
	Recommendations []string             `json:"recommendations"`
}
