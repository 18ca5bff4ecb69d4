// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

// Package prediction defines the ML prediction collaborator surface: the
// engineered feature row, the Predictor interface, and an HTTP client for
// the remote model service protected by a circuit breaker. Model training
// and inference internals are out of scope; only the interface is spoken.
package prediction

import (
	"context"

	"github.com/tomtom215/maritimus/internal/models"
)

// FeatureRow is the fixed engineered feature mapping the model expects.
// Speed and course map to SOG/COG; the remaining fields default to zero
// when the observation does not supply them.
type FeatureRow struct {
	SOG     float64 `json:"SOG"`
	COG     float64 `json:"COG"`
	Heading float64 `json:"Heading"`
	Length  float64 `json:"Length"`
	Width   float64 `json:"Width"`
	Draft   float64 `json:"Draft"`
}

// FeaturesFromObservation builds the model's feature row from an AIS
// observation.
func FeaturesFromObservation(obs *models.VesselObservation) FeatureRow {
	return FeatureRow{
		SOG: obs.Speed,
		COG: obs.Course,
		// Heading, Length, Width, Draft are not carried by the
		// observation payload and stay zero.
	}
}

// Predictor is the external ML prediction capability.
type Predictor interface {
	// Predict runs the model on one feature row. A transport or upstream
	// failure is returned as an error; callers decide whether that is
	// fatal (predict endpoint) or degrades to an error payload
	// (analysis pipeline).
	Predict(ctx context.Context, features FeatureRow) (models.PredictionResult, error)
}
