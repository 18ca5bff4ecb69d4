// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package api

import (
	"net/http"

	"github.com/tomtom215/maritimus/internal/logging"
	"github.com/tomtom215/maritimus/internal/models"
	"github.com/tomtom215/maritimus/internal/prediction"
	"github.com/tomtom215/maritimus/internal/validation"
)

// predictResponse is the POST /api/predict/ payload.
type predictResponse struct {
	VesselID    string                  `json:"vessel_id"`
	Predictions models.PredictionResult `json:"predictions"`
	Confidence  float64                 `json:"confidence"`
	Timestamp   string                  `json:"timestamp"`
}

// Predict runs the ML prediction for one vessel observation. A failed
// upstream call degrades to an error payload with zero confidence rather
// than failing the request.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var obs models.VesselObservation
	if err := decodeJSON(r, &obs); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&obs); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	log := logging.Ctx(r.Context())
	log.Info().
		Str("vessel_id", obs.VesselID).
		Str("observed_at", obs.ObservedAt()).
		Msg("Received prediction request")

	pred, err := h.predictor.Predict(r.Context(), prediction.FeaturesFromObservation(&obs))
	if err != nil {
		log.Error().Err(err).Str("vessel_id", obs.VesselID).Msg("Model prediction failed")
		pred = models.PredictionError(err.Error())
	}

	rw.OK(predictResponse{
		VesselID:    obs.VesselID,
		Predictions: pred,
		Confidence:  pred.Confidence,
		Timestamp:   Timestamp(),
	})
}

// AnalyzeVessel runs the full analysis pipeline for one observation.
func (h *Handler) AnalyzeVessel(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var obs models.VesselObservation
	if err := decodeJSON(r, &obs); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&obs); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	result, err := h.pipeline.Analyze(r.Context(), &obs)
	if err != nil {
		rw.ExternalServiceError("Vessel analysis failed", err)
		return
	}

	rw.OK(result)
}
