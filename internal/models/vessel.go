// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

// Package models defines the domain types shared across the API surface:
// vessel observations, zone violation records, prediction results, and the
// vessel analysis result. All types are request-scoped; nothing here
// persists beyond a single request.
package models

import "time"

// VesselObservation is a single AIS observation submitted for prediction
// or analysis. Immutable once parsed; discarded when the request completes.
type VesselObservation struct {
	VesselID   string  `json:"vessel_id" validate:"required"`
	Latitude   float64 `json:"latitude" validate:"latitude"`
	Longitude  float64 `json:"longitude" validate:"longitude"`
	Speed      float64 `json:"speed" validate:"gte=0"`
	Course     float64 `json:"course" validate:"course"`
	VesselType string  `json:"vessel_type,omitempty"`
	Timestamp  string  `json:"timestamp,omitempty"`
}

// ObservedAt returns the observation timestamp, defaulting to now when the
// client did not supply one.
func (v *VesselObservation) ObservedAt() string {
	if v.Timestamp != "" {
		return v.Timestamp
	}
	return time.Now().Format(time.RFC3339)
}
