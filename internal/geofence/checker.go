// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

// Package geofence defines the zone checker collaborator surface and the
// zone violation aggregator. The polygon-containment logic itself lives in
// the external geofencing service; this package only speaks its interface.
package geofence

import (
	"context"

	"github.com/tomtom215/maritimus/internal/models"
)

// VesselCoordinate identifies one vessel position in a batch check.
type VesselCoordinate struct {
	VesselID  string
	Latitude  float64
	Longitude float64
}

// VesselCheck is the checker's result for a single vessel: zero or more
// violation records plus per-category counters for that vessel.
type VesselCheck struct {
	Records       []models.ZoneViolationRecord `json:"results"`
	MPAViolations int                          `json:"mpa_violations"`
	EEZViolations int                          `json:"eez_violations"`
}

// ZoneChecker is the external zone-check capability.
type ZoneChecker interface {
	// CheckVessel checks one vessel coordinate against all protected zones.
	CheckVessel(ctx context.Context, vesselID string, lat, lon float64) (*VesselCheck, error)

	// CheckPoint reports whether a single coordinate lies inside a
	// restricted zone. Used by the vessel analysis pipeline.
	CheckPoint(ctx context.Context, lat, lon float64) (models.PointCheck, error)
}
