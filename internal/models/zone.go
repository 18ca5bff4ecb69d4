// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package models

// ZoneType classifies the protected zone a violation record belongs to.
type ZoneType string

const (
	// ZoneTypeMPA is a Marine Protected Area.
	ZoneTypeMPA ZoneType = "MPA"

	// ZoneTypeEEZ is an Exclusive Economic Zone boundary.
	ZoneTypeEEZ ZoneType = "EEZ"

	// ZoneTypeOther covers any other restricted zone category.
	ZoneTypeOther ZoneType = "other"
)

// ZoneViolationRecord is a single violation produced by the zone checker.
// Records are aggregated in input order and never mutated.
type ZoneViolationRecord struct {
	VesselID string   `json:"vessel_id"`
	ZoneType ZoneType `json:"zone_type"`

	// Timestamp is when the violation was observed, ISO-8601.
	Timestamp string `json:"timestamp"`

	// Location is the violating coordinate as [latitude, longitude].
	Location [2]float64 `json:"location"`

	// Duration is how long the vessel has been inside the zone, in
	// seconds. Nil when the checker cannot determine it.
	Duration *float64 `json:"duration,omitempty"`

	Severity string `json:"severity"`
	Details  string `json:"details,omitempty"`
}

// ZoneCheckBatchResult aggregates zone violations across a batch of vessels.
//
// Violations always equals len(Results). MPAViolations and EEZViolations
// count vessels with at least one violation in that category, not individual
// records, so each is bounded by TotalVessels.
type ZoneCheckBatchResult struct {
	Success        bool                  `json:"success"`
	TotalVessels   int                   `json:"total_vessels"`
	Violations     int                   `json:"violations"`
	MPAViolations  int                   `json:"mpa_violations"`
	EEZViolations  int                   `json:"eez_violations"`
	ProcessingTime string                `json:"processing_time"`
	Results        []ZoneViolationRecord `json:"results"`
}

// PointCheck is the zone checker's verdict for a single coordinate, used by
// the vessel analysis pipeline.
type PointCheck struct {
	IsViolation bool     `json:"is_violation"`
	ZoneType    ZoneType `json:"zone_type,omitempty"`
	ZoneName    string   `json:"zone_name,omitempty"`
}
