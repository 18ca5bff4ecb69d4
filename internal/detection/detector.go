// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

// Package detection defines the behavioral violation detector, the third
// external collaborator consumed by the analysis pipeline. Indicators are
// opaque here: the pipeline only counts them and echoes them back.
package detection

import (
	"context"

	"github.com/tomtom215/maritimus/internal/models"
)

// ViolationDetector is the external violation-detection capability.
type ViolationDetector interface {
	// Detect inspects one vessel observation for behavioral violations
	// such as speed or course anomalies. The returned slice preserves
	// the detector's ordering and may be empty.
	Detect(ctx context.Context, obs *models.VesselObservation) ([]models.ViolationIndicator, error)
}
