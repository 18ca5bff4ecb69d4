// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package geofence

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/maritimus/internal/logging"
	"github.com/tomtom215/maritimus/internal/metrics"
	"github.com/tomtom215/maritimus/internal/models"
)

// Aggregator runs batch zone checks through a ZoneChecker and tallies the
// per-category violation counts.
type Aggregator struct {
	checker ZoneChecker
}

// NewAggregator creates an aggregator over the given checker.
func NewAggregator(checker ZoneChecker) *Aggregator {
	return &Aggregator{checker: checker}
}

// CheckBatch checks every vessel coordinate in input order and aggregates
// the results into one flat record sequence.
//
// MPA and EEZ counters are incremented once per vessel that has at least one
// violation in that category, not once per record. Vessels are checked
// sequentially; the first checker error aborts the whole batch with no
// partial result.
func (a *Aggregator) CheckBatch(ctx context.Context, vessels []VesselCoordinate) (*models.ZoneCheckBatchResult, error) {
	start := time.Now()

	records := []models.ZoneViolationRecord{}
	mpaCount := 0
	eezCount := 0

	for _, vessel := range vessels {
		check, err := a.checker.CheckVessel(ctx, vessel.VesselID, vessel.Latitude, vessel.Longitude)
		if err != nil {
			return nil, fmt.Errorf("zone check failed for vessel %s: %w", vessel.VesselID, err)
		}

		metrics.VesselsChecked.Inc()

		if len(check.Records) == 0 {
			continue
		}

		records = append(records, check.Records...)
		for _, rec := range check.Records {
			metrics.ZoneViolationsFound.WithLabelValues(string(rec.ZoneType)).Inc()
		}

		if check.MPAViolations > 0 {
			mpaCount++
		}
		if check.EEZViolations > 0 {
			eezCount++
		}
	}

	elapsed := time.Since(start)

	logging.Ctx(ctx).Info().
		Int("total_vessels", len(vessels)).
		Int("violations", len(records)).
		Int("mpa_violations", mpaCount).
		Int("eez_violations", eezCount).
		Dur("elapsed", elapsed).
		Msg("Zone check batch complete")

	return &models.ZoneCheckBatchResult{
		Success:        true,
		TotalVessels:   len(vessels),
		Violations:     len(records),
		MPAViolations:  mpaCount,
		EEZViolations:  eezCount,
		ProcessingTime: elapsed.Round(time.Millisecond).String(),
		Results:        records,
	}, nil
}
