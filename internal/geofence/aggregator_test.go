// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package geofence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tomtom215/maritimus/internal/models"
)

// fakeChecker returns scripted per-vessel results keyed by vessel ID.
type fakeChecker struct {
	results map[string]*VesselCheck
	failOn  string
	calls   []string
}

func (f *fakeChecker) CheckVessel(_ context.Context, vesselID string, _, _ float64) (*VesselCheck, error) {
	f.calls = append(f.calls, vesselID)
	if vesselID == f.failOn {
		return nil, errors.New("geofence service unavailable")
	}
	if check, ok := f.results[vesselID]; ok {
		return check, nil
	}
	return &VesselCheck{}, nil
}

func (f *fakeChecker) CheckPoint(context.Context, float64, float64) (models.PointCheck, error) {
	return models.PointCheck{}, nil
}

func mpaRecord(vesselID string) models.ZoneViolationRecord {
	return models.ZoneViolationRecord{
		VesselID: vesselID,
		ZoneType: models.ZoneTypeMPA,
		Severity: "high",
	}
}

func eezRecord(vesselID string) models.ZoneViolationRecord {
	return models.ZoneViolationRecord{
		VesselID: vesselID,
		ZoneType: models.ZoneTypeEEZ,
		Severity: "medium",
	}
}

func TestCheckBatch_AggregatesInOrder(t *testing.T) {
	t.Parallel()

	checker := &fakeChecker{results: map[string]*VesselCheck{
		"V-1": {Records: []models.ZoneViolationRecord{mpaRecord("V-1")}, MPAViolations: 1},
		"V-3": {Records: []models.ZoneViolationRecord{eezRecord("V-3"), mpaRecord("V-3")}, MPAViolations: 1, EEZViolations: 1},
	}}

	result, err := NewAggregator(checker).CheckBatch(context.Background(), []VesselCoordinate{
		{VesselID: "V-1", Latitude: 10, Longitude: 20},
		{VesselID: "V-2", Latitude: 11, Longitude: 21},
		{VesselID: "V-3", Latitude: 12, Longitude: 22},
	})
	if err != nil {
		t.Fatalf("CheckBatch failed: %v", err)
	}

	if result.TotalVessels != 3 {
		t.Errorf("Expected total_vessels 3, got %d", result.TotalVessels)
	}
	if result.Violations != 3 || len(result.Results) != 3 {
		t.Errorf("Expected 3 flat records, got violations=%d len=%d", result.Violations, len(result.Results))
	}

	// Input order is preserved: V-1's record before V-3's two records.
	wantOrder := []string{"V-1", "V-3", "V-3"}
	for i, rec := range result.Results {
		if rec.VesselID != wantOrder[i] {
			t.Errorf("Record %d: expected vessel %s, got %s", i, wantOrder[i], rec.VesselID)
		}
	}
}

func TestCheckBatch_PerVesselCategoryCounts(t *testing.T) {
	t.Parallel()

	// One vessel with three MPA records still counts once.
	checker := &fakeChecker{results: map[string]*VesselCheck{
		"V-1": {
			Records:       []models.ZoneViolationRecord{mpaRecord("V-1"), mpaRecord("V-1"), mpaRecord("V-1")},
			MPAViolations: 3,
		},
		"V-2": {
			Records:       []models.ZoneViolationRecord{mpaRecord("V-2"), eezRecord("V-2")},
			MPAViolations: 1,
			EEZViolations: 1,
		},
	}}

	result, err := NewAggregator(checker).CheckBatch(context.Background(), []VesselCoordinate{
		{VesselID: "V-1"}, {VesselID: "V-2"},
	})
	if err != nil {
		t.Fatalf("CheckBatch failed: %v", err)
	}

	if result.MPAViolations != 2 {
		t.Errorf("Expected mpa_violations 2 (per vessel), got %d", result.MPAViolations)
	}
	if result.EEZViolations != 1 {
		t.Errorf("Expected eez_violations 1, got %d", result.EEZViolations)
	}
	if result.Violations != 5 {
		t.Errorf("Expected 5 total records, got %d", result.Violations)
	}
}

func TestCheckBatch_CountsBoundedByVessels(t *testing.T) {
	t.Parallel()

	results := make(map[string]*VesselCheck)
	vessels := make([]VesselCoordinate, 10)
	for i := range vessels {
		id := fmt.Sprintf("V-%d", i)
		vessels[i] = VesselCoordinate{VesselID: id}
		results[id] = &VesselCheck{
			Records:       []models.ZoneViolationRecord{mpaRecord(id), mpaRecord(id)},
			MPAViolations: 2,
		}
	}

	result, err := NewAggregator(&fakeChecker{results: results}).CheckBatch(context.Background(), vessels)
	if err != nil {
		t.Fatalf("CheckBatch failed: %v", err)
	}

	if result.MPAViolations > result.TotalVessels {
		t.Errorf("mpa_violations %d exceeds total_vessels %d", result.MPAViolations, result.TotalVessels)
	}
	if result.Violations != 20 {
		t.Errorf("Expected 20 records, got %d", result.Violations)
	}
}

func TestCheckBatch_EmptyBatch(t *testing.T) {
	t.Parallel()

	result, err := NewAggregator(&fakeChecker{}).CheckBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("CheckBatch failed: %v", err)
	}

	if result.TotalVessels != 0 || result.Violations != 0 {
		t.Errorf("Expected empty result, got %+v", result)
	}
	if result.Results == nil {
		t.Error("Results must be an empty slice, not nil, so it serializes as []")
	}
}

func TestCheckBatch_AbortsOnFirstError(t *testing.T) {
	t.Parallel()

	checker := &fakeChecker{
		failOn: "V-2",
		results: map[string]*VesselCheck{
			"V-1": {Records: []models.ZoneViolationRecord{mpaRecord("V-1")}, MPAViolations: 1},
		},
	}

	result, err := NewAggregator(checker).CheckBatch(context.Background(), []VesselCoordinate{
		{VesselID: "V-1"}, {VesselID: "V-2"}, {VesselID: "V-3"},
	})

	if err == nil {
		t.Fatal("Expected error when checker fails")
	}
	if result != nil {
		t.Error("Expected no partial result on failure")
	}
	// V-3 is never checked once V-2 fails.
	if len(checker.calls) != 2 {
		t.Errorf("Expected batch to stop after failure, got calls: %v", checker.calls)
	}
}

func TestCheckBatch_VesselWithIndicatorButNoRecords(t *testing.T) {
	t.Parallel()

	// A vessel reporting a category counter without any records contributes
	// nothing; counting only applies to vessels that produced records.
	checker := &fakeChecker{results: map[string]*VesselCheck{
		"V-1": {MPAViolations: 1},
	}}

	result, err := NewAggregator(checker).CheckBatch(context.Background(), []VesselCoordinate{{VesselID: "V-1"}})
	if err != nil {
		t.Fatalf("CheckBatch failed: %v", err)
	}

	if result.MPAViolations != 0 {
		t.Errorf("Expected mpa_violations 0 for recordless vessel, got %d", result.MPAViolations)
	}
}
