// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestProcessCSV(t *testing.T) {
	t.Parallel()

	const upload = `vessel_id,latitude,longitude,timestamp
V-1,58.0,10.0,2026-01-02T10:00:00Z
V-2,58.1,10.1,2026-01-02T09:00:00Z
V-1,58.2,10.2,2026-01-02T11:30:00Z
`

	summary, err := ProcessCSV(strings.NewReader(upload))
	if err != nil {
		t.Fatalf("ProcessCSV returned error: %v", err)
	}

	if summary.TotalRecords != 3 {
		t.Errorf("TotalRecords = %d, want 3", summary.TotalRecords)
	}
	if summary.UniqueVessels != 2 {
		t.Errorf("UniqueVessels = %d, want 2", summary.UniqueVessels)
	}
	if summary.TimeRange.Start == nil || *summary.TimeRange.Start != "2026-01-02T09:00:00Z" {
		t.Errorf("TimeRange.Start = %v, want earliest timestamp", summary.TimeRange.Start)
	}
	if summary.TimeRange.End == nil || *summary.TimeRange.End != "2026-01-02T11:30:00Z" {
		t.Errorf("TimeRange.End = %v, want latest timestamp", summary.TimeRange.End)
	}
}

func TestProcessCSV_MissingOptionalColumns(t *testing.T) {
	t.Parallel()

	const upload = `latitude,longitude
58.0,10.0
58.1,10.1
`

	summary, err := ProcessCSV(strings.NewReader(upload))
	if err != nil {
		t.Fatalf("ProcessCSV returned error: %v", err)
	}

	if summary.TotalRecords != 2 {
		t.Errorf("TotalRecords = %d, want 2", summary.TotalRecords)
	}
	if summary.UniqueVessels != 0 {
		t.Errorf("UniqueVessels = %d, want 0 without a vessel_id column", summary.UniqueVessels)
	}
	if summary.TimeRange.Start != nil || summary.TimeRange.End != nil {
		t.Error("TimeRange must stay null without a timestamp column")
	}
}

func TestProcessCSV_RaggedRows(t *testing.T) {
	t.Parallel()

	const upload = `vessel_id,latitude,longitude,timestamp
V-1,58.0,10.0,2026-01-02T10:00:00Z
V-2,58.1
`

	summary, err := ProcessCSV(strings.NewReader(upload))
	if err != nil {
		t.Fatalf("ProcessCSV returned error: %v", err)
	}
	if summary.TotalRecords != 2 {
		t.Errorf("TotalRecords = %d, want 2", summary.TotalRecords)
	}
	if summary.UniqueVessels != 2 {
		t.Errorf("UniqueVessels = %d, want 2", summary.UniqueVessels)
	}
}

func TestProcessCSV_EmptyFile(t *testing.T) {
	t.Parallel()

	if _, err := ProcessCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestProcessJSON(t *testing.T) {
	t.Parallel()

	const upload = `[
		{"vessel_id": "V-1", "latitude": 58.0, "timestamp": "2026-01-02T10:00:00Z"},
		{"vessel_id": "V-1", "latitude": 58.1, "timestamp": "2026-01-02T12:00:00Z"},
		{"vessel_id": "V-3", "latitude": 58.2, "timestamp": "2026-01-02T08:00:00Z"}
	]`

	summary, err := ProcessJSON(strings.NewReader(upload))
	if err != nil {
		t.Fatalf("ProcessJSON returned error: %v", err)
	}

	if summary.TotalRecords != 3 {
		t.Errorf("TotalRecords = %d, want 3", summary.TotalRecords)
	}
	if summary.UniqueVessels != 2 {
		t.Errorf("UniqueVessels = %d, want 2", summary.UniqueVessels)
	}
	if summary.TimeRange.Start == nil || *summary.TimeRange.Start != "2026-01-02T08:00:00Z" {
		t.Errorf("TimeRange.Start = %v", summary.TimeRange.Start)
	}
	if summary.TimeRange.End == nil || *summary.TimeRange.End != "2026-01-02T12:00:00Z" {
		t.Errorf("TimeRange.End = %v", summary.TimeRange.End)
	}
}

func TestProcessJSON_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ProcessJSON(strings.NewReader(`{"not": "an array"}`)); err == nil {
		t.Fatal("expected error for non-array json")
	}
}

func TestProcessFile_Dispatch(t *testing.T) {
	t.Parallel()

	summary, err := ProcessFile("fleet.csv", strings.NewReader("vessel_id\nV-1\n"))
	if err != nil {
		t.Fatalf("csv dispatch failed: %v", err)
	}
	if summary.TotalRecords != 1 {
		t.Errorf("TotalRecords = %d, want 1", summary.TotalRecords)
	}

	summary, err = ProcessFile("fleet.json", strings.NewReader(`[{"vessel_id": "V-1"}]`))
	if err != nil {
		t.Fatalf("json dispatch failed: %v", err)
	}
	if summary.TotalRecords != 1 {
		t.Errorf("TotalRecords = %d, want 1", summary.TotalRecords)
	}
}

func TestProcessFile_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := ProcessFile("fleet.xlsx", strings.NewReader("data"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}
