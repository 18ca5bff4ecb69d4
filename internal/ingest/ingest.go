// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

// Package ingest processes uploaded AIS data files. CSV and JSON uploads
// are summarized in-memory; nothing is persisted.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/maritimus/internal/metrics"
)

// ErrUnsupportedFormat means the uploaded file extension is not recognized.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// TimeRange spans the observed timestamps. Start and End are nil when the
// upload carries no timestamp column.
type TimeRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// Summary describes one processed AIS upload.
type Summary struct {
	TotalRecords  int       `json:"total_records"`
	UniqueVessels int       `json:"unique_vessels"`
	TimeRange     TimeRange `json:"time_range"`
	Summary       string    `json:"summary"`
}

// ProcessFile dispatches on the uploaded filename's extension.
func ProcessFile(filename string, content io.Reader) (*Summary, error) {
	switch {
	case strings.HasSuffix(filename, ".csv"):
		return ProcessCSV(content)
	case strings.HasSuffix(filename, ".json"):
		return ProcessJSON(content)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// ProcessCSV summarizes a CSV upload. The first row is the header; a
// vessel_id column feeds the unique-vessel count and a timestamp column
// feeds the time range, both optional.
func ProcessCSV(content io.Reader) (*Summary, error) {
	reader := csv.NewReader(content)
	reader.FieldsPerRecord = -1 // ragged AIS exports are common

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv file has no header row")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	vesselCol, timeCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "vessel_id":
			vesselCol = i
		case "timestamp":
			timeCol = i
		}
	}

	agg := newAggregation()
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		var vesselID, timestamp string
		if vesselCol >= 0 && vesselCol < len(row) {
			vesselID = row[vesselCol]
		}
		if timeCol >= 0 && timeCol < len(row) {
			timestamp = row[timeCol]
		}
		agg.add(vesselID, timestamp)
	}

	metrics.IngestRecordsProcessed.WithLabelValues("csv").Add(float64(agg.records))
	return agg.summary(), nil
}

// jsonRecord is one AIS observation in a JSON upload. Extra fields are
// ignored.
type jsonRecord struct {
	VesselID  string `json:"vessel_id"`
	Timestamp string `json:"timestamp"`
}

// ProcessJSON summarizes a JSON upload holding an array of AIS records.
func ProcessJSON(content io.Reader) (*Summary, error) {
	var records []jsonRecord
	if err := json.NewDecoder(content).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse json upload: %w", err)
	}

	agg := newAggregation()
	for _, rec := range records {
		agg.add(rec.VesselID, rec.Timestamp)
	}

	metrics.IngestRecordsProcessed.WithLabelValues("json").Add(float64(agg.records))
	return agg.summary(), nil
}

// aggregation accumulates per-record facts during a single upload.
type aggregation struct {
	records  int
	vessels  map[string]struct{}
	minTime  string
	maxTime  string
	sawTimes bool
}

func newAggregation() *aggregation {
	return &aggregation{vessels: make(map[string]struct{})}
}

func (a *aggregation) add(vesselID, timestamp string) {
	a.records++
	if vesselID != "" {
		a.vessels[vesselID] = struct{}{}
	}
	if timestamp == "" {
		return
	}
	// ISO-8601 timestamps order lexicographically.
	if !a.sawTimes {
		a.minTime, a.maxTime = timestamp, timestamp
		a.sawTimes = true
		return
	}
	if timestamp < a.minTime {
		a.minTime = timestamp
	}
	if timestamp > a.maxTime {
		a.maxTime = timestamp
	}
}

func (a *aggregation) summary() *Summary {
	s := &Summary{
		TotalRecords:  a.records,
		UniqueVessels: len(a.vessels),
		Summary:       "AIS data processed successfully",
	}
	if a.sawTimes {
		s.TimeRange.Start = &a.minTime
		s.TimeRange.End = &a.maxTime
	}
	return s
}
