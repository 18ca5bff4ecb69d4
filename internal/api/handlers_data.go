// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/maritimus/internal/csvfetch"
	"github.com/tomtom215/maritimus/internal/ingest"
	"github.com/tomtom215/maritimus/internal/logging"
)

// maxUploadBytes caps AIS file uploads at 64 MiB.
const maxUploadBytes = 64 << 20

// fetchCSVResponse is the GET /api/fetch-csv/ payload.
type fetchCSVResponse struct {
	Success     bool   `json:"success"`
	CSVData     string `json:"csv_data"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// FetchCSV downloads a remote CSV dataset identified by the url query
// parameter.
func (h *Handler) FetchCSV(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		rw.BadRequest("url query parameter is required")
		return
	}

	logging.Ctx(r.Context()).Info().Str("url", rawURL).Msg("Fetching CSV from URL")

	result, err := h.fetcher.Fetch(r.Context(), rawURL)
	switch {
	case errors.Is(err, csvfetch.ErrNotFound):
		rw.NotFound("CSV file not found at the specified URL")
		return
	case errors.Is(err, csvfetch.ErrEmptyBody):
		rw.BadRequest("Empty CSV file")
		return
	case errors.Is(err, csvfetch.ErrInvalidURL):
		rw.BadRequest("URL does not look like a CSV dataset")
		return
	case err != nil:
		rw.InternalError("Failed to fetch CSV: " + err.Error())
		return
	}

	rw.OK(fetchCSVResponse{
		Success:     true,
		CSVData:     result.CSVData,
		Filename:    result.Filename,
		ContentType: result.ContentType,
	})
}

// uploadResponse is the POST /api/upload-ais/ payload.
type uploadResponse struct {
	Message          string          `json:"message"`
	RecordsProcessed int             `json:"records_processed"`
	Results          *ingest.Summary `json:"results"`
}

// UploadAIS processes an uploaded AIS data file (.csv or .json).
func (h *Handler) UploadAIS(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		rw.BadRequest("multipart form must carry a file field")
		return
	}
	defer file.Close()

	logging.Ctx(r.Context()).Info().Str("filename", header.Filename).Msg("Processing uploaded file")

	summary, err := ingest.ProcessFile(header.Filename, file)
	if err != nil {
		if errors.Is(err, ingest.ErrUnsupportedFormat) {
			rw.UnsupportedMediaType("Unsupported file format")
			return
		}
		rw.InternalError("File processing failed: " + err.Error())
		return
	}

	rw.OK(uploadResponse{
		Message:          "File processed successfully",
		RecordsProcessed: summary.TotalRecords,
		Results:          summary,
	})
}
