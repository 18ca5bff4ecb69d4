// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package csvfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/maritimus/internal/config"
	"github.com/tomtom215/maritimus/internal/logging"
	"github.com/tomtom215/maritimus/internal/metrics"
)

// Sentinel errors the API layer maps onto HTTP status codes.
var (
	// ErrNotFound means the remote host answered 404 for the dataset.
	ErrNotFound = errors.New("csv file not found at the specified URL")

	// ErrEmptyBody means the remote file exists but contains no data.
	ErrEmptyBody = errors.New("empty csv file")

	// ErrInvalidURL means the URL failed the CSV plausibility check.
	ErrInvalidURL = errors.New("url does not look like a csv dataset")
)

// Result is a successfully fetched CSV dataset.
type Result struct {
	CSVData     string `json:"csv_data"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// Fetcher downloads CSV files from remote URLs. One shared limiter
// throttles all outbound fetches so bulk callers cannot hammer dataset
// hosts.
type Fetcher struct {
	client       *http.Client
	limiter      *rate.Limiter
	userAgent    string
	maxBodyBytes int64
}

// NewFetcher creates a fetcher from config. A zero RequestsPerSecond
// disables throttling and a zero MaxBodyBytes disables the size cap.
func NewFetcher(cfg *config.FetchConfig) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Fetcher{
		client:       &http.Client{Timeout: timeout},
		limiter:      limiter,
		userAgent:    cfg.UserAgent,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

// Fetch validates and normalizes the URL, then downloads the CSV body.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	log := logging.Ctx(ctx)

	if !IsValidCSVURL(rawURL) {
		metrics.CSVFetchRequests.WithLabelValues("invalid_url").Inc()
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}

	fetchURL := ConvertGitHubBlobToRaw(rawURL)
	if fetchURL != rawURL {
		log.Info().Str("url", rawURL).Str("raw_url", fetchURL).Msg("Converted GitHub blob URL to raw")
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			metrics.CSVFetchRequests.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		metrics.CSVFetchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to create fetch request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/csv,application/csv,text/plain,*/*")

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.CSVFetchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("csv fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.CSVFetchRequests.WithLabelValues("not_found").Inc()
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		metrics.CSVFetchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("remote host returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !looksLikeCSVContentType(contentType) {
		log.Warn().Str("content_type", contentType).Str("url", fetchURL).Msg("Unexpected content type for CSV fetch")
	}

	body := resp.Body
	if f.maxBodyBytes > 0 {
		body = http.MaxBytesReader(nil, resp.Body, f.maxBodyBytes)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		metrics.CSVFetchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to read csv body: %w", err)
	}

	if strings.TrimSpace(string(data)) == "" {
		metrics.CSVFetchRequests.WithLabelValues("empty").Inc()
		return nil, ErrEmptyBody
	}

	metrics.CSVFetchRequests.WithLabelValues("success").Inc()
	metrics.CSVFetchBytes.Add(float64(len(data)))

	return &Result{
		CSVData:     string(data),
		Filename:    ExtractCSVFilename(fetchURL),
		ContentType: contentType,
	}, nil
}

// looksLikeCSVContentType accepts the content types dataset hosts commonly
// serve CSV under.
func looksLikeCSVContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	for _, want := range []string{"text/csv", "application/csv", "text/plain"} {
		if strings.Contains(ct, want) {
			return true
		}
	}
	return false
}
