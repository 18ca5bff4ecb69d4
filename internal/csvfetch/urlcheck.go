// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

// Package csvfetch fetches remote CSV datasets for ingestion. It normalizes
// user-supplied dataset URLs (GitHub blob links become raw-content links)
// and downloads them with a polite, rate-limited HTTP client.
package csvfetch

import (
	"net/url"
	"regexp"
	"strings"
)

// DefaultCSVFilename is returned when no filename can be derived from a URL.
const DefaultCSVFilename = "downloaded_data.csv"

// csvFilenameRE matches the final path segment when it carries a literal
// .csv extension. Case-sensitive on purpose: hosts serve .CSV and .csv as
// different objects.
var csvFilenameRE = regexp.MustCompile(`[^/]+\.csv$`)

// IsValidCSVURL reports whether a URL is plausibly a CSV dataset: it must
// have a scheme and host, and either end in .csv or live on a GitHub
// content host.
func IsValidCSVURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return false
	}
	return strings.HasSuffix(raw, ".csv") ||
		strings.Contains(parsed.Host, "github.com") ||
		strings.Contains(parsed.Host, "raw.githubusercontent.com")
}

// ConvertGitHubBlobToRaw rewrites a github.com blob URL into its
// raw.githubusercontent.com equivalent. Any other URL passes through
// unchanged.
func ConvertGitHubBlobToRaw(raw string) string {
	if strings.Contains(raw, "github.com") && strings.Contains(raw, "/blob/") {
		raw = strings.Replace(raw, "github.com", "raw.githubusercontent.com", 1)
		raw = strings.Replace(raw, "/blob/", "/", 1)
	}
	return raw
}

// ExtractCSVFilename derives a filename from the URL's last path segment,
// falling back to DefaultCSVFilename when the path does not end in .csv.
func ExtractCSVFilename(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return DefaultCSVFilename
	}

	path := parsed.Path
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}

	if match := csvFilenameRE.FindString(path); match != "" {
		return match
	}
	return DefaultCSVFilename
}
