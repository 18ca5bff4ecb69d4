// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package prediction

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/maritimus/internal/config"
	"github.com/tomtom215/maritimus/internal/models"
)

func testConfig(url string) *config.PredictionConfig {
	return &config.PredictionConfig{
		URL:             url,
		Timeout:         5 * time.Second,
		BreakerDisabled: true,
	}
}

func TestPredict_Success(t *testing.T) {
	t.Parallel()

	var gotFeatures FeatureRow
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %q", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotFeatures); err != nil {
			t.Errorf("failed to decode feature row: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success":             true,
			"prediction":          "fishing",
			"confidence":          0.91,
			"anomaly_score":       0.42,
			"fishing_probability": 0.87,
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	result, err := client.Predict(context.Background(), FeatureRow{SOG: 4.2, COG: 180})
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}

	if gotFeatures.SOG != 4.2 || gotFeatures.COG != 180 {
		t.Errorf("server saw features %+v, want SOG=4.2 COG=180", gotFeatures)
	}
	if !result.OK {
		t.Fatal("expected successful result")
	}
	if result.VesselTypePrediction != "fishing" {
		t.Errorf("VesselTypePrediction = %q, want fishing", result.VesselTypePrediction)
	}
	if result.AnomalyScore != 0.42 {
		t.Errorf("AnomalyScore = %v, want 0.42", result.AnomalyScore)
	}
	if result.FishingProbability != 0.87 {
		t.Errorf("FishingProbability = %v, want 0.87", result.FishingProbability)
	}
	if result.Confidence != 0.91 {
		t.Errorf("Confidence = %v, want 0.91", result.Confidence)
	}
}

func TestPredict_OptionalScoresDefaultToZero(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success":    true,
			"prediction": "cargo",
			"confidence": 0.6,
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	result, err := client.Predict(context.Background(), FeatureRow{})
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	if result.AnomalyScore != 0 || result.FishingProbability != 0 {
		t.Errorf("optional scores should default to zero, got %+v", result)
	}
}

func TestPredict_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "model not loaded",
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	result, err := client.Predict(context.Background(), FeatureRow{})
	if err != nil {
		t.Fatalf("upstream-reported failure should not be a transport error, got %v", err)
	}
	if result.OK {
		t.Fatal("expected degraded result")
	}
	if result.Err != "model not loaded" {
		t.Errorf("Err = %q, want upstream message", result.Err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"error":"model not loaded"}`
	if string(payload) != want {
		t.Errorf("payload = %s, want %s", payload, want)
	}
}

func TestPredict_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	if _, err := client.Predict(context.Background(), FeatureRow{}); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestPredict_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server's background read can observe the
		// client disconnect and cancel the request context; otherwise the
		// handler never returns and srv.Close deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.Predict(ctx, FeatureRow{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestPredict_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.BreakerDisabled = false
	client := NewClient(cfg)

	// The breaker trips at a 60% failure ratio once it has seen at
	// least ten requests.
	for i := 0; i < 10; i++ {
		if _, err := client.Predict(context.Background(), FeatureRow{}); err == nil {
			t.Fatalf("request %d: expected failure", i)
		}
	}

	_, err := client.Predict(context.Background(), FeatureRow{})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open-state rejection, got %v", err)
	}
}

func TestFeaturesFromObservation(t *testing.T) {
	t.Parallel()

	obs := &models.VesselObservation{
		VesselID:  "V-1",
		Latitude:  58.2,
		Longitude: 10.5,
		Speed:     12.3,
		Course:    271.5,
	}

	features := FeaturesFromObservation(obs)
	if features.SOG != 12.3 {
		t.Errorf("SOG = %v, want 12.3", features.SOG)
	}
	if features.COG != 271.5 {
		t.Errorf("COG = %v, want 271.5", features.COG)
	}
	if features.Heading != 0 || features.Length != 0 || features.Width != 0 || features.Draft != 0 {
		t.Errorf("unmapped fields must stay zero, got %+v", features)
	}
}

func TestFeatureRow_WireNames(t *testing.T) {
	t.Parallel()

	payload, err := json.Marshal(FeatureRow{SOG: 1, COG: 2, Heading: 3, Length: 4, Width: 5, Draft: 6})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var wire map[string]float64
	if err := json.Unmarshal(payload, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"SOG", "COG", "Heading", "Length", "Width", "Draft"} {
		if _, ok := wire[key]; !ok {
			t.Errorf("missing wire field %q", key)
		}
	}
}
