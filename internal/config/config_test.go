// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default configuration must validate, got: %v", err)
	}
}

func TestDefaultConfig_CORSOrigins(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if len(cfg.CORS.Origins) != 8 {
		t.Errorf("Expected 8 default dev origins, got %d", len(cfg.CORS.Origins))
	}
	for _, origin := range cfg.CORS.Origins {
		if !strings.HasPrefix(origin, "http://localhost") && !strings.HasPrefix(origin, "http://127.0.0.1") {
			t.Errorf("Unexpected default origin %q", origin)
		}
	}
}

func TestValidate_PortRange(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for port 0")
	}

	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for port 70000")
	}
}

func TestValidate_WildcardWithCredentials(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.CORS.Origins = []string{"*"}
	cfg.CORS.AllowCredentials = true

	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for wildcard origin with credentials")
	}
}

func TestValidate_MissingCollaboratorURL(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Geofence.URL = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error for empty geofence URL")
	}
	if !strings.Contains(err.Error(), "geofence.url") {
		t.Errorf("Expected geofence.url in error, got: %v", err)
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Logging.Level = "verbose"

	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for unknown log level")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"MARITIMUS_SERVER_PORT", "server.port"},
		{"MARITIMUS_SERVER_SHUTDOWN_TIMEOUT", "server.shutdown_timeout"},
		{"MARITIMUS_PREDICTION_URL", "prediction.url"},
		{"MARITIMUS_CORS_ORIGINS", "cors.origins"},
		{"MARITIMUS_FETCH_MAX_BODY_BYTES", "fetch.max_body_bytes"},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.input); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MARITIMUS_SERVER_PORT", "9100")
	t.Setenv("MARITIMUS_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Expected env override port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected env override level debug, got %s", cfg.Logging.Level)
	}
}

func TestLoad_EnvCORSOriginsCommaSeparated(t *testing.T) {
	t.Setenv("MARITIMUS_CORS_ORIGINS", "https://ops.example.com, https://map.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.CORS.Origins) != 2 {
		t.Fatalf("Expected 2 origins, got %v", cfg.CORS.Origins)
	}
	if cfg.CORS.Origins[1] != "https://map.example.com" {
		t.Errorf("Expected trimmed origin, got %q", cfg.CORS.Origins[1])
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "server:\n  port: 8888\nratelimit:\n  requests: 50\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8888 {
		t.Errorf("Expected file port 8888, got %d", cfg.Server.Port)
	}
	if cfg.RateLimit.Requests != 50 {
		t.Errorf("Expected file rate limit 50, got %d", cfg.RateLimit.Requests)
	}
	// Untouched defaults survive layering.
	if cfg.Fetch.Timeout != 30*time.Second {
		t.Errorf("Expected default fetch timeout, got %s", cfg.Fetch.Timeout)
	}
}
