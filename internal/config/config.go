// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

// Package config provides layered configuration for Maritimus using Koanf v2.
// Precedence: environment variables > YAML config file > built-in defaults.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration for the Maritimus server.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	CORS       CORSConfig       `koanf:"cors"`
	RateLimit  RateLimitConfig  `koanf:"ratelimit"`
	Prediction PredictionConfig `koanf:"prediction"`
	Geofence   GeofenceConfig   `koanf:"geofence"`
	Detection  DetectionConfig  `koanf:"detection"`
	Fetch      FetchConfig      `koanf:"fetch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CORSConfig holds the cross-origin whitelist. Origins is an explicit named
// list; there is no wildcard default.
type CORSConfig struct {
	Origins          []string `koanf:"origins"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

// RateLimitConfig holds API rate limiting settings.
type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Disabled bool          `koanf:"disabled"`
}

// PredictionConfig holds the remote ML prediction service settings.
type PredictionConfig struct {
	URL             string        `koanf:"url"`
	Timeout         time.Duration `koanf:"timeout"`
	BreakerDisabled bool          `koanf:"breaker_disabled"`
}

// GeofenceConfig holds the zone checker collaborator settings.
type GeofenceConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// DetectionConfig holds the violation detector collaborator settings.
type DetectionConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// FetchConfig holds settings for the remote CSV fetcher.
type FetchConfig struct {
	Timeout time.Duration `koanf:"timeout"`

	// MaxBodyBytes caps the size of a fetched CSV body. 0 disables the cap.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// RequestsPerSecond throttles outbound fetches to remote hosts.
	RequestsPerSecond float64 `koanf:"requests_per_second"`

	UserAgent string `koanf:"user_agent"`
}

// Validate checks the configuration for values that cannot work at runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	// Wildcard origins with credentials is rejected by browsers and would
	// silently break the frontend.
	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.Origins {
			if origin == "*" {
				return fmt.Errorf("cors.origins must not contain %q when allow_credentials is set", "*")
			}
		}
	}

	if !c.RateLimit.Disabled {
		if c.RateLimit.Requests < 1 {
			return fmt.Errorf("ratelimit.requests must be positive, got %d", c.RateLimit.Requests)
		}
		if c.RateLimit.Window <= 0 {
			return fmt.Errorf("ratelimit.window must be positive, got %s", c.RateLimit.Window)
		}
	}

	for name, url := range map[string]string{
		"prediction.url": c.Prediction.URL,
		"geofence.url":   c.Geofence.URL,
		"detection.url":  c.Detection.URL,
	} {
		if url == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if c.Fetch.RequestsPerSecond < 0 {
		return fmt.Errorf("fetch.requests_per_second must not be negative, got %f", c.Fetch.RequestsPerSecond)
	}

	return nil
}
