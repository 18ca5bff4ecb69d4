// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

// Package main is the entry point for the Maritimus server.
//
// Maritimus is a maritime vessel surveillance API. It accepts AIS vessel
// observations over HTTP, delegates ML prediction, geofence checks and
// behavioral violation detection to external collaborator services, and
// combines their answers into zone violation reports and per-vessel risk
// analyses. It also fetches remote CSV datasets and summarizes uploaded
// AIS files.
//
// Startup order:
//
//  1. Configuration: Koanf v2 layering of defaults, config.yaml and
//     MARITIMUS_-prefixed environment variables
//  2. Logging: zerolog, JSON or console format
//  3. Collaborator clients: prediction (circuit-broken), geofence,
//     detection, plus the CSV fetcher
//  4. HTTP server under a suture supervision tree
//
// The server shuts down gracefully on SIGINT and SIGTERM, draining
// in-flight requests within the configured timeout.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/maritimus/internal/analysis"
	"github.com/tomtom215/maritimus/internal/api"
	"github.com/tomtom215/maritimus/internal/config"
	"github.com/tomtom215/maritimus/internal/csvfetch"
	"github.com/tomtom215/maritimus/internal/detection"
	"github.com/tomtom215/maritimus/internal/geofence"
	"github.com/tomtom215/maritimus/internal/logging"
	"github.com/tomtom215/maritimus/internal/prediction"
	"github.com/tomtom215/maritimus/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("prediction_url", cfg.Prediction.URL).
		Str("geofence_url", cfg.Geofence.URL).
		Str("detection_url", cfg.Detection.URL).
		Msg("Configuration loaded")

	// Collaborator clients and the analysis pipeline.
	predictor := prediction.NewClient(&cfg.Prediction)
	zones := geofence.NewClient(&cfg.Geofence)
	detector := detection.NewClient(&cfg.Detection)
	fetcher := csvfetch.NewFetcher(&cfg.Fetch)

	handler := api.NewHandler(
		geofence.NewAggregator(zones),
		analysis.NewPipeline(predictor, zones, detector),
		predictor,
		fetcher,
	)

	mw := api.NewChiMiddleware(&cfg.CORS, &cfg.RateLimit)
	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	if cfg.Server.ShutdownTimeout > 0 {
		treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	}
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.AddAPIService(supervisor.NewHTTPServerService(server, treeCfg.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added to supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
		// Give the logger a moment on crash paths before exiting nonzero.
		time.Sleep(100 * time.Millisecond)
		os.Exit(1)
	}

	logging.Info().Msg("Maritimus stopped gracefully")
}
