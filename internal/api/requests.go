// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// maxRequestBodyBytes caps JSON request bodies. AIS uploads go through the
// multipart path and have their own limit.
const maxRequestBodyBytes = 1 << 20

// ZoneCheckVesselRequest is one vessel coordinate in a batch zone check.
type ZoneCheckVesselRequest struct {
	VesselID  string  `json:"vessel_id" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// ZoneCheckRequest is the batch zone check payload.
type ZoneCheckRequest struct {
	Vessels []ZoneCheckVesselRequest `json:"vessels" validate:"required,min=1,dive"`
}

// SingleZoneCheckRequest is a bare coordinate for the single-point check.
type SingleZoneCheckRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// decodeJSON parses a JSON request body into dst, rejecting empty and
// oversized bodies.
func decodeJSON(r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes)
	dec := json.NewDecoder(body)

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
