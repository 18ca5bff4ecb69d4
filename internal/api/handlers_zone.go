// Maritimus - Maritime Vessel Surveillance and Risk Analysis API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maritimus

package api

import (
	"net/http"

	"github.com/tomtom215/maritimus/internal/geofence"
	"github.com/tomtom215/maritimus/internal/validation"
)

// singleCheckVesselID is the synthetic vessel ID used when a bare
// coordinate is checked through the batch path.
const singleCheckVesselID = "SINGLE_CHECK"

// CheckZone runs the batch zone violation check for a list of vessels.
func (h *Handler) CheckZone(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ZoneCheckRequest
	if err := decodeJSON(r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	vessels := make([]geofence.VesselCoordinate, len(req.Vessels))
	for i, v := range req.Vessels {
		vessels[i] = geofence.VesselCoordinate{
			VesselID:  v.VesselID,
			Latitude:  v.Latitude,
			Longitude: v.Longitude,
		}
	}

	result, err := h.aggregator.CheckBatch(r.Context(), vessels)
	if err != nil {
		rw.ExternalServiceError("Error checking zone violations", err)
		return
	}

	rw.OK(result)
}

// CheckSingleZone checks one bare coordinate by delegating to the batch
// path with a synthetic vessel.
func (h *Handler) CheckSingleZone(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req SingleZoneCheckRequest
	if err := decodeJSON(r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	result, err := h.aggregator.CheckBatch(r.Context(), []geofence.VesselCoordinate{{
		VesselID:  singleCheckVesselID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}})
	if err != nil {
		rw.ExternalServiceError("Zone check failed", err)
		return
	}

	rw.OK(result)
}
