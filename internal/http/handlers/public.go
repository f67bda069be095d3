package handlers

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"stationmap/internal/access"
	dbpkg "stationmap/internal/db"
)

// secretEditRequest is the envelope for visitor edits: the station's
// edit password alongside the changes to apply.
type secretEditRequest struct {
	EditPassword string          `json:"edit_password"`
	Changes      json.RawMessage `json:"changes"`
}

// SubmitTemporaryStation is the anonymous submission path. The station
// starts unapproved regardless of what the body claims, and the
// response carries the generated edit password, the one time it is ever
// shown.
func SubmitTemporaryStation(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var req temporaryStationRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}
		if !req.validate(ctx) {
			return
		}

		station := req.toStation(false)
		stationID, err := dbpkg.AddTemporaryStation(db, station, req.BandIDs, req.ModeIDs)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		stationsSubmittedTotal.WithLabelValues("temporary", "public").Inc()

		writeJSON(ctx, fasthttp.StatusCreated, map[string]any{
			"id":            stationID,
			"edit_password": station.EditPassword,
		})
	}
}

// SubmitPermanentStation is the anonymous submission path for permanent
// stations.
func SubmitPermanentStation(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var req permanentStationRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}
		if !req.validate(ctx) {
			return
		}

		station := req.toStation(false)
		stationID, err := dbpkg.AddPermanentStation(db, station)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		stationsSubmittedTotal.WithLabelValues("permanent", "public").Inc()

		writeJSON(ctx, fasthttp.StatusCreated, map[string]any{
			"id":            stationID,
			"edit_password": station.EditPassword,
		})
	}
}

// EditTemporaryStation lets whoever holds a station's edit password
// change it without an account. Moderation stays out of reach: the
// approved flag and the password itself are stripped from the changes
// before they are applied.
func EditTemporaryStation(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		stationID, ok := routeID(ctx)
		if !ok {
			return
		}

		var req secretEditRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}

		station, err := dbpkg.GetTemporaryStation(db, stationID)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		if err := access.CanModifyStation(nil, station.EditPassword, req.EditPassword); err != nil {
			writeAccessError(ctx, err)
			return
		}

		var patch dbpkg.TemporaryStationPatch
		if len(req.Changes) > 0 {
			if err := json.Unmarshal(req.Changes, &patch); err != nil {
				writeError(ctx, fasthttp.StatusBadRequest, "invalid changes")
				return
			}
		}
		patch.Approved = nil
		patch.EditPassword = nil

		if err := dbpkg.UpdateTemporaryStation(db, stationID, patch); err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "updated"})
	}
}

// RemoveTemporaryStation lets the edit-password holder withdraw their
// station.
func RemoveTemporaryStation(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		stationID, ok := routeID(ctx)
		if !ok {
			return
		}

		var req secretEditRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}

		station, err := dbpkg.GetTemporaryStation(db, stationID)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		if err := access.CanModifyStation(nil, station.EditPassword, req.EditPassword); err != nil {
			writeAccessError(ctx, err)
			return
		}

		if err := dbpkg.DeleteTemporaryStation(db, stationID); err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "deleted"})
	}
}

// EditPermanentStation is the edit-password update path for permanent
// stations.
func EditPermanentStation(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		stationID, ok := routeID(ctx)
		if !ok {
			return
		}

		var req secretEditRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}

		station, err := dbpkg.GetPermanentStation(db, stationID)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		if err := access.CanModifyStation(nil, station.EditPassword, req.EditPassword); err != nil {
			writeAccessError(ctx, err)
			return
		}

		var patch dbpkg.PermanentStationPatch
		if len(req.Changes) > 0 {
			if err := json.Unmarshal(req.Changes, &patch); err != nil {
				writeError(ctx, fasthttp.StatusBadRequest, "invalid changes")
				return
			}
		}
		patch.Approved = nil
		patch.EditPassword = nil

		if err := dbpkg.UpdatePermanentStation(db, stationID, patch); err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "updated"})
	}
}

// RemovePermanentStation is the edit-password delete path for permanent
// stations.
func RemovePermanentStation(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		stationID, ok := routeID(ctx)
		if !ok {
			return
		}

		var req secretEditRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}

		station, err := dbpkg.GetPermanentStation(db, stationID)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		if err := access.CanModifyStation(nil, station.EditPassword, req.EditPassword); err != nil {
			writeAccessError(ctx, err)
			return
		}

		if err := dbpkg.DeletePermanentStation(db, stationID); err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "deleted"})
	}
}
