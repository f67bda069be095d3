package handlers

import (
	"encoding/json"
	"time"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"stationmap/internal/access"
	dbpkg "stationmap/internal/db"
)

type temporaryStationRequest struct {
	Callsign         string    `json:"callsign"`
	ClubName         string    `json:"club_name"`
	EventID          *uint     `json:"event_id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	LatitudeDegrees  float64   `json:"latitude_degrees"`
	LongitudeDegrees float64   `json:"longitude_degrees"`
	Notes            string    `json:"notes"`
	WebsiteURL       *string   `json:"website_url"`
	Email            *string   `json:"email"`
	PhoneNumber      *string   `json:"phone_number"`
	QRZURL           *string   `json:"qrz_url"`
	SocialMediaURL   *string   `json:"social_media_url"`
	RSGBAttending    bool      `json:"rsgb_attending"`
	Approved         bool      `json:"approved"`
	BandIDs          []uint    `json:"band_ids"`
	ModeIDs          []uint    `json:"mode_ids"`
}

func (r *temporaryStationRequest) validate(ctx *fasthttp.RequestCtx) bool {
	if r.Callsign == "" || r.ClubName == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "callsign and club_name required")
		return false
	}
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		writeError(ctx, fasthttp.StatusBadRequest, "start_time and end_time required")
		return false
	}
	return true
}

func (r *temporaryStationRequest) toStation(approved bool) *dbpkg.TemporaryStation {
	return &dbpkg.TemporaryStation{
		Callsign:         r.Callsign,
		ClubName:         r.ClubName,
		EventID:          r.EventID,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		LatitudeDegrees:  r.LatitudeDegrees,
		LongitudeDegrees: r.LongitudeDegrees,
		Notes:            r.Notes,
		WebsiteURL:       r.WebsiteURL,
		Email:            r.Email,
		PhoneNumber:      r.PhoneNumber,
		QRZURL:           r.QRZURL,
		SocialMediaURL:   r.SocialMediaURL,
		RSGBAttending:    r.RSGBAttending,
		Approved:         approved,
	}
}

// ListTemporaryStations returns every temporary station, approved or
// not, edit passwords included, for the admin station listing.
func ListTemporaryStations(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		stations, err := dbpkg.GetAllTemporaryStations(db)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, stations)
	}
}

// CreateTemporaryStation is the admin creation path; unlike public
// submission it may create stations already approved.
func CreateTemporaryStation(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}

		var req temporaryStationRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}
		if !req.validate(ctx) {
			return
		}

		station := req.toStation(req.Approved)
		stationID, err := dbpkg.AddTemporaryStation(db, station, req.BandIDs, req.ModeIDs)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		stationsSubmittedTotal.WithLabelValues("temporary", "admin").Inc()

		writeJSON(ctx, fasthttp.StatusCreated, map[string]any{
			"id":            stationID,
			"edit_password": station.EditPassword,
		})
	}
}

// GetTemporaryStation returns one temporary station for admin use.
func GetTemporaryStation(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		stationID, ok := routeID(ctx)
		if !ok {
			return
		}
		station, err := dbpkg.GetTemporaryStation(db, stationID)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, station)
	}
}

// UpdateTemporaryStation is the admin update path. All patch fields are
// honored, including approval and edit-password rotation.
func UpdateTemporaryStation(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}
		stationID, ok := routeID(ctx)
		if !ok {
			return
		}

		var patch dbpkg.TemporaryStationPatch
		if err := json.Unmarshal(ctx.PostBody(), &patch); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}

		if patch.Approved != nil {
			if err := access.CanApproveStation(user); err != nil {
				writeAccessError(ctx, err)
				return
			}
		}

		if err := dbpkg.UpdateTemporaryStation(db, stationID, patch); err != nil {
			writeStoreError(ctx, err)
			return
		}
		if patch.Approved != nil && *patch.Approved {
			stationsApprovedTotal.WithLabelValues("temporary").Inc()
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "updated"})
	}
}

// DeleteTemporaryStation is the admin delete path.
func DeleteTemporaryStation(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		stationID, ok := routeID(ctx)
		if !ok {
			return
		}
		if err := dbpkg.DeleteTemporaryStation(db, stationID); err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "deleted"})
	}
}

// PurgeExpiredTemporaryStations sweeps away stations whose end time has
// passed. Their events, expired or not, are untouched.
func PurgeExpiredTemporaryStations(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		if err := dbpkg.PurgeExpiredTemporaryStations(db); err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "purged"})
	}
}
