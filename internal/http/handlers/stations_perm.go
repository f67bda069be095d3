package handlers

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"stationmap/internal/access"
	dbpkg "stationmap/internal/db"
)

type permanentStationRequest struct {
	Callsign         string  `json:"callsign"`
	ClubName         string  `json:"club_name"`
	TypeID           *uint   `json:"type_id"`
	LatitudeDegrees  float64 `json:"latitude_degrees"`
	LongitudeDegrees float64 `json:"longitude_degrees"`
	MeetingWhen      string  `json:"meeting_when"`
	MeetingWhere     string  `json:"meeting_where"`
	Notes            string  `json:"notes"`
	WebsiteURL       *string `json:"website_url"`
	Email            *string `json:"email"`
	PhoneNumber      *string `json:"phone_number"`
	QRZURL           *string `json:"qrz_url"`
	SocialMediaURL   *string `json:"social_media_url"`
	Approved         bool    `json:"approved"`
}

func (r *permanentStationRequest) validate(ctx *fasthttp.RequestCtx) bool {
	if r.Callsign == "" || r.ClubName == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "callsign and club_name required")
		return false
	}
	return true
}

func (r *permanentStationRequest) toStation(approved bool) *dbpkg.PermanentStation {
	return &dbpkg.PermanentStation{
		Callsign:         r.Callsign,
		ClubName:         r.ClubName,
		TypeID:           r.TypeID,
		LatitudeDegrees:  r.LatitudeDegrees,
		LongitudeDegrees: r.LongitudeDegrees,
		MeetingWhen:      r.MeetingWhen,
		MeetingWhere:     r.MeetingWhere,
		Notes:            r.Notes,
		WebsiteURL:       r.WebsiteURL,
		Email:            r.Email,
		PhoneNumber:      r.PhoneNumber,
		QRZURL:           r.QRZURL,
		SocialMediaURL:   r.SocialMediaURL,
		Approved:         approved,
	}
}

// ListPermanentStations returns every permanent station for the admin
// listing, edit passwords included.
func ListPermanentStations(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		stations, err := dbpkg.GetAllPermanentStations(db)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, stations)
	}
}

// CreatePermanentStation is the admin creation path.
func CreatePermanentStation(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}

		var req permanentStationRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}
		if !req.validate(ctx) {
			return
		}

		station := req.toStation(req.Approved)
		stationID, err := dbpkg.AddPermanentStation(db, station)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		stationsSubmittedTotal.WithLabelValues("permanent", "admin").Inc()

		writeJSON(ctx, fasthttp.StatusCreated, map[string]any{
			"id":            stationID,
			"edit_password": station.EditPassword,
		})
	}
}

// GetPermanentStation returns one permanent station for admin use.
func GetPermanentStation(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		stationID, ok := routeID(ctx)
		if !ok {
			return
		}
		station, err := dbpkg.GetPermanentStation(db, stationID)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, station)
	}
}

// UpdatePermanentStation is the admin update path.
func UpdatePermanentStation(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}
		stationID, ok := routeID(ctx)
		if !ok {
			return
		}

		var patch dbpkg.PermanentStationPatch
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

		if err := dbpkg.UpdatePermanentStation(db, stationID, patch); err != nil {
			writeStoreError(ctx, err)
			return
		}
		if patch.Approved != nil && *patch.Approved {
			stationsApprovedTotal.WithLabelValues("permanent").Inc()
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "updated"})
	}
}

// DeletePermanentStation is the admin delete path.
func DeletePermanentStation(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		stationID, ok := routeID(ctx)
		if !ok {
			return
		}
		if err := dbpkg.DeletePermanentStation(db, stationID); err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "deleted"})
	}
}
