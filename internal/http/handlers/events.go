package handlers

import (
	"encoding/json"
	"time"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "stationmap/internal/db"
)

type createEventRequest struct {
	Name          string    `json:"name"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Icon          string    `json:"icon"`
	Color         string    `json:"color"`
	NotesTemplate string    `json:"notes_template"`
	URLSlug       *string   `json:"url_slug"`
	Public        *bool     `json:"public"`
	RSGBEvent     bool      `json:"rsgb_event"`
	BandIDs       []uint    `json:"band_ids"`
	ModeIDs       []uint    `json:"mode_ids"`
}

// ListEvents returns every event, for the admin event listing.
func ListEvents(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		events, err := dbpkg.GetAllEvents(db)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, events)
	}
}

// CreateEvent creates a new event. Event names and URL slugs are
// unique; a duplicate comes back as 409.
func CreateEvent(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}

		var req createEventRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Name == "" || req.StartTime.IsZero() || req.EndTime.IsZero() {
			writeError(ctx, fasthttp.StatusBadRequest, "name, start_time and end_time required")
			return
		}

		public := true
		if req.Public != nil {
			public = *req.Public
		}

		event := &dbpkg.Event{
			Name:          req.Name,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			Icon:          req.Icon,
			Color:         req.Color,
			NotesTemplate: req.NotesTemplate,
			URLSlug:       req.URLSlug,
			Public:        public,
			RSGBEvent:     req.RSGBEvent,
		}

		eventID, err := dbpkg.AddEvent(db, event, req.BandIDs, req.ModeIDs)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusCreated, map[string]uint{"id": eventID})
	}
}

// GetEvent returns one event with its stations, bands and modes.
func GetEvent(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		eventID, ok := routeID(ctx)
		if !ok {
			return
		}
		event, err := dbpkg.GetEvent(db, eventID)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, event)
	}
}

// UpdateEvent applies a partial update to an event.
func UpdateEvent(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		eventID, ok := routeID(ctx)
		if !ok {
			return
		}

		var patch dbpkg.EventPatch
		if err := json.Unmarshal(ctx.PostBody(), &patch); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}

		if err := dbpkg.UpdateEvent(db, eventID, patch); err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "updated"})
	}
}

// DeleteEvent removes an event and, with it, every temporary station
// that was attached to it.
func DeleteEvent(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		eventID, ok := routeID(ctx)
		if !ok {
			return
		}
		if err := dbpkg.DeleteEvent(db, eventID); err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "deleted"})
	}
}

// PurgeExpiredEvents sweeps away events whose end time has passed,
// cascading to their stations.
func PurgeExpiredEvents(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		if err := dbpkg.PurgeExpiredEvents(db); err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "purged"})
	}
}
