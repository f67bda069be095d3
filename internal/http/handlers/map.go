package handlers

import (
	"time"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "stationmap/internal/db"
)

// The map feed is the only read path visitors get, so it serializes
// through views rather than the models: no edit passwords, no
// unapproved stations, no private events.

type bandModeNames struct {
	Bands []string `json:"bands"`
	Modes []string `json:"modes"`
}

type temporaryStationView struct {
	ID               uint      `json:"id"`
	Callsign         string    `json:"callsign"`
	ClubName         string    `json:"club_name"`
	EventID          *uint     `json:"event_id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Dates            string    `json:"dates"`
	Times            string    `json:"times"`
	LatitudeDegrees  float64   `json:"latitude_degrees"`
	LongitudeDegrees float64   `json:"longitude_degrees"`
	Notes            string    `json:"notes"`
	WebsiteURL       *string   `json:"website_url"`
	Email            *string   `json:"email"`
	PhoneNumber      *string   `json:"phone_number"`
	QRZURL           *string   `json:"qrz_url"`
	SocialMediaURL   *string   `json:"social_media_url"`
	RSGBAttending    bool      `json:"rsgb_attending"`
	bandModeNames
}

type permanentStationView struct {
	ID               uint    `json:"id"`
	Callsign         string  `json:"callsign"`
	ClubName         string  `json:"club_name"`
	Type             *string `json:"type"`
	Icon             *string `json:"icon"`
	Color            *string `json:"color"`
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
}

type eventView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Dates     string    `json:"dates"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	URLSlug   *string   `json:"url_slug"`
	RSGBEvent bool      `json:"rsgb_event"`
	bandModeNames
}

func names(bands []dbpkg.Band, modes []dbpkg.Mode) bandModeNames {
	v := bandModeNames{Bands: make([]string, 0, len(bands)), Modes: make([]string, 0, len(modes))}
	for _, b := range bands {
		v.Bands = append(v.Bands, b.Name)
	}
	for _, m := range modes {
		v.Modes = append(v.Modes, m.Name)
	}
	return v
}

func temporaryStationViews(stations []dbpkg.TemporaryStation) []temporaryStationView {
	views := make([]temporaryStationView, 0, len(stations))
	for _, s := range stations {
		views = append(views, temporaryStationView{
			ID:               s.ID,
			Callsign:         s.Callsign,
			ClubName:         s.ClubName,
			EventID:          s.EventID,
			StartTime:        s.StartTime,
			EndTime:          s.EndTime,
			Dates:            FormatDateRange(s.StartTime, s.EndTime),
			Times:            FormatTimeRange(s.StartTime, s.EndTime),
			LatitudeDegrees:  s.LatitudeDegrees,
			LongitudeDegrees: s.LongitudeDegrees,
			Notes:            s.Notes,
			WebsiteURL:       s.WebsiteURL,
			Email:            s.Email,
			PhoneNumber:      s.PhoneNumber,
			QRZURL:           s.QRZURL,
			SocialMediaURL:   s.SocialMediaURL,
			RSGBAttending:    s.RSGBAttending,
			bandModeNames:    names(s.Bands, s.Modes),
		})
	}
	return views
}

func permanentStationViews(stations []dbpkg.PermanentStation) []permanentStationView {
	views := make([]permanentStationView, 0, len(stations))
	for _, s := range stations {
		v := permanentStationView{
			ID:               s.ID,
			Callsign:         s.Callsign,
			ClubName:         s.ClubName,
			LatitudeDegrees:  s.LatitudeDegrees,
			LongitudeDegrees: s.LongitudeDegrees,
			MeetingWhen:      s.MeetingWhen,
			MeetingWhere:     s.MeetingWhere,
			Notes:            s.Notes,
			WebsiteURL:       s.WebsiteURL,
			Email:            s.Email,
			PhoneNumber:      s.PhoneNumber,
			QRZURL:           s.QRZURL,
			SocialMediaURL:   s.SocialMediaURL,
		}
		if s.Type != nil {
			v.Type = &s.Type.Name
			v.Icon = &s.Type.Icon
			v.Color = &s.Type.Color
		}
		views = append(views, v)
	}
	return views
}

func eventViews(events []dbpkg.Event) []eventView {
	views := make([]eventView, 0, len(events))
	for _, e := range events {
		views = append(views, eventView{
			ID:            e.ID,
			Name:          e.Name,
			StartTime:     e.StartTime,
			EndTime:       e.EndTime,
			Dates:         FormatDateRange(e.StartTime, e.EndTime),
			Icon:          e.Icon,
			Color:         e.Color,
			URLSlug:       e.URLSlug,
			RSGBEvent:     e.RSGBEvent,
			bandModeNames: names(e.Bands, e.Modes),
		})
	}
	return views
}

// MapData returns everything the public map renders in one response:
// approved stations of both kinds and the public events.
func MapData(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		temporary, err := dbpkg.GetApprovedTemporaryStations(db)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		permanent, err := dbpkg.GetApprovedPermanentStations(db)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		events, err := dbpkg.GetPublicEvents(db)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}

		writeJSON(ctx, fasthttp.StatusOK, map[string]any{
			"temporary_stations": temporaryStationViews(temporary),
			"permanent_stations": permanentStationViews(permanent),
			"events":             eventViews(events),
		})
	}
}

// PublicEventBySlug serves an event's landing page data. The slug route
// works for any event that has a slug, public or not: a slug is a
// deliberate act of sharing.
func PublicEventBySlug(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		slug, _ := ctx.UserValue("slug").(string)
		if slug == "" {
			writeError(ctx, fasthttp.StatusBadRequest, "missing slug")
			return
		}

		event, err := dbpkg.GetEventBySlug(db, slug)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}

		approved := make([]dbpkg.TemporaryStation, 0, len(event.Stations))
		for _, s := range event.Stations {
			if s.Approved {
				approved = append(approved, s)
			}
		}

		view := eventViews([]dbpkg.Event{*event})[0]
		writeJSON(ctx, fasthttp.StatusOK, map[string]any{
			"event":          view,
			"notes_template": event.NotesTemplate,
			"stations":       temporaryStationViews(approved),
		})
	}
}
