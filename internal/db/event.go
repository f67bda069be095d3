package db

import (
	"time"

	"gorm.io/gorm"
)

// EventPatch describes a partial update to an event. Nil fields are
// left unchanged. BandIDs/ModeIDs, when non-nil, replace the existing
// association set wholesale; an empty non-nil slice clears it.
type EventPatch struct {
	Name          *string    `json:"name"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Icon          *string    `json:"icon"`
	Color         *string    `json:"color"`
	NotesTemplate *string    `json:"notes_template"`
	URLSlug       *string    `json:"url_slug"`
	Public        *bool      `json:"public"`
	RSGBEvent     *bool      `json:"rsgb_event"`
	BandIDs       []uint     `json:"band_ids"`
	ModeIDs       []uint     `json:"mode_ids"`
}

// AddEvent creates an event together with its band and mode links and
// returns its ID.
func AddEvent(db *gorm.DB, event *Event, bandIDs, modeIDs []uint) (uint, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if event.Bands, err = bandsByID(tx, bandIDs); err != nil {
			return err
		}
		if event.Modes, err = modesByID(tx, modeIDs); err != nil {
			return err
		}
		return tx.Create(event).Error
	})
	if err != nil {
		return 0, translate(err)
	}
	return event.ID, nil
}

// GetEvent returns an event by ID with its stations, bands and modes
// loaded.
func GetEvent(db *gorm.DB, eventID uint) (*Event, error) {
	var event Event
	err := db.Preload("Stations").Preload("Bands").Preload("Modes").First(&event, eventID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

// GetAllEvents returns every event, for admin use.
func GetAllEvents(db *gorm.DB) ([]Event, error) {
	var events []Event
	err := db.Preload("Stations").Preload("Bands").Preload("Modes").Order("start_time").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// GetPublicEvents returns only events flagged public, for the map feed.
func GetPublicEvents(db *gorm.DB) ([]Event, error) {
	var events []Event
	err := db.Preload("Bands").Preload("Modes").
		Where("public = ?", true).Order("start_time").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// GetEventBySlug returns an event by its unique URL slug, with its
// stations and their bands and modes loaded for the event page.
func GetEventBySlug(db *gorm.DB, slug string) (*Event, error) {
	var event Event
	err := db.Preload("Stations").Preload("Stations.Bands").Preload("Stations.Modes").
		Preload("Bands").Preload("Modes").
		Where("url_slug = ?", slug).First(&event).Error
	if err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

// UpdateEvent applies the supplied fields of the patch to an existing
// event.
func UpdateEvent(db *gorm.DB, eventID uint, patch EventPatch) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.First(&event, eventID).Error; err != nil {
			return err
		}

		if patch.Name != nil {
			event.Name = *patch.Name
		}
		if patch.StartTime != nil {
			event.StartTime = *patch.StartTime
		}
		if patch.EndTime != nil {
			event.EndTime = *patch.EndTime
		}
		if patch.Icon != nil {
			event.Icon = *patch.Icon
		}
		if patch.Color != nil {
			event.Color = *patch.Color
		}
		if patch.NotesTemplate != nil {
			event.NotesTemplate = *patch.NotesTemplate
		}
		if patch.URLSlug != nil {
			event.URLSlug = patch.URLSlug
		}
		if patch.Public != nil {
			event.Public = *patch.Public
		}
		if patch.RSGBEvent != nil {
			event.RSGBEvent = *patch.RSGBEvent
		}

		if err := tx.Save(&event).Error; err != nil {
			return err
		}

		if patch.BandIDs != nil {
			bands, err := bandsByID(tx, patch.BandIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&event).Association("Bands").Replace(bands); err != nil {
				return err
			}
		}
		if patch.ModeIDs != nil {
			modes, err := modesByID(tx, patch.ModeIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&event).Association("Modes").Replace(modes); err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err)
}

// DeleteEvent removes an event and every temporary station attached to
// it in a single transaction. A temporary station without its event is
// meaningless, so partial deletion must never be observable.
func DeleteEvent(db *gorm.DB, eventID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.First(&event, eventID).Error; err != nil {
			return err
		}
		return deleteEventTx(tx, &event)
	})
	return translate(err)
}

// deleteEventTx deletes the event and its dependents inside an open
// transaction: station association rows, stations, the event's own
// association rows, then the event.
func deleteEventTx(tx *gorm.DB, event *Event) error {
	var stations []TemporaryStation
	if err := tx.Where("event_id = ?", event.ID).Find(&stations).Error; err != nil {
		return err
	}
	for i := range stations {
		if err := deleteTemporaryStationTx(tx, &stations[i]); err != nil {
			return err
		}
	}

	if err := tx.Model(event).Association("Bands").Clear(); err != nil {
		return err
	}
	if err := tx.Model(event).Association("Modes").Clear(); err != nil {
		return err
	}
	return tx.Delete(event).Error
}

// PurgeExpiredEvents deletes every event whose end time has passed,
// cascading to their temporary stations exactly as a manual delete
// would.
func PurgeExpiredEvents(db *gorm.DB) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var events []Event
		if err := tx.Where("end_time <= ?", time.Now()).Find(&events).Error; err != nil {
			return err
		}
		for i := range events {
			if err := deleteEventTx(tx, &events[i]); err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err)
}
