package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"stationmap/internal/auth"
)

// TemporaryStationPatch describes a partial update to a temporary
// station. Nil fields are left unchanged. A supplied *EventID of 0
// detaches the station from its event. BandIDs/ModeIDs, when non-nil,
// replace the association set wholesale. EditPassword may be rotated
// but never cleared.
type TemporaryStationPatch struct {
	Callsign         *string    `json:"callsign"`
	ClubName         *string    `json:"club_name"`
	EventID          *uint      `json:"event_id"`
	StartTime        *time.Time `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	LatitudeDegrees  *float64   `json:"latitude_degrees"`
	LongitudeDegrees *float64   `json:"longitude_degrees"`
	Notes            *string    `json:"notes"`
	WebsiteURL       *string    `json:"website_url"`
	Email            *string    `json:"email"`
	PhoneNumber      *string    `json:"phone_number"`
	QRZURL           *string    `json:"qrz_url"`
	SocialMediaURL   *string    `json:"social_media_url"`
	RSGBAttending    *bool      `json:"rsgb_attending"`
	Approved         *bool      `json:"approved"`
	EditPassword     *string    `json:"edit_password"`
	BandIDs          []uint     `json:"band_ids"`
	ModeIDs          []uint     `json:"mode_ids"`
}

// AddTemporaryStation creates a temporary station with its band and
// mode links and returns its ID. An edit password is generated and set
// on the passed station so the caller can show it to the submitter
// once; it is never exposed through public reads afterwards. Visitor
// submissions should arrive with Approved=false, admin creations may
// set it true.
func AddTemporaryStation(db *gorm.DB, station *TemporaryStation, bandIDs, modeIDs []uint) (uint, error) {
	editPassword, err := auth.GenerateEditPassword()
	if err != nil {
		return 0, err
	}
	station.EditPassword = editPassword

	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		if station.Bands, err = bandsByID(tx, bandIDs); err != nil {
			return err
		}
		if station.Modes, err = modesByID(tx, modeIDs); err != nil {
			return err
		}
		return tx.Create(station).Error
	})
	if err != nil {
		return 0, translate(err)
	}
	return station.ID, nil
}

// GetTemporaryStation returns a temporary station by ID with its event,
// bands and modes loaded.
func GetTemporaryStation(db *gorm.DB, stationID uint) (*TemporaryStation, error) {
	var station TemporaryStation
	err := db.Preload("Event").Preload("Bands").Preload("Modes").First(&station, stationID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &station, nil
}

// GetAllTemporaryStations returns every temporary station, approved or
// not, for admin use.
func GetAllTemporaryStations(db *gorm.DB) ([]TemporaryStation, error) {
	var stations []TemporaryStation
	err := db.Preload("Event").Preload("Bands").Preload("Modes").Order("id").Find(&stations).Error
	if err != nil {
		return nil, err
	}
	return stations, nil
}

// GetApprovedTemporaryStations returns only approved stations. This is
// the read path for everything public-facing; filtering here rather
// than in each caller means an unapproved entry can never leak onto the
// map through a forgotten WHERE clause.
func GetApprovedTemporaryStations(db *gorm.DB) ([]TemporaryStation, error) {
	var stations []TemporaryStation
	err := db.Preload("Event").Preload("Bands").Preload("Modes").
		Where("approved = ?", true).Order("id").Find(&stations).Error
	if err != nil {
		return nil, err
	}
	return stations, nil
}

// GetTemporaryStationsByEvent returns the stations attached to an
// event.
func GetTemporaryStationsByEvent(db *gorm.DB, eventID uint) ([]TemporaryStation, error) {
	var stations []TemporaryStation
	err := db.Preload("Event").Preload("Bands").Preload("Modes").
		Where("event_id = ?", eventID).Order("id").Find(&stations).Error
	if err != nil {
		return nil, err
	}
	return stations, nil
}

// UpdateTemporaryStation applies the supplied fields of the patch to an
// existing station.
func UpdateTemporaryStation(db *gorm.DB, stationID uint, patch TemporaryStationPatch) error {
	if patch.EditPassword != nil && *patch.EditPassword == "" {
		return fmt.Errorf("edit password cannot be cleared: %w", ErrConflict)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var station TemporaryStation
		if err := tx.First(&station, stationID).Error; err != nil {
			return err
		}

		if patch.Callsign != nil {
			station.Callsign = *patch.Callsign
		}
		if patch.ClubName != nil {
			station.ClubName = *patch.ClubName
		}
		if patch.EventID != nil {
			if *patch.EventID == 0 {
				station.EventID = nil
			} else {
				station.EventID = patch.EventID
			}
		}
		if patch.StartTime != nil {
			station.StartTime = *patch.StartTime
		}
		if patch.EndTime != nil {
			station.EndTime = *patch.EndTime
		}
		if patch.LatitudeDegrees != nil {
			station.LatitudeDegrees = *patch.LatitudeDegrees
		}
		if patch.LongitudeDegrees != nil {
			station.LongitudeDegrees = *patch.LongitudeDegrees
		}
		if patch.Notes != nil {
			station.Notes = *patch.Notes
		}
		if patch.WebsiteURL != nil {
			station.WebsiteURL = patch.WebsiteURL
		}
		if patch.Email != nil {
			station.Email = patch.Email
		}
		if patch.PhoneNumber != nil {
			station.PhoneNumber = patch.PhoneNumber
		}
		if patch.QRZURL != nil {
			station.QRZURL = patch.QRZURL
		}
		if patch.SocialMediaURL != nil {
			station.SocialMediaURL = patch.SocialMediaURL
		}
		if patch.RSGBAttending != nil {
			station.RSGBAttending = *patch.RSGBAttending
		}
		if patch.Approved != nil {
			station.Approved = *patch.Approved
		}
		if patch.EditPassword != nil {
			station.EditPassword = *patch.EditPassword
		}

		if err := tx.Save(&station).Error; err != nil {
			return err
		}

		if patch.BandIDs != nil {
			bands, err := bandsByID(tx, patch.BandIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&station).Association("Bands").Replace(bands); err != nil {
				return err
			}
		}
		if patch.ModeIDs != nil {
			modes, err := modesByID(tx, patch.ModeIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&station).Association("Modes").Replace(modes); err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err)
}

// DeleteTemporaryStation removes a station and its association rows.
func DeleteTemporaryStation(db *gorm.DB, stationID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var station TemporaryStation
		if err := tx.First(&station, stationID).Error; err != nil {
			return err
		}
		return deleteTemporaryStationTx(tx, &station)
	})
	return translate(err)
}

func deleteTemporaryStationTx(tx *gorm.DB, station *TemporaryStation) error {
	if err := tx.Model(station).Association("Bands").Clear(); err != nil {
		return err
	}
	if err := tx.Model(station).Association("Modes").Clear(); err != nil {
		return err
	}
	return tx.Delete(station).Error
}

// PurgeExpiredTemporaryStations deletes every temporary station whose
// end time has passed. Parent events are left alone even if they have
// also expired; the event sweep is independent.
func PurgeExpiredTemporaryStations(db *gorm.DB) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var stations []TemporaryStation
		if err := tx.Where("end_time <= ?", time.Now()).Find(&stations).Error; err != nil {
			return err
		}
		for i := range stations {
			if err := deleteTemporaryStationTx(tx, &stations[i]); err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err)
}
