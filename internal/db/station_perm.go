package db

import (
	"fmt"

	"gorm.io/gorm"

	"stationmap/internal/auth"
)

// PermanentStationPatch describes a partial update to a permanent
// station. Nil fields are left unchanged. A supplied *TypeID of 0
// clears the station's type. EditPassword may be rotated but never
// cleared.
type PermanentStationPatch struct {
	Callsign         *string  `json:"callsign"`
	ClubName         *string  `json:"club_name"`
	TypeID           *uint    `json:"type_id"`
	LatitudeDegrees  *float64 `json:"latitude_degrees"`
	LongitudeDegrees *float64 `json:"longitude_degrees"`
	MeetingWhen      *string  `json:"meeting_when"`
	MeetingWhere     *string  `json:"meeting_where"`
	Notes            *string  `json:"notes"`
	WebsiteURL       *string  `json:"website_url"`
	Email            *string  `json:"email"`
	PhoneNumber      *string  `json:"phone_number"`
	QRZURL           *string  `json:"qrz_url"`
	SocialMediaURL   *string  `json:"social_media_url"`
	Approved         *bool    `json:"approved"`
	EditPassword     *string  `json:"edit_password"`
}

// AddPermanentStation creates a permanent station and returns its ID.
// As with temporary stations, a fresh edit password is generated and
// left on the passed struct for the caller to show to the submitter
// once.
func AddPermanentStation(db *gorm.DB, station *PermanentStation) (uint, error) {
	editPassword, err := auth.GenerateEditPassword()
	if err != nil {
		return 0, err
	}
	station.EditPassword = editPassword

	if err := db.Create(station).Error; err != nil {
		return 0, translate(err)
	}
	return station.ID, nil
}

// GetPermanentStation returns a permanent station by ID with its type
// loaded.
func GetPermanentStation(db *gorm.DB, stationID uint) (*PermanentStation, error) {
	var station PermanentStation
	if err := db.Preload("Type").First(&station, stationID).Error; err != nil {
		return nil, translate(err)
	}
	return &station, nil
}

// GetAllPermanentStations returns every permanent station, approved or
// not, for admin use.
func GetAllPermanentStations(db *gorm.DB) ([]PermanentStation, error) {
	var stations []PermanentStation
	if err := db.Preload("Type").Order("id").Find(&stations).Error; err != nil {
		return nil, err
	}
	return stations, nil
}

// GetApprovedPermanentStations returns only approved stations, the read
// path for the public map.
func GetApprovedPermanentStations(db *gorm.DB) ([]PermanentStation, error) {
	var stations []PermanentStation
	err := db.Preload("Type").Where("approved = ?", true).Order("id").Find(&stations).Error
	if err != nil {
		return nil, err
	}
	return stations, nil
}

// GetPermanentStationsByType returns the stations of one type.
func GetPermanentStationsByType(db *gorm.DB, typeID uint) ([]PermanentStation, error) {
	var stations []PermanentStation
	err := db.Preload("Type").Where("type_id = ?", typeID).Order("id").Find(&stations).Error
	if err != nil {
		return nil, err
	}
	return stations, nil
}

// UpdatePermanentStation applies the supplied fields of the patch to an
// existing station.
func UpdatePermanentStation(db *gorm.DB, stationID uint, patch PermanentStationPatch) error {
	if patch.EditPassword != nil && *patch.EditPassword == "" {
		return fmt.Errorf("edit password cannot be cleared: %w", ErrConflict)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var station PermanentStation
		if err := tx.First(&station, stationID).Error; err != nil {
			return err
		}

		if patch.Callsign != nil {
			station.Callsign = *patch.Callsign
		}
		if patch.ClubName != nil {
			station.ClubName = *patch.ClubName
		}
		if patch.TypeID != nil {
			if *patch.TypeID == 0 {
				station.TypeID = nil
			} else {
				station.TypeID = patch.TypeID
			}
		}
		if patch.LatitudeDegrees != nil {
			station.LatitudeDegrees = *patch.LatitudeDegrees
		}
		if patch.LongitudeDegrees != nil {
			station.LongitudeDegrees = *patch.LongitudeDegrees
		}
		if patch.MeetingWhen != nil {
			station.MeetingWhen = *patch.MeetingWhen
		}
		if patch.MeetingWhere != nil {
			station.MeetingWhere = *patch.MeetingWhere
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
		if patch.Approved != nil {
			station.Approved = *patch.Approved
		}
		if patch.EditPassword != nil {
			station.EditPassword = *patch.EditPassword
		}

		return tx.Save(&station).Error
	})
	return translate(err)
}

// DeletePermanentStation removes a permanent station.
func DeletePermanentStation(db *gorm.DB, stationID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var station PermanentStation
		if err := tx.First(&station, stationID).Error; err != nil {
			return err
		}
		return tx.Delete(&station).Error
	})
	return translate(err)
}
