package db

import (
	"gorm.io/gorm"
)

// GetAllBands returns every band, in seeding order.
func GetAllBands(db *gorm.DB) ([]Band, error) {
	var bands []Band
	if err := db.Order("id").Find(&bands).Error; err != nil {
		return nil, err
	}
	return bands, nil
}

// GetAllModes returns every mode.
func GetAllModes(db *gorm.DB) ([]Mode, error) {
	var modes []Mode
	if err := db.Order("id").Find(&modes).Error; err != nil {
		return nil, err
	}
	return modes, nil
}

// GetAllPermanentStationTypes returns every permanent station type.
func GetAllPermanentStationTypes(db *gorm.DB) ([]PermanentStationType, error) {
	var types []PermanentStationType
	if err := db.Order("id").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// GetPermanentStationType returns a type by ID with its stations loaded.
func GetPermanentStationType(db *gorm.DB, typeID uint) (*PermanentStationType, error) {
	var t PermanentStationType
	if err := db.Preload("Stations").First(&t, typeID).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// GetPermanentStationTypeByName returns a type by its unique name.
func GetPermanentStationTypeByName(db *gorm.DB, name string) (*PermanentStationType, error) {
	var t PermanentStationType
	if err := db.Where("name = ?", name).First(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// bandsByID resolves band IDs to rows. IDs that match nothing are
// silently dropped rather than failing the whole mutation.
func bandsByID(db *gorm.DB, ids []uint) ([]Band, error) {
	if len(ids) == 0 {
		return []Band{}, nil
	}
	var bands []Band
	if err := db.Where("id IN ?", ids).Find(&bands).Error; err != nil {
		return nil, err
	}
	return bands, nil
}

func modesByID(db *gorm.DB, ids []uint) ([]Mode, error) {
	if len(ids) == 0 {
		return []Mode{}, nil
	}
	var modes []Mode
	if err := db.Where("id IN ?", ids).Find(&modes).Error; err != nil {
		return nil, err
	}
	return modes, nil
}
