package db

import (
	"errors"

	"gorm.io/gorm"
)

var defaultStationTypes = []PermanentStationType{
	{Name: "School", Icon: "school.png", Color: "yellow"},
	{Name: "University", Icon: "uni.png", Color: "orange"},
	{Name: "Cadet", Icon: "cadets.png", Color: "light-blue"},
}

var defaultBands = []string{
	"2200m", "600m", "160m", "80m", "60m", "40m", "30m", "20m", "17m", "15m",
	"12m", "11m", "10m", "6m", "5m", "4m", "2m", "1.25m", "70cm", "23cm",
	"13cm", "5.8GHz", "10GHz", "24GHz", "47GHz", "76GHz",
}

var defaultModes = []string{"CW", "Phone", "Data"}

// EnsureDefaultContent seeds the enum-like reference tables (bands,
// modes, permanent station types) with their fixed defaults. Idempotent:
// each value is inserted only if absent, and a concurrent duplicate
// insert is treated as a no-op.
func EnsureDefaultContent(db *gorm.DB) error {
	for _, st := range defaultStationTypes {
		err := db.Where(PermanentStationType{Name: st.Name}).
			Attrs(PermanentStationType{Icon: st.Icon, Color: st.Color}).
			FirstOrCreate(&PermanentStationType{}).Error
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	for _, name := range defaultBands {
		err := db.Where(Band{Name: name}).FirstOrCreate(&Band{}).Error
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	for _, name := range defaultModes {
		err := db.Where(Mode{Name: name}).FirstOrCreate(&Mode{}).Error
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return nil
}

// EnsureDefaultUser creates the admin/password account if the user
// table is empty, so a fresh deployment is reachable before proper
// accounts exist. IsInsecureUserPresent reports whether this account
// still works, so the operator can be nagged to fix it.
func EnsureDefaultUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := AddUser(db, "admin", "password", nil, true)
	if errors.Is(err, ErrConflict) {
		// Another instance seeded first.
		return nil
	}
	return err
}
