package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stationmap/internal/config"
)

// Connect opens a GORM database connection. APP_DATABASE_URL selects
// PostgreSQL; when unset the service uses a local SQLite file, which is
// all a small deployment needs.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
			return nil, errors.New("APP_DATABASE_URL must be a postgres:// or postgresql:// URL")
		}
		dialector = postgres.Open(dsn)
	} else {
		if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		dialector = sqlite.Open(cfg.DatabasePath + "?_foreign_keys=on")
	}

	// TranslateError maps driver-specific constraint violations onto
	// gorm.ErrDuplicatedKey so uniqueness failures surface uniformly.
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for all entities, including
// the two-column association tables behind the many2many links.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Session{},
		&PermanentStationType{},
		&Band{},
		&Mode{},
		&Event{},
		&TemporaryStation{},
		&PermanentStation{},
	)
}
