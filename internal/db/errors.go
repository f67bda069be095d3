package db

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means the referenced row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means a uniqueness constraint was violated (duplicate
	// username, event name or URL slug). Recoverable; the caller should
	// present it as a validation error, never crash.
	ErrConflict = errors.New("conflicts with an existing record")

	// ErrInvalidCredentials covers both unknown username and wrong
	// password. Callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// translate maps GORM errors onto the store's typed failures.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	}
	return err
}
