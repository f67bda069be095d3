package db

import (
	"time"

	"gorm.io/gorm"

	"stationmap/internal/auth"
)

// DefaultSessionTTL is how long a login session lasts unless configured
// otherwise.
const DefaultSessionTTL = 24 * time.Hour

// CreateSession issues a new login session for the user and returns the
// bearer token. Expired sessions are purged first so the table stays
// bounded. A token collision surfaces as ErrConflict; the caller may
// simply retry.
func CreateSession(db *gorm.DB, userID uint, ttl time.Duration) (string, error) {
	if err := PurgeExpiredSessions(db); err != nil {
		return "", err
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return "", err
	}

	now := time.Now()
	session := &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := db.Create(session).Error; err != nil {
		return "", translate(err)
	}
	return token, nil
}

// VerifySessionToken returns the owning user ID if a session with this
// token exists and has not expired. The token and expiry checks are one
// query, so a concurrent purge cannot slip between them.
func VerifySessionToken(db *gorm.DB, token string) (uint, bool) {
	var session Session
	err := db.Where("token = ? AND expires_at > ?", token, time.Now()).First(&session).Error
	if err != nil {
		return 0, false
	}
	return session.UserID, true
}

// DeleteSessionByToken revokes a single session. Unknown tokens are a
// no-op; logout with a stale cookie should still succeed.
func DeleteSessionByToken(db *gorm.DB, token string) error {
	return db.Where("token = ?", token).Delete(&Session{}).Error
}

// PurgeExpiredSessions deletes every session whose expiry has passed.
// Idempotent and safe to run concurrently with session creation.
func PurgeExpiredSessions(db *gorm.DB) error {
	return db.Where("expires_at <= ?", time.Now()).Delete(&Session{}).Error
}
