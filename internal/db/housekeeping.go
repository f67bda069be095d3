package db

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// HousekeepingInterval is how often the background worker sweeps
// expired sessions.
const HousekeepingInterval = time.Hour

// StartHousekeepingWorker launches a background goroutine that purges
// expired sessions once at startup and then on every tick. Session
// creation also purges inline, so this only matters for deployments
// where logins are rare and sessions would otherwise linger.
func StartHousekeepingWorker(db *gorm.DB, interval time.Duration) {
	go func() {
		if err := PurgeExpiredSessions(db); err != nil {
			log.Printf("session cleanup error (startup): %v", err)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if err := PurgeExpiredSessions(db); err != nil {
				log.Printf("session cleanup error: %v", err)
			}
		}
	}()
}
