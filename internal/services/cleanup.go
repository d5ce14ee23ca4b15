package services

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/models"
)

// StartSignupSweeper runs a goroutine that deletes pending signups and
// verification codes older than ttl. This stands in for the TTL index a
// document store would apply, so expiry is only as fresh as the sweep
// interval.
func StartSignupSweeper(db *gorm.DB, ttl time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sweepExpiredSignups(db, ttl)
			case <-done:
				return
			}
		}
	}()
}

func sweepExpiredSignups(db *gorm.DB, ttl time.Duration) {
	cutoff := time.Now().Add(-ttl)

	pending := db.Where("created_at < ?", cutoff).Delete(&models.PendingSignup{})
	if pending.Error != nil {
		slog.Error("pending signup sweep failed", "error", pending.Error)
	}

	codes := db.Where("created_at < ?", cutoff).Delete(&models.VerificationCode{})
	if codes.Error != nil {
		slog.Error("verification code sweep failed", "error", codes.Error)
	}

	if n := pending.RowsAffected + codes.RowsAffected; n > 0 {
		slog.Info("signup sweep completed", "deleted", n)
	}
}
