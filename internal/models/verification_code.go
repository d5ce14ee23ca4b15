package models

import (
	"time"

	"github.com/google/uuid"
)

// VerificationCode is the 6-digit OTP emailed at signup. One active code per
// email; deleted on successful verification or superseded by a new signup.
type VerificationCode struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
