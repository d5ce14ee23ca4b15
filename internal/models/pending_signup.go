package models

import (
	"time"

	"github.com/google/uuid"
)

// PendingSignup holds a registration awaiting email verification. At most one
// exists per email; a fresh signup attempt replaces it. Rows past their TTL
// are removed by the background sweeper.
type PendingSignup struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:20;default:'user'" json:"role"`
	Standard  string    `gorm:"size:10" json:"standard"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
