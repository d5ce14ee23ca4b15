package models

import (
	"time"

	"github.com/google/uuid"
)

// Chapter is a course unit within one standard. Chapter names are unique per
// standard, not globally.
type Chapter struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_chapters_standard_name" json:"chapterName"`
	Standard  string    `gorm:"size:10;not null;index;uniqueIndex:idx_chapters_standard_name" json:"standard"`
	Topics    []Topic   `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE" json:"topics"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Topic is a playable lesson inside a chapter. Position preserves insertion
// order.
type Topic struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChapterID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	VideoURL  string    `gorm:"type:text;not null" json:"videoUrl"`
	Position  int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
