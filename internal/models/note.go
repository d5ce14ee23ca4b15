package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is a downloadable document tagged with a standard. The PDF itself is
// hosted externally; only the URL is stored.
type Note struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"noteName"`
	Standard  string    `gorm:"size:10;not null;index" json:"standard"`
	PDFURL    string    `gorm:"type:text;not null" json:"pdfUrl"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
