package dto

import (
	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/models"
	"github.com/google/uuid"
)

type ChapterRequest struct {
	ChapterName string `json:"chapterName"`
	Standard    string `json:"standard"`
}

type TopicRequest struct {
	Name     string `json:"name"`
	VideoURL string `json:"videoUrl"`
}

type NoteRequest struct {
	NoteName string `json:"noteName"`
	Standard string `json:"standard"`
	PDFURL   string `json:"pdfUrl"`
}

// ChapterSummary is the id+name projection used by the grouped listing.
type ChapterSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"chapterName"`
}

type ChapterResponse struct {
	Message string         `json:"message"`
	Chapter models.Chapter `json:"chapter"`
}

type TopicsResponse struct {
	Message string         `json:"message,omitempty"`
	Topics  []models.Topic `json:"topics"`
}

type NoteResponse struct {
	Message string      `json:"message"`
	Note    models.Note `json:"note"`
}

type NotesResponse struct {
	Notes []models.Note `json:"notes"`
}
