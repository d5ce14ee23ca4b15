package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/grade"
	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/models"
)

var ErrNoteNotFound = errors.New("note not found")

// NoteService manages the flat notes collection, filtered by standard at
// query time. Notes never move between standards.
type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

func (s *NoteService) AddNote(name string, std grade.Grade, pdfURL string) (*models.Note, error) {
	note := models.Note{
		ID:       uuid.New(),
		Name:     name,
		Standard: std.String(),
		PDFURL:   pdfURL,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return &note, nil
}

func (s *NoteService) ListNotes(std grade.Grade) ([]models.Note, error) {
	var notes []models.Note
	if err := s.db.Where("standard = ?", std.String()).Order("created_at").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (s *NoteService) UpdateNote(id uuid.UUID, name, pdfURL string) (*models.Note, error) {
	var note models.Note
	if err := s.db.First(&note, "id = ?", id).Error; err != nil {
		return nil, ErrNoteNotFound
	}

	updates := map[string]interface{}{"name": name, "pdf_url": pdfURL}
	if err := s.db.Model(&note).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	note.Name = name
	note.PDFURL = pdfURL
	return &note, nil
}

func (s *NoteService) DeleteNote(id uuid.UUID) error {
	var note models.Note
	if err := s.db.First(&note, "id = ?", id).Error; err != nil {
		return ErrNoteNotFound
	}
	return s.db.Delete(&note).Error
}
