package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/grade"
	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/services"
)

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) Add(c *fiber.Ctx) error {
	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.NoteName == "" || req.Standard == "" || req.PDFURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "All fields required",
		})
	}
	std, err := grade.Parse(req.Standard)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	note, err := h.noteService.AddNote(req.NoteName, std, req.PDFURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Server error",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NoteResponse{
		Message: "Note added", Note: *note,
	})
}

// List handles GET /notes?standard=X
func (h *NoteHandler) List(c *fiber.Ctx) error {
	standard := c.Query("standard")
	if standard == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Standard required",
		})
	}
	std, err := grade.Parse(standard)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	notes, err := h.noteService.ListNotes(std)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Server error",
		})
	}
	return c.JSON(dto.NotesResponse{Notes: notes})
}

func (h *NoteHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid note id",
		})
	}

	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.NoteName == "" || req.PDFURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing fields",
		})
	}

	note, err := h.noteService.UpdateNote(id, req.NoteName, req.PDFURL)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Server error",
		})
	}
	return c.JSON(dto.NoteResponse{Message: "Note updated", Note: *note})
}

func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid note id",
		})
	}

	if err := h.noteService.DeleteNote(id); err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Server error",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
