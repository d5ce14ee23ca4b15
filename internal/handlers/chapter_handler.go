package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/grade"
	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/services"
)

type ChapterHandler struct {
	chapterService *services.ChapterService
}

func NewChapterHandler(chapterService *services.ChapterService) *ChapterHandler {
	return &ChapterHandler{chapterService: chapterService}
}

// ListAll handles GET /chapters - every chapter grouped by standard, id and
// name only.
func (h *ChapterHandler) ListAll(c *fiber.Ctx) error {
	grouped, err := h.chapterService.ListAllChapters()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Server error",
		})
	}

	out := make(map[string][]dto.ChapterSummary, len(grouped))
	for std, chapters := range grouped {
		summaries := make([]dto.ChapterSummary, 0, len(chapters))
		for _, ch := range chapters {
			summaries = append(summaries, dto.ChapterSummary{ID: ch.ID, Name: ch.Name})
		}
		out[std.String()] = summaries
	}
	return c.JSON(out)
}

func (h *ChapterHandler) Add(c *fiber.Ctx) error {
	var req dto.ChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.ChapterName == "" || req.Standard == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Chapter name and standard required.",
		})
	}
	std, err := grade.Parse(req.Standard)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	chapter, err := h.chapterService.AddChapter(req.ChapterName, std)
	if err != nil {
		if errors.Is(err, services.ErrChapterExists) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ChapterResponse{
		Message: "Chapter added", Chapter: *chapter,
	})
}

func (h *ChapterHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid chapter id",
		})
	}

	var req dto.ChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.ChapterName == "" || req.Standard == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Chapter name and standard required.",
		})
	}
	std, err := grade.Parse(req.Standard)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	chapter, err := h.chapterService.UpdateChapter(id, req.ChapterName, std)
	if err != nil {
		if errors.Is(err, services.ErrChapterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Server error",
		})
	}

	return c.JSON(dto.ChapterResponse{Message: "Chapter updated", Chapter: *chapter})
}

func (h *ChapterHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid chapter id",
		})
	}

	if err := h.chapterService.DeleteChapter(id); err != nil {
		if errors.Is(err, services.ErrChapterNotFound) {
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

// GetByName handles GET /chapters/byName?chapterName=&standard=
func (h *ChapterHandler) GetByName(c *fiber.Ctx) error {
	name := c.Query("chapterName")
	standard := c.Query("standard")
	if name == "" || standard == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Chapter name and standard required.",
		})
	}
	std, err := grade.Parse(standard)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	chapter, err := h.chapterService.GetChapterByName(name, std)
	if err != nil {
		if errors.Is(err, services.ErrChapterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Server error",
		})
	}

	return c.JSON(fiber.Map{"chapter": chapter})
}

func (h *ChapterHandler) GetTopics(c *fiber.Ctx) error {
	chapterID, std, ok := h.topicScope(c)
	if !ok {
		return nil
	}

	topics, err := h.chapterService.GetTopics(chapterID, std)
	if err != nil {
		return h.topicError(c, err)
	}
	return c.JSON(dto.TopicsResponse{Topics: topics})
}

func (h *ChapterHandler) AddTopic(c *fiber.Ctx) error {
	chapterID, std, ok := h.topicScope(c)
	if !ok {
		return nil
	}

	var req dto.TopicRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Name == "" || req.VideoURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing fields",
		})
	}

	topics, err := h.chapterService.AddTopic(chapterID, std, req.Name, req.VideoURL)
	if err != nil {
		return h.topicError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TopicsResponse{
		Message: "Topic added", Topics: topics,
	})
}

func (h *ChapterHandler) UpdateTopic(c *fiber.Ctx) error {
	chapterID, std, ok := h.topicScope(c)
	if !ok {
		return nil
	}
	topicID, err := uuid.Parse(c.Params("topicId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid topic id",
		})
	}

	var req dto.TopicRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Name == "" || req.VideoURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing fields",
		})
	}

	topics, err := h.chapterService.UpdateTopic(chapterID, topicID, std, req.Name, req.VideoURL)
	if err != nil {
		return h.topicError(c, err)
	}
	return c.JSON(dto.TopicsResponse{Message: "Topic updated", Topics: topics})
}

func (h *ChapterHandler) DeleteTopic(c *fiber.Ctx) error {
	chapterID, std, ok := h.topicScope(c)
	if !ok {
		return nil
	}
	topicID, err := uuid.Parse(c.Params("topicId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid topic id",
		})
	}

	if err := h.chapterService.DeleteTopic(chapterID, topicID, std); err != nil {
		return h.topicError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// topicScope parses the :chapterId path param and the standard query param
// shared by all topic routes. On failure the response is already written.
func (h *ChapterHandler) topicScope(c *fiber.Ctx) (uuid.UUID, grade.Grade, bool) {
	chapterID, err := uuid.Parse(c.Params("chapterId"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid chapter id",
		})
		return uuid.Nil, "", false
	}

	std, err := grade.Parse(c.Query("standard"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
		return uuid.Nil, "", false
	}
	return chapterID, std, true
}

func (h *ChapterHandler) topicError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrChapterNotFound), errors.Is(err, services.ErrTopicNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Server error",
	})
}
