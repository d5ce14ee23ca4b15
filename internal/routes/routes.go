package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	chapterHandler *handlers.ChapterHandler,
	noteHandler *handlers.NoteHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)

	jwtGuard := middleware.JWTProtected(cfg)
	adminGuard := middleware.AdminRequired(db, cfg)

	api := app.Group("/api")

	// Auth - public
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/verify-email", authHandler.VerifyEmail)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password/:token", authHandler.ResetPassword)
	auth.Get("/me", jwtGuard, authHandler.Me)

	// Content reads - public
	chapters := api.Group("/chapters")
	chapters.Get("/", chapterHandler.ListAll)
	chapters.Get("/byName", chapterHandler.GetByName)
	chapters.Get("/topics/:chapterId", chapterHandler.GetTopics)

	notes := api.Group("/notes")
	notes.Get("/", noteHandler.List)

	// Content mutations - admin only
	chapters.Post("/add", jwtGuard, adminGuard, chapterHandler.Add)
	chapters.Put("/:id", jwtGuard, adminGuard, chapterHandler.Update)
	chapters.Delete("/:id", jwtGuard, adminGuard, chapterHandler.Delete)
	chapters.Post("/topics/:chapterId", jwtGuard, adminGuard, chapterHandler.AddTopic)
	chapters.Put("/topics/:chapterId/:topicId", jwtGuard, adminGuard, chapterHandler.UpdateTopic)
	chapters.Delete("/topics/:chapterId/:topicId", jwtGuard, adminGuard, chapterHandler.DeleteTopic)

	notes.Post("/add", jwtGuard, adminGuard, noteHandler.Add)
	notes.Put("/:id", jwtGuard, adminGuard, noteHandler.Update)
	notes.Delete("/:id", jwtGuard, adminGuard, noteHandler.Delete)
}
