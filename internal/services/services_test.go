package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PendingSignup{},
		&models.VerificationCode{},
		&models.Chapter{},
		&models.Topic{},
		&models.Note{},
	))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTVerifyExpiry:  168 * time.Hour,
		JWTLoginExpiry:   24 * time.Hour,
		JWTResetExpiry:   15 * time.Minute,
		PendingSignupTTL: 20 * time.Minute,
		AppBaseURL:       "http://localhost:5173",
	}
}

// stubMailer records sends and can be told to fail verification emails.
type stubMailer struct {
	mu               sync.Mutex
	failVerification bool

	codes      []string
	resetLinks []string
	welcomes   []string
}

func (m *stubMailer) SendVerificationCode(_ context.Context, _, _, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failVerification {
		return errors.New("smtp unreachable")
	}
	m.codes = append(m.codes, code)
	return nil
}

func (m *stubMailer) SendWelcome(_ context.Context, toEmail, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomes = append(m.welcomes, toEmail)
	return nil
}

func (m *stubMailer) SendPasswordReset(_ context.Context, _, _, resetLink string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLinks = append(m.resetLinks, resetLink)
	return nil
}

func (m *stubMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.codes)
	return m.codes[len(m.codes)-1]
}

func (m *stubMailer) lastResetLink(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.resetLinks)
	return m.resetLinks[len(m.resetLinks)-1]
}
