package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/services"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
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
	database.DB = db

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		JWTVerifyExpiry: 168 * time.Hour,
		JWTLoginExpiry:  24 * time.Hour,
		JWTResetExpiry:  15 * time.Minute,
		AppBaseURL:      "http://localhost:5173",
	}

	// No from-address configured, so every send is a logged no-op.
	mailService, err := services.NewMailService(cfg)
	require.NoError(t, err)

	authService := services.NewAuthService(db, cfg, mailService)
	chapterService := services.NewChapterService(db)
	noteService := services.NewNoteService(db)

	app := fiber.New()
	routes.Setup(app, cfg, db,
		handlers.NewAuthHandler(authService),
		handlers.NewChapterHandler(chapterService),
		handlers.NewNoteHandler(noteService),
		handlers.NewHealthHandler(),
	)
	return &testEnv{app: app, db: db}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

// signupAndVerify walks an email through the full verification flow and
// returns the session token.
func (e *testEnv) signupAndVerify(t *testing.T, name, email, password, standard string) string {
	t.Helper()

	resp, _ := e.request(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": name, "email": email, "password": password, "standard": standard,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var code models.VerificationCode
	require.NoError(t, e.db.Where("email = ?", email).First(&code).Error)

	resp, body := e.request(t, http.MethodPost, "/api/auth/verify-email", "", map[string]string{
		"email": email, "code": code.Code,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// adminToken creates a verified account, promotes it to admin, and logs in.
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Admin1!"), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin := models.User{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    "admin@x.com",
		Password: string(hash),
		Role:     "admin",
		Standard: "Std12",
	}
	require.NoError(t, e.db.Create(&admin).Error)

	resp, body := e.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@x.com", "password": "Admin1!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestSignupVerifyLoginScenario(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Asha", "email": "a@x.com", "password": "Pass1!", "standard": "Std10",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a@x.com", body["email"])

	var code models.VerificationCode
	require.NoError(t, env.db.Where("email = ?", "a@x.com").First(&code).Error)

	wrong := "000000"
	if code.Code == wrong {
		wrong = "000001"
	}
	resp, _ = env.request(t, http.MethodPost, "/api/auth/verify-email", "", map[string]string{
		"email": "a@x.com", "code": wrong,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = env.request(t, http.MethodPost, "/api/auth/verify-email", "", map[string]string{
		"email": "a@x.com", "code": code.Code,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Asha", user["name"])
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "Std10", user["standard"])

	resp, _ = env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "Pass1!",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.request(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := env.signupAndVerify(t, "Asha", "a@x.com", "Pass1!", "Std10")
	resp, body := env.request(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Asha", user["name"])
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "user", user["role"])
}

func TestSignup_WeakPasswordRejected(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Asha", "email": "a@x.com", "password": "short", "standard": "Std10",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "at least 6 characters")
}

func TestChapterConflict(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	resp, _ := env.request(t, http.MethodPost, "/api/chapters/add", token, map[string]string{
		"chapterName": "Algebra", "standard": "Std9",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := env.request(t, http.MethodPost, "/api/chapters/add", token, map[string]string{
		"chapterName": "Algebra", "standard": "Std9",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "already exists")
}

func TestContentMutationsRequireAdmin(t *testing.T) {
	env := newTestEnv(t)

	// No token at all.
	resp, _ := env.request(t, http.MethodPost, "/api/chapters/add", "", map[string]string{
		"chapterName": "Algebra", "standard": "Std9",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A plain user token is not enough.
	userToken := env.signupAndVerify(t, "Asha", "a@x.com", "Pass1!", "Std10")
	resp, _ = env.request(t, http.MethodPost, "/api/chapters/add", userToken, map[string]string{
		"chapterName": "Algebra", "standard": "Std9",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestTopicFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	resp, body := env.request(t, http.MethodPost, "/api/chapters/add", token, map[string]string{
		"chapterName": "Algebra", "standard": "Std9",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	chapter := body["chapter"].(map[string]interface{})
	chapterID := chapter["id"].(string)

	resp, body = env.request(t, http.MethodPost, "/api/chapters/topics/"+chapterID+"?standard=Std9", token, map[string]string{
		"name": "Linear Equations", "videoUrl": "https://videos.example/1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	topics := body["topics"].([]interface{})
	require.Len(t, topics, 1)
	topicID := topics[0].(map[string]interface{})["id"].(string)

	resp, _ = env.request(t, http.MethodPut, "/api/chapters/topics/"+chapterID+"/"+topicID+"?standard=Std9", token, map[string]string{
		"name": "Linear Equations II", "videoUrl": "https://videos.example/2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The read is public and reflects the update.
	resp, body = env.request(t, http.MethodGet, "/api/chapters/topics/"+chapterID+"?standard=Std9", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	topics = body["topics"].([]interface{})
	require.Len(t, topics, 1)
	got := topics[0].(map[string]interface{})
	assert.Equal(t, "Linear Equations II", got["name"])
	assert.Equal(t, "https://videos.example/2", got["videoUrl"])
}

func TestListChaptersGrouped(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	resp, _ := env.request(t, http.MethodPost, "/api/chapters/add", token, map[string]string{
		"chapterName": "Optics", "standard": "Std12",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := env.request(t, http.MethodGet, "/api/chapters/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body, 5)

	std12 := body["Std12"].([]interface{})
	require.Len(t, std12, 1)
	assert.Equal(t, "Optics", std12[0].(map[string]interface{})["chapterName"])

	assert.Empty(t, body["Std8"])
}

func TestNotesOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	resp, body := env.request(t, http.MethodPost, "/api/notes/add", token, map[string]string{
		"noteName": "Algebra Formulas", "standard": "Std9", "pdfUrl": "https://docs.example/a.pdf",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	noteID := body["note"].(map[string]interface{})["id"].(string)

	resp, body = env.request(t, http.MethodGet, "/api/notes/?standard=Std9", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	notes := body["notes"].([]interface{})
	require.Len(t, notes, 1)

	resp, _ = env.request(t, http.MethodDelete, "/api/notes/"+noteID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["db"])
}
