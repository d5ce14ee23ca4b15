package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/models"
)

var (
	ErrFieldsRequired     = errors.New("all fields required")
	ErrWeakPassword       = errors.New("password must be at least 6 characters, include a number and a special character")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCode        = errors.New("invalid or expired verification code")
	ErrPendingNotFound    = errors.New("user data not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired link")
)

const (
	signupHashCost = 12
	resetHashCost  = 10

	passwordSymbols = "!@#$%^&*"
)

type AuthService struct {
	db   *gorm.DB
	cfg  *config.Config
	mail Mailer
}

func NewAuthService(db *gorm.DB, cfg *config.Config, mail Mailer) *AuthService {
	return &AuthService{db: db, cfg: cfg, mail: mail}
}

// Signup stores a pending registration and emails a verification code.
// Any earlier pending signup or code for the email is replaced, so the latest
// attempt always wins. The code email is sent synchronously; if delivery
// fails the signup is reported as failed even though the records were written,
// and retrying runs the same cleanup-then-create sequence.
func (s *AuthService) Signup(ctx context.Context, name, email, password, standard string) error {
	if name == "" || email == "" || password == "" || standard == "" {
		return ErrFieldsRequired
	}
	if !validPassword(password) {
		return ErrWeakPassword
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return ErrEmailTaken
	}

	s.db.Where("email = ?", email).Delete(&models.VerificationCode{})
	s.db.Where("email = ?", email).Delete(&models.PendingSignup{})

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), signupHashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	pending := models.PendingSignup{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     "user",
		Standard: standard,
	}
	if err := s.db.Create(&pending).Error; err != nil {
		return fmt.Errorf("failed to create pending signup: %w", err)
	}

	record := models.VerificationCode{
		ID:    uuid.New(),
		Email: email,
		Code:  code,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := s.mail.SendVerificationCode(ctx, email, name, code); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// VerifyEmail promotes a pending signup into a verified account. The code
// must match exactly. Promotion, code deletion and pending-row deletion run
// in one transaction.
func (s *AuthService) VerifyEmail(email, code string) (string, *models.User, error) {
	var stored models.VerificationCode
	if err := s.db.Where("email = ?", email).First(&stored).Error; err != nil {
		return "", nil, ErrInvalidCode
	}
	if stored.Code != code {
		return "", nil, ErrInvalidCode
	}

	var pending models.PendingSignup
	if err := s.db.Where("email = ?", email).First(&pending).Error; err != nil {
		return "", nil, ErrPendingNotFound
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     pending.Name,
		Email:    pending.Email,
		Password: pending.Password,
		Role:     pending.Role,
		Standard: pending.Standard,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Delete(&stored).Error; err != nil {
			return err
		}
		return tx.Delete(&pending).Error
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to promote pending signup: %w", err)
	}

	token, err := s.signToken(&user, s.cfg.JWTVerifyExpiry)
	if err != nil {
		return "", nil, err
	}

	// Best effort; never affects the response.
	go func() {
		if err := s.mail.SendWelcome(context.Background(), user.Email, user.Name); err != nil {
			slog.Error("welcome email failed", "email", user.Email, "error", err)
		}
	}()

	return token, &user, nil
}

// GetUser loads the account behind a session token's subject claim.
func (s *AuthService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.signToken(&user, s.cfg.JWTLoginExpiry)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// ForgotPassword emails a short-lived reset link to a verified account.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return ErrUserNotFound
	}

	token, err := s.signToken(&user, s.cfg.JWTResetExpiry)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", s.cfg.AppBaseURL, token)
	if err := s.mail.SendPasswordReset(ctx, user.Email, user.Name, resetLink); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ResetPassword verifies a reset token and overwrites the stored hash.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidResetToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidResetToken
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ErrInvalidResetToken
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), resetHashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&user).Update("password", string(hash)).Error
}

func (s *AuthService) signToken(user *models.User, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// generateOTP reads 3 random bytes as a 24-bit big-endian integer and folds
// it into the 100000-999999 range.
func generateOTP() (string, error) {
	var b [3]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	n := int(b[0])<<16 | int(b[1])<<8 | int(b[2])
	return strconv.Itoa(100000 + n%900000), nil
}

func validPassword(password string) bool {
	if len(password) < 6 {
		return false
	}
	if !strings.ContainsAny(password, "0123456789") {
		return false
	}
	return strings.ContainsAny(password, passwordSymbols)
}
