package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret       string
	JWTVerifyExpiry time.Duration
	JWTLoginExpiry  time.Duration
	JWTResetExpiry  time.Duration

	// Unverified signups older than this are swept away
	PendingSignupTTL time.Duration

	// Outbound email (SES)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	// Admin
	AdminEmails string
	AdminToken  string

	// Server
	Port        string
	CORSOrigins string

	// Frontend base URL, used to build password reset links
	AppBaseURL string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "tutoring_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTVerifyExpiry: parseDuration(getEnv("JWT_VERIFY_EXPIRY", "168h"), 168*time.Hour),
		JWTLoginExpiry:  parseDuration(getEnv("JWT_LOGIN_EXPIRY", "24h"), 24*time.Hour),
		JWTResetExpiry:  parseDuration(getEnv("JWT_RESET_EXPIRY", "15m"), 15*time.Minute),

		PendingSignupTTL: parseDuration(getEnv("PENDING_SIGNUP_TTL", "20m"), 20*time.Minute),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Bhrugesh Tutorials"),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),
		AdminToken:  getEnv("ADMIN_TOKEN", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:5173"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
