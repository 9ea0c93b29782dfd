package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Dias221467/goai-backend/pkg/logger"
)

const (
	AuthModeJWT  = "jwt"
	AuthModeMock = "mock"

	StorageBadger = "badger"
	StorageMongo  = "mongo"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	Port      string
	APIPrefix string
	LogLevel  string

	AuthMode     string
	JWTSecret    string
	TokenExpiry  time.Duration
	MockUsername string
	MockEmail    string

	StorageDriver string
	BadgerPath    string
	MongoURI      string
	MongoDB       string

	CORSOrigins    []string
	LoginRateLimit int

	RemindersEnabled bool
	SMTPHost         string
	SMTPPort         string
	SMTPSender       string
	SMTPPassword     string
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8000"),
		APIPrefix:     strings.TrimRight(getEnv("API_PREFIX", "/api"), "/"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AuthMode:      strings.ToLower(getEnv("AUTH_MODE", AuthModeJWT)),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		MockUsername:  getEnv("MOCK_USERNAME", "testuser"),
		MockEmail:     getEnv("MOCK_EMAIL", "test@example.com"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageBadger)),
		BadgerPath:    os.Getenv("BADGER_PATH"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "goai"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPSender:    os.Getenv("SMTP_SENDER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
	}

	var err error
	if cfg.TokenExpiry, err = time.ParseDuration(getEnv("TOKEN_EXPIRY", "30m")); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_EXPIRY: %w", err)
	}
	if cfg.LoginRateLimit, err = strconv.Atoi(getEnv("LOGIN_RATE_LIMIT", "10")); err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_LIMIT: %w", err)
	}
	if cfg.RemindersEnabled, err = strconv.ParseBool(getEnv("REMINDERS_ENABLED", "false")); err != nil {
		return nil, fmt.Errorf("invalid REMINDERS_ENABLED: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects setting combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeJWT, AuthModeMock:
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}
	if c.JWTSecret == "" {
		if c.AuthMode == AuthModeJWT {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=%s", AuthModeJWT)
		}
		// /auth/login still issues tokens in mock mode.
		c.JWTSecret = "insecure-dev-secret"
	}
	switch c.StorageDriver {
	case StorageBadger:
	case StorageMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORAGE_DRIVER=%s", StorageMongo)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.TokenExpiry <= 0 {
		return fmt.Errorf("TOKEN_EXPIRY must be positive")
	}
	if c.LoginRateLimit <= 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be positive")
	}
	return nil
}

// SMTPConfigured reports whether reminder emails can be sent.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPSender != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
