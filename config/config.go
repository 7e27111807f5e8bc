package config

import (
	"errors"
	"os"
	"time"
)

type Config struct {
	Environment string
	ServerPort  string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// JWTSecret has no default. Startup fails without it.
	JWTSecret []byte
	TokenTTL  time.Duration

	// SingleSessionPerDay makes staff attendance session creation idempotent
	// per calendar day. When false every create yields a new session.
	SingleSessionPerDay bool

	NotificationRetention time.Duration
	SweepInterval         time.Duration
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET environment variable is required")

func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		ServerPort:  getEnv("PORT", "8080"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnv("DB_NAME", "schoolhub"),

		JWTSecret: []byte(secret),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),

		SingleSessionPerDay: getEnv("STAFF_SESSION_MODE", "single") != "multiple",

		NotificationRetention: getEnvDuration("NOTIFICATION_RETENTION", 7*24*time.Hour),
		SweepInterval:         getEnvDuration("NOTIFICATION_SWEEP_INTERVAL", time.Hour),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
