package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if string(cfg.JWTSecret) != "unit-test-secret" {
		t.Errorf("unexpected secret: %s", cfg.JWTSecret)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.ServerPort)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h token ttl, got %s", cfg.TokenTTL)
	}
	if !cfg.SingleSessionPerDay {
		t.Error("expected single session mode by default")
	}
	if cfg.NotificationRetention != 7*24*time.Hour {
		t.Errorf("expected 7 day retention, got %s", cfg.NotificationRetention)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	t.Setenv("STAFF_SESSION_MODE", "multiple")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("NOTIFICATION_SWEEP_INTERVAL", "10m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.SingleSessionPerDay {
		t.Error("expected multiple session mode")
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("expected 1h ttl, got %s", cfg.TokenTTL)
	}
	if cfg.SweepInterval != 10*time.Minute {
		t.Errorf("expected 10m sweep interval, got %s", cfg.SweepInterval)
	}
}
