package config

import (
	"strings"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != 8000 || cfg.Addr() != ":8000" {
		t.Fatalf("expected default port 8000, got %d", cfg.Port)
	}
	if cfg.JWTSecret != DevJWTSecret {
		t.Fatalf("expected dev secret, got %q", cfg.JWTSecret)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.SnapshotFlushSpec != "@every 5m" {
		t.Fatalf("unexpected flush spec %q", cfg.SnapshotFlushSpec)
	}
	if cfg.SMTP.Enabled() || cfg.Cloudinary.Enabled() {
		t.Fatal("integrations should be disabled without credentials")
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("EMAIL_USER", "bot@example.com")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Addr() != ":9090" || cfg.JWTSecret != "s3cret" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if !cfg.SMTP.Enabled() || cfg.SMTP.Port != 2525 {
		t.Fatalf("smtp overrides not applied: %+v", cfg.SMTP)
	}
}

func TestProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	if _, err := Parse(); err == nil {
		t.Fatal("expected error without JWT_SECRET in production")
	}
}

func TestParseError(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := Parse()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
