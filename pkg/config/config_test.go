package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if !cfg.App.IsProd() {
		t.Fatalf("expected IsProd to report true")
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if cfg.Sanity.Dataset != "production" {
		t.Fatalf("expected default dataset, got %q", cfg.Sanity.Dataset)
	}

	if cfg.Paystack.MinorUnitFactor != 100 {
		t.Fatalf("expected default minor unit factor 100, got %d", cfg.Paystack.MinorUnitFactor)
	}
	if cfg.Paystack.SessionTimeout != 10*time.Second {
		t.Fatalf("expected default session timeout 10s, got %v", cfg.Paystack.SessionTimeout)
	}
	if cfg.Paystack.CurrencyCode != "NGN" {
		t.Fatalf("expected default currency NGN, got %q", cfg.Paystack.CurrencyCode)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvSanityProjectID, "hf2xk1a9")
	t.Setenv(EnvSanityToken, "sk-test-token")
	t.Setenv(EnvAuthSecret, "secret")
	t.Setenv(EnvAuthIssuer, "hanniefoods")
	t.Setenv(EnvAdminKey, "letmein")
}
