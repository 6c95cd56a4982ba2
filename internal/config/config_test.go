package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yml"))
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != ":8080" {
		t.Errorf("expected default port :8080, got %s", cfg.Port)
	}
	if cfg.DBPath != "./data/locations.db" {
		t.Errorf("unexpected default db path: %s", cfg.DBPath)
	}
	if cfg.DeviceRateLimit != 120 {
		t.Errorf("expected default rate limit 120, got %d", cfg.DeviceRateLimit)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "port: \":9090\"\ndb_path: /tmp/test.db\njwt_secret: file-secret-long-enough\ndevice_rate_limit: 30\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != ":9090" {
		t.Errorf("expected port :9090, got %s", cfg.Port)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("expected db path /tmp/test.db, got %s", cfg.DBPath)
	}
	if cfg.JWTSecret != "file-secret-long-enough" {
		t.Errorf("unexpected jwt secret: %s", cfg.JWTSecret)
	}
	if cfg.DeviceRateLimit != 30 {
		t.Errorf("expected rate limit 30, got %d", cfg.DeviceRateLimit)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "port: \":9090\"\njwt_secret: file-secret-long-enough\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", ":7070")
	t.Setenv("DB_PATH", "")
	t.Setenv("JWT_SECRET", "env-secret-long-enough!")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != ":7070" {
		t.Errorf("environment should win over file, got port %s", cfg.Port)
	}
	if cfg.JWTSecret != "env-secret-long-enough!" {
		t.Errorf("environment should win over file, got secret %s", cfg.JWTSecret)
	}
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yml"))
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("JWT_SECRET", "short")

	if _, err := Load(); err == nil {
		t.Error("expected validation error for a short jwt secret")
	}
}
