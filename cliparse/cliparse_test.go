// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("DATABASE_TYPE", "postgres")
	os.Setenv("IDENTITY_URL", "http://localhost:4444")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("IDENTITY_URL", "http://localhost:4444")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_SqliteDefaults(t *testing.T) {
	os.Setenv("IDENTITY_URL", "http://localhost:4444")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite default, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "file:hackboard.db" {
		t.Errorf("expected default database file, got %s", cfg.DatabaseURL)
	}
	if cfg.JudgeCodeExpiryHours != 168 {
		t.Errorf("expected 168 hour default, got %d", cfg.JudgeCodeExpiryHours)
	}
}

func TestParseFlags_RequiresIdentityURL(t *testing.T) {
	os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when IDENTITY_URL is missing")
	}
}

func TestParseFlags_PostgresRequiresURL(t *testing.T) {
	os.Setenv("IDENTITY_URL", "http://localhost:4444")
	os.Setenv("DATABASE_TYPE", "postgres")
	defer os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when postgres has no database URL")
	}
}

func TestParseFlags_InvalidExpiry(t *testing.T) {
	os.Setenv("IDENTITY_URL", "http://localhost:4444")
	os.Setenv("JUDGE_CODE_EXPIRY_HOURS", "-3")
	defer os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error for negative expiry hours")
	}
}
