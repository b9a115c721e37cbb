package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "auth:\n  secret: \"s3cret\"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Auth.TokenTTL != 3600 {
		t.Fatalf("expected default TTL 3600, got %d", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Fatalf("expected default bcrypt cost 10, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Server.Port != ":8080" {
		t.Fatalf("expected default port, got %q", cfg.Server.Port)
	}
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \":5000\"\n")

	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for missing auth secret")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
