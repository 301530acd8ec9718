package config

import (
	"path/filepath"
	"testing"
)

func TestEnvOverridesBeatFileValues(t *testing.T) {
	t.Setenv("QFW_SERVER_URL", "http://override:9000")
	t.Setenv("QFW_ADMIN_KEY", "env-secret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Server.BaseURL = "http://file:8000"
	cfg.Admin.APIKey = "file-secret"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Server.BaseURL != "http://override:9000" {
		t.Errorf("base_url = %q, want env override", loaded.Server.BaseURL)
	}
	if loaded.Admin.APIKey != "env-secret" {
		t.Errorf("api_key = %q, want env override", loaded.Admin.APIKey)
	}
}

func TestEnvOverridesApplyWithoutFile(t *testing.T) {
	t.Setenv("QFW_ADMIN_KEY", "env-only")
	t.Setenv("QFW_AUDIT_FILE", "/tmp/exports/audit_logs.json")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Admin.APIKey != "env-only" {
		t.Errorf("api_key = %q", cfg.Admin.APIKey)
	}
	if cfg.Admin.AuditFile != "/tmp/exports/audit_logs.json" {
		t.Errorf("audit_file = %q", cfg.Admin.AuditFile)
	}
}
