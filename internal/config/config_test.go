package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("CTXSTORE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("CTXSTORE_DB", "")

	cfg := Load()
	if cfg.DBPath == "" {
		t.Error("expected a default db path")
	}
	if cfg.DefaultBudget != DefaultBudget {
		t.Errorf("expected default budget %d, got %d", DefaultBudget, cfg.DefaultBudget)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "db_path: /tmp/custom.db\ndefault_budget: 25\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CTXSTORE_CONFIG", path)
	t.Setenv("CTXSTORE_DB", "")

	cfg := Load()
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("expected file db path, got %q", cfg.DBPath)
	}
	if cfg.DefaultBudget != 25 {
		t.Errorf("expected budget 25, got %d", cfg.DefaultBudget)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("db_path: /tmp/from-file.db\n"), 0o644)
	t.Setenv("CTXSTORE_CONFIG", path)
	t.Setenv("CTXSTORE_DB", "/tmp/from-env.db")

	cfg := Load()
	if cfg.DBPath != "/tmp/from-env.db" {
		t.Errorf("expected env db path, got %q", cfg.DBPath)
	}
}

func TestMalformedFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte(":\tnot yaml {{"), 0o644)
	t.Setenv("CTXSTORE_CONFIG", path)
	t.Setenv("CTXSTORE_DB", "")

	cfg := Load()
	if cfg.DefaultBudget != DefaultBudget {
		t.Errorf("expected defaults on malformed file, got %+v", cfg)
	}
}
