package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tinyjs.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/snippets.db
log:
  verbosity: 2
server:
  address: ":9000"
  read_timeout: 3s
watch:
  extensions: [".js", ".tjs"]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Path != "/tmp/snippets.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Log.Verbosity != 2 {
		t.Errorf("Log.Verbosity = %d", cfg.Log.Verbosity)
	}
	if cfg.Server.Address != ":9000" {
		t.Errorf("Server.Address = %q", cfg.Server.Address)
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("Server.ReadTimeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != DefaultWriteTimeout {
		t.Errorf("Server.WriteTimeout = %v, want default", cfg.Server.WriteTimeout)
	}
	if len(cfg.Watch.Extensions) != 2 || cfg.Watch.Extensions[1] != ".tjs" {
		t.Errorf("Watch.Extensions = %v", cfg.Watch.Extensions)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: expected error")
	}

	path := writeConfig(t, "database: [unclosed")
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed yaml: expected error")
	}

	path = writeConfig(t, "watch:\n  extensions: [js]\n")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "must start with a dot") {
		t.Errorf("bad extension: err = %v", err)
	}
}

func TestLoadDefaultsWhenDefaultFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != DefaultDatabasePath || cfg.Server.Address != DefaultAddress {
		t.Errorf("got %+v, want defaults", cfg)
	}
	if len(cfg.Watch.Extensions) != 1 || cfg.Watch.Extensions[0] != ".js" {
		t.Errorf("Watch.Extensions = %v", cfg.Watch.Extensions)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TINYJS_DATABASE_PATH", "env.db")
	t.Setenv("TINYJS_LOG_VERBOSITY", "3")
	t.Setenv("TINYJS_SERVER_ADDRESS", ":7000")
	t.Setenv("TINYJS_SERVER_READ_TIMEOUT", "not-a-duration")
	t.Setenv("TINYJS_WATCH_EXTENSIONS", ".js,.mjs")

	cfg, err := LoadConfig(writeConfig(t, "database:\n  path: file.db\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Path != "env.db" {
		t.Errorf("Database.Path = %q, want env.db", cfg.Database.Path)
	}
	if cfg.Log.Verbosity != 3 {
		t.Errorf("Log.Verbosity = %d, want 3", cfg.Log.Verbosity)
	}
	if cfg.Server.Address != ":7000" {
		t.Errorf("Server.Address = %q", cfg.Server.Address)
	}
	if cfg.Server.ReadTimeout != DefaultReadTimeout {
		t.Errorf("ReadTimeout = %v, want default for malformed value", cfg.Server.ReadTimeout)
	}
	if len(cfg.Watch.Extensions) != 2 || cfg.Watch.Extensions[1] != ".mjs" {
		t.Errorf("Watch.Extensions = %v", cfg.Watch.Extensions)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate(Default()): %v", err)
	}
	cfg.Log.Verbosity = 9
	if err := Validate(cfg); err == nil {
		t.Error("verbosity 9: expected error")
	}
}
