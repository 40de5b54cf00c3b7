package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetupDefaults(t *testing.T) {
	var cfg ServiceConfig
	cfg.Setup()
	if cfg.Port != "3000" || cfg.LogLevel != "info" {
		t.Fatalf("defaults = %+v", cfg)
	}

	cfg = ServiceConfig{Port: "8080", LogLevel: "nonsense"}
	cfg.Setup()
	if cfg.Port != "8080" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("unknown log level not defaulted: %q", cfg.LogLevel)
	}
}

func TestLoadServiceConfig(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(filename, []byte("port: \"8081\"\nlog_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadServiceConfig(filename)
	if err != nil {
		t.Fatalf("LoadServiceConfig: %v", err)
	}
	if cfg.Port != "8081" || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadServiceConfigMissingFile(t *testing.T) {
	cfg, err := LoadServiceConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults, got %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("cfg = %+v", cfg)
	}
}
