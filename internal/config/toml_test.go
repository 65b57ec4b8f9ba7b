package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load missing config: %v", err)
	}
	if cfg.Report.Format != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[report]
format = "yaml"
steps = false
decimals = 2

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Report.Format == nil || *cfg.Report.Format != "yaml" {
		t.Fatalf("unexpected format: %v", cfg.Report.Format)
	}
	if cfg.Report.Steps == nil || *cfg.Report.Steps {
		t.Fatalf("expected steps=false")
	}
	if cfg.Report.Decimals == nil || *cfg.Report.Decimals != 2 {
		t.Fatalf("unexpected decimals: %v", cfg.Report.Decimals)
	}
	if cfg.Report.References != nil {
		t.Fatalf("references should be unset")
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[report]\nfromat = \"json\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "report.fromat") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/xdg", "iwlcalc", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
}
