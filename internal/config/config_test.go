package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromPath_Missing(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("credentials: [broken"), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := &Config{
		Credentials: "/etc/credhook/creds.json",
		Targets:     "/etc/mcp.json",
		Color:       "never",
	}

	if err := cfg.SaveToPath(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestSetConfigPathFunc(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("targets: /custom/mcp.json\n"), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	orig := SetConfigPathFunc(func() (string, error) { return path, nil })
	defer SetConfigPathFunc(orig)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Targets != "/custom/mcp.json" {
		t.Errorf("expected custom targets path, got %q", cfg.Targets)
	}
}

func TestResolvePaths_FlagWins(t *testing.T) {
	cfg := &Config{Credentials: "/from/config.json", Targets: "/from/targets.json"}

	creds, targets, err := cfg.ResolvePaths("/from/flag.json", "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if creds != "/from/flag.json" {
		t.Errorf("expected flag to win, got %q", creds)
	}
	if targets != "/from/targets.json" {
		t.Errorf("expected config value, got %q", targets)
	}
}

func TestResolvePaths_Defaults(t *testing.T) {
	cfg := &Config{}

	creds, targets, err := cfg.ResolvePaths("", "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if filepath.Base(creds) != "credentials.json" {
		t.Errorf("unexpected default credentials path %q", creds)
	}
	if filepath.Base(targets) != ".mcp.json" {
		t.Errorf("unexpected default targets path %q", targets)
	}
}
