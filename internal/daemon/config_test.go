package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.User.ID != "local" {
		t.Errorf("user id = %q, want \"local\"", cfg.User.ID)
	}
	if cfg.API.Host != "127.0.0.1" || cfg.API.Port != 8420 {
		t.Errorf("api = %s:%d, unexpected", cfg.API.Host, cfg.API.Port)
	}
	if !cfg.Telemetry.Prometheus {
		t.Error("prometheus should default on")
	}
}

func TestLoadConfig_NoFile(t *testing.T) {
	t.Setenv("SUGARLOG_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Port != 8420 {
		t.Errorf("port = %d, want default 8420", cfg.API.Port)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SUGARLOG_HOME", dir)

	content := `
[user]
id = "maya"

[api]
port = 9000

[telemetry]
prometheus = false
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.User.ID != "maya" {
		t.Errorf("user id = %q, want \"maya\"", cfg.User.ID)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.API.Port)
	}
	if cfg.Telemetry.Prometheus {
		t.Error("prometheus should be off")
	}
	// Untouched sections keep their defaults.
	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("host = %q, want default", cfg.API.Host)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Setenv("SUGARLOG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.User.ID = "maya"
	cfg.API.Port = 9999

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.User.ID != "maya" || loaded.API.Port != 9999 {
		t.Errorf("round-trip config = %+v", loaded)
	}
}
