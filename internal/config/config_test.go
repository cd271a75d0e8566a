package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.Player.Name != nil || cfg.Game.Sound != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigParsesSections(t *testing.T) {
	path := writeConfig(t, `
[player]
name = "Ada"

[game]
start-delay-ms = 500
shuffle-ms = 800
sound = false

[commentary]
enabled = false
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Player.Name == nil || *cfg.Player.Name != "Ada" {
		t.Fatalf("unexpected name %+v", cfg.Player)
	}
	if cfg.Game.StartDelayMs == nil || *cfg.Game.StartDelayMs != 500 {
		t.Fatalf("unexpected start delay %+v", cfg.Game)
	}
	if cfg.Game.ShuffleMs == nil || *cfg.Game.ShuffleMs != 800 {
		t.Fatalf("unexpected shuffle %+v", cfg.Game)
	}
	if cfg.Game.RevealMs != nil || cfg.Game.TransitionMs != nil {
		t.Fatalf("unset keys must stay nil")
	}
	if cfg.Game.Sound == nil || *cfg.Game.Sound {
		t.Fatalf("expected sound disabled")
	}
	if cfg.Commentary.Enabled == nil || *cfg.Commentary.Enabled {
		t.Fatalf("expected commentary disabled")
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "[game]\nspeed = 3\n")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "game.speed") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfigRejectsBadType(t *testing.T) {
	path := writeConfig(t, "[game]\nshuffle-ms = \"fast\"\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", AppName, "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", AppName, "moneydetectives.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/tmp/data", AppName, "debug.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}
