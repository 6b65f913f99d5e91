package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRejectsMissingUsername(t *testing.T) {
	path := writeConfig(t, "twitch:\n  oauth: abc\n  channels: [foo]\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a missing twitch.username")
	}
}

func TestLoadRejectsNoChannels(t *testing.T) {
	path := writeConfig(t, "twitch:\n  username: bot\n  oauth: abc\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an empty channel list")
	}
}

func TestLoadOAuthEnvOverride(t *testing.T) {
	path := writeConfig(t, "twitch:\n  username: bot\n  oauth: placeholder\n  channels: [foo]\n")
	t.Setenv("TWITCH_OAUTH", "oauth:fromenv")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Twitch.OAuth != "oauth:fromenv" {
		t.Fatalf("expected env override to win, got %q", cfg.Twitch.OAuth)
	}
}

func TestToOptionsAppliesConnectionOverrides(t *testing.T) {
	path := writeConfig(t, `
twitch:
  username: bot
  oauth: abc
  channels: [foo, bar]
connection:
  ping_interval_seconds: 30
  join_interval_millis: 500
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts := cfg.ToOptions()
	if opts.Identity.Username != "bot" {
		t.Fatalf("unexpected identity: %+v", opts.Identity)
	}
	if len(opts.Channels) != 2 {
		t.Fatalf("expected channels to carry through, got %v", opts.Channels)
	}
	if opts.PingInterval.Seconds() != 30 {
		t.Fatalf("expected ping interval override, got %v", opts.PingInterval)
	}
	if opts.JoinInterval.Milliseconds() != 500 {
		t.Fatalf("expected join interval override, got %v", opts.JoinInterval)
	}
}
