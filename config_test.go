package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWorldConfigNormalizedDefaults(t *testing.T) {
	cfg := worldConfig{}.normalized()

	if cfg.Seed != defaultWorldSeed {
		t.Fatalf("expected default seed, got %q", cfg.Seed)
	}
	if cfg.MaxLiveMonkeys != defaultMaxLiveMonkeys {
		t.Fatalf("expected default capacity, got %d", cfg.MaxLiveMonkeys)
	}
	if cfg.BananaMax != defaultBananaMax {
		t.Fatalf("expected default banana ceiling, got %d", cfg.BananaMax)
	}
	if cfg.TeamStrategy != TeamStrategyWallet {
		t.Fatalf("expected wallet strategy default, got %q", cfg.TeamStrategy)
	}
}

func TestWorldConfigNormalizedRejectsUnknownStrategy(t *testing.T) {
	cfg := worldConfig{TeamStrategy: "astrology"}.normalized()
	if cfg.TeamStrategy != TeamStrategyWallet {
		t.Fatalf("unknown strategy must fall back to wallet, got %q", cfg.TeamStrategy)
	}
}

func TestLoadServerConfigMissingFileFallsBack(t *testing.T) {
	cfg, err := loadServerConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.Funding.PollInterval.Duration() != 5*time.Second {
		t.Fatalf("expected default poll interval, got %v", cfg.Funding.PollInterval)
	}
	if len(cfg.Logging.Sinks) != 1 || cfg.Logging.Sinks[0] != "console" {
		t.Fatalf("expected console sink default, got %v", cfg.Logging.Sinks)
	}
}

func TestLoadServerConfigParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
addr: ":9000"
world:
  seed: "banana"
  max_live_monkeys: 42
  team_strategy: bucket
funding:
  enabled: true
  url: "http://example.test/tx"
  poll_interval: 2s
logging:
  sinks: [console, json]
  json_path: out.ndjson
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadServerConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Fatalf("addr not parsed, got %q", cfg.Addr)
	}
	if cfg.World.Seed != "banana" || cfg.World.MaxLiveMonkeys != 42 {
		t.Fatalf("world section not parsed: %+v", cfg.World)
	}
	if cfg.World.TeamStrategy != TeamStrategyBucket {
		t.Fatalf("team strategy not parsed, got %q", cfg.World.TeamStrategy)
	}
	if !cfg.Funding.Enabled || cfg.Funding.URL != "http://example.test/tx" {
		t.Fatalf("funding section not parsed: %+v", cfg.Funding)
	}
	if cfg.Funding.PollInterval.Duration() != 2*time.Second {
		t.Fatalf("poll interval not parsed, got %v", cfg.Funding.PollInterval)
	}
	if len(cfg.Logging.Sinks) != 2 {
		t.Fatalf("logging sinks not parsed: %v", cfg.Logging.Sinks)
	}
}

func TestLoadServerConfigInvalidYAMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadServerConfig(path); err == nil {
		t.Fatalf("expected parse error for invalid yaml")
	}
}
