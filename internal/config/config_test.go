package config

import (
	"os"
	"testing"
	"time"
)

// clearEnv unsets keys for the duration of the test.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "PORT", "FRONTEND_URL", "POLL_INTERVAL", "SESSION_TAIL_LINES", "SCAN_CONCURRENCY")
	t.Setenv("CONFIG_PATH", "/tmp/gateway.json")
	t.Setenv("AGENTS_DIR", "/tmp/agents")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Fatalf("expected 30s poll interval, got %s", cfg.PollInterval)
	}
	if cfg.SessionTailLines != 20 {
		t.Fatalf("expected 20 tail lines, got %d", cfg.SessionTailLines)
	}
	if cfg.GatewayConfigPath != "/tmp/gateway.json" || cfg.AgentsDir != "/tmp/agents" {
		t.Fatalf("env paths not applied: %+v", cfg)
	}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development mode with empty FRONTEND_URL")
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	clearEnv(t, "SCAN_CONCURRENCY", "SESSION_TAIL_LINES")
	t.Setenv("AGENTS_DIR", "/from/env")
	t.Setenv("POLL_INTERVAL", "10s")

	cfg, err := Load([]string{"--agents-dir", "/from/flag", "--port", "9090"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AgentsDir != "/from/flag" {
		t.Fatalf("expected flag to win, got %q", cfg.AgentsDir)
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Fatalf("expected env poll interval 10s, got %s", cfg.PollInterval)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("SCAN_CONCURRENCY", "0")

	if _, err := Load(nil); err == nil {
		t.Fatal("expected error for zero scan concurrency")
	}
}

func TestGetEnvListTrimsEntries(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	got := getEnvList("CORS_ALLOWED_ORIGINS", nil)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", got)
	}
}
