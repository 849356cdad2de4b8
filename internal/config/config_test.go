package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"API_BASE", "LISTEN_ADDR", "FORCE_MOCK", "MOCK_DELAY_SCALE"} {
		// Register restoration, then unset so defaults apply.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIBase != "http://127.0.0.1:5000" {
		t.Errorf("APIBase = %q, want the local backend default", cfg.APIBase)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.ForceMock {
		t.Error("ForceMock should default to false")
	}
	if cfg.MockDelayScale != 1.0 {
		t.Errorf("MockDelayScale = %v, want 1.0", cfg.MockDelayScale)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE", "http://backend:5000")
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("FORCE_MOCK", "true")
	t.Setenv("MOCK_DELAY_SCALE", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIBase != "http://backend:5000" {
		t.Errorf("APIBase = %q", cfg.APIBase)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if !cfg.ForceMock {
		t.Error("ForceMock should be true")
	}
	if cfg.MockDelayScale != 0 {
		t.Errorf("MockDelayScale = %v, want 0", cfg.MockDelayScale)
	}
}

func TestLoadInvalidDelayScale(t *testing.T) {
	t.Setenv("MOCK_DELAY_SCALE", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MockDelayScale != 1.0 {
		t.Errorf("Invalid scale should fall back to 1.0, got %v", cfg.MockDelayScale)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("SOME_FLAG", "garbage")
	if getEnvBool("SOME_FLAG", true) != true {
		t.Error("Unparseable value should return fallback")
	}
	t.Setenv("SOME_FLAG", "1")
	if !getEnvBool("SOME_FLAG", false) {
		t.Error("\"1\" should parse as true")
	}
}
