package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHAREHOUSE_DB_PATH", "")
	t.Setenv("RETAIN_ORIGIN_HISTORY", "")
	t.Setenv("METRICS_ADDR", "")
	t.Setenv("VAULT_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBPath != "./data/sharehouse.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if !cfg.RetainOriginHistory {
		t.Error("RetainOriginHistory should default to true")
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("MetricsAddr = %q, want empty", cfg.MetricsAddr)
	}
	if cfg.VaultKey != nil {
		t.Errorf("VaultKey = %x, want nil", cfg.VaultKey)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SHAREHOUSE_DB_PATH", "/tmp/house.db")
	t.Setenv("RETAIN_ORIGIN_HISTORY", "false")
	t.Setenv("METRICS_ADDR", "localhost:9091")
	t.Setenv("VAULT_KEY", strings.Repeat("ab", 32))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBPath != "/tmp/house.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.RetainOriginHistory {
		t.Error("RetainOriginHistory should be false")
	}
	if cfg.MetricsAddr != "localhost:9091" {
		t.Errorf("MetricsAddr = %q", cfg.MetricsAddr)
	}
	if len(cfg.VaultKey) != 32 {
		t.Errorf("VaultKey length = %d, want 32", len(cfg.VaultKey))
	}
}

func TestLoadRejectsBadVaultKey(t *testing.T) {
	t.Setenv("VAULT_KEY", "not hex")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-hex key")
	}

	t.Setenv("VAULT_KEY", "abcd") // valid hex, wrong length
	if _, err := Load(); err == nil {
		t.Error("expected error for short key")
	}
}

func TestLoadInvalidBoolFallsBack(t *testing.T) {
	t.Setenv("RETAIN_ORIGIN_HISTORY", "definitely")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.RetainOriginHistory {
		t.Error("unparseable bool should fall back to the default")
	}
}
