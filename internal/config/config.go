// Package config loads process configuration from the environment.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// Config holds everything the process reads from the environment.
type Config struct {
	// DBPath is the SQLite file backing the ledger.
	DBPath string

	// RetainOriginHistory keeps DebtOrigin rows behind after a debt is
	// settled, preserving purchase history.
	RetainOriginHistory bool

	// MetricsAddr, when set, enables a Prometheus scrape listener on that
	// address (e.g., "localhost:9091"). Empty disables the listener.
	MetricsAddr string

	// VaultKey is the credential vault key, decoded from hex. Empty
	// disables the vault.
	VaultKey []byte
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:              getEnv("SHAREHOUSE_DB_PATH", "./data/sharehouse.db"),
		RetainOriginHistory: getEnvBool("RETAIN_ORIGIN_HISTORY", true),
		MetricsAddr:         getEnv("METRICS_ADDR", ""),
	}

	if keyHex := os.Getenv("VAULT_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return nil, fmt.Errorf("VAULT_KEY is not valid hex: %w", err)
		}
		cfg.VaultKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration and returns a combined error
// describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if c.DBPath == "" {
		errs = append(errs, "database path must not be empty")
	}
	if len(c.VaultKey) != 0 && len(c.VaultKey) != chacha20poly1305.KeySize {
		errs = append(errs, fmt.Sprintf("vault key must be %d bytes, got %d", chacha20poly1305.KeySize, len(c.VaultKey)))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
