// Package config loads the settings of the inventory CLI.
//
// Settings come from an optional YAML file and are then overridden by
// INVENTORY_* environment variables:
//
//	currency: USD            # INVENTORY_CURRENCY
//	store: ./data            # INVENTORY_STORE, see store.Open
//	key: inventory           # INVENTORY_KEY
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/inventory"
	"github.com/etnz/inventory/store"
	"gopkg.in/yaml.v3"
)

// Config holds the CLI settings.
type Config struct {
	// Currency of a new ledger. An existing ledger keeps its own.
	Currency string `yaml:"currency"`
	// Store is the location of the key-value store: a folder, "memory:",
	// a redis:// or a postgres:// URL.
	Store string `yaml:"store"`
	// Key under which the ledger is stored.
	Key string `yaml:"key"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Currency: inventory.DefaultCurrency,
		Store:    ".inventory",
		Key:      store.DefaultKey,
	}
}

// Load reads the YAML file at path, if not empty, on top of the defaults,
// applies the environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	}

	cfg.Currency = getEnv("INVENTORY_CURRENCY", cfg.Currency)
	cfg.Store = getEnv("INVENTORY_STORE", cfg.Store)
	cfg.Key = getEnv("INVENTORY_KEY", cfg.Key)
	cfg.Currency = strings.ToUpper(strings.TrimSpace(cfg.Currency))

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	var errs []error
	if err := inventory.ValidateCurrency(c.Currency); err != nil {
		errs = append(errs, err)
	}
	if c.Store == "" {
		errs = append(errs, errors.New("store is required"))
	}
	if c.Key == "" {
		errs = append(errs, errors.New("key is required"))
	}
	return errors.Join(errs...)
}

func getEnv(key string, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}
