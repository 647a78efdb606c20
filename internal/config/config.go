// Package config merges and validates gopagefind configuration from built-in
// defaults, the process-wide store, and call-site overrides.
package config

import (
	"fmt"
	"strings"

	"gopagefind/internal/indexer"
)

// Config is the validated, effective configuration for one indexer run.
type Config struct {
	// Site is the directory to index. Required at execution time, not here.
	Site    string
	RunWith indexer.RunWith
	Version string
	Args    []string
}

// Overrides carries call-site values layered over the store settings. Nil or
// empty fields are unset.
type Overrides struct {
	Site    string
	RunWith *indexer.RunWith
	Version string
	Args    []string
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		RunWith: indexer.Auto(),
		Version: indexer.VersionLatest,
	}
}

// New merges defaults, provider settings, and overrides — later sources win
// per field — then validates the result eagerly, stopping at the first
// failure. A nil provider skips the store layer.
func New(overrides Overrides, provider Provider) (Config, error) {
	cfg := Default()

	if provider != nil {
		settings, err := provider.Settings()
		if err != nil {
			return Config{}, fmt.Errorf("read configuration store: %w", err)
		}
		applySettings(&cfg, settings)
	}

	if overrides.Site != "" {
		cfg.Site = overrides.Site
	}
	if overrides.RunWith != nil {
		cfg.RunWith = *overrides.RunWith
	}
	if overrides.Version != "" {
		cfg.Version = overrides.Version
	}
	if len(overrides.Args) > 0 {
		cfg.Args = append([]string(nil), overrides.Args...)
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applySettings(cfg *Config, s Settings) {
	if s.Site != "" {
		cfg.Site = s.Site
	}
	if s.RunWith != nil {
		cfg.RunWith = *s.RunWith
	}
	if s.Version != "" {
		cfg.Version = s.Version
	}
	if len(s.Args) > 0 {
		cfg.Args = append([]string(nil), s.Args...)
	}
}

// validate enforces the configuration invariants. Versions are checked at
// construction so execution never sees a malformed one.
func validate(cfg Config) error {
	if err := cfg.RunWith.Validate(); err != nil {
		return err
	}
	if cfg.Version != indexer.VersionLatest && !indexer.IsVersionString(cfg.Version) {
		return fmt.Errorf("invalid version value %q (expected %q or MAJOR.MINOR.PATCH with optional -alpha.N/-beta.N/-rc.N)",
			cfg.Version, indexer.VersionLatest)
	}
	for _, arg := range cfg.Args {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("invalid args value: arguments must be non-empty strings")
		}
	}
	return nil
}
