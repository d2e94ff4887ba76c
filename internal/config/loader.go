package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names for the credential set.
const (
	EnvKey           = "MASTERTOUR_KEY"
	EnvSecret        = "MASTERTOUR_SECRET"
	EnvDefaultTourID = "MASTERTOUR_DEFAULT_TOUR_ID"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader] and
// [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.API.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("api.timeout_seconds %d must not be negative", cfg.API.TimeoutSeconds))
	}
	if u := cfg.API.BaseURL; u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		errs = append(errs, fmt.Errorf("api.base_url %q must start with http:// or https://", u))
	}

	return errors.Join(errs...)
}

// FromEnv reads the credential set from the environment. Both key variables
// are required; the error lists every missing variable by name so a first
// run can be fixed in one pass. Values are never logged.
func FromEnv() (*Env, error) {
	env := &Env{
		ConsumerKey:    strings.TrimSpace(os.Getenv(EnvKey)),
		ConsumerSecret: strings.TrimSpace(os.Getenv(EnvSecret)),
		DefaultTourID:  strings.TrimSpace(os.Getenv(EnvDefaultTourID)),
	}

	var missing []string
	if env.ConsumerKey == "" {
		missing = append(missing, EnvKey)
	}
	if env.ConsumerSecret == "" {
		missing = append(missing, EnvSecret)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return env, nil
}
