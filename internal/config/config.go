// Package config provides the configuration schema and loaders for the
// Master Tour MCP server. Server settings come from an optional YAML file;
// API credentials come exclusively from the environment so they never end up
// in config files checked into tour-production repos.
package config

import "time"

// LogLevel controls log verbosity for the server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure. It is typically loaded from a
// YAML file using [Load] or [LoadFromReader]; every field has a usable zero
// default, so running without a config file is supported.
type Config struct {
	Server ServerConfig `yaml:"server"`
	API    APIConfig    `yaml:"api"`
}

// ServerConfig holds logging and diagnostics settings.
type ServerConfig struct {
	// LogLevel controls verbosity. Defaults to info.
	LogLevel LogLevel `yaml:"log_level"`

	// MetricsAddr is the TCP address for the Prometheus /metrics listener
	// (e.g., "localhost:9464"). Empty disables the listener; the MCP
	// transport itself runs on stdio either way.
	MetricsAddr string `yaml:"metrics_addr"`
}

// APIConfig holds upstream Master Tour API settings.
type APIConfig struct {
	// BaseURL overrides the production API root. Leave empty to use the
	// built-in default.
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds bounds each upstream HTTP request. Defaults to 30.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout returns the configured upstream request timeout.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Env is the credential set read from the environment.
type Env struct {
	// ConsumerKey is the Master Tour API consumer key (MASTERTOUR_KEY).
	ConsumerKey string

	// ConsumerSecret is the Master Tour API consumer secret
	// (MASTERTOUR_SECRET).
	ConsumerSecret string

	// DefaultTourID optionally pins tools to one tour
	// (MASTERTOUR_DEFAULT_TOUR_ID).
	DefaultTourID string
}
