// Package config provides the configuration schema and loader for the flexfx
// performance tool.
package config

// LogLevel controls log verbosity.
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

// Config is the root configuration structure.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	Perform PerformConfig `yaml:"perform"`
}

// ServerConfig holds logging and telemetry settings.
type ServerConfig struct {
	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// MetricsAddr is the TCP address the /metrics endpoint listens on
	// (e.g., ":9090"). Empty disables the metrics server.
	MetricsAddr string `yaml:"metrics_addr"`
}

// CatalogConfig selects which effect templates are loaded at startup.
type CatalogConfig struct {
	// Builtins loads the stock effect catalog when true.
	Builtins bool `yaml:"builtins"`

	// Paths lists YAML effect files or directories of them to import.
	Paths []string `yaml:"paths"`
}

// PerformConfig holds the default performance parameters applied when a
// caller does not specify its own.
type PerformConfig struct {
	// PitchSteps is the default overall pitch shift in semitones.
	PitchSteps float64 `yaml:"pitch_steps"`

	// VolumeCeiling is the default loudest point of a performance (0-100).
	VolumeCeiling float64 `yaml:"volume_ceiling"`

	// DurationMs is the default total performance length in milliseconds.
	// Zero means "use the template's own total duration".
	DurationMs float64 `yaml:"duration_ms"`
}
