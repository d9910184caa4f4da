package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader] and [Validate].
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
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true) // reject unknown keys to catch typos
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty file means "all defaults".
			return cfg, nil
		}
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a [Config] populated with sensible defaults: builtin
// catalog enabled, full volume, info-level logging.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			LogLevel: LogInfo,
		},
		Catalog: CatalogConfig{
			Builtins: true,
		},
		Perform: PerformConfig{
			VolumeCeiling: 100,
		},
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	// Performance defaults are clamped at use, not rejected here; only flag
	// values that are outright nonsensical in a config file.
	if cfg.Perform.VolumeCeiling < 0 {
		errs = append(errs, fmt.Errorf("perform.volume_ceiling %v is negative", cfg.Perform.VolumeCeiling))
	}
	if cfg.Perform.DurationMs < 0 {
		errs = append(errs, fmt.Errorf("perform.duration_ms %v is negative", cfg.Perform.DurationMs))
	}

	for i, p := range cfg.Catalog.Paths {
		if p == "" {
			errs = append(errs, fmt.Errorf("catalog.paths[%d] is empty", i))
		}
	}

	return errors.Join(errs...)
}
