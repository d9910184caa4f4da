package config_test

import (
	"strings"
	"testing"

	"github.com/MrWong99/flexfx/internal/config"
)

func TestLoadFromReader(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()
		const doc = `
server:
  log_level: debug
  metrics_addr: ":9090"
catalog:
  builtins: false
  paths:
    - effects/band.yaml
perform:
  pitch_steps: -12
  volume_ceiling: 80
  duration_ms: 1500
`
		cfg, err := config.LoadFromReader(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("LoadFromReader: unexpected error: %v", err)
		}
		if cfg.Server.LogLevel != config.LogDebug {
			t.Errorf("log_level = %q, want debug", cfg.Server.LogLevel)
		}
		if cfg.Server.MetricsAddr != ":9090" {
			t.Errorf("metrics_addr = %q, want :9090", cfg.Server.MetricsAddr)
		}
		if cfg.Catalog.Builtins {
			t.Error("builtins = true, want false")
		}
		if len(cfg.Catalog.Paths) != 1 || cfg.Catalog.Paths[0] != "effects/band.yaml" {
			t.Errorf("paths = %v, want [effects/band.yaml]", cfg.Catalog.Paths)
		}
		if cfg.Perform.PitchSteps != -12 || cfg.Perform.VolumeCeiling != 80 || cfg.Perform.DurationMs != 1500 {
			t.Errorf("perform = %+v, want -12/80/1500", cfg.Perform)
		}
	})

	t.Run("empty file yields defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.LoadFromReader(strings.NewReader(""))
		if err != nil {
			t.Fatalf("LoadFromReader: unexpected error: %v", err)
		}
		if cfg.Server.LogLevel != config.LogInfo {
			t.Errorf("default log_level = %q, want info", cfg.Server.LogLevel)
		}
		if !cfg.Catalog.Builtins {
			t.Error("default builtins = false, want true")
		}
		if cfg.Perform.VolumeCeiling != 100 {
			t.Errorf("default volume_ceiling = %v, want 100", cfg.Perform.VolumeCeiling)
		}
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		t.Parallel()
		_, err := config.LoadFromReader(strings.NewReader("server:\n  log_lvl: info\n"))
		if err == nil {
			t.Fatal("LoadFromReader accepted an unknown key")
		}
	})

	t.Run("invalid log level is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := config.LoadFromReader(strings.NewReader("server:\n  log_level: loud\n"))
		if err == nil {
			t.Fatal("LoadFromReader accepted an invalid log level")
		}
	})

	t.Run("negative perform values are rejected", func(t *testing.T) {
		t.Parallel()
		_, err := config.LoadFromReader(strings.NewReader("perform:\n  volume_ceiling: -5\n"))
		if err == nil {
			t.Fatal("LoadFromReader accepted a negative volume ceiling")
		}
	})
}
