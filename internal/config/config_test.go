package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridleaf/carboncast/internal/logging"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "EU-avg", cfg.DefaultRegion)
	assert.Equal(t, "base", cfg.Basis)
	assert.InDelta(t, 15.0, cfg.CostPerTonneUSD, 1e-9)
	assert.Equal(t, "table", cfg.OutputFormat)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestMergeFile(t *testing.T) {
	t.Run("missing file is a no-op", func(t *testing.T) {
		cfg := New()
		err := cfg.mergeFile(filepath.Join(t.TempDir(), "config.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "EU-avg", cfg.DefaultRegion)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
default_region: FR
basis: implied
cost_per_tonne_usd: 22.5
logging:
  level: debug
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		cfg := New()
		require.NoError(t, cfg.mergeFile(path))

		assert.Equal(t, "FR", cfg.DefaultRegion)
		assert.Equal(t, "implied", cfg.Basis)
		assert.InDelta(t, 22.5, cfg.CostPerTonneUSD, 1e-9)
		assert.Equal(t, "debug", cfg.Logging.Level)
		// Untouched keys keep their defaults.
		assert.Equal(t, "table", cfg.OutputFormat)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("default_region: [unclosed"), 0600))

		cfg := New()
		err := cfg.mergeFile(path)
		assert.Error(t, err)
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvRegion:       "US-CA",
		EnvBasis:        "implied",
		EnvCostPerTonne: "30",
		EnvLogLevel:     "warn",
	}
	cfg := New()
	cfg.applyEnv(func(key string) string { return env[key] })

	assert.Equal(t, "US-CA", cfg.DefaultRegion)
	assert.Equal(t, "implied", cfg.Basis)
	assert.InDelta(t, 30.0, cfg.CostPerTonneUSD, 1e-9)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestApplyEnvIgnoresInvalidCost(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "abc"},
		{"negative", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			cfg.applyEnv(func(key string) string {
				if key == EnvCostPerTonne {
					return tt.value
				}
				return ""
			})
			assert.InDelta(t, 15.0, cfg.CostPerTonneUSD, 1e-9)
		})
	}
}

func TestHomeDirEnvOverride(t *testing.T) {
	t.Setenv(EnvHome, "/tmp/carboncast-test-home")
	assert.Equal(t, "/tmp/carboncast-test-home", HomeDir())
}

func TestToLoggingConfig(t *testing.T) {
	t.Run("no file means stderr", func(t *testing.T) {
		lc := LoggingConfig{Level: "info", Format: "console"}
		got := lc.ToLoggingConfig()
		assert.Equal(t, logging.OutputStderr, got.Output)
	})

	t.Run("file path switches output", func(t *testing.T) {
		lc := LoggingConfig{Level: "info", File: "/tmp/cc.log"}
		got := lc.ToLoggingConfig()
		assert.Equal(t, logging.OutputFile, got.Output)
		assert.Equal(t, "/tmp/cc.log", got.File)
	})
}

func TestGlobalConfig(t *testing.T) {
	// Without SetGlobalConfig, defaults come back.
	SetGlobalConfig(nil)
	assert.Equal(t, "EU-avg", GetGlobalConfig().DefaultRegion)

	cfg := New()
	cfg.DefaultRegion = "DE"
	SetGlobalConfig(cfg)
	assert.Equal(t, "DE", GetGlobalConfig().DefaultRegion)

	SetGlobalConfig(nil)
}
