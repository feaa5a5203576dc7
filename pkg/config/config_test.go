package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5, cfg.SimTrials)
	assert.Equal(t, 4, cfg.SimSlots)
	assert.Equal(t, 4, cfg.SimAdvertisers)
	assert.Equal(t, uint64(35), cfg.SimSeed)
	assert.Equal(t, "gamma", cfg.SimValueDist)
	assert.Equal(t, 5.0, cfg.SimGammaShape)
	assert.Equal(t, 2.0, cfg.SimGammaScale)
	assert.Equal(t, "console", cfg.StorageMode)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("SIM_TRIALS", "100")
	t.Setenv("SIM_SEED", "12345")
	t.Setenv("SIM_VALUE_DIST", "uniform")
	t.Setenv("STORAGE_MODE", "csv")
	t.Setenv("STORAGE_OUTPUT_PATH", "/tmp/out.csv")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.SimTrials)
	assert.Equal(t, uint64(12345), cfg.SimSeed)
	assert.Equal(t, "uniform", cfg.SimValueDist)
	assert.Equal(t, "csv", cfg.StorageMode)
	assert.Equal(t, "/tmp/out.csv", cfg.OutputPath)
}

func TestLoadFromEnvMalformedValueFallsBack(t *testing.T) {
	t.Setenv("SIM_TRIALS", "not-a-number")
	t.Setenv("SIM_GAMMA_SHAPE", "also-not")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.SimTrials)
	assert.Equal(t, 5.0, cfg.SimGammaShape)
}

func TestNewLoggerUsesConfiguredLevel(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	// The level comes from the loaded config, not from the environment.
	t.Setenv("LOG_LEVEL", "error")
	cfg.LogLevel = "debug"

	logger, err = cfg.NewLogger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	cfg.LogLevel = "verbose"
	_, err = cfg.NewLogger()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero-trials", func(c *Config) { c.SimTrials = 0 }, "SIM_TRIALS"},
		{"zero-workers", func(c *Config) { c.SimWorkers = 0 }, "SIM_WORKERS"},
		{"zero-slots", func(c *Config) { c.SimSlots = 0 }, "SIM_SLOTS"},
		{"zero-advertisers", func(c *Config) { c.SimAdvertisers = 0 }, "SIM_ADVERTISERS"},
		{"bad-distribution", func(c *Config) { c.SimValueDist = "beta" }, "SIM_VALUE_DIST"},
		{"bad-storage-mode", func(c *Config) { c.StorageMode = "postgres" }, "STORAGE_MODE"},
		{"missing-output-path", func(c *Config) {
			c.StorageMode = "jsonl"
			c.OutputPath = ""
		}, "STORAGE_OUTPUT_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromEnv()
			require.NoError(t, err)

			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
