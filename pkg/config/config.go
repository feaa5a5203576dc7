package config

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Batch simulation
	SimTrials  int
	SimWorkers int

	// Scenario shape
	SimSlots       int
	SimAdvertisers int
	SimSeed        uint64

	// Value distribution
	SimValueDist    string // "gamma", "uniform" or "normal"
	SimGammaShape   float64
	SimGammaScale   float64
	SimUniformLo    float64
	SimUniformHi    float64
	SimNormalMean   float64
	SimNormalStdDev float64

	// Storage
	StorageMode string // "console", "csv" or "jsonl"
	OutputPath  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Batch defaults
		SimTrials:  getIntOrDefault("SIM_TRIALS", 5),
		SimWorkers: getIntOrDefault("SIM_WORKERS", 4),

		// Scenario defaults match the classic four-slot setup
		SimSlots:       getIntOrDefault("SIM_SLOTS", 4),
		SimAdvertisers: getIntOrDefault("SIM_ADVERTISERS", 4),
		SimSeed:        getUint64OrDefault("SIM_SEED", 35),

		// Distribution defaults: Gamma(5, 2) per-click values
		SimValueDist:    getEnvOrDefault("SIM_VALUE_DIST", "gamma"),
		SimGammaShape:   getFloat64OrDefault("SIM_GAMMA_SHAPE", 5.0),
		SimGammaScale:   getFloat64OrDefault("SIM_GAMMA_SCALE", 2.0),
		SimUniformLo:    getFloat64OrDefault("SIM_UNIFORM_LO", 1.0),
		SimUniformHi:    getFloat64OrDefault("SIM_UNIFORM_HI", 10.0),
		SimNormalMean:   getFloat64OrDefault("SIM_NORMAL_MEAN", 5.0),
		SimNormalStdDev: getFloat64OrDefault("SIM_NORMAL_STDDEV", 2.0),

		// Storage defaults
		StorageMode: getEnvOrDefault("STORAGE_MODE", "console"),
		OutputPath:  getEnvOrDefault("STORAGE_OUTPUT_PATH", "clocksim-reports.csv"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.SimTrials < 1 {
		return fmt.Errorf("SIM_TRIALS must be >= 1, got %d", c.SimTrials)
	}

	if c.SimWorkers < 1 {
		return fmt.Errorf("SIM_WORKERS must be >= 1, got %d", c.SimWorkers)
	}

	if c.SimSlots < 1 {
		return fmt.Errorf("SIM_SLOTS must be >= 1, got %d", c.SimSlots)
	}

	if c.SimAdvertisers < 1 {
		return fmt.Errorf("SIM_ADVERTISERS must be >= 1, got %d", c.SimAdvertisers)
	}

	if c.SimValueDist != "gamma" && c.SimValueDist != "uniform" && c.SimValueDist != "normal" {
		return fmt.Errorf("SIM_VALUE_DIST must be 'gamma', 'uniform' or 'normal', got %q", c.SimValueDist)
	}

	if c.StorageMode != "console" && c.StorageMode != "csv" && c.StorageMode != "jsonl" {
		return fmt.Errorf("STORAGE_MODE must be 'console', 'csv' or 'jsonl', got %q", c.StorageMode)
	}

	if c.StorageMode != "console" && c.OutputPath == "" {
		return fmt.Errorf("STORAGE_OUTPUT_PATH cannot be empty for storage mode %q", c.StorageMode)
	}

	return nil
}

// NewLogger builds the zap JSON logger at the configured level. Logs go
// to stderr: rendered report tables own stdout, so the two streams stay
// separable when batch output is piped.
func (c *Config) NewLogger() (*zap.Logger, error) {
	var level zapcore.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	// Batches are short-lived; sampling would drop per-trial debug records.
	zapCfg.Sampling = nil
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger, nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getUint64OrDefault(key string, defaultValue uint64) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	uintVal, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return defaultValue
	}

	return uintVal
}

func getFloat64OrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatVal
}
