package app

import (
	"context"
	"fmt"

	"github.com/admarket/clocksim/internal/auction"
	"github.com/admarket/clocksim/internal/scenario"
	"github.com/admarket/clocksim/internal/storage"
	"github.com/admarket/clocksim/pkg/cache"
	"github.com/admarket/clocksim/pkg/config"
	"github.com/admarket/clocksim/pkg/healthprobe"
	"github.com/admarket/clocksim/pkg/httpserver"
	"go.uber.org/zap"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger, opts *Options) (*App, error) {
	if opts == nil {
		opts = &Options{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	healthChecker := setupHealthChecker()

	resultCache, err := setupCache(logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	generator, err := setupGenerator(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup generator: %w", err)
	}

	reportStorage, err := setupStorage(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	a := &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		generator:     generator,
		simulator:     auction.NewSimulator(logger),
		oracle:        auction.NewOracle(logger),
		resultCache:   resultCache,
		storage:       reportStorage,
		ctx:           ctx,
		cancel:        cancel,
	}

	if !opts.DisableHTTP {
		a.httpServer = setupHTTPServer(cfg, logger, healthChecker, a)
	}

	return a, nil
}

func setupHealthChecker() *healthprobe.HealthChecker {
	return healthprobe.New()
}

func setupHTTPServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
	progress httpserver.ProgressReporter,
) *httpserver.Server {
	return httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: healthChecker,
		Progress:      progress,
	})
}

func setupCache(logger *zap.Logger) (cache.Cache[*cachedResult], error) {
	return cache.NewRistrettoCache[*cachedResult](&cache.RistrettoConfig{
		NumCounters: 10000, // 10x expected max items
		MaxCost:     1000,  // Maximum 1000 cached results
		BufferItems: 64,    // Buffer size for Get operations
		Logger:      logger,
	})
}

func setupGenerator(cfg *config.Config, logger *zap.Logger) (*scenario.Generator, error) {
	return scenario.New(scenario.Config{
		NumSlots:       cfg.SimSlots,
		NumAdvertisers: cfg.SimAdvertisers,
		ValueDist:      scenario.Distribution(cfg.SimValueDist),
		GammaShape:     cfg.SimGammaShape,
		GammaScale:     cfg.SimGammaScale,
		UniformLo:      cfg.SimUniformLo,
		UniformHi:      cfg.SimUniformHi,
		NormalMean:     cfg.SimNormalMean,
		NormalStd:      cfg.SimNormalStdDev,
		Seed:           cfg.SimSeed,
		Logger:         logger,
	})
}

func setupStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	switch cfg.StorageMode {
	case "csv":
		csvStorage, err := storage.NewCSVStorage(cfg.OutputPath, logger)
		if err != nil {
			return nil, fmt.Errorf("create csv storage: %w", err)
		}
		return csvStorage, nil
	case "jsonl":
		jsonlStorage, err := storage.NewJSONLStorage(cfg.OutputPath, logger)
		if err != nil {
			return nil, fmt.Errorf("create jsonl storage: %w", err)
		}
		return jsonlStorage, nil
	default:
		return storage.NewConsoleStorage(logger), nil
	}
}
