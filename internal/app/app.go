package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/admarket/clocksim/internal/auction"
	"github.com/admarket/clocksim/internal/scenario"
	"github.com/admarket/clocksim/internal/storage"
	"github.com/admarket/clocksim/pkg/cache"
	"github.com/admarket/clocksim/pkg/config"
	"github.com/admarket/clocksim/pkg/healthprobe"
	"github.com/admarket/clocksim/pkg/httpserver"
	"go.uber.org/zap"
)

// App orchestrates a simulation batch: it samples scenarios, runs the
// clock simulation and the VCG oracle on each, stores comparison reports
// and aggregates a batch summary.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	generator     *scenario.Generator
	simulator     *auction.Simulator
	oracle        *auction.Oracle
	resultCache   cache.Cache[*cachedResult]
	storage       storage.Storage
	completed     atomic.Int64
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// Options holds application options.
type Options struct {
	DisableHTTP bool // skip the metrics/health server (one-shot CLI runs, tests)
}

// Progress reports completed and total trials for the status endpoint.
func (a *App) Progress() (int, int) {
	return int(a.completed.Load()), a.cfg.SimTrials
}

// cachedResult is the cache payload for one instance fingerprint. Both
// computations are deterministic, so identical scenarios can reuse it.
type cachedResult struct {
	outcome *auction.Outcome
	pricing *auction.Pricing
}
