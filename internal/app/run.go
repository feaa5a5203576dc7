package app

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/admarket/clocksim/internal/report"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// resultCacheTTL bounds how long a deduplicated outcome stays cached
// within one batch.
const resultCacheTTL = time.Hour

type trialResult struct {
	trial    uint64
	report   *report.Report
	cacheHit bool
	err      error
}

// Summary aggregates one batch.
type Summary struct {
	Trials           int
	Failures         int
	CacheHits        int
	MeanClockRevenue float64
	StdClockRevenue  float64
	MeanVCGRevenue   float64
	StdVCGRevenue    float64
	MaxPriceDelta    float64
	PriceMatches     int
	AllocationMatch  int
}

// Run executes the configured number of trials across the worker pool and
// blocks until the batch completes or the process is signalled.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.httpServer != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()

			err := a.httpServer.Start()
			if err != nil {
				a.logger.Error("http-server-error", zap.Error(err))
			}
		}()
	}

	a.healthChecker.SetReady(true)

	a.logger.Info("batch-starting",
		zap.Int("trials", a.cfg.SimTrials),
		zap.Int("workers", a.cfg.SimWorkers),
		zap.Int("slots", a.cfg.SimSlots),
		zap.Int("advertisers", a.cfg.SimAdvertisers),
		zap.Uint64("seed", a.cfg.SimSeed),
		zap.String("value-dist", a.cfg.SimValueDist))

	start := time.Now()

	trials := make(chan uint64)
	results := make(chan trialResult, a.cfg.SimWorkers)

	var workers sync.WaitGroup
	for w := 0; w < a.cfg.SimWorkers; w++ {
		workers.Add(1)
		go a.trialWorker(ctx, &workers, trials, results)
	}

	go func() {
		defer close(trials)
		for trial := uint64(0); trial < uint64(a.cfg.SimTrials); trial++ {
			select {
			case trials <- trial:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		workers.Wait()
		close(results)
	}()

	summary := a.collect(results)

	BatchDurationSeconds.Observe(time.Since(start).Seconds())
	a.logSummary(summary)

	err := a.Shutdown()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func (a *App) trialWorker(ctx context.Context, workers *sync.WaitGroup, trials <-chan uint64, results chan<- trialResult) {
	defer workers.Done()

	for trial := range trials {
		res := a.runTrial(ctx, trial)

		select {
		case results <- res:
		case <-ctx.Done():
			return
		}
	}
}

// runTrial samples one scenario, computes (or reuses) both mechanism
// outcomes and stores the comparison report.
func (a *App) runTrial(ctx context.Context, trial uint64) trialResult {
	in, err := a.generator.Sample(trial)
	if err != nil {
		return trialResult{trial: trial, err: fmt.Errorf("sample: %w", err)}
	}

	fingerprint := in.Fingerprint()

	var result *cachedResult
	cacheHit := false

	if v, ok := a.resultCache.Get(fingerprint); ok {
		result = v
		cacheHit = true
	} else {
		outcome, err := a.simulator.Run(in)
		if err != nil {
			return trialResult{trial: trial, err: fmt.Errorf("simulate: %w", err)}
		}

		pricing, err := a.oracle.Compute(in)
		if err != nil {
			return trialResult{trial: trial, err: fmt.Errorf("vcg: %w", err)}
		}

		result = &cachedResult{outcome: outcome, pricing: pricing}
		a.resultCache.Set(fingerprint, result, resultCacheTTL)
	}

	rep := report.Build(trial, in, result.outcome, result.pricing)

	err = a.storage.StoreReport(ctx, rep)
	if err != nil {
		return trialResult{trial: trial, err: fmt.Errorf("store report: %w", err)}
	}

	return trialResult{trial: trial, report: rep, cacheHit: cacheHit}
}

func (a *App) collect(results <-chan trialResult) *Summary {
	summary := &Summary{}

	var clockRevenues, vcgRevenues []float64

	for res := range results {
		summary.Trials++
		a.completed.Add(1)

		if res.err != nil {
			summary.Failures++
			TrialFailuresTotal.Inc()
			a.logger.Error("trial-failed",
				zap.Uint64("trial", res.trial),
				zap.Error(res.err))
			continue
		}

		TrialsCompletedTotal.Inc()

		if res.cacheHit {
			summary.CacheHits++
		}

		rep := res.report
		clockRevenues = append(clockRevenues, rep.ClockRevenue)
		vcgRevenues = append(vcgRevenues, rep.VCGRevenue)

		if rep.PriceMatch {
			summary.PriceMatches++
		} else {
			EquivalenceMismatchesTotal.Inc()
		}

		if rep.AllocationMatch {
			summary.AllocationMatch++
		}

		for _, slot := range rep.Slots {
			delta := math.Abs(slot.ClockPrice - slot.VCGPrice)
			if delta > summary.MaxPriceDelta {
				summary.MaxPriceDelta = delta
			}
		}
	}

	if len(clockRevenues) > 0 {
		summary.MeanClockRevenue = stat.Mean(clockRevenues, nil)
		summary.MeanVCGRevenue = stat.Mean(vcgRevenues, nil)
	}
	if len(clockRevenues) > 1 {
		summary.StdClockRevenue = stat.StdDev(clockRevenues, nil)
		summary.StdVCGRevenue = stat.StdDev(vcgRevenues, nil)
	}

	return summary
}

func (a *App) logSummary(s *Summary) {
	a.logger.Info("batch-complete",
		zap.Int("trials", s.Trials),
		zap.Int("failures", s.Failures),
		zap.Int("cache-hits", s.CacheHits),
		zap.Float64("mean-clock-revenue", s.MeanClockRevenue),
		zap.Float64("std-clock-revenue", s.StdClockRevenue),
		zap.Float64("mean-vcg-revenue", s.MeanVCGRevenue),
		zap.Float64("std-vcg-revenue", s.StdVCGRevenue),
		zap.Float64("max-price-delta", s.MaxPriceDelta),
		zap.Int("price-matches", s.PriceMatches),
		zap.Int("allocation-matches", s.AllocationMatch))
}
