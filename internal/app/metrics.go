package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TrialsCompletedTotal tracks successfully completed trials.
	TrialsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clocksim_trials_completed_total",
		Help: "Total number of simulation trials completed",
	})

	// TrialFailuresTotal tracks trials that errored.
	TrialFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clocksim_trial_failures_total",
		Help: "Total number of simulation trials that failed",
	})

	// BatchDurationSeconds tracks wall time per batch.
	BatchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "clocksim_batch_duration_seconds",
		Help:    "Duration of one simulation batch",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})

	// EquivalenceMismatchesTotal tracks reports where the clock prices
	// diverged from VCG beyond tolerance.
	EquivalenceMismatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clocksim_equivalence_mismatches_total",
		Help: "Total number of reports where clock and VCG prices diverged",
	})
)
