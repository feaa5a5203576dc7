package auction

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuctionsSimulatedTotal tracks completed English-clock runs.
	AuctionsSimulatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clocksim_auctions_simulated_total",
		Help: "Total number of English-clock auction simulations completed",
	})

	// EliminationRounds tracks rounds per run (always advertisers-1).
	EliminationRounds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "clocksim_elimination_rounds",
		Help:    "Elimination rounds per auction run",
		Buckets: prometheus.LinearBuckets(1, 2, 10), // 1, 3, 5, ..., 19
	})

	// SimulationDurationSeconds tracks English-clock run latency.
	SimulationDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "clocksim_simulation_duration_seconds",
		Help:    "Duration of one English-clock auction run",
		Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
	})

	// VCGComputationsTotal tracks completed VCG pricing computations.
	VCGComputationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clocksim_vcg_computations_total",
		Help: "Total number of VCG pricing computations completed",
	})

	// InstancesRejectedTotal tracks instances that failed validation.
	InstancesRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clocksim_instances_rejected_total",
			Help: "Total number of auction instances rejected by validation",
		},
		[]string{"reason"},
	)
)
