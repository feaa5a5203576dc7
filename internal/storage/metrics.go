package storage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ReportsStoredTotal tracks stored reports by sink.
var ReportsStoredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "clocksim_reports_stored_total",
		Help: "Total number of comparison reports stored",
	},
	[]string{"sink"},
)
