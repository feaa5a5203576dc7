package scenario

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ScenariosSampledTotal tracks generated auction instances.
var ScenariosSampledTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "clocksim_scenarios_sampled_total",
	Help: "Total number of random auction instances sampled",
})
