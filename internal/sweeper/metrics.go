package sweeper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sweepsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reliefhub_client",
			Name:      "sweeps_total",
			Help:      "Completed liveness sweeps over the ownership ledger.",
		},
	)

	sweepChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reliefhub_client",
			Name:      "sweep_checks_total",
			Help:      "Per-record sweep outcomes.",
		},
		[]string{"outcome"},
	)
)
