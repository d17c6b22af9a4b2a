package poller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reliefhub_client",
			Name:      "poll_cycles_total",
			Help:      "Fetch/merge cycles by outcome.",
		},
		[]string{"outcome"},
	)

	snapshotSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "reliefhub_client",
			Name:      "snapshot_requests",
			Help:      "Requests currently held in the local snapshot set.",
		},
	)
)
