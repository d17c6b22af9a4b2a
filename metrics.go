package reliefhub

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsFetchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reliefhub_client",
			Name:      "requests_fetched_total",
			Help:      "Request records accepted from list snapshots.",
		},
	)

	recordsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reliefhub_client",
			Name:      "records_dropped_total",
			Help:      "Malformed records dropped during snapshot normalization.",
		},
	)
)
