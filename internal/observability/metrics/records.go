package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "usage_records_created_total",
			Help: "Total number of usage records stored",
		},
	)

	RecordsLoaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "usage_records_loaded_total",
			Help: "Total number of usage records loaded with their output",
		},
	)

	RecordsExpired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "usage_records_expired_total",
			Help: "Total number of usage records removed by the retention sweep",
		},
		[]string{"trigger"},
	)

	FlushRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "usage_records_flush_rejected_total",
			Help: "Total number of flush requests rejected for a wrong secret",
		},
	)

	RetentionSweepRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "usage_records_retention_runs_total",
			Help: "Total number of scheduled retention sweeps by result",
		},
		[]string{"result"},
	)
)
