package app

import (
	metricsPkg "github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "cosmos"

// Metrics contains metrics exposed by the transaction pipeline.
type Metrics struct {
	// Transactions refused by the ante handler, by step
	AnteRejected metricsPkg.Counter
	// Executed messages, by type URL and result
	Msgs metricsPkg.Counter
	// Gas used per transaction
	TxGasUsed metricsPkg.Histogram
}

// PrometheusMetrics returns Metrics build using Prometheus client library.
// It registers with the default registry and may only be called once.
func PrometheusMetrics() *Metrics {
	return &Metrics{
		AnteRejected: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ante_rejected_total",
			Help:      "Transactions rejected by the ante handler",
		}, []string{"step"}),
		Msgs: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "msgs_total",
			Help:      "Messages dispatched to a handler",
		}, []string{"type", "result"}),
		TxGasUsed: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "tx_gas_used",
			Help:      "Gas used by a transaction",
			Buckets:   stdprometheus.ExponentialBuckets(1000, 4, 10),
		}, []string{}),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		AnteRejected: discard.NewCounter(),
		Msgs:         discard.NewCounter(),
		TxGasUsed:    discard.NewHistogram(),
	}
}
