package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	Operations       *prometheus.CounterVec
	TransfersCreated prometheus.Counter
	TransferDuration prometheus.Histogram
	TransferAmount   prometheus.Histogram
	TransferErrors   *prometheus.CounterVec
	TransferRetries  *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Connection pool metrics
	PoolCheckouts *prometheus.CounterVec
	PoolWait      prometheus.Histogram
	PoolInUse     prometheus.Gauge
	PoolMaxSize   prometheus.Gauge

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwise_ledger_operations_total",
				Help: "Ledger operations by entity, operation and result",
			},
			[]string{"entity", "operation", "result"},
		),
		TransfersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "finwise_transfers_created_total",
			Help: "Total number of transfers committed",
		}),
		TransferDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "finwise_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "finwise_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwise_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),
		TransferRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwise_transfer_retries_total",
				Help: "Transfer attempts retried after a database conflict",
			},
			[]string{"reason"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwise_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finwise_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		PoolCheckouts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwise_db_pool_checkouts_total",
				Help: "Connection checkouts by outcome",
			},
			[]string{"outcome"},
		),
		PoolWait: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "finwise_db_pool_wait_seconds",
			Help:    "Time spent waiting for a connection",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}),
		PoolInUse: factory.NewGauge(prometheus.GaugeOpts{
			Name: "finwise_db_pool_in_use",
			Help: "Connections currently checked out",
		}),
		PoolMaxSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "finwise_db_pool_max_size",
			Help: "Configured maximum pool size",
		}),

		RedisOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwise_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwise_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),
	}
}

// ObserveCheckout records one pool checkout attempt.
func (m *Metrics) ObserveCheckout(outcome string, wait time.Duration) {
	m.PoolCheckouts.WithLabelValues(outcome).Inc()
	m.PoolWait.Observe(wait.Seconds())
}

// SetPoolInUse records the number of checked-out connections.
func (m *Metrics) SetPoolInUse(n int) {
	m.PoolInUse.Set(float64(n))
}

// RecordOperation counts a ledger operation. A nil receiver is a no-op so
// callers can run without metrics.
func (m *Metrics) RecordOperation(entity, operation string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Operations.WithLabelValues(entity, operation, result).Inc()
}

// RecordRedis counts one Redis round trip and its failure, if any.
func (m *Metrics) RecordRedis(operation string, err error) {
	if m == nil {
		return
	}
	m.RedisOperations.WithLabelValues(operation).Inc()
	if err != nil {
		m.RedisErrors.WithLabelValues(operation).Inc()
	}
}

// RecordRetry counts one retried transfer attempt.
func (m *Metrics) RecordRetry(reason string) {
	if m == nil {
		return
	}
	m.TransferRetries.WithLabelValues(reason).Inc()
}
