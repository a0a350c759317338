package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "player_wallet"

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	transactionsTotal *prometheus.CounterVec
	replaysTotal      prometheus.Counter
	conflictsTotal    prometheus.Counter
	httpDuration      *prometheus.HistogramVec
}

// New registers all collectors on the given registerer. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in
// tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		transactionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "transactions_total",
				Help:      "Terminal transaction outcomes partitioned by type and outcome kind.",
			},
			[]string{"type", "outcome"},
		),
		replaysTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "replays_total",
				Help:      "Requests answered from the transaction log instead of re-execution.",
			},
		),
		conflictsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "conflicts_total",
				Help:      "Aborted attempts due to version conflicts or uniqueness race losses.",
			},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency partitioned by method, route and status.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// ObserveTransaction counts one terminal outcome.
func (m *Metrics) ObserveTransaction(txType, outcome string) {
	m.transactionsTotal.WithLabelValues(txType, outcome).Inc()
}

// ObserveReplay counts one idempotent replay.
func (m *Metrics) ObserveReplay() {
	m.replaysTotal.Inc()
}

// ObserveConflict counts one aborted attempt.
func (m *Metrics) ObserveConflict() {
	m.conflictsTotal.Inc()
}

// ObserveHTTPRequest records one request's latency.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
