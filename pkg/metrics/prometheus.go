package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ladder"

// PrometheusMetrics implements GameMetrics and LadderMetrics for a single service label.
type PrometheusMetrics struct {
	service string

	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	votes     *prometheus.CounterVec
	points    *prometheus.HistogramVec
	ranks     *prometheus.CounterVec
}

// Collectors are shared between services so each registry registers them once.
type Collectors struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	votes     *prometheus.CounterVec
	points    *prometheus.HistogramVec
	ranks     *prometheus.CounterVec
}

// NewCollectors creates and registers the ladder collectors on reg.
func NewCollectors(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, []string{"service", "operation"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_success_total",
			Help:      "Service operations that completed successfully.",
		}, []string{"service", "operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Service operations that failed with an infrastructure error.",
		}, []string{"service", "operation"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "operation"}),
		votes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_total",
			Help:      "Votes cast, by outcome.",
		}, []string{"outcome"}),
		points: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "points_applied",
			Help:      "Absolute point deltas applied by settlements.",
			Buckets:   []float64{1, 5, 10, 20, 30, 50, 75, 100, 200},
		}, []string{"result"}),
		ranks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rank_changes_total",
			Help:      "Tier transitions reported by settlements.",
		}, []string{"change"}),
	}

	for _, col := range []prometheus.Collector{c.attempts, c.successes, c.failures, c.duration, c.votes, c.points, c.ranks} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// For returns the metrics view for one service.
func (c *Collectors) For(service string) *PrometheusMetrics {
	return &PrometheusMetrics{
		service:   service,
		attempts:  c.attempts,
		successes: c.successes,
		failures:  c.failures,
		duration:  c.duration,
		votes:     c.votes,
		points:    c.points,
		ranks:     c.ranks,
	}
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.attempts.WithLabelValues(m.service, operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.successes.WithLabelValues(m.service, operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.failures.WithLabelValues(m.service, operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.duration.WithLabelValues(m.service, operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordVoteCast(_ context.Context, outcome string) {
	m.votes.WithLabelValues(outcome).Inc()
}

func (m *PrometheusMetrics) RecordPointsApplied(_ context.Context, won bool, delta int) {
	if delta < 0 {
		delta = -delta
	}
	result := "loss"
	if won {
		result = "win"
	}
	m.points.WithLabelValues(result).Observe(float64(delta))
}

func (m *PrometheusMetrics) RecordRankChange(_ context.Context, change string) {
	m.ranks.WithLabelValues(change).Inc()
}

// String is used by log lines that print the metrics sink.
func (m *PrometheusMetrics) String() string {
	return "prometheus(" + strconv.Quote(m.service) + ")"
}

var (
	_ GameMetrics   = (*PrometheusMetrics)(nil)
	_ LadderMetrics = (*PrometheusMetrics)(nil)
)
