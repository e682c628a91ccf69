package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type ConversionMetrics struct {
	attempts         *prometheus.CounterVec
	pointsConverted  prometheus.Counter
	issuanceDuration prometheus.Histogram
}

var (
	conversionsOnce     sync.Once
	conversionsRegistry *ConversionMetrics
)

func Conversions() *ConversionMetrics {
	conversionsOnce.Do(func() {
		conversionsRegistry = &ConversionMetrics{
			attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "flowpoints_conversion_attempts_total",
				Help: "Count of conversion attempts by outcome.",
			}, []string{"outcome"}),
			pointsConverted: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "flowpoints_points_converted_total",
				Help: "Total loyalty points debited by committed conversions.",
			}),
			issuanceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "flowpoints_issuance_duration_seconds",
				Help:    "Latency of token issuance gateway calls.",
				Buckets: prometheus.DefBuckets,
			}),
		}
		prometheus.MustRegister(
			conversionsRegistry.attempts,
			conversionsRegistry.pointsConverted,
			conversionsRegistry.issuanceDuration,
		)
	})
	return conversionsRegistry
}

func (m *ConversionMetrics) ObserveAttempt(outcome string) {
	if m == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.attempts.WithLabelValues(outcome).Inc()
}

func (m *ConversionMetrics) ObserveCommitted(points int64) {
	if m == nil {
		return
	}
	m.pointsConverted.Add(float64(points))
}

func (m *ConversionMetrics) ObserveIssuanceDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.issuanceDuration.Observe(d.Seconds())
}
