package hooks

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Skryldev/grayscale/core"
)

// PrometheusMetrics exports pipeline metrics through prometheus/client_golang.
type PrometheusMetrics struct {
	stepDuration *prometheus.HistogramVec
	stepErrors   *prometheus.CounterVec
	outcomes     *prometheus.CounterVec
	bytes        prometheus.Counter
}

// NewPrometheusMetrics creates the collectors under namespace and registers
// them with reg. Use prometheus.DefaultRegisterer to expose them through
// promhttp.Handler().
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Duration of each pipeline step.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"step"}),
		stepErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "step_errors_total",
			Help:      "Pipeline step failures by step and error category.",
		}, []string{"step", "category"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invocations_total",
			Help:      "Finished invocations by outcome.",
		}, []string{"outcome"}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "step_output_bytes_total",
			Help:      "Encoded bytes produced or loaded by pipeline steps.",
		}),
	}
	for _, c := range []prometheus.Collector{m.stepDuration, m.stepErrors, m.outcomes, m.bytes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) RecordProcessingTime(stepName string, d interface{ Seconds() float64 }) {
	m.stepDuration.WithLabelValues(stepName).Observe(d.Seconds())
}

func (m *PrometheusMetrics) RecordThroughput(bytes int64) {
	m.bytes.Add(float64(bytes))
}

func (m *PrometheusMetrics) RecordError(stepName string, category string) {
	m.stepErrors.WithLabelValues(stepName, category).Inc()
}

func (m *PrometheusMetrics) RecordOutcome(outcome string) {
	m.outcomes.WithLabelValues(outcome).Inc()
}

var (
	_ core.MetricsCollector = (*PrometheusMetrics)(nil)
	_ core.MetricsCollector = (*InMemoryMetrics)(nil)
)
