package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for the lead relay. All methods
// are nil-safe so callers without a registry can pass nil.
type IntakeMetrics struct {
	submissionsTotal *prometheus.CounterVec
	loftyLatency     prometheus.Histogram
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lead_relay",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Total lead submissions by outcome",
		}, []string{"outcome"}),
		loftyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lead_relay",
			Subsystem: "intake",
			Name:      "lofty_latency_seconds",
			Help:      "Latency of Lofty lead-creation calls",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.loftyLatency)
	return m
}

func (m *IntakeMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *IntakeMetrics) ObserveLoftyLatency(seconds float64) {
	if m == nil {
		return
	}
	m.loftyLatency.Observe(seconds)
}
