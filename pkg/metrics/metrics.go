package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all analyzer metrics.
type Metrics struct {
	AnalysesTotal     *prometheus.CounterVec
	ViolationsTotal   *prometheus.CounterVec
	AnalyzeDuration   prometheus.Histogram
	PwnedLookupErrors prometheus.Counter
}

// New creates and registers all analyzer metrics on the given registerer.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AnalysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total number of password analyses, by compliance outcome",
		}, []string{"compliant"}),
		ViolationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "violations_total",
			Help:      "Total number of policy violations emitted, by code",
		}, []string{"code"}),
		AnalyzeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analyze_duration_seconds",
			Help:      "Time spent evaluating a password against the policy",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		PwnedLookupErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pwned_lookup_errors_total",
			Help:      "Total number of failed breach-lookup calls",
		}),
	}
}

// ObserveAnalysis records the outcome of one analyze call.
func (m *Metrics) ObserveAnalysis(compliant bool, codes []string, seconds float64) {
	outcome := "false"
	if compliant {
		outcome = "true"
	}
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
	m.AnalyzeDuration.Observe(seconds)
	for _, code := range codes {
		m.ViolationsTotal.WithLabelValues(code).Inc()
	}
}
