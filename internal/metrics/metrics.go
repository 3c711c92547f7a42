// Package metrics counts classifier outcomes for batch runs and exports them
// in the Prometheus text format.
package metrics

import (
	"unicode/utf8"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/crimson-sun/intake/internal/model"
)

const namespace = "intake"

// Metrics holds the collectors for one process. Each instance owns its own
// registry so tests and embedded callers do not collide on the global one.
type Metrics struct {
	registry   *prom.Registry
	drafts     *prom.CounterVec
	failures   *prom.CounterVec
	inputRunes prom.Histogram
}

// New creates and registers the intake collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prom.NewRegistry(),
		drafts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "drafts_total",
			Help:      "Drafts produced, by suggested priority.",
		}, []string{"priority"}),
		failures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Requests that produced no draft, by error kind.",
		}, []string{"kind"}),
		inputRunes: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "input_runes",
			Help:      "Length of raw request text in runes.",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2000},
		}),
	}
	m.registry.MustRegister(m.drafts, m.failures, m.inputRunes)
	// Pre-create the priority series so every level is exported, even at zero.
	for _, p := range model.Priorities {
		m.drafts.WithLabelValues(p.String())
	}
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prom.Registry {
	return m.registry
}

// ObserveInput records the size of one raw request.
func (m *Metrics) ObserveInput(raw string) {
	m.inputRunes.Observe(float64(utf8.RuneCountInString(raw)))
}

// ObserveDraft counts a successful classification.
func (m *Metrics) ObserveDraft(p model.Priority) {
	m.drafts.WithLabelValues(p.String()).Inc()
}

// ObserveFailure counts a request that failed with the given error kind.
func (m *Metrics) ObserveFailure(kind string) {
	m.failures.WithLabelValues(kind).Inc()
}

// WriteTextfile writes the current values to path in the node_exporter
// textfile-collector format. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, m.registry)
}
