package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/tmc-evolve/evolve"
)

const metricNamespace = "tmc"

// Metrics exposes run progress as prometheus collectors labelled by run id
type Metrics struct {
	registry *prometheus.Registry

	iterations *prometheus.CounterVec
	proposed   *prometheus.CounterVec
	matched    *prometheus.CounterVec
	noMatch    *prometheus.CounterVec
	best       *prometheus.GaugeVec
	population *prometheus.GaugeVec
}

// NewMetrics registers the collectors on a private registry
func NewMetrics() *Metrics {
	labels := []string{"run_id"}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "iterations_total",
			Help:      "Completed optimization iterations.",
		}, labels),
		proposed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "proposed_total",
			Help:      "Complexes proposed by the generator.",
		}, labels),
		matched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "matched_total",
			Help:      "Proposed complexes found in the search space.",
		}, labels),
		noMatch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "no_match_total",
			Help:      "Iterations where no proposal was found.",
		}, labels),
		best: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "best_score",
			Help:      "Best objective score in the current population.",
		}, labels),
		population: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "population_size",
			Help:      "Rows in the current population.",
		}, labels),
	}

	m.registry.MustRegister(m.iterations, m.proposed, m.matched, m.noMatch, m.best, m.population)
	return m
}

// Observe implements evolve.Observer
func (m *Metrics) Observe(ev evolve.Event) {
	run := prometheus.Labels{"run_id": ev.RunID}

	if ev.Iteration > 0 {
		m.iterations.With(run).Inc()
		m.proposed.With(run).Add(float64(len(ev.Proposed)))
		m.matched.With(run).Add(float64(len(ev.Matched)))
		if ev.NoMatch {
			m.noMatch.With(run).Inc()
		}
	}
	if ev.Stats.Count > 0 {
		m.best.With(run).Set(ev.Stats.Best)
	}
	m.population.With(run).Set(float64(len(ev.Current)))
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

var _ evolve.Observer = (*Metrics)(nil)
