// Package metrics exposes monitor activity as Prometheus collectors. There
// is no HTTP listener. Metrics holds live collectors for a long-running
// Monitor; WriteTextfile renders the persisted state for the node-exporter
// textfile collector, so short-lived processes never publish partial values.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kohljary/driftwatch/internal/model"
)

const namespace = "driftwatch"

// Metrics holds the monitor's collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	SamplesRecorded *prometheus.CounterVec
	Classifications *prometheus.CounterVec
	Profiles        prometheus.Gauge
	OverallScore    prometheus.Gauge
	MetricScore     *prometheus.GaugeVec
	Anomalies       prometheus.Gauge
	Divergences     prometheus.Gauge
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		SamplesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_recorded_total",
			Help:      "Behavioral samples recorded, by context.",
		}, []string{"context"}),
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Exchanges classified, by primary context.",
		}, []string{"context"}),
		Profiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "profiles",
			Help:      "Context profiles in the last analysis.",
		}),
		OverallScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "consistency_overall_score",
			Help:      "Overall cross-context consistency of the last analysis (0-1).",
		}),
		MetricScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "consistency_metric_score",
			Help:      "Per-metric cross-context consistency of the last analysis (0-1).",
		}, []string{"metric"}),
		Anomalies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "consistency_anomalies",
			Help:      "Anomalies found by the last analysis.",
		}),
		Divergences: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "consistency_divergent_pairs",
			Help:      "Divergent context pairs found by the last analysis.",
		}),
	}
	m.Registry.MustRegister(
		m.SamplesRecorded,
		m.Classifications,
		m.Profiles,
		m.OverallScore,
		m.MetricScore,
		m.Anomalies,
		m.Divergences,
	)
	return m
}

// ObserveClassification counts a classification.
func (m *Metrics) ObserveClassification(c model.ContextClassification) {
	if m == nil {
		return
	}
	m.Classifications.WithLabelValues(string(c.PrimaryContext)).Inc()
}

// ObserveSample counts a recorded sample.
func (m *Metrics) ObserveSample(c model.ContextCategory) {
	if m == nil {
		return
	}
	m.SamplesRecorded.WithLabelValues(string(c)).Inc()
}

// ObserveReport sets the gauges from a consistency report.
func (m *Metrics) ObserveReport(r model.ConsistencyScore) {
	if m == nil {
		return
	}
	m.Profiles.Set(float64(r.ProfilesAnalyzed))
	m.OverallScore.Set(r.OverallScore)
	m.MetricScore.Reset()
	for metric, v := range r.MetricConsistency {
		m.MetricScore.WithLabelValues(string(metric)).Set(v)
	}
	m.Anomalies.Set(float64(len(r.Anomalies)))
	m.Divergences.Set(float64(len(r.ContextDivergences)))
}
