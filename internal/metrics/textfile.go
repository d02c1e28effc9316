package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/kohljary/driftwatch/internal/model"
)

// Source is the persisted monitor state the textfile is rendered from.
type Source interface {
	SampleTotals(ctx context.Context) (map[model.ContextCategory]int, error)
	Samples(ctx context.Context) ([]model.Sample, error)
	Profiles(ctx context.Context) (map[model.ContextCategory]model.ContextProfile, error)
	Reports(ctx context.Context, limit int) ([]model.ConsistencyScore, error)
}

var (
	samplesTotalDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "samples_recorded_total"),
		"Behavioral samples ever recorded, by context.", []string{"context"}, nil)
	samplesRetainedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "samples_retained"),
		"Behavioral samples currently retained, by context.", []string{"context"}, nil)
	profilesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "profiles"),
		"Stored context profiles.", nil, nil)
	overallDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "consistency_overall_score"),
		"Overall cross-context consistency of the last analysis (0-1).", nil, nil)
	metricScoreDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "consistency_metric_score"),
		"Per-metric cross-context consistency of the last analysis (0-1).", []string{"metric"}, nil)
	anomaliesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "consistency_anomalies"),
		"Anomalies found by the last analysis.", nil, nil)
	divergencesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "consistency_divergent_pairs"),
		"Divergent context pairs found by the last analysis.", nil, nil)
	lastReportDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "consistency_last_report_timestamp_seconds"),
		"Unix time of the last analysis.", nil, nil)
)

// stateCollector reads src on every Collect. Unreadable collections are
// logged and left out.
type stateCollector struct {
	ctx context.Context
	src Source
}

func (c stateCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		samplesTotalDesc, samplesRetainedDesc, profilesDesc,
		overallDesc, metricScoreDesc, anomaliesDesc, divergencesDesc, lastReportDesc,
	} {
		ch <- d
	}
}

func (c stateCollector) Collect(ch chan<- prometheus.Metric) {
	if totals, err := c.src.SampleTotals(c.ctx); err != nil {
		log.Warn().Err(err).Msg("metrics: sample totals unreadable")
	} else {
		for cat, n := range totals {
			ch <- prometheus.MustNewConstMetric(samplesTotalDesc, prometheus.CounterValue, float64(n), string(cat))
		}
	}

	if samples, err := c.src.Samples(c.ctx); err != nil {
		log.Warn().Err(err).Msg("metrics: samples unreadable")
	} else {
		retained := map[model.ContextCategory]int{}
		for _, s := range samples {
			retained[s.Context]++
		}
		for cat, n := range retained {
			ch <- prometheus.MustNewConstMetric(samplesRetainedDesc, prometheus.GaugeValue, float64(n), string(cat))
		}
	}

	if profiles, err := c.src.Profiles(c.ctx); err != nil {
		log.Warn().Err(err).Msg("metrics: profiles unreadable")
	} else {
		ch <- prometheus.MustNewConstMetric(profilesDesc, prometheus.GaugeValue, float64(len(profiles)))
	}

	reports, err := c.src.Reports(c.ctx, 1)
	if err != nil {
		log.Warn().Err(err).Msg("metrics: reports unreadable")
		return
	}
	// No report yet: leave the score unset rather than publish 0.
	if len(reports) == 0 {
		return
	}
	r := reports[0]
	ch <- prometheus.MustNewConstMetric(overallDesc, prometheus.GaugeValue, r.OverallScore)
	for metric, v := range r.MetricConsistency {
		ch <- prometheus.MustNewConstMetric(metricScoreDesc, prometheus.GaugeValue, v, string(metric))
	}
	ch <- prometheus.MustNewConstMetric(anomaliesDesc, prometheus.GaugeValue, float64(len(r.Anomalies)))
	ch <- prometheus.MustNewConstMetric(divergencesDesc, prometheus.GaugeValue, float64(len(r.ContextDivergences)))
	if !r.Timestamp.IsZero() {
		ch <- prometheus.MustNewConstMetric(lastReportDesc, prometheus.GaugeValue, float64(r.Timestamp.UnixNano())/float64(time.Second))
	}
}

// WriteTextfile renders the persisted state of src in text exposition
// format. The write is atomic, as the textfile collector expects.
func WriteTextfile(ctx context.Context, path string, src Source) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(stateCollector{ctx: ctx, src: src}); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, reg)
}
