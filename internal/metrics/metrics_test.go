package metrics

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kohljary/driftwatch/internal/model"
	"github.com/kohljary/driftwatch/internal/store"
)

func TestObserve(t *testing.T) {
	m := New()
	m.ObserveSample(model.ContextTechnical)
	m.ObserveSample(model.ContextTechnical)
	m.ObserveClassification(model.ContextClassification{PrimaryContext: model.ContextUnknown})
	m.ObserveReport(model.ConsistencyScore{
		OverallScore:      0.75,
		MetricConsistency: map[model.Metric]float64{model.MetricHedgingRate: 0.3},
		Anomalies:         []model.Anomaly{{}, {}},
		ProfilesAnalyzed:  4,
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SamplesRecorded.WithLabelValues("technical")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Classifications.WithLabelValues("unknown")))
	assert.Equal(t, 0.75, testutil.ToFloat64(m.OverallScore))
	assert.Equal(t, 0.3, testutil.ToFloat64(m.MetricScore.WithLabelValues("hedging_rate")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Anomalies))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Profiles))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveSample(model.ContextCasual)
	m.ObserveClassification(model.ContextClassification{})
	m.ObserveReport(model.ConsistencyScore{})
}

func TestWriteTextfile_RendersStoredState(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore(store.Limits{Samples: 2})
	path := filepath.Join(t.TempDir(), "driftwatch.prom")

	for i := 0; i < 3; i++ {
		require.NoError(t, s.AppendSample(ctx, model.Sample{Context: model.ContextTechnical}))
	}
	require.NoError(t, WriteTextfile(ctx, path, s))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `driftwatch_samples_recorded_total{context="technical"} 3`)
	assert.Contains(t, text, `driftwatch_samples_retained{context="technical"} 2`)
	assert.Contains(t, text, "driftwatch_profiles 0")
	assert.NotContains(t, text, "driftwatch_consistency_overall_score")

	require.NoError(t, s.AppendReport(ctx, model.ConsistencyScore{
		OverallScore:      0.5,
		MetricConsistency: map[model.Metric]float64{model.MetricHedgingRate: 0.25},
		Timestamp:         time.Unix(1700000000, 0),
	}))
	require.NoError(t, WriteTextfile(ctx, path, s))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	text = string(data)
	assert.Contains(t, text, "driftwatch_consistency_overall_score 0.5")
	assert.Contains(t, text, `driftwatch_consistency_metric_score{metric="hedging_rate"} 0.25`)
	assert.Contains(t, text, "driftwatch_consistency_last_report_timestamp_seconds")
	assert.True(t, strings.HasSuffix(text, "\n"))
}
