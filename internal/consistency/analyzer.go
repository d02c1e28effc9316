// Package consistency compares context profiles to score how consistently
// the agent behaves across contexts.
package consistency

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/kohljary/driftwatch/internal/model"
	"github.com/kohljary/driftwatch/internal/profile"
	"github.com/kohljary/driftwatch/internal/store"
)

// Thresholds are the cutoffs used by the analysis. None of them is
// statistically calibrated; they are tunable.
type Thresholds struct {
	// Consistency below which a metric counts as inconsistent.
	Consistency float64
	// Relative deviation from the cross-context mean that makes an anomaly.
	Deviation float64
	// Relative pairwise difference that makes a divergence.
	Divergence float64
}

// DefaultThresholds returns the standard cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{Consistency: 0.5, Deviation: 0.5, Divergence: 0.4}
}

const minProfiles = 2

// Analyzer scores cross-context consistency over the stored profiles.
type Analyzer struct {
	store      store.Store
	thresholds Thresholds
	now        func() time.Time
}

// NewAnalyzer creates an Analyzer reading profiles from and writing reports to s.
func NewAnalyzer(s store.Store, th Thresholds) *Analyzer {
	return &Analyzer{store: s, thresholds: th, now: time.Now}
}

// SetClock overrides the time source.
func (a *Analyzer) SetClock(now func() time.Time) { a.now = now }

// Analyze scores the current profiles and appends the report to history.
// Unreadable profiles are treated as absent.
func (a *Analyzer) Analyze(ctx context.Context) (model.ConsistencyScore, error) {
	stored, err := a.store.Profiles(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("profiles unreadable, analyzing as empty")
		stored = nil
	}
	profiles := make([]model.ContextProfile, 0, len(stored))
	for _, p := range stored {
		profiles = append(profiles, p)
	}

	report := Evaluate(profiles, a.thresholds)
	report.ID = ulid.Make().String()
	report.Timestamp = a.now().UTC()

	log.Debug().
		Int("profiles", report.ProfilesAnalyzed).
		Float64("overall", report.OverallScore).
		Int("anomalies", len(report.Anomalies)).
		Int("divergences", len(report.ContextDivergences)).
		Msg("consistency analyzed")

	if err := a.store.AppendReport(ctx, report); err != nil {
		return report, fmt.Errorf("append report: %w", err)
	}
	return report, nil
}

// Evaluate computes a report over profiles. It is deterministic: profile
// order in the input does not matter. ID and Timestamp are left unset.
func Evaluate(profiles []model.ContextProfile, th Thresholds) model.ConsistencyScore {
	sorted := make([]model.ContextProfile, len(profiles))
	copy(sorted, profiles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Context.Index() < sorted[j].Context.Index()
	})

	if len(sorted) < minProfiles {
		return insufficient(len(sorted))
	}

	report := model.ConsistencyScore{
		MetricConsistency:  map[model.Metric]float64{},
		Anomalies:          []model.Anomaly{},
		ContextDivergences: []model.ContextDivergence{},
		ProfilesAnalyzed:   len(sorted),
	}

	var inconsistent []model.Metric
	for _, metric := range model.ConsistencyMetrics {
		vals := means(sorted, metric)
		score := clamp01(1 - coefficientOfVariation(vals))
		report.MetricConsistency[metric] = score
		if score < th.Consistency {
			inconsistent = append(inconsistent, metric)
		}
	}

	for _, metric := range inconsistent {
		report.Anomalies = append(report.Anomalies, anomalies(sorted, metric, th.Deviation)...)
	}
	report.ContextDivergences = divergences(sorted, th.Divergence)

	overall := 1.0
	if len(report.MetricConsistency) > 0 {
		sum := 0.0
		for _, metric := range model.ConsistencyMetrics {
			sum += report.MetricConsistency[metric]
		}
		overall = sum / float64(len(report.MetricConsistency))
	}
	report.OverallScore = clamp01(overall)
	report.Assessment = assess(report.OverallScore)
	report.ResearchQuestions = researchQuestions(report, th)
	return report
}

func insufficient(n int) model.ConsistencyScore {
	return model.ConsistencyScore{
		OverallScore:       1.0,
		MetricConsistency:  map[model.Metric]float64{},
		Anomalies:          []model.Anomaly{},
		ContextDivergences: []model.ContextDivergence{},
		ResearchQuestions: []string{
			fmt.Sprintf("Need more samples across different contexts to analyze consistency (%d of %d context profiles available).", n, minProfiles),
		},
		Assessment:       "Insufficient data: at least two context profiles are needed.",
		ProfilesAnalyzed: n,
	}
}

func means(profiles []model.ContextProfile, metric model.Metric) []float64 {
	out := make([]float64, len(profiles))
	for i, p := range profiles {
		out[i] = p.Mean(metric)
	}
	return out
}

// coefficientOfVariation is stddev/mean, 0 when the mean is 0.
func coefficientOfVariation(vals []float64) float64 {
	mean := profile.Mean(vals)
	if mean == 0 {
		return 0
	}
	return profile.StdDev(vals) / math.Abs(mean)
}

func anomalies(profiles []model.ContextProfile, metric model.Metric, threshold float64) []model.Anomaly {
	mean := profile.Mean(means(profiles, metric))
	if mean == 0 {
		return nil
	}
	var out []model.Anomaly
	for _, p := range profiles {
		v := p.Mean(metric)
		dev := math.Abs(v-mean) / math.Abs(mean)
		if dev > threshold {
			out = append(out, model.Anomaly{
				Context:          p.Context,
				Metric:           metric,
				Value:            v,
				Mean:             mean,
				DeviationPercent: dev * 100,
			})
		}
	}
	return out
}

func divergences(profiles []model.ContextProfile, threshold float64) []model.ContextDivergence {
	out := []model.ContextDivergence{}
	for i := 0; i < len(profiles); i++ {
		for j := i + 1; j < len(profiles); j++ {
			a, b := profiles[i], profiles[j]
			var diverging []model.DivergentMetric
			for _, metric := range model.ConsistencyMetrics {
				va, vb := a.Mean(metric), b.Mean(metric)
				denom := math.Max(math.Abs(va), math.Abs(vb))
				if denom == 0 {
					continue
				}
				rel := math.Abs(va-vb) / denom
				if rel > threshold {
					diverging = append(diverging, model.DivergentMetric{
						Metric:             metric,
						ValueA:             va,
						ValueB:             vb,
						RelativeDifference: rel,
					})
				}
			}
			if len(diverging) > 0 {
				out = append(out, model.ContextDivergence{
					ContextPair:      [2]model.ContextCategory{a.Context, b.Context},
					DivergentMetrics: diverging,
				})
			}
		}
	}
	return out
}

func assess(score float64) string {
	switch {
	case score > 0.8:
		return "High consistency: behavioral markers are stable across contexts."
	case score > 0.6:
		return "Moderate consistency: some context-specific variation, possibly natural adaptation to context."
	case score > 0.4:
		return "Notable inconsistencies: behavior differs meaningfully between contexts and merits investigation."
	default:
		return "Significant inconsistency: behavior varies sharply across contexts; possible drift or an emerging failure mode."
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
