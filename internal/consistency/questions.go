package consistency

import (
	"fmt"
	"sort"

	"github.com/kohljary/driftwatch/internal/model"
)

const (
	maxQuestions         = 5
	maxAnomalyQuestions  = 3
	maxDivergeQuestions  = 2
	maxMetricQuestions   = 2
	dramaticDeviationPct = 75
	metricsNamedPerPair  = 2
)

// researchQuestions turns the findings of r into at most five questions,
// anomalies first, then divergent pairs, then inconsistent metrics.
func researchQuestions(r model.ConsistencyScore, th Thresholds) []string {
	questions := []string{}
	covered := map[model.Metric]bool{}

	anomalies := make([]model.Anomaly, len(r.Anomalies))
	copy(anomalies, r.Anomalies)
	sort.SliceStable(anomalies, func(i, j int) bool {
		return anomalies[i].DeviationPercent > anomalies[j].DeviationPercent
	})
	for i, a := range anomalies {
		if i == maxAnomalyQuestions {
			break
		}
		covered[a.Metric] = true
		if a.DeviationPercent > dramaticDeviationPct {
			questions = append(questions, fmt.Sprintf(
				"Why does my %s in %s contexts differ so dramatically (%.0f%% from my cross-context average)?",
				a.Metric.Label(), a.Context, a.DeviationPercent))
		} else {
			questions = append(questions, fmt.Sprintf(
				"What drives the %.0f%% shift in my %s during %s conversations?",
				a.DeviationPercent, a.Metric.Label(), a.Context))
		}
	}

	divs := make([]model.ContextDivergence, len(r.ContextDivergences))
	copy(divs, r.ContextDivergences)
	sort.SliceStable(divs, func(i, j int) bool {
		return len(divs[i].DivergentMetrics) > len(divs[j].DivergentMetrics)
	})
	for i, d := range divs {
		if i == maxDivergeQuestions {
			break
		}
		top := make([]model.DivergentMetric, len(d.DivergentMetrics))
		copy(top, d.DivergentMetrics)
		sort.SliceStable(top, func(i, j int) bool {
			return top[i].RelativeDifference > top[j].RelativeDifference
		})
		if len(top) > metricsNamedPerPair {
			top = top[:metricsNamedPerPair]
		}
		for _, m := range top {
			covered[m.Metric] = true
		}
		named := top[0].Metric.Label()
		if len(top) == 2 {
			named += " and " + top[1].Metric.Label()
		}
		questions = append(questions, fmt.Sprintf(
			"Why do my %s and %s responses differ in %s?",
			d.ContextPair[0], d.ContextPair[1], named))
	}

	var weak []model.Metric
	for _, m := range model.ConsistencyMetrics {
		if score, ok := r.MetricConsistency[m]; ok && score < th.Consistency && !covered[m] {
			weak = append(weak, m)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool {
		return r.MetricConsistency[weak[i]] < r.MetricConsistency[weak[j]]
	})
	for i, m := range weak {
		if i == maxMetricQuestions {
			break
		}
		questions = append(questions, fmt.Sprintf(
			"My %s varies widely across contexts (consistency %.2f). Is that adaptation or a sign of drift?",
			m.Label(), r.MetricConsistency[m]))
	}

	if len(r.Anomalies) > 0 || len(r.ContextDivergences) > 0 {
		questions = append(questions,
			"Which of these differences are context-appropriate behavior, and which suggest my core identity is not holding steady across contexts?")
	}

	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}
	return questions
}
