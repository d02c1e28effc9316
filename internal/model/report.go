package model

import "time"

// Anomaly is a context whose metric mean strays far from the cross-context mean.
type Anomaly struct {
	Context          ContextCategory `json:"context"`
	Metric           Metric          `json:"metric"`
	Value            float64         `json:"value"`
	Mean             float64         `json:"mean"`
	DeviationPercent float64         `json:"deviation_percent"`
}

// DivergentMetric is one metric that differs between a pair of contexts.
type DivergentMetric struct {
	Metric             Metric  `json:"metric"`
	ValueA             float64 `json:"value_a"`
	ValueB             float64 `json:"value_b"`
	RelativeDifference float64 `json:"relative_difference"`
}

// ContextDivergence lists the divergent metrics of one context pair.
type ContextDivergence struct {
	ContextPair      [2]ContextCategory `json:"context_pair"`
	DivergentMetrics []DivergentMetric  `json:"divergent_metrics"`
}

// ConsistencyScore is a cross-context consistency report.
type ConsistencyScore struct {
	ID                 string              `json:"id"`
	OverallScore       float64             `json:"overall_score"` // 0-1
	MetricConsistency  map[Metric]float64  `json:"metric_consistency"`
	Anomalies          []Anomaly           `json:"anomalies"`
	ContextDivergences []ContextDivergence `json:"context_divergences"`
	ResearchQuestions  []string            `json:"research_questions"`
	Assessment         string              `json:"assessment"`
	ProfilesAnalyzed   int                 `json:"profiles_analyzed"`
	Timestamp          time.Time           `json:"timestamp"`
}
