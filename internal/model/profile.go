package model

import (
	"fmt"
	"time"
)

// ContextProfile summarizes the markers observed within one context.
type ContextProfile struct {
	Context     ContextCategory `json:"context"`
	SampleCount int             `json:"sample_count"`

	AvgResponseLength float64 `json:"avg_response_length"`
	StdResponseLength float64 `json:"std_response_length"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`

	AvgIThinkRate          float64 `json:"avg_i_think_rate"`
	AvgIFeelRate           float64 `json:"avg_i_feel_rate"`
	AvgINoticeRate         float64 `json:"avg_i_notice_rate"`
	AvgExperienceClaimRate float64 `json:"avg_experience_claim_rate"`

	AvgHedgingRate   float64 `json:"avg_hedging_rate"`
	StdHedgingRate   float64 `json:"std_hedging_rate"`
	AvgCertaintyRate float64 `json:"avg_certainty_rate"`
	StdCertaintyRate float64 `json:"std_certainty_rate"`

	AvgCompassionRate    float64 `json:"avg_compassion_rate"`
	AvgWitnessRate       float64 `json:"avg_witness_rate"`
	AvgNuanceRate        float64 `json:"avg_nuance_rate"`
	AvgQuestionFrequency float64 `json:"avg_question_frequency"`
	AvgTopicDepth        float64 `json:"avg_topic_exploration_depth"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Mean returns the profile's mean for m.
func (p ContextProfile) Mean(m Metric) float64 {
	switch m {
	case MetricIThinkRate:
		return p.AvgIThinkRate
	case MetricIFeelRate:
		return p.AvgIFeelRate
	case MetricINoticeRate:
		return p.AvgINoticeRate
	case MetricExperienceClaimRate:
		return p.AvgExperienceClaimRate
	case MetricHedgingRate:
		return p.AvgHedgingRate
	case MetricCertaintyRate:
		return p.AvgCertaintyRate
	case MetricCompassionRate:
		return p.AvgCompassionRate
	case MetricWitnessRate:
		return p.AvgWitnessRate
	case MetricNuanceRate:
		return p.AvgNuanceRate
	case MetricQuestionFrequency:
		return p.AvgQuestionFrequency
	case MetricTopicDepth:
		return p.AvgTopicDepth
	case MetricResponseLength:
		return p.AvgResponseLength
	case MetricSentenceLength:
		return p.AvgSentenceLength
	}
	panic(fmt.Sprintf("model: unhandled metric %q", m))
}

// SetMean stores v as the profile's mean for m.
func (p *ContextProfile) SetMean(m Metric, v float64) {
	switch m {
	case MetricIThinkRate:
		p.AvgIThinkRate = v
	case MetricIFeelRate:
		p.AvgIFeelRate = v
	case MetricINoticeRate:
		p.AvgINoticeRate = v
	case MetricExperienceClaimRate:
		p.AvgExperienceClaimRate = v
	case MetricHedgingRate:
		p.AvgHedgingRate = v
	case MetricCertaintyRate:
		p.AvgCertaintyRate = v
	case MetricCompassionRate:
		p.AvgCompassionRate = v
	case MetricWitnessRate:
		p.AvgWitnessRate = v
	case MetricNuanceRate:
		p.AvgNuanceRate = v
	case MetricQuestionFrequency:
		p.AvgQuestionFrequency = v
	case MetricTopicDepth:
		p.AvgTopicDepth = v
	case MetricResponseLength:
		p.AvgResponseLength = v
	case MetricSentenceLength:
		p.AvgSentenceLength = v
	default:
		panic(fmt.Sprintf("model: unhandled metric %q", m))
	}
}
