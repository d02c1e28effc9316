package model

import (
	"fmt"
	"time"
)

// BehavioralMarkers are the numeric features extracted from one response.
// Rates are per 100 words.
type BehavioralMarkers struct {
	ResponseLength        int     `json:"response_length"`
	SentenceCount         int     `json:"sentence_count"`
	AvgSentenceLength     float64 `json:"avg_sentence_length"`
	QuestionFrequency     float64 `json:"question_frequency"`
	FollowUpQuestions     int     `json:"follow_up_questions"`
	IThinkRate            float64 `json:"i_think_rate"`
	IFeelRate             float64 `json:"i_feel_rate"`
	INoticeRate           float64 `json:"i_notice_rate"`
	ExperienceClaimRate   float64 `json:"experience_claim_rate"`
	HedgingRate           float64 `json:"hedging_rate"`
	CertaintyRate         float64 `json:"certainty_rate"`
	CompassionRate        float64 `json:"compassion_rate"`
	WitnessRate           float64 `json:"witness_rate"`
	NuanceRate            float64 `json:"nuance_rate"`
	TopicExplorationDepth float64 `json:"topic_exploration_depth"` // 0-1
	ToolUsageCount        int     `json:"tool_usage_count"`
}

// Sample is one recorded observation of an agent response.
type Sample struct {
	ID             string            `json:"id"`
	Context        ContextCategory   `json:"context"`
	Markers        BehavioralMarkers `json:"markers"`
	ConversationID string            `json:"conversation_id,omitempty"`
	MessageID      string            `json:"message_id,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
}

// Metric names a profiled marker statistic.
type Metric string

const (
	MetricIThinkRate          Metric = "i_think_rate"
	MetricIFeelRate           Metric = "i_feel_rate"
	MetricINoticeRate         Metric = "i_notice_rate"
	MetricExperienceClaimRate Metric = "experience_claim_rate"
	MetricHedgingRate         Metric = "hedging_rate"
	MetricCertaintyRate       Metric = "certainty_rate"
	MetricCompassionRate      Metric = "compassion_rate"
	MetricWitnessRate         Metric = "witness_rate"
	MetricNuanceRate          Metric = "nuance_rate"
	MetricQuestionFrequency   Metric = "question_frequency"
	MetricTopicDepth          Metric = "topic_exploration_depth"
	MetricResponseLength      Metric = "response_length"
	MetricSentenceLength      Metric = "avg_sentence_length"
)

// ConsistencyMetrics are the rate metrics compared across contexts.
var ConsistencyMetrics = []Metric{
	MetricIThinkRate,
	MetricIFeelRate,
	MetricHedgingRate,
	MetricCertaintyRate,
	MetricCompassionRate,
	MetricNuanceRate,
}

// ProfiledMetrics are the metrics whose mean a ContextProfile tracks.
var ProfiledMetrics = []Metric{
	MetricIThinkRate,
	MetricIFeelRate,
	MetricINoticeRate,
	MetricExperienceClaimRate,
	MetricHedgingRate,
	MetricCertaintyRate,
	MetricCompassionRate,
	MetricWitnessRate,
	MetricNuanceRate,
	MetricQuestionFrequency,
	MetricTopicDepth,
	MetricResponseLength,
	MetricSentenceLength,
}

// Label is the human-readable form used in generated questions.
func (m Metric) Label() string {
	switch m {
	case MetricIThinkRate:
		return "'I think' usage"
	case MetricIFeelRate:
		return "'I feel' usage"
	case MetricINoticeRate:
		return "'I notice' usage"
	case MetricExperienceClaimRate:
		return "experience claims"
	case MetricHedgingRate:
		return "hedging language"
	case MetricCertaintyRate:
		return "certainty language"
	case MetricCompassionRate:
		return "compassion language"
	case MetricWitnessRate:
		return "witnessing language"
	case MetricNuanceRate:
		return "nuance markers"
	case MetricQuestionFrequency:
		return "question frequency"
	case MetricTopicDepth:
		return "topic exploration depth"
	case MetricResponseLength:
		return "response length"
	case MetricSentenceLength:
		return "sentence length"
	}
	return string(m)
}

// Value returns the marker value for m.
func (m Metric) Value(b BehavioralMarkers) float64 {
	switch m {
	case MetricIThinkRate:
		return b.IThinkRate
	case MetricIFeelRate:
		return b.IFeelRate
	case MetricINoticeRate:
		return b.INoticeRate
	case MetricExperienceClaimRate:
		return b.ExperienceClaimRate
	case MetricHedgingRate:
		return b.HedgingRate
	case MetricCertaintyRate:
		return b.CertaintyRate
	case MetricCompassionRate:
		return b.CompassionRate
	case MetricWitnessRate:
		return b.WitnessRate
	case MetricNuanceRate:
		return b.NuanceRate
	case MetricQuestionFrequency:
		return b.QuestionFrequency
	case MetricTopicDepth:
		return b.TopicExplorationDepth
	case MetricResponseLength:
		return float64(b.ResponseLength)
	case MetricSentenceLength:
		return b.AvgSentenceLength
	}
	panic(fmt.Sprintf("model: unhandled metric %q", m))
}
