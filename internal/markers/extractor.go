// Package markers extracts quantitative behavioral markers from a single
// agent response.
package markers

import (
	"strings"

	"github.com/kohljary/driftwatch/internal/lexicon"
	"github.com/kohljary/driftwatch/internal/model"
	"github.com/kohljary/driftwatch/internal/textstats"
)

// Topic exploration depth weights; they sum to 1.
const (
	paragraphWeight   = 0.3
	exampleWeight     = 0.35
	elaborationWeight = 0.35

	// Paragraph breaks needed for the paragraph component.
	minParagraphBreaks = 2
)

// Extractor computes BehavioralMarkers.
type Extractor struct {
	lex *lexicon.Compiled
}

// New creates an Extractor over lex. A nil lex uses lexicon.Standard().
func New(lex *lexicon.Compiled) *Extractor {
	if lex == nil {
		lex = lexicon.Standard()
	}
	return &Extractor{lex: lex}
}

// Extract computes markers for response. Rates are matches per 100 words.
// A response without words yields the zero record.
func (e *Extractor) Extract(response string, toolUsage []string) model.BehavioralMarkers {
	words := textstats.Words(response)
	if len(words) == 0 {
		return model.BehavioralMarkers{}
	}
	wc := float64(len(words))
	rate := func(n int) float64 { return float64(n) / wc * 100 }

	sentences := textstats.Sentences(response)
	lower := strings.ToLower(response)

	m := model.BehavioralMarkers{
		ResponseLength:      len(words),
		SentenceCount:       len(sentences),
		QuestionFrequency:   rate(strings.Count(response, "?")),
		FollowUpQuestions:   followUpQuestions(response),
		IThinkRate:          rate(e.lex.IThink.Count(lower)),
		IFeelRate:           rate(e.lex.IFeel.Count(lower)),
		INoticeRate:         rate(e.lex.INotice.Count(lower)),
		ExperienceClaimRate: rate(e.lex.Experience.Count(lower)),
		HedgingRate:         rate(e.lex.Hedging.Count(lower)),
		CertaintyRate:       rate(e.lex.Certainty.Count(lower)),
		CompassionRate:      rate(e.lex.Compassion.Count(lower)),
		WitnessRate:         rate(e.lex.Witness.Count(lower)),
		NuanceRate:          rate(e.lex.Nuance.Count(lower)),
		ToolUsageCount:      len(toolUsage),
	}
	if len(sentences) > 0 {
		m.AvgSentenceLength = wc / float64(len(sentences))
	}

	if textstats.ParagraphBreaks(response) >= minParagraphBreaks {
		m.TopicExplorationDepth += paragraphWeight
	}
	if e.lex.Examples.Any(lower) {
		m.TopicExplorationDepth += exampleWeight
	}
	if e.lex.Elaboration.Any(lower) {
		m.TopicExplorationDepth += elaborationWeight
	}
	if m.TopicExplorationDepth > 1 {
		m.TopicExplorationDepth = 1
	}
	return m
}

// followUpQuestions counts question marks other than a closing one, as a
// proxy for questions raised mid-response.
func followUpQuestions(response string) int {
	n := strings.Count(response, "?")
	if strings.HasSuffix(strings.TrimSpace(response), "?") {
		n--
	}
	return n
}
