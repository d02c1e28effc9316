// Package model defines the core behavioral-monitoring data types.
package model

import "fmt"

// ContextCategory tags the conversational domain of an exchange.
type ContextCategory string

const (
	ContextTechnical     ContextCategory = "technical"
	ContextEmotional     ContextCategory = "emotional"
	ContextCreative      ContextCategory = "creative"
	ContextPhilosophical ContextCategory = "philosophical"
	ContextPractical     ContextCategory = "practical"
	ContextResearch      ContextCategory = "research"
	ContextReflective    ContextCategory = "reflective"
	ContextCasual        ContextCategory = "casual"
	ContextUnknown       ContextCategory = "unknown"
)

// Categories lists every classifiable category in canonical order.
// Unknown is excluded: it is the fallback, never a scored category.
var Categories = []ContextCategory{
	ContextTechnical,
	ContextEmotional,
	ContextCreative,
	ContextPhilosophical,
	ContextPractical,
	ContextResearch,
	ContextReflective,
	ContextCasual,
}

// AllContexts is Categories plus Unknown.
var AllContexts = append(append([]ContextCategory{}, Categories...), ContextUnknown)

// Valid reports whether c is a known category (including unknown).
func (c ContextCategory) Valid() bool {
	for _, k := range AllContexts {
		if k == c {
			return true
		}
	}
	return false
}

// Index returns the canonical ordering position of c, or -1.
func (c ContextCategory) Index() int {
	for i, k := range AllContexts {
		if k == c {
			return i
		}
	}
	return -1
}

// ParseContext converts a string into a ContextCategory.
func ParseContext(s string) (ContextCategory, error) {
	c := ContextCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown context %q", s)
	}
	return c, nil
}

// SecondaryContext is a runner-up category with its share of the total score.
type SecondaryContext struct {
	Context ContextCategory `json:"context"`
	Score   float64         `json:"score"` // 0-1
}

// ContextClassification is the result of classifying one exchange.
type ContextClassification struct {
	PrimaryContext    ContextCategory    `json:"primary_context"`
	Confidence        float64            `json:"confidence"` // 0-1
	SecondaryContexts []SecondaryContext `json:"secondary_contexts"`
	Signals           map[string]int     `json:"signals"`
}
