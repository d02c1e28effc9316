// Package classifier assigns a conversational context to an exchange by
// scoring per-category signal patterns.
package classifier

import (
	"sort"
	"strings"

	"github.com/kohljary/driftwatch/internal/lexicon"
	"github.com/kohljary/driftwatch/internal/model"
)

const (
	// DefaultSecondaryThreshold is the share of the primary score a runner-up
	// must exceed to be reported as a secondary context.
	DefaultSecondaryThreshold = 0.2

	maxSecondary = 3

	// Each distinct matched pattern is worth this many repeated matches.
	varietyWeight = 2
)

// Classifier maps text to a context category.
type Classifier struct {
	lex                *lexicon.Compiled
	secondaryThreshold float64
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithSecondaryThreshold overrides DefaultSecondaryThreshold.
func WithSecondaryThreshold(v float64) Option {
	return func(c *Classifier) { c.secondaryThreshold = v }
}

// New creates a Classifier over lex. A nil lex uses lexicon.Standard().
func New(lex *lexicon.Compiled, opts ...Option) *Classifier {
	if lex == nil {
		lex = lexicon.Standard()
	}
	c := &Classifier{lex: lex, secondaryThreshold: DefaultSecondaryThreshold}
	for _, o := range opts {
		o(c)
	}
	return c
}

type categoryScore struct {
	ctx   model.ContextCategory
	order int
	score int
}

// Classify scores the combined, lower-cased response and user text.
// Text with no signals at all is classified as unknown with zero confidence.
func (c *Classifier) Classify(response, user string) model.ContextClassification {
	text := strings.ToLower(response + " " + user)

	signals := map[string]int{}
	scores := make([]categoryScore, 0, len(c.lex.Contexts))
	total := 0
	for i, cat := range c.lex.Contexts {
		distinct, matches := 0, 0
		for _, p := range cat.Patterns {
			n := p.Count(text)
			if n == 0 {
				continue
			}
			distinct++
			matches += n
			signals[p.Source] += n
		}
		score := varietyWeight*distinct + matches
		total += score
		scores = append(scores, categoryScore{ctx: cat.Context, order: i, score: score})
	}

	if total == 0 {
		return model.ContextClassification{
			PrimaryContext:    model.ContextUnknown,
			Confidence:        0,
			SecondaryContexts: []model.SecondaryContext{},
			Signals:           signals,
		}
	}

	// Highest score first; ties keep category order.
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].order < scores[j].order
	})

	primary := scores[0]
	result := model.ContextClassification{
		PrimaryContext:    primary.ctx,
		Confidence:        clamp01(float64(primary.score) / float64(total)),
		SecondaryContexts: []model.SecondaryContext{},
		Signals:           signals,
	}

	cutoff := c.secondaryThreshold * float64(primary.score)
	for _, s := range scores[1:] {
		if len(result.SecondaryContexts) == maxSecondary {
			break
		}
		if s.score == 0 || float64(s.score) <= cutoff {
			break
		}
		result.SecondaryContexts = append(result.SecondaryContexts, model.SecondaryContext{
			Context: s.ctx,
			Score:   clamp01(float64(s.score) / float64(total)),
		})
	}
	return result
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
