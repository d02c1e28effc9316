// Package profile maintains per-context statistical profiles of behavioral
// markers.
package profile

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kohljary/driftwatch/internal/model"
	"github.com/kohljary/driftwatch/internal/store"
)

// DefaultMinSamples is the sample count a context needs before it is profiled.
const DefaultMinSamples = 3

// Aggregator records samples and rebuilds the affected context profile.
type Aggregator struct {
	store      store.Store
	minSamples int
	now        func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithMinSamples overrides DefaultMinSamples.
func WithMinSamples(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.minSamples = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// NewAggregator creates an Aggregator writing through s.
func NewAggregator(s store.Store, opts ...Option) *Aggregator {
	a := &Aggregator{store: s, minSamples: DefaultMinSamples, now: time.Now}
	for _, o := range opts {
		o(a)
	}
	return a
}

// IDs optionally links a sample to the conversation it came from.
type IDs struct {
	ConversationID string
	MessageID      string
}

// RecordSample appends a sample and, once the context has enough retained
// samples, recomputes its profile from scratch.
func (a *Aggregator) RecordSample(ctx context.Context, c model.ContextCategory, m model.BehavioralMarkers, ids IDs) error {
	if !c.Valid() {
		return fmt.Errorf("record sample: unknown context %q", c)
	}
	err := a.store.AppendSample(ctx, model.Sample{
		Context:        c,
		Markers:        m,
		ConversationID: ids.ConversationID,
		MessageID:      ids.MessageID,
		Timestamp:      a.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("append sample: %w", err)
	}

	samples, err := a.store.Samples(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("sample history unreadable, skipping profile update")
		return nil
	}

	var markers []model.BehavioralMarkers
	for _, s := range samples {
		if s.Context == c {
			markers = append(markers, s.Markers)
		}
	}
	if len(markers) < a.minSamples {
		log.Debug().Str("context", string(c)).Int("samples", len(markers)).Msg("not enough samples to profile")
		return nil
	}

	p := Build(c, markers, a.now().UTC())
	if err := a.store.SaveProfile(ctx, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	log.Debug().Str("context", string(c)).Int("samples", p.SampleCount).Msg("profile updated")
	return nil
}

// Build computes a profile over markers.
func Build(c model.ContextCategory, markers []model.BehavioralMarkers, at time.Time) model.ContextProfile {
	p := model.ContextProfile{Context: c, SampleCount: len(markers), UpdatedAt: at}
	for _, metric := range model.ProfiledMetrics {
		p.SetMean(metric, Mean(values(markers, metric)))
	}
	p.StdResponseLength = StdDev(values(markers, model.MetricResponseLength))
	p.StdHedgingRate = StdDev(values(markers, model.MetricHedgingRate))
	p.StdCertaintyRate = StdDev(values(markers, model.MetricCertaintyRate))
	return p
}

func values(markers []model.BehavioralMarkers, m model.Metric) []float64 {
	out := make([]float64, len(markers))
	for i, b := range markers {
		out[i] = m.Value(b)
	}
	return out
}

// Mean is the arithmetic mean, 0 for no values.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev is the sample (n-1) standard deviation, 0 for fewer than two values.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := Mean(xs)
	ss := 0.0
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
