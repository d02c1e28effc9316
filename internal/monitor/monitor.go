// Package monitor ties classification, marker extraction, profiling and
// consistency analysis together behind one API.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kohljary/driftwatch/internal/classifier"
	"github.com/kohljary/driftwatch/internal/consistency"
	"github.com/kohljary/driftwatch/internal/lexicon"
	"github.com/kohljary/driftwatch/internal/markers"
	"github.com/kohljary/driftwatch/internal/metrics"
	"github.com/kohljary/driftwatch/internal/model"
	"github.com/kohljary/driftwatch/internal/profile"
	"github.com/kohljary/driftwatch/internal/store"
)

// Options configures a Monitor.
type Options struct {
	Lexicon            *lexicon.Compiled // nil uses lexicon.Standard()
	Thresholds         consistency.Thresholds
	SecondaryThreshold float64
	MinProfileSamples  int
	Metrics            *metrics.Metrics // optional
	Clock              func() time.Time // optional
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{
		Thresholds:         consistency.DefaultThresholds(),
		SecondaryThreshold: classifier.DefaultSecondaryThreshold,
		MinProfileSamples:  profile.DefaultMinSamples,
	}
}

// Monitor is the behavioral consistency monitor for a single agent.
// Record and analyze cycles are serialized.
type Monitor struct {
	mu sync.Mutex

	store      store.Store
	classifier *classifier.Classifier
	extractor  *markers.Extractor
	aggregator *profile.Aggregator
	analyzer   *consistency.Analyzer
	metrics    *metrics.Metrics
}

// New creates a Monitor persisting through s.
func New(s store.Store, opts Options) *Monitor {
	aggOpts := []profile.Option{profile.WithMinSamples(opts.MinProfileSamples)}
	analyzer := consistency.NewAnalyzer(s, opts.Thresholds)
	if opts.Clock != nil {
		aggOpts = append(aggOpts, profile.WithClock(opts.Clock))
		analyzer.SetClock(opts.Clock)
	}
	return &Monitor{
		store:      s,
		classifier: classifier.New(opts.Lexicon, classifier.WithSecondaryThreshold(opts.SecondaryThreshold)),
		extractor:  markers.New(opts.Lexicon),
		aggregator: profile.NewAggregator(s, aggOpts...),
		analyzer:   analyzer,
		metrics:    opts.Metrics,
	}
}

// ClassifyContext classifies an exchange. user may be empty.
func (m *Monitor) ClassifyContext(response, user string) model.ContextClassification {
	c := m.classifier.Classify(response, user)
	m.metrics.ObserveClassification(c)
	return c
}

// ExtractBehavioralMarkers computes markers for a response. tools may be nil.
func (m *Monitor) ExtractBehavioralMarkers(response string, tools []string) model.BehavioralMarkers {
	return m.extractor.Extract(response, tools)
}

// RecordSample stores a sample and refreshes the context's profile.
func (m *Monitor) RecordSample(ctx context.Context, c model.ContextCategory, mk model.BehavioralMarkers, ids profile.IDs) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.aggregator.RecordSample(ctx, c, mk, ids); err != nil {
		return err
	}
	m.metrics.ObserveSample(c)
	return nil
}

// AnalyzeConsistency scores the current profiles and stores the report.
func (m *Monitor) AnalyzeConsistency(ctx context.Context) (model.ConsistencyScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, err := m.analyzer.Analyze(ctx)
	m.metrics.ObserveReport(r)
	return r, err
}

// ContextProfile returns the profile for c, or nil if there is none yet.
func (m *Monitor) ContextProfile(ctx context.Context, c model.ContextCategory) *model.ContextProfile {
	p, err := m.store.Profile(ctx, c)
	if err != nil {
		log.Warn().Err(err).Str("context", string(c)).Msg("profile unreadable")
		return nil
	}
	return p
}

// AllProfiles returns every profile keyed by context.
func (m *Monitor) AllProfiles(ctx context.Context) map[model.ContextCategory]model.ContextProfile {
	ps, err := m.store.Profiles(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("profiles unreadable")
		return map[model.ContextCategory]model.ContextProfile{}
	}
	return ps
}

// RecentReports returns up to limit reports, newest first.
func (m *Monitor) RecentReports(ctx context.Context, limit int) []model.ConsistencyScore {
	rs, err := m.store.Reports(ctx, limit)
	if err != nil {
		log.Warn().Err(err).Msg("reports unreadable")
		return []model.ConsistencyScore{}
	}
	return rs
}

// Observation is one agent turn as supplied by the caller.
type Observation struct {
	Response       string   `json:"response"`
	User           string   `json:"user,omitempty"`
	Tools          []string `json:"tools,omitempty"`
	ConversationID string   `json:"conversation_id,omitempty"`
	MessageID      string   `json:"message_id,omitempty"`
}

// ObserveResult is what Observe derived from an Observation.
type ObserveResult struct {
	Classification model.ContextClassification `json:"classification"`
	Markers        model.BehavioralMarkers     `json:"markers"`
}

// Observe classifies, extracts and records one agent turn.
func (m *Monitor) Observe(ctx context.Context, o Observation) (ObserveResult, error) {
	res := ObserveResult{
		Classification: m.ClassifyContext(o.Response, o.User),
		Markers:        m.ExtractBehavioralMarkers(o.Response, o.Tools),
	}
	err := m.RecordSample(ctx, res.Classification.PrimaryContext, res.Markers, profile.IDs{
		ConversationID: o.ConversationID,
		MessageID:      o.MessageID,
	})
	if err != nil {
		return res, fmt.Errorf("observe: %w", err)
	}
	return res, nil
}
