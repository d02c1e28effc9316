package store

import (
	"context"
	"maps"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kohljary/driftwatch/internal/model"
)

// MemoryStore is an in-process Store. Nothing survives Close.
type MemoryStore struct {
	mu       sync.Mutex
	limits   Limits
	entropy  *rand.Rand
	samples  []model.Sample
	totals   map[model.ContextCategory]int
	profiles map[model.ContextCategory]model.ContextProfile
	reports  []model.ConsistencyScore
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(limits Limits) *MemoryStore {
	return &MemoryStore{
		limits:   limits.withDefaults(),
		entropy:  rand.New(rand.NewSource(time.Now().UnixNano())),
		totals:   map[model.ContextCategory]int{},
		profiles: map[model.ContextCategory]model.ContextProfile{},
	}
}

func (m *MemoryStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), m.entropy).String()
}

func (m *MemoryStore) AppendSample(_ context.Context, s model.Sample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		s.ID = m.newID()
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now().UTC()
	}
	m.samples = append(m.samples, s)
	m.totals[s.Context]++
	if over := len(m.samples) - m.limits.Samples; over > 0 {
		m.samples = slices.Clone(m.samples[over:])
	}
	return nil
}

func (m *MemoryStore) Samples(_ context.Context) ([]model.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Sample, len(m.samples))
	copy(out, m.samples)
	return out, nil
}

func (m *MemoryStore) SampleTotals(_ context.Context) (map[model.ContextCategory]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.totals), nil
}

func (m *MemoryStore) SaveProfile(_ context.Context, p model.ContextProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.Context] = p
	return nil
}

func (m *MemoryStore) Profile(_ context.Context, c model.ContextCategory) (*model.ContextProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[c]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *MemoryStore) Profiles(_ context.Context) (map[model.ContextCategory]model.ContextProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.profiles), nil
}

func (m *MemoryStore) AppendReport(_ context.Context, r model.ConsistencyScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = m.newID()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	r.MetricConsistency = maps.Clone(r.MetricConsistency)
	r.Anomalies = slices.Clone(r.Anomalies)
	r.ContextDivergences = slices.Clone(r.ContextDivergences)
	r.ResearchQuestions = slices.Clone(r.ResearchQuestions)
	m.reports = append(m.reports, r)
	if over := len(m.reports) - m.limits.Reports; over > 0 {
		m.reports = slices.Clone(m.reports[over:])
	}
	return nil
}

func (m *MemoryStore) Reports(_ context.Context, limit int) ([]model.ConsistencyScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ConsistencyScore, 0, len(m.reports))
	for i := len(m.reports) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, m.reports[i])
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
