// Package store persists behavioral samples, context profiles and
// consistency reports.
package store

import (
	"context"

	"github.com/kohljary/driftwatch/internal/model"
)

const (
	DefaultSampleCap = 1000
	DefaultReportCap = 50
)

// Limits bounds the retained history. Oldest entries are dropped first.
type Limits struct {
	Samples int
	Reports int
}

// DefaultLimits returns the default retention caps.
func DefaultLimits() Limits {
	return Limits{Samples: DefaultSampleCap, Reports: DefaultReportCap}
}

func (l Limits) withDefaults() Limits {
	if l.Samples <= 0 {
		l.Samples = DefaultSampleCap
	}
	if l.Reports <= 0 {
		l.Reports = DefaultReportCap
	}
	return l
}

// Store defines the monitor storage interface.
//
// Reads skip individual records that cannot be decoded; they never fail
// because of one bad record.
type Store interface {
	// AppendSample records a sample and drops the oldest beyond the cap.
	// An empty ID is filled in.
	AppendSample(ctx context.Context, s model.Sample) error

	// Samples returns the retained samples, oldest first.
	Samples(ctx context.Context) ([]model.Sample, error)

	// SampleTotals returns how many samples were ever appended per context,
	// including those since dropped by the cap.
	SampleTotals(ctx context.Context) (map[model.ContextCategory]int, error)

	// SaveProfile replaces the profile for p.Context.
	SaveProfile(ctx context.Context, p model.ContextProfile) error

	// Profile returns the profile for c, or nil if none exists.
	Profile(ctx context.Context, c model.ContextCategory) (*model.ContextProfile, error)

	// Profiles returns every stored profile keyed by context.
	Profiles(ctx context.Context) (map[model.ContextCategory]model.ContextProfile, error)

	// AppendReport records a consistency report and drops the oldest beyond the cap.
	// An empty ID is filled in.
	AppendReport(ctx context.Context, r model.ConsistencyScore) error

	// Reports returns up to limit reports, newest first. limit <= 0 returns all.
	Reports(ctx context.Context, limit int) ([]model.ConsistencyScore, error)

	// Close closes the store.
	Close() error
}
