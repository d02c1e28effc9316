package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/kohljary/driftwatch/internal/model"
)

// Snapshot is the full persisted state of a store. Samples and reports are
// ordered oldest first.
type Snapshot struct {
	Profiles map[model.ContextCategory]model.ContextProfile `json:"profiles"`
	Samples  []model.Sample                                 `json:"samples"`
	Reports  []model.ConsistencyScore                       `json:"reports"`
}

// ImportResult counts what Import wrote.
type ImportResult struct {
	Profiles int `json:"profiles"`
	Samples  int `json:"samples"`
	Reports  int `json:"reports"`
	Skipped  int `json:"skipped"`
}

// Export reads every collection of s.
func Export(ctx context.Context, s Store) (*Snapshot, error) {
	profiles, err := s.Profiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("export profiles: %w", err)
	}
	samples, err := s.Samples(ctx)
	if err != nil {
		return nil, fmt.Errorf("export samples: %w", err)
	}
	reports, err := s.Reports(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("export reports: %w", err)
	}
	slices.Reverse(reports)
	return &Snapshot{Profiles: profiles, Samples: samples, Reports: reports}, nil
}

// Import writes a snapshot into s. Samples and reports whose ID is already
// present are skipped; profiles overwrite.
//
// Imported samples and reports are appended after what s already holds, in
// timestamp order. The history is not re-sorted, so when s is not empty the
// combined history is in arrival order rather than timestamp order, and the
// retention caps drop the pre-existing records before any imported ones.
func Import(ctx context.Context, s Store, snap *Snapshot) (ImportResult, error) {
	var res ImportResult

	incoming := slices.Clone(snap.Samples)
	slices.SortStableFunc(incoming, func(a, b model.Sample) int { return a.Timestamp.Compare(b.Timestamp) })
	incomingReports := slices.Clone(snap.Reports)
	slices.SortStableFunc(incomingReports, func(a, b model.ConsistencyScore) int { return a.Timestamp.Compare(b.Timestamp) })

	existing, err := s.Samples(ctx)
	if err != nil {
		return res, err
	}
	seen := make(map[string]bool, len(existing))
	for _, smp := range existing {
		seen[smp.ID] = true
	}
	for _, smp := range incoming {
		if smp.ID != "" && seen[smp.ID] {
			res.Skipped++
			continue
		}
		if err := s.AppendSample(ctx, smp); err != nil {
			return res, err
		}
		res.Samples++
	}

	reports, err := s.Reports(ctx, 0)
	if err != nil {
		return res, err
	}
	seen = make(map[string]bool, len(reports))
	for _, r := range reports {
		seen[r.ID] = true
	}
	for _, r := range incomingReports {
		if r.ID != "" && seen[r.ID] {
			res.Skipped++
			continue
		}
		if err := s.AppendReport(ctx, r); err != nil {
			return res, err
		}
		res.Reports++
	}

	for _, c := range model.AllContexts {
		p, ok := snap.Profiles[c]
		if !ok {
			continue
		}
		if err := s.SaveProfile(ctx, p); err != nil {
			return res, err
		}
		res.Profiles++
	}
	return res, nil
}
