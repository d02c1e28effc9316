package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kohljary/driftwatch/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"), DefaultLimits())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// eachStore runs fn against every Store implementation.
func eachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, newTestStore(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryStore(DefaultLimits())) })
}

func sampleAt(c model.ContextCategory, hedging float64, ts time.Time) model.Sample {
	return model.Sample{
		Context:   c,
		Markers:   model.BehavioralMarkers{ResponseLength: 42, HedgingRate: hedging},
		Timestamp: ts,
	}
}

func TestAppendAndReadSamples(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		base := time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)

		if err := s.AppendSample(ctx, sampleAt(model.ContextTechnical, 1.5, base)); err != nil {
			t.Fatalf("append: %v", err)
		}
		smp := sampleAt(model.ContextEmotional, 2.5, base.Add(time.Second))
		smp.ConversationID = "conv-1"
		smp.MessageID = "msg-7"
		if err := s.AppendSample(ctx, smp); err != nil {
			t.Fatalf("append: %v", err)
		}

		got, err := s.Samples(ctx)
		if err != nil {
			t.Fatalf("samples: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 samples, got %d", len(got))
		}
		if got[0].Context != model.ContextTechnical || got[1].Context != model.ContextEmotional {
			t.Errorf("expected oldest first, got %s, %s", got[0].Context, got[1].Context)
		}
		if got[0].ID == "" {
			t.Error("expected generated ID")
		}
		if got[1].ConversationID != "conv-1" || got[1].MessageID != "msg-7" {
			t.Errorf("ids not persisted: %+v", got[1])
		}
		if got[1].Markers.HedgingRate != 2.5 {
			t.Errorf("expected hedging 2.5, got %v", got[1].Markers.HedgingRate)
		}
		if !got[0].Timestamp.Equal(base) {
			t.Errorf("expected timestamp %v, got %v", base, got[0].Timestamp)
		}
	})
}

func TestSampleCapEvictsOldest(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for i := 0; i < DefaultSampleCap+1; i++ {
			smp := sampleAt(model.ContextCasual, float64(i), time.Time{})
			smp.ID = fmt.Sprintf("s-%04d", i)
			if err := s.AppendSample(ctx, smp); err != nil {
				t.Fatalf("append %d: %v", i, err)
			}
		}

		got, _ := s.Samples(ctx)
		if len(got) != DefaultSampleCap {
			t.Fatalf("expected %d samples, got %d", DefaultSampleCap, len(got))
		}
		if got[0].ID != "s-0001" {
			t.Errorf("expected oldest retained s-0001, got %s", got[0].ID)
		}
		if got[len(got)-1].ID != "s-1000" {
			t.Errorf("expected newest s-1000, got %s", got[len(got)-1].ID)
		}
	})
}

func TestReportCapEvictsOldest(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for i := 0; i < DefaultReportCap+1; i++ {
			r := model.ConsistencyScore{ID: fmt.Sprintf("r-%02d", i), OverallScore: 1}
			if err := s.AppendReport(ctx, r); err != nil {
				t.Fatalf("append %d: %v", i, err)
			}
		}

		all, _ := s.Reports(ctx, 0)
		if len(all) != DefaultReportCap {
			t.Fatalf("expected %d reports, got %d", DefaultReportCap, len(all))
		}
		if all[0].ID != "r-50" {
			t.Errorf("expected newest first r-50, got %s", all[0].ID)
		}
		if all[len(all)-1].ID != "r-01" {
			t.Errorf("expected oldest retained r-01, got %s", all[len(all)-1].ID)
		}

		recent, _ := s.Reports(ctx, 3)
		if len(recent) != 3 || recent[2].ID != "r-48" {
			t.Errorf("expected r-50..r-48, got %+v", recent)
		}
	})
}

func TestProfileSaveAndOverwrite(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		p, err := s.Profile(ctx, model.ContextResearch)
		if err != nil || p != nil {
			t.Fatalf("expected absent profile, got %+v, %v", p, err)
		}

		s.SaveProfile(ctx, model.ContextProfile{Context: model.ContextResearch, SampleCount: 3})
		s.SaveProfile(ctx, model.ContextProfile{Context: model.ContextResearch, SampleCount: 4, AvgHedgingRate: 2})
		s.SaveProfile(ctx, model.ContextProfile{Context: model.ContextCreative, SampleCount: 3})

		p, err = s.Profile(ctx, model.ContextResearch)
		if err != nil || p == nil {
			t.Fatalf("expected profile, got %v", err)
		}
		if p.SampleCount != 4 || p.AvgHedgingRate != 2 {
			t.Errorf("expected overwritten profile, got %+v", p)
		}

		all, _ := s.Profiles(ctx)
		if len(all) != 2 {
			t.Errorf("expected 2 profiles, got %d", len(all))
		}
	})
}

func TestCorruptRowsAreSkipped(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AppendSample(ctx, sampleAt(model.ContextTechnical, 1, time.Time{}))
	s.db.ExecContext(ctx, `INSERT INTO samples (id, context, markers, created_at) VALUES ('bad-json', 'technical', '{not json', ?)`,
		time.Now().UTC().Format(time.RFC3339Nano))
	s.db.ExecContext(ctx, `INSERT INTO samples (id, context, markers, created_at) VALUES ('bad-ctx', 'nonsense', '{}', ?)`,
		time.Now().UTC().Format(time.RFC3339Nano))
	s.db.ExecContext(ctx, `INSERT INTO profiles (context, data, updated_at) VALUES ('emotional', 'garbage', '')`)
	s.db.ExecContext(ctx, `INSERT INTO reports (id, data, created_at) VALUES ('bad-report', '[', '')`)

	samples, err := s.Samples(ctx)
	if err != nil {
		t.Fatalf("samples: %v", err)
	}
	if len(samples) != 1 {
		t.Errorf("expected 1 readable sample, got %d", len(samples))
	}

	profiles, err := s.Profiles(ctx)
	if err != nil || len(profiles) != 0 {
		t.Errorf("expected no readable profiles, got %d, %v", len(profiles), err)
	}
	if p, err := s.Profile(ctx, model.ContextEmotional); p != nil || err != nil {
		t.Errorf("expected corrupt profile to read as absent, got %+v, %v", p, err)
	}

	reports, err := s.Reports(ctx, 0)
	if err != nil || len(reports) != 0 {
		t.Errorf("expected no readable reports, got %d, %v", len(reports), err)
	}
}

func TestCorruptDBFileDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "dw.db")
	junk := make([]byte, 8192)
	for i := range junk {
		junk[i] = byte('x' + i%3)
	}
	if err := os.WriteFile(dbPath, junk, 0o644); err != nil {
		t.Fatalf("write junk: %v", err)
	}

	s, err := NewSQLiteStore(dbPath, DefaultLimits())
	if err != nil {
		t.Fatalf("expected corrupt file to be replaced, got %v", err)
	}
	t.Cleanup(func() { s.Close() })

	samples, err := s.Samples(ctx)
	if err != nil || len(samples) != 0 {
		t.Errorf("expected empty samples, got %d, %v", len(samples), err)
	}
	if err := s.AppendSample(ctx, sampleAt(model.ContextCasual, 1, time.Time{})); err != nil {
		t.Errorf("append after recovery: %v", err)
	}

	matches, _ := filepath.Glob(dbPath + ".corrupt-*")
	if len(matches) != 1 {
		t.Fatalf("expected the corrupt file moved aside, got %v", matches)
	}
	kept, err := os.ReadFile(matches[0])
	if err != nil || len(kept) != len(junk) {
		t.Errorf("expected original bytes preserved, got %d bytes, %v", len(kept), err)
	}
}

func TestSampleTotalsOutliveCap(t *testing.T) {
	ctx := context.Background()
	stores := map[string]Store{
		"memory": NewMemoryStore(Limits{Samples: 2}),
	}
	sq, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), Limits{Samples: 2})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	stores["sqlite"] = sq

	for name, s := range stores {
		for i := 0; i < 4; i++ {
			s.AppendSample(ctx, sampleAt(model.ContextTechnical, 1, time.Time{}))
		}
		s.AppendSample(ctx, sampleAt(model.ContextCasual, 1, time.Time{}))

		totals, err := s.SampleTotals(ctx)
		if err != nil {
			t.Fatalf("%s totals: %v", name, err)
		}
		if totals[model.ContextTechnical] != 4 || totals[model.ContextCasual] != 1 {
			t.Errorf("%s: expected technical=4 casual=1, got %v", name, totals)
		}
		samples, _ := s.Samples(ctx)
		if len(samples) != 2 {
			t.Errorf("%s: expected 2 retained samples, got %d", name, len(samples))
		}
	}
}

func TestSampleTotalsSeededFromExistingSamples(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath, DefaultLimits())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.AppendSample(ctx, sampleAt(model.ContextEmotional, 1, time.Time{}))
	s.AppendSample(ctx, sampleAt(model.ContextEmotional, 1, time.Time{}))
	s.db.ExecContext(ctx, `DROP TABLE sample_totals`)
	s.Close()

	s, err = NewSQLiteStore(dbPath, DefaultLimits())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	totals, _ := s.SampleTotals(ctx)
	if totals[model.ContextEmotional] != 2 {
		t.Errorf("expected totals rebuilt from retained samples, got %v", totals)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath, DefaultLimits())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}

func TestReopenKeepsState(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := NewSQLiteStore(dbPath, DefaultLimits())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.AppendSample(ctx, sampleAt(model.ContextPractical, 1, time.Time{}))
	s.SaveProfile(ctx, model.ContextProfile{Context: model.ContextPractical, SampleCount: 3})
	s.Close()

	s, err = NewSQLiteStore(dbPath, DefaultLimits())
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer s.Close()

	samples, _ := s.Samples(ctx)
	if len(samples) != 1 {
		t.Errorf("expected 1 sample after reopen, got %d", len(samples))
	}
	if p, _ := s.Profile(ctx, model.ContextPractical); p == nil {
		t.Error("expected profile after reopen")
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AppendSample(ctx, sampleAt(model.ContextCasual, 1, time.Time{}))
	s.AppendSample(ctx, sampleAt(model.ContextCasual, 1, time.Time{}))
	s.AppendSample(ctx, sampleAt(model.ContextTechnical, 1, time.Time{}))
	s.AppendReport(ctx, model.ConsistencyScore{OverallScore: 1})
	s.SaveProfile(ctx, model.ContextProfile{Context: model.ContextCasual, SampleCount: 2})

	st, err := s.Stats(ctx, "test.db")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalSamples != 3 || st.Reports != 1 || st.Profiles != 1 {
		t.Errorf("unexpected totals: %+v", st)
	}
	if len(st.Contexts) != 2 || st.Contexts[0].Context != "casual" || st.Contexts[0].Samples != 2 {
		t.Errorf("unexpected per-context stats: %+v", st.Contexts)
	}
	if len(st.Contexts) == 2 && (!st.Contexts[0].HasProfile || st.Contexts[1].HasProfile) {
		t.Errorf("expected only casual to have a profile: %+v", st.Contexts)
	}
	if st.OldestSample == nil || st.NewestSample == nil || st.NewestSample.Before(*st.OldestSample) {
		t.Errorf("unexpected sample range: %v .. %v", st.OldestSample, st.NewestSample)
	}
}
