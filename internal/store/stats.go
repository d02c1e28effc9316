package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/kohljary/driftwatch/internal/model"
)

// Stats holds database statistics.
type Stats struct {
	DBPath       string         `json:"db_path"`
	DBSizeBytes  int64          `json:"db_size_bytes"`
	TotalSamples int            `json:"total_samples"`
	Profiles     int            `json:"profiles"`
	Reports      int            `json:"reports"`
	OldestSample *time.Time     `json:"oldest_sample,omitempty"`
	NewestSample *time.Time     `json:"newest_sample,omitempty"`
	Contexts     []ContextStats `json:"contexts"`
}

// ContextStats holds the retained sample count of one context.
type ContextStats struct {
	Context    model.ContextCategory `json:"context"`
	Samples    int                   `json:"samples"`
	HasProfile bool                  `json:"has_profile"`
}

// Stats returns database statistics. Contexts are ordered by sample count,
// largest first.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath, Contexts: []ContextStats{}}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	counts := []struct {
		query string
		dst   *int
	}{
		{`SELECT COUNT(*) FROM samples`, &st.TotalSamples},
		{`SELECT COUNT(*) FROM profiles`, &st.Profiles},
		{`SELECT COUNT(*) FROM reports`, &st.Reports},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return st, fmt.Errorf("stats: %w", err)
		}
	}

	var oldest, newest sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT (SELECT created_at FROM samples ORDER BY seq ASC LIMIT 1),
		        (SELECT created_at FROM samples ORDER BY seq DESC LIMIT 1)`).Scan(&oldest, &newest)
	if err != nil {
		return st, fmt.Errorf("stats: sample range: %w", err)
	}
	st.OldestSample = parseTime(oldest)
	st.NewestSample = parseTime(newest)

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.context, COUNT(*) AS cnt, p.context IS NOT NULL
		FROM samples s LEFT JOIN profiles p ON p.context = s.context
		GROUP BY s.context ORDER BY cnt DESC, s.context`)
	if err != nil {
		return st, fmt.Errorf("stats: contexts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cs ContextStats
		var name string
		if err := rows.Scan(&name, &cs.Samples, &cs.HasProfile); err != nil {
			return st, fmt.Errorf("stats: contexts: %w", err)
		}
		cs.Context = model.ContextCategory(name)
		st.Contexts = append(st.Contexts, cs)
	}
	return st, rows.Err()
}

func parseTime(v sql.NullString) *time.Time {
	if !v.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil
	}
	return &t
}
