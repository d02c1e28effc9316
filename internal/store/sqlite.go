package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/kohljary/driftwatch/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	limits Limits

	mu      sync.Mutex
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
// A file that is not a readable SQLite database is moved aside to
// <path>.corrupt-<ulid> and replaced with an empty database.
func NewSQLiteStore(dbPath string, limits Limits) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	s := &SQLiteStore{
		limits:  limits.withDefaults(),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	db, err := openDB(dbPath)
	if isCorrupt(err) {
		aside := dbPath + ".corrupt-" + s.newID()
		log.Warn().Err(err).Str("path", dbPath).Str("moved_to", aside).Msg("database unreadable, starting empty")
		if err := quarantine(dbPath, aside); err != nil {
			return nil, fmt.Errorf("move corrupt db: %w", err)
		}
		db, err = openDB(dbPath)
	}
	if err != nil {
		return nil, err
	}
	s.db = db
	return s, nil
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Single writer; one connection keeps read-modify-write cycles serialized.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// isCorrupt reports whether err means the file itself is not usable as a
// database, as opposed to an I/O or permission failure.
func isCorrupt(err error) bool {
	if err == nil {
		return false
	}
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() & 0xff {
		case sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
			return true
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "file is not a database") || strings.Contains(msg, "database disk image is malformed")
}

// quarantine renames the database and drops its WAL and shared-memory files,
// which belong to the corrupt image.
func quarantine(dbPath, aside string) error {
	if err := os.Rename(dbPath, aside); err != nil {
		return err
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(dbPath + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS samples (
		seq             INTEGER PRIMARY KEY AUTOINCREMENT,
		id              TEXT NOT NULL UNIQUE,
		context         TEXT NOT NULL,
		markers         TEXT NOT NULL,
		conversation_id TEXT,
		message_id      TEXT,
		created_at      TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_samples_context ON samples(context);

	CREATE TABLE IF NOT EXISTS sample_totals (
		context TEXT PRIMARY KEY,
		total   INTEGER NOT NULL
	);
	INSERT OR IGNORE INTO sample_totals (context, total)
		SELECT context, COUNT(*) FROM samples GROUP BY context;

	CREATE TABLE IF NOT EXISTS profiles (
		context    TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reports (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT NOT NULL UNIQUE,
		data       TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	_, err := db.Exec(schema)
	return err
}

func (s *SQLiteStore) AppendSample(ctx context.Context, smp model.Sample) error {
	if smp.ID == "" {
		smp.ID = s.newID()
	}
	if smp.Timestamp.IsZero() {
		smp.Timestamp = time.Now().UTC()
	}
	markers, err := json.Marshal(smp.Markers)
	if err != nil {
		return fmt.Errorf("encode markers: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO samples (id, context, markers, conversation_id, message_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		smp.ID, string(smp.Context), string(markers),
		nullString(smp.ConversationID), nullString(smp.MessageID),
		smp.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sample_totals (context, total) VALUES (?, 1)
		 ON CONFLICT(context) DO UPDATE SET total = total + 1`,
		string(smp.Context))
	if err != nil {
		return fmt.Errorf("count sample: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM samples WHERE seq NOT IN (SELECT seq FROM samples ORDER BY seq DESC LIMIT ?)`,
		s.limits.Samples)
	if err != nil {
		return fmt.Errorf("prune samples: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) Samples(ctx context.Context) ([]model.Sample, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, context, markers, conversation_id, message_id, created_at
		 FROM samples ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	samples := []model.Sample{}
	for rows.Next() {
		var smp model.Sample
		var ctxName, markers, createdAt string
		var convID, msgID sql.NullString
		if err := rows.Scan(&smp.ID, &ctxName, &markers, &convID, &msgID, &createdAt); err != nil {
			return nil, err
		}
		smp.Context = model.ContextCategory(ctxName)
		if !smp.Context.Valid() {
			skipRow("samples", smp.ID, fmt.Errorf("unknown context %q", ctxName))
			continue
		}
		if err := json.Unmarshal([]byte(markers), &smp.Markers); err != nil {
			skipRow("samples", smp.ID, err)
			continue
		}
		smp.Timestamp, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			skipRow("samples", smp.ID, err)
			continue
		}
		smp.ConversationID = convID.String
		smp.MessageID = msgID.String
		samples = append(samples, smp)
	}
	return samples, rows.Err()
}

func (s *SQLiteStore) SampleTotals(ctx context.Context) (map[model.ContextCategory]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT context, total FROM sample_totals`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := map[model.ContextCategory]int{}
	for rows.Next() {
		var ctxName string
		var n int
		if err := rows.Scan(&ctxName, &n); err != nil {
			return nil, err
		}
		c := model.ContextCategory(ctxName)
		if !c.Valid() {
			skipRow("sample_totals", ctxName, fmt.Errorf("unknown context"))
			continue
		}
		totals[c] = n
	}
	return totals, rows.Err()
}

func (s *SQLiteStore) SaveProfile(ctx context.Context, p model.ContextProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (context, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(context) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(p.Context), string(data), p.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Profile(ctx context.Context, c model.ContextCategory) (*model.ContextProfile, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM profiles WHERE context = ?`, string(c)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p model.ContextProfile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		skipRow("profiles", string(c), err)
		return nil, nil
	}
	return &p, nil
}

func (s *SQLiteStore) Profiles(ctx context.Context) (map[model.ContextCategory]model.ContextProfile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT context, data FROM profiles`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := map[model.ContextCategory]model.ContextProfile{}
	for rows.Next() {
		var ctxName, data string
		if err := rows.Scan(&ctxName, &data); err != nil {
			return nil, err
		}
		c := model.ContextCategory(ctxName)
		if !c.Valid() {
			skipRow("profiles", ctxName, fmt.Errorf("unknown context"))
			continue
		}
		var p model.ContextProfile
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			skipRow("profiles", ctxName, err)
			continue
		}
		profiles[c] = p
	}
	return profiles, rows.Err()
}

func (s *SQLiteStore) AppendReport(ctx context.Context, r model.ConsistencyScore) error {
	if r.ID == "" {
		r.ID = s.newID()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reports (id, data, created_at) VALUES (?, ?, ?)`,
		r.ID, string(data), r.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM reports WHERE seq NOT IN (SELECT seq FROM reports ORDER BY seq DESC LIMIT ?)`,
		s.limits.Reports)
	if err != nil {
		return fmt.Errorf("prune reports: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) Reports(ctx context.Context, limit int) ([]model.ConsistencyScore, error) {
	if limit <= 0 {
		limit = -1 // no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM reports ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []model.ConsistencyScore{}
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		var r model.ConsistencyScore
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			skipRow("reports", id, err)
			continue
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func skipRow(table, id string, err error) {
	log.Warn().Str("table", table).Str("id", id).Err(err).Msg("skipping unreadable row")
}

func nullString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
