// Package history persists sort runs and their per-file results in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vmunix/extsort/internal/migrations"
	"github.com/vmunix/extsort/internal/sorter"
)

// Run is a recorded sort run.
type Run struct {
	ID         string
	Source     string
	Output     string
	Copied     int
	Failed     int
	Bytes      int64
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Copy is a recorded copy task.
type Copy struct {
	ID          int64
	RunID       string
	Source      string
	Destination string
	Bytes       int64
	Duration    time.Duration
	Error       string // empty on success
}

// Store persists history records.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}

	return NewStore(db), nil
}

// NewStore creates a history store on an already migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a run and all of its results in one transaction.
func (s *Store) Record(ctx context.Context, report *sorter.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, output, copied, failed, bytes, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.Source, report.Output, report.Copied(), report.Failed(), report.Bytes(),
		report.StartedAt.UTC(), report.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO copies (run_id, source, destination, bytes, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare copy insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, res := range report.Results {
		var errText sql.NullString
		if res.Err != nil {
			errText = sql.NullString{String: res.Err.Error(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, report.ID, res.Source, res.Destination,
			res.Bytes, res.Duration.Milliseconds(), errText); err != nil {
			return fmt.Errorf("insert copy: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListRuns returns recorded runs, most recent first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT id, source, output, copied, failed, bytes, started_at, finished_at
		FROM runs ORDER BY started_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		r := &Run{}
		if err := rows.Scan(&r.ID, &r.Source, &r.Output, &r.Copied, &r.Failed, &r.Bytes,
			&r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// ListFailures returns failed copies, newest run first. An empty runID
// lists failures across all runs.
func (s *Store) ListFailures(ctx context.Context, runID string, limit int) ([]*Copy, error) {
	query := `SELECT c.id, c.run_id, c.source, c.destination, c.bytes, c.duration_ms, c.error
		FROM copies c JOIN runs r ON r.id = c.run_id
		WHERE c.error IS NOT NULL`
	var args []any
	if runID != "" {
		query += " AND c.run_id = ?"
		args = append(args, runID)
	}
	query += " ORDER BY r.started_at DESC, c.id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list failures: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var copies []*Copy
	for rows.Next() {
		c := &Copy{}
		var ms int64
		var errText sql.NullString
		if err := rows.Scan(&c.ID, &c.RunID, &c.Source, &c.Destination, &c.Bytes, &ms, &errText); err != nil {
			return nil, fmt.Errorf("scan copy: %w", err)
		}
		c.Duration = time.Duration(ms) * time.Millisecond
		c.Error = errText.String
		copies = append(copies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate copies: %w", err)
	}

	return copies, nil
}
