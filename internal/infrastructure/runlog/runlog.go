// Package runlog stores the outcome of each briefing run in SQLite.
// Only counts and errors are kept; article content is never written.
package runlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tesso57/briefing/internal/application/usecase"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	articles INTEGER NOT NULL,
	sources_failed INTEGER NOT NULL,
	error TEXT NOT NULL DEFAULT ''
)`

const startedIndex = `CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`

// Store is a SQLite-backed usecase.RunRecorder.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the run log at path and applies the schema.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("run log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create run log directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	for _, stmt := range []string{schema, startedIndex} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to migrate run log: %w", err)
		}
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record implements usecase.RunRecorder.
func (s *Store) Record(ctx context.Context, run usecase.RunRecord) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("run id is empty")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, duration_ms, articles, sources_failed, error) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UnixMilli(),
		run.Duration.Milliseconds(),
		run.Articles,
		run.SourcesFailed,
		run.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]usecase.RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, articles, sources_failed, error FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []usecase.RunRecord
	for rows.Next() {
		var (
			run        usecase.RunRecord
			startedMS  int64
			durationMS int64
		)
		if err := rows.Scan(&run.ID, &startedMS, &durationMS, &run.Articles, &run.SourcesFailed, &run.Error); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt = time.UnixMilli(startedMS)
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
