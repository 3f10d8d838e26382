// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runstore persists completed comparison runs in SQLite so
// reports can be listed and fetched after the fact. One row per run;
// the full report is stored as a JSON blob and the summary columns are
// denormalized for cheap listing.
package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/transcheck/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "transcheck.db"
)

// Run is one persisted comparison run.
type Run struct {
	ID         string        `json:"id"`
	CreatedAt  time.Time     `json:"created_at"`
	SourcePath string        `json:"source_path"`
	TargetPath string        `json:"target_path"`
	Mode       string        `json:"mode"` // "rules" or "llm"
	Summary    types.Summary `json:"summary"`
	Report     types.Report  `json:"report"`
}

// Store manages the runs SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at runsDir/index/transcheck.db,
// creating the schema if needed.
func Open(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.RunsDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			source_path TEXT,
			target_path TEXT,
			mode TEXT NOT NULL,
			high INTEGER NOT NULL,
			medium INTEGER NOT NULL,
			low INTEGER NOT NULL,
			segments INTEGER NOT NULL,
			report TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save inserts a completed run.
func (s *Store) Save(ctx context.Context, r Run) error {
	reportJSON, err := json.Marshal(r.Report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, source_path, target_path, mode, high, medium, low, segments, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.SourcePath, r.TargetPath, r.Mode,
		r.Summary.High, r.Summary.Medium, r.Summary.Low, r.Summary.Segments, string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", r.ID, err)
	}
	return nil
}

// Get fetches one run by ID, including its full report.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, source_path, target_path, mode, high, medium, low, segments, report
		 FROM runs WHERE id = ?`, id)

	var (
		r         Run
		createdAt string
		report    string
	)
	err := row.Scan(&r.ID, &createdAt, &r.SourcePath, &r.TargetPath, &r.Mode,
		&r.Summary.High, &r.Summary.Medium, &r.Summary.Low, &r.Summary.Segments, &report)
	if err == sql.ErrNoRows {
		return Run{}, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("reading run %s: %w", id, err)
	}

	if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		r.CreatedAt = t
	}
	if err := json.Unmarshal([]byte(report), &r.Report); err != nil {
		return Run{}, fmt.Errorf("decoding report for run %s: %w", id, err)
	}
	return r, nil
}

// List returns runs newest first, without their report payloads, capped
// at limit (default 50 when limit <= 0).
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source_path, target_path, mode, high, medium, low, segments
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r         Run
			createdAt string
		)
		if err := rows.Scan(&r.ID, &createdAt, &r.SourcePath, &r.TargetPath, &r.Mode,
			&r.Summary.High, &r.Summary.Medium, &r.Summary.Low, &r.Summary.Segments); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
			r.CreatedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
