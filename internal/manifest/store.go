// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest persists a queryable record of export runs and
// per-attachment outcomes in SQLite. It is reporting only: idempotence
// within a run is enforced by the fetcher's in-memory dedup set, not here.
package manifest

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mlaneve/trellodown/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "export.db"
)

// Store manages the export manifest database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the manifest database at outputDir/index/export.db
// and bootstraps the schema.
func Open(outputDir string) (*Store, error) {
	dir := filepath.Join(outputDir, indexDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
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
			board_id TEXT,
			board_name TEXT,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			authenticated INTEGER NOT NULL,
			cards INTEGER,
			downloaded INTEGER,
			failed INTEGER,
			skipped INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS attachments (
			run_id TEXT NOT NULL REFERENCES runs(id),
			attachment_id TEXT NOT NULL,
			card_name TEXT,
			name TEXT,
			url TEXT,
			local_path TEXT,
			succeeded INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attachments_run_id ON attachments(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BeginRun inserts a new run row and returns its generated identifier.
func (s *Store) BeginRun(b *types.Board, authenticated bool) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, board_id, board_name, started_at, authenticated)
		 VALUES (?, ?, ?, ?, ?)`,
		id, b.ID, b.Name, time.Now().UTC().Format(time.RFC3339), boolInt(authenticated),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}
	return id, nil
}

// RecordAttachment appends one attachment outcome row to the run.
func (s *Store) RecordAttachment(runID, cardName string, att *types.Attachment, outcome types.Outcome) error {
	_, err := s.db.Exec(
		`INSERT INTO attachments (run_id, attachment_id, card_name, name, url, local_path, succeeded)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, att.ID, cardName, att.Name, att.URL, outcome.LocalPath, boolInt(outcome.Succeeded),
	)
	if err != nil {
		return fmt.Errorf("inserting attachment outcome: %w", err)
	}
	return nil
}

// FinishRun stamps the run with its completion time and final counters.
func (s *Store) FinishRun(runID string, cards, downloaded, failed, skipped int) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, cards = ?, downloaded = ?, failed = ?, skipped = ?
		 WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), cards, downloaded, failed, skipped, runID,
	)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	return nil
}

// RunCounts returns the recorded succeeded/failed attachment row counts for
// one run.
func (s *Store) RunCounts(runID string) (succeeded, failed int, err error) {
	err = s.db.QueryRow(
		`SELECT
			COUNT(CASE WHEN succeeded = 1 THEN 1 END),
			COUNT(CASE WHEN succeeded = 0 THEN 1 END)
		 FROM attachments WHERE run_id = ?`, runID,
	).Scan(&succeeded, &failed)
	if err != nil {
		return 0, 0, fmt.Errorf("counting attachment rows: %w", err)
	}
	return succeeded, failed, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
