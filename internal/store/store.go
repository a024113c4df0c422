// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists search runs and their ranked results in a local
// SQLite database, so past rankings can be listed and re-inspected without
// re-querying the API.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-hunter/internal/scoring"
)

const dbFile = "research-hunter.db"

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at dataDir/research-hunter.db
// and creates the schema if it does not exist.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			max_results INTEGER,
			current_year INTEGER,
			result_count INTEGER,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			rank INTEGER NOT NULL,
			paper_id TEXT,
			title TEXT,
			venue TEXT,
			url TEXT,
			authors TEXT,
			year INTEGER,
			citations INTEGER,
			relevance INTEGER,
			impact INTEGER,
			recency INTEGER,
			total INTEGER,
			matched_keywords TEXT,
			PRIMARY KEY (run_id, rank)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run summarizes one saved search.
type Run struct {
	ID          int64     `json:"id"`
	Query       string    `json:"query"`
	MaxResults  int       `json:"max_results"`
	CurrentYear int       `json:"current_year"`
	ResultCount int       `json:"result_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// SaveRun records a scored search: one runs row plus one results row per
// ranked paper, in a single transaction.
func (s *Store) SaveRun(ctx context.Context, query string, maxResults, currentYear int, rows []scoring.ScoredPaper) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (query, max_results, current_year, result_count, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		query, maxResults, currentYear, len(rows), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (run_id, rank, paper_id, title, venue, url, authors,
			year, citations, relevance, impact, recency, total, matched_keywords)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for rank, r := range rows {
		_, err := stmt.ExecContext(ctx, runID, rank+1,
			r.Paper.ID, r.Paper.Title, r.Paper.Venue, r.Paper.URL, r.Paper.AuthorsLine(),
			r.Paper.Year, r.Paper.CitationCount,
			r.Score.Relevance, r.Score.Impact, r.Score.Recency, r.Score.Total,
			strings.Join(r.Score.MatchedKeywords, "; "))
		if err != nil {
			return 0, fmt.Errorf("inserting result %d: %w", rank+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, max_results, current_year, result_count, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.Query, &r.MaxResults, &r.CurrentYear, &r.ResultCount, &created); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunResults returns the ranked results of one saved run, in rank order.
func (s *Store) RunResults(ctx context.Context, runID int64) ([]scoring.ScoredPaper, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT paper_id, title, venue, url, authors, year, citations,
			relevance, impact, recency, total, matched_keywords
		 FROM results WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var results []scoring.ScoredPaper
	for rows.Next() {
		var sp scoring.ScoredPaper
		var authors, matched string
		if err := rows.Scan(&sp.Paper.ID, &sp.Paper.Title, &sp.Paper.Venue, &sp.Paper.URL,
			&authors, &sp.Paper.Year, &sp.Paper.CitationCount,
			&sp.Score.Relevance, &sp.Score.Impact, &sp.Score.Recency, &sp.Score.Total,
			&matched); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		sp.Paper.Source = "history"
		if authors != "" {
			sp.Paper.Authors = strings.Split(authors, ", ")
		}
		if matched != "" {
			sp.Score.MatchedKeywords = strings.Split(matched, "; ")
		}
		results = append(results, sp)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	return results, rows.Err()
}
