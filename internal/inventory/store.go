// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inventory persists processed article tables in a local SQLite
// database with full-text search over titles and abstracts, so finished
// inventories can be queried without re-reading CSVs.
package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/k8hertweck/inventory-2022/internal/table"
)

const (
	indexDir = "index"
	dbFile   = "inventory.db"
)

// Store manages the inventory SQLite database.
type Store struct {
	db         *sql.DB
	baseDir    string
	maxResults int
}

// Open opens or creates the database at baseDir/index/inventory.db,
// creating the schema if it does not exist.
func Open(baseDir string, maxResults int) (*Store, error) {
	dbDir := filepath.Join(baseDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, baseDir: baseDir, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT,
			abstract TEXT,
			predicted_label TEXT,
			extracted_url TEXT,
			extracted_url_status TEXT,
			wayback_url TEXT,
			ingested_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_label ON articles(predicted_label)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='articles_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE articles_fts USING fts5(title, abstract, content=articles, content_rowid=rowid)`,
			`CREATE TRIGGER articles_ai AFTER INSERT ON articles BEGIN
				INSERT INTO articles_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER articles_ad AFTER DELETE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE TRIGGER articles_au AFTER UPDATE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
				INSERT INTO articles_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from one ingestion run.
type IngestSummary struct {
	Ingested int
	Updated  int
	Failed   int
}

// Total returns the number of rows processed.
func (s IngestSummary) Total() int {
	return s.Ingested + s.Updated + s.Failed
}

// ingestColumns maps recognized CSV columns to article fields. Only id is
// required; every other column is stored when present.
var ingestColumns = []string{
	"title", "abstract", "predicted_label",
	"extracted_url", "extracted_url_status", "wayback_url",
}

// IngestTable upserts each row of a processed inventory table by article ID.
// Rows continue after individual failures; the summary reports both counts.
func (s *Store) IngestTable(ctx context.Context, t table.Table, file string, w io.Writer) (IngestSummary, error) {
	idIdx := t.ColumnIndex("id")
	if idIdx < 0 {
		idIdx = t.ColumnIndex("ID")
	}
	if idIdx < 0 {
		return IngestSummary{}, fmt.Errorf("file %s is missing required column(s): id", file)
	}

	colIdx := make(map[string]int, len(ingestColumns))
	for _, c := range ingestColumns {
		colIdx[c] = t.ColumnIndex(c)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	var summary IngestSummary

	for _, row := range t.Rows {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		id := row[idIdx]
		if id == "" {
			fmt.Fprintf(w, "failed  row with empty id\n")
			summary.Failed++
			continue
		}

		get := func(col string) string {
			if idx := colIdx[col]; idx >= 0 {
				return row[idx]
			}
			return ""
		}

		var exists int
		if err := s.db.QueryRowContext(ctx,
			`SELECT count(*) FROM articles WHERE id = ?`, id,
		).Scan(&exists); err != nil {
			return summary, fmt.Errorf("checking article %s: %w", id, err)
		}

		_, err := s.db.ExecContext(ctx,
			`INSERT INTO articles (id, title, abstract, predicted_label,
				extracted_url, extracted_url_status, wayback_url, ingested_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				title=excluded.title, abstract=excluded.abstract,
				predicted_label=excluded.predicted_label,
				extracted_url=excluded.extracted_url,
				extracted_url_status=excluded.extracted_url_status,
				wayback_url=excluded.wayback_url,
				ingested_at=excluded.ingested_at`,
			id, get("title"), get("abstract"), get("predicted_label"),
			get("extracted_url"), get("extracted_url_status"), get("wayback_url"), now,
		)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}

		if exists > 0 {
			summary.Updated++
		} else {
			summary.Ingested++
		}
	}

	fmt.Fprintf(w, "\ningested: %d, updated: %d, failed: %d\n",
		summary.Ingested, summary.Updated, summary.Failed)
	return summary, nil
}

// IngestFile reads a processed CSV and ingests it.
func (s *Store) IngestFile(ctx context.Context, file string, w io.Writer) (IngestSummary, error) {
	t, err := table.ReadFile(file)
	if err != nil {
		return IngestSummary{}, err
	}
	return s.IngestTable(ctx, t, file, w)
}
