// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a log of published documents and answers
// already-published lookups by source content hash.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docpress/pkg/types"
)

const dbFile = "history.db"

// Store manages the publish history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the history database at dir/history.db. It creates
// the schema if it does not exist.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}

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
		`CREATE TABLE IF NOT EXISTS documents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			doc_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			source_path TEXT NOT NULL,
			source_sha256 TEXT NOT NULL,
			url TEXT NOT NULL,
			line_count INTEGER NOT NULL,
			request_count INTEGER NOT NULL,
			published_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_source_sha256 ON documents(source_sha256)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_published_at ON documents(published_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	return nil
}

// Record stores one publication, replacing any earlier record of the same
// document.
func (s *Store) Record(ctx context.Context, doc types.Document) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (doc_id, title, source_path, source_sha256, url, line_count, request_count, published_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(doc_id) DO UPDATE SET
			title=excluded.title, source_path=excluded.source_path,
			source_sha256=excluded.source_sha256, url=excluded.url,
			line_count=excluded.line_count, request_count=excluded.request_count,
			published_at=excluded.published_at`,
		doc.DocID, doc.Title, doc.SourcePath, doc.SourceSHA256, doc.URL,
		doc.Lines, doc.Requests, doc.PublishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording publication: %w", err)
	}
	return nil
}

// Lookup returns the most recent publication of the source with the given
// content hash, or nil when that content has never been published.
func (s *Store) Lookup(ctx context.Context, sourceSHA256 string) (*types.Document, error) {
	var doc types.Document
	var publishedAt string

	err := s.db.QueryRowContext(ctx,
		`SELECT doc_id, title, source_path, source_sha256, url, line_count, request_count, published_at
		 FROM documents WHERE source_sha256 = ?
		 ORDER BY published_at DESC, rowid DESC LIMIT 1`,
		sourceSHA256,
	).Scan(&doc.DocID, &doc.Title, &doc.SourcePath, &doc.SourceSHA256,
		&doc.URL, &doc.Lines, &doc.Requests, &publishedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("looking up source hash: %w", err)
	}

	doc.PublishedAt, err = parseTimestamp(publishedAt)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListOptions holds parameters for history listings.
type ListOptions struct {
	// Query filters by substring match over title and source path.
	Query string

	// Limit caps the number of rows returned. Zero uses the store default.
	Limit int
}

// List returns publications newest first, optionally filtered by a
// substring of the title or source path.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Document, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(
		`SELECT doc_id, title, source_path, source_sha256, url, line_count, request_count, published_at
		FROM documents
		WHERE 1=1`)

	if opts.Query != "" {
		qb.WriteString(` AND (title LIKE ? OR source_path LIKE ?)`)
		pattern := "%" + opts.Query + "%"
		args = append(args, pattern, pattern)
	}

	qb.WriteString(` ORDER BY published_at DESC, rowid DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var docs []types.Document
	for rows.Next() {
		var doc types.Document
		var publishedAt string

		if err := rows.Scan(&doc.DocID, &doc.Title, &doc.SourcePath, &doc.SourceSHA256,
			&doc.URL, &doc.Lines, &doc.Requests, &publishedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		doc.PublishedAt, err = parseTimestamp(publishedAt)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

func parseTimestamp(s string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing published_at: %w", err)
	}
	return ts, nil
}
