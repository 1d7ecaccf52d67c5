// Package publish drives the pipeline from markup source to published
// document: read the file, create a document, translate the markup, and
// apply the batch update.
package publish

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/api/docs/v1"

	"github.com/pdiddy/docpress/internal/gdocs"
	"github.com/pdiddy/docpress/internal/markup"
	"github.com/pdiddy/docpress/pkg/types"
)

// Backend creates documents and applies update batches. *gdocs.Client
// satisfies it; tests substitute fakes.
type Backend interface {
	CreateDocument(ctx context.Context, title string) (string, error)
	ApplyBatch(ctx context.Context, documentID string, reqs []*docs.Request) error
}

// Log records publications and answers already-published lookups.
// *history.Store satisfies it. A nil Log disables duplicate detection and
// recording.
type Log interface {
	Lookup(ctx context.Context, sourceSHA256 string) (*types.Document, error)
	Record(ctx context.Context, doc types.Document) error
}

// Options control a publish run.
type Options struct {
	// Title overrides title derivation. Meaningful for single-file runs.
	Title string

	// Force publishes even when the content hash is already recorded.
	Force bool
}

// BatchResult holds the outcome of a batch publish run.
type BatchResult struct {
	Published int
	Skipped   int
	Failed    int
	Documents []*types.Document
}

// Total returns the total number of source files processed.
func (r BatchResult) Total() int {
	return r.Published + r.Skipped + r.Failed
}

// HasFailures reports whether any sources failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Pipeline publishes markup sources through a document backend.
type Pipeline struct {
	Backend Backend
	Log     Log

	// ReceiptsDir receives one YAML receipt per published document.
	// Empty disables receipts.
	ReceiptsDir string
}

// PublishFile publishes a single markup file. The skipped return value
// reports that the same content was already published and no new document
// was created; the previous record is returned in that case.
func (p *Pipeline) PublishFile(ctx context.Context, path string, opts Options, w io.Writer) (doc *types.Document, skipped bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("reading source: %w", err)
	}
	text := string(data)

	sum := sha256.Sum256(data)
	sourceSHA := hex.EncodeToString(sum[:])

	// Skip if this exact content was already published.
	if p.Log != nil && !opts.Force {
		prev, err := p.Log.Lookup(ctx, sourceSHA)
		if err != nil {
			return nil, false, fmt.Errorf("checking publish history: %w", err)
		}
		if prev != nil {
			fmt.Fprintf(w, "skipped: %s (already published as %s)\n", path, prev.DocID)
			return prev, true, nil
		}
	}

	title := resolveTitle(opts.Title, text, path)

	fmt.Fprintf(w, "publishing: %s (%s)\n", path, title)

	docID, err := p.Backend.CreateDocument(ctx, title)
	if err != nil {
		return nil, false, fmt.Errorf("creating document: %w", err)
	}

	// A failed batch leaves the created document empty; it is reported,
	// not retried.
	batch := markup.Translate(text)
	if err := p.Backend.ApplyBatch(ctx, docID, batch.Requests); err != nil {
		return nil, false, fmt.Errorf("updating document %s: %w", docID, err)
	}

	doc = &types.Document{
		DocID:        docID,
		Title:        title,
		SourcePath:   path,
		SourceSHA256: sourceSHA,
		URL:          gdocs.DocumentURL(docID),
		Lines:        batch.Stats.Lines,
		Requests:     batch.Stats.Requests,
		PublishedAt:  time.Now().UTC(),
	}

	// The document exists remotely at this point, so local bookkeeping
	// failures downgrade to warnings.
	if p.ReceiptsDir != "" {
		if err := WriteReceipt(p.ReceiptsDir, doc, batch.Stats); err != nil {
			fmt.Fprintf(w, "  warning: receipt write failed: %v\n", err)
		}
	}
	if p.Log != nil {
		if err := p.Log.Record(ctx, *doc); err != nil {
			fmt.Fprintf(w, "  warning: history record failed: %v\n", err)
		}
	}

	fmt.Fprintf(w, "published: %s -> %s\n", path, doc.URL)
	return doc, false, nil
}

// Run publishes multiple sources, printing per-item status and returning a
// summary. It continues after individual failures.
func (p *Pipeline) Run(ctx context.Context, sources []string, opts Options, w io.Writer) BatchResult {
	var result BatchResult
	for _, path := range sources {
		doc, wasSkipped, err := p.PublishFile(ctx, path, opts, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
			result.Failed++
			continue
		}
		if wasSkipped {
			result.Skipped++
		} else {
			result.Published++
		}
		result.Documents = append(result.Documents, doc)
	}
	fmt.Fprintf(w, "\nBatch summary: %d published, %d skipped, %d failed (total: %d)\n",
		result.Published, result.Skipped, result.Failed, result.Total())
	return result
}

// resolveTitle picks the document title: explicit override, then the first
// top-level heading, then the source filename stem.
func resolveTitle(override, text, path string) string {
	if override != "" {
		return override
	}
	if title := markup.DeriveTitle(text); title != "" {
		return title
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
