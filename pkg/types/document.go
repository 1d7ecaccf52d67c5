// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the docpress pipeline.
package types

import "time"

// Document records one published document.
type Document struct {
	// DocID is the identifier the Docs API assigned at creation.
	DocID string `json:"doc_id" yaml:"doc_id"`

	// Title is the document title, taken from the first top-level
	// heading or the source filename.
	Title string `json:"title" yaml:"title"`

	// SourcePath is the markup file the document was published from.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// SourceSHA256 is the hex digest of the source contents, used to
	// detect already-published files.
	SourceSHA256 string `json:"source_sha256" yaml:"source_sha256"`

	// URL is the canonical edit link for the document.
	URL string `json:"url" yaml:"url"`

	// Lines and Requests are translation counts recorded for the run.
	Lines    int `json:"lines" yaml:"lines"`
	Requests int `json:"requests" yaml:"requests"`

	// PublishedAt is when the batch update completed.
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`
}
