// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/docpress/internal/markup"
	"github.com/pdiddy/docpress/pkg/types"
)

func TestWriteReceiptRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "receipts")
	doc := &types.Document{
		DocID:        "doc-9",
		Title:        "Weekly Sync",
		SourcePath:   "notes/sync.md",
		SourceSHA256: "abc123",
		URL:          "https://docs.google.com/document/d/doc-9/edit",
		Lines:        10,
		Requests:     31,
		PublishedAt:  time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
	}
	stats := markup.Stats{Lines: 10, Headings: 1, Bullets: 2, BulletRuns: 1, Checklists: 1, Mentions: 1, Requests: 31}

	if err := WriteReceipt(dir, doc, stats); err != nil {
		t.Fatal(err)
	}

	receipt, err := ReadReceipt(ReceiptPath(dir, doc.SourcePath))
	if err != nil {
		t.Fatal(err)
	}

	if receipt.DocID != doc.DocID {
		t.Errorf("DocID = %q, want %q", receipt.DocID, doc.DocID)
	}
	if receipt.Title != doc.Title {
		t.Errorf("Title = %q, want %q", receipt.Title, doc.Title)
	}
	if receipt.SourceSHA256 != doc.SourceSHA256 {
		t.Errorf("SourceSHA256 = %q, want %q", receipt.SourceSHA256, doc.SourceSHA256)
	}
	if receipt.URL != doc.URL {
		t.Errorf("URL = %q, want %q", receipt.URL, doc.URL)
	}
	if !receipt.PublishedAt.Equal(doc.PublishedAt) {
		t.Errorf("PublishedAt = %v, want %v", receipt.PublishedAt, doc.PublishedAt)
	}
	if receipt.Stats != stats {
		t.Errorf("Stats = %+v, want %+v", receipt.Stats, stats)
	}
}

func TestWriteReceiptCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "receipts")
	doc := &types.Document{DocID: "doc-1", SourcePath: "sync.md"}

	if err := WriteReceipt(dir, doc, markup.Stats{}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(ReceiptPath(dir, "sync.md")); err != nil {
		t.Errorf("receipt not written: %v", err)
	}
}

func TestReadReceiptMissing(t *testing.T) {
	_, err := ReadReceipt(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !os.IsNotExist(err) {
		t.Errorf("error = %v, want not-exist", err)
	}
}

func TestReadReceiptMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte(":\tnot yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadReceipt(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parsing receipt") {
		t.Errorf("error = %q, want parsing receipt", err)
	}
}

func TestReceiptPath(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"sync.md", "sync.yaml"},
		{"notes/standup.md", "standup.yaml"},
		{"/abs/path/plan.markdown", "plan.yaml"},
		{"no-extension", "no-extension.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got := ReceiptPath("receipts", tt.source)
			if got != filepath.Join("receipts", tt.want) {
				t.Errorf("ReceiptPath = %q, want %q", got, filepath.Join("receipts", tt.want))
			}
		})
	}
}
