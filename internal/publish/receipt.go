// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docpress/internal/markup"
	"github.com/pdiddy/docpress/pkg/types"
)

// Receipt is the YAML record written after a successful publish: the
// document record plus the translation counts behind it.
type Receipt struct {
	types.Document `yaml:",inline"`
	Stats          markup.Stats `yaml:"stats"`
}

// WriteReceipt writes dir/<stem>.yaml for a published document. A later
// publish of a source with the same stem replaces the receipt.
func WriteReceipt(dir string, doc *types.Document, stats markup.Stats) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating receipts directory: %w", err)
	}

	receipt := Receipt{Document: *doc, Stats: stats}
	data, err := yaml.Marshal(&receipt)
	if err != nil {
		return fmt.Errorf("marshaling receipt: %w", err)
	}

	return os.WriteFile(ReceiptPath(dir, doc.SourcePath), data, 0o644)
}

// ReadReceipt loads a previously written receipt.
func ReadReceipt(path string) (*Receipt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var receipt Receipt
	if err := yaml.Unmarshal(data, &receipt); err != nil {
		return nil, fmt.Errorf("parsing receipt %s: %w", path, err)
	}
	return &receipt, nil
}

// ReceiptPath returns the receipt location for a source file: the source
// filename stem with a .yaml extension under dir.
func ReceiptPath(dir, sourcePath string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+".yaml")
}
