// Package tabular extracts text from spreadsheets. Every row is rendered
// as one comma-delimited line.
package tabular

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
)

// Ensure CSV implements the interface.
var _ driven.Extractor = (*CSV)(nil)

// CSV handles comma-separated files.
type CSV struct{}

// NewCSV creates a new CSV extractor.
func NewCSV() *CSV {
	return &CSV{}
}

// Name identifies the extractor.
func (e *CSV) Name() string {
	return "csv"
}

// Extensions returns the suffixes this extractor handles.
func (e *CSV) Extensions() []string {
	return []string{".csv"}
}

// MIMETypes returns the MIME types this extractor handles.
func (e *CSV) MIMETypes() []string {
	return []string{domain.MIMETypeCSV}
}

// NeedsDeadline reports false.
func (e *CSV) NeedsDeadline() bool {
	return false
}

// Extract parses content as CSV and re-serialises it comma-delimited.
func (e *CSV) Extract(_ context.Context, _, _ string, content []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse csv: %w", err)
		}
		rows = append(rows, row)
	}
	return renderRows(rows)
}

// renderRows writes rows comma-delimited, one per line, without a trailing newline.
func renderRows(rows [][]string) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("render rows: %w", err)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
