package tabular

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
)

// Ensure XLSX implements the interface.
var _ driven.Extractor = (*XLSX)(nil)

// XLSX handles Office Open XML workbooks.
type XLSX struct{}

// NewXLSX creates a new workbook extractor.
func NewXLSX() *XLSX {
	return &XLSX{}
}

// Name identifies the extractor.
func (e *XLSX) Name() string {
	return "xlsx"
}

// Extensions returns the suffixes this extractor handles.
func (e *XLSX) Extensions() []string {
	return []string{".xlsx"}
}

// MIMETypes returns the MIME types this extractor handles.
func (e *XLSX) MIMETypes() []string {
	return []string{domain.MIMETypeXLSX}
}

// NeedsDeadline reports false.
func (e *XLSX) NeedsDeadline() bool {
	return false
}

// Extract renders every sheet in workbook order. Sheets are separated by a
// blank line; empty sheets are left out.
func (e *XLSX) Extract(_ context.Context, _, _ string, content []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var sheets []string
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return "", fmt.Errorf("read sheet %q: %w", name, err)
		}
		text, err := renderRows(trimEmptyRows(rows))
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) != "" {
			sheets = append(sheets, text)
		}
	}
	return strings.Join(sheets, "\n\n"), nil
}

// trimEmptyRows drops rows with no cells.
func trimEmptyRows(rows [][]string) [][]string {
	kept := rows[:0]
	for _, row := range rows {
		if len(row) > 0 {
			kept = append(kept, row)
		}
	}
	return kept
}
