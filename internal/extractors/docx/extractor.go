// Package docx extracts paragraph text from Word documents.
package docx

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
	"github.com/custodia-labs/persona-cli/internal/extractors/ooxml"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles DOCX documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name identifies the extractor.
func (e *Extractor) Name() string {
	return "docx"
}

// Extensions returns the suffixes this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".docx"}
}

// MIMETypes returns the MIME types this extractor handles.
func (e *Extractor) MIMETypes() []string {
	return []string{domain.MIMETypeDOCX}
}

// NeedsDeadline reports false.
func (e *Extractor) NeedsDeadline() bool {
	return false
}

// Extract returns the non-empty paragraphs of the main document part,
// joined by a newline.
func (e *Extractor) Extract(_ context.Context, _, _ string, content []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	paragraphs, err := ooxml.Paragraphs(strings.NewReader(doc.Editable().GetContent()))
	if err != nil {
		return "", fmt.Errorf("read document.xml: %w", err)
	}
	return strings.Join(paragraphs, "\n"), nil
}
