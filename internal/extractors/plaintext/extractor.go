// Package plaintext extracts text from plain text and Markdown files.
package plaintext

import (
	"bytes"
	"context"
	"strings"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extractor returns text files as-is.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name identifies the extractor.
func (e *Extractor) Name() string {
	return "plaintext"
}

// Extensions returns the suffixes this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".txt", ".md", ".markdown"}
}

// MIMETypes returns the MIME types this extractor handles.
func (e *Extractor) MIMETypes() []string {
	return []string{domain.MIMETypeText, "text/markdown"}
}

// NeedsDeadline reports false; reading text cannot block.
func (e *Extractor) NeedsDeadline() bool {
	return false
}

// Extract returns content as UTF-8 text. A byte order mark is dropped and
// invalid sequences are removed.
func (e *Extractor) Extract(_ context.Context, _, _ string, content []byte) (string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	return strings.ToValidUTF8(string(content), ""), nil
}
