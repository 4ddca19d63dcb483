// Package pptx extracts shape text from PowerPoint slide decks.
package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
	"github.com/custodia-labs/persona-cli/internal/extractors/ooxml"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

var slidePart = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Extractor handles PPTX slide decks.
type Extractor struct{}

// New creates a new PPTX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name identifies the extractor.
func (e *Extractor) Name() string {
	return "pptx"
}

// Extensions returns the suffixes this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".pptx"}
}

// MIMETypes returns the MIME types this extractor handles.
func (e *Extractor) MIMETypes() []string {
	return []string{domain.MIMETypePPTX}
}

// NeedsDeadline reports true; decks with huge embedded parts can stall
// decompression.
func (e *Extractor) NeedsDeadline() bool {
	return true
}

type slide struct {
	number int
	file   *zip.File
}

// Extract returns the text of every shape on every slide, slides in deck
// order, joined by a newline.
func (e *Extractor) Extract(ctx context.Context, _, _ string, content []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pptx: %w", err)
	}

	var slides []slide
	for _, f := range archive.File {
		m := slidePart.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slide{number: n, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].number < slides[j].number })

	var lines []string
	for _, s := range slides {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		paragraphs, err := readSlide(s.file)
		if err != nil {
			return "", fmt.Errorf("slide %d: %w", s.number, err)
		}
		lines = append(lines, paragraphs...)
	}
	return strings.Join(lines, "\n"), nil
}

func readSlide(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ooxml.Paragraphs(rc)
}
