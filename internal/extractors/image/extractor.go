// Package image extracts text from raster images through OCR.
package image

import (
	"context"
	"fmt"

	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor sends images to a TextDetector.
type Extractor struct {
	detector driven.TextDetector
}

// New creates an OCR extractor backed by detector.
func New(detector driven.TextDetector) *Extractor {
	return &Extractor{detector: detector}
}

// Name identifies the extractor.
func (e *Extractor) Name() string {
	return "image"
}

// Extensions returns the suffixes this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".tiff"}
}

// MIMETypes returns the MIME types this extractor handles.
func (e *Extractor) MIMETypes() []string {
	return []string{"image/*"}
}

// NeedsDeadline reports true; OCR is a remote call.
func (e *Extractor) NeedsDeadline() bool {
	return true
}

// Extract returns the top-ranked annotation, which holds the full detected
// text, or an empty string when nothing was detected.
func (e *Extractor) Extract(ctx context.Context, _, _ string, content []byte) (string, error) {
	annotations, err := e.detector.DetectText(ctx, content)
	if err != nil {
		return "", fmt.Errorf("detect text: %w", err)
	}
	if len(annotations) == 0 {
		return "", nil
	}
	return annotations[0], nil
}
