package extractors

import (
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
	"github.com/custodia-labs/persona-cli/internal/extractors/docx"
	"github.com/custodia-labs/persona-cli/internal/extractors/html"
	"github.com/custodia-labs/persona-cli/internal/extractors/image"
	"github.com/custodia-labs/persona-cli/internal/extractors/pdf"
	"github.com/custodia-labs/persona-cli/internal/extractors/plaintext"
	"github.com/custodia-labs/persona-cli/internal/extractors/pptx"
	"github.com/custodia-labs/persona-cli/internal/extractors/tabular"
)

// NewDefaultRegistry returns a registry holding every built-in extractor.
// When detector is nil, images are left unregistered and are skipped as
// unsupported.
func NewDefaultRegistry(detector driven.TextDetector) *Registry {
	r := NewRegistry()
	r.Register(tabular.NewCSV())
	r.Register(tabular.NewXLSX())
	r.Register(pdf.New())
	r.Register(docx.New())
	r.Register(pptx.New())
	r.Register(html.New())
	if detector != nil {
		r.Register(image.New(detector))
	}
	r.Register(plaintext.New())
	return r
}
