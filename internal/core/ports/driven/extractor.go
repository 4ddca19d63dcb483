package driven

import "context"

// Extractor turns the bytes of one document format into plain text.
// Extract must be a pure function of its inputs.
type Extractor interface {
	// Name identifies the strategy in logs and manifests.
	Name() string

	// Extensions returns the lower-cased file suffixes handled, including the dot.
	Extensions() []string

	// MIMETypes returns the MIME types handled when no suffix matches.
	MIMETypes() []string

	// NeedsDeadline reports whether the underlying parser can block
	// indefinitely and must run under a deadline.
	NeedsDeadline() bool

	// Extract returns the text content. The result is not trimmed or truncated.
	Extract(ctx context.Context, name, mimeType string, content []byte) (string, error)
}

// ExtractorRegistry selects the extractor for a file.
type ExtractorRegistry interface {
	// Register adds an extractor. Earlier registrations win ties.
	Register(extractor Extractor)

	// Resolve returns the extractor for name and mimeType. The file name
	// suffix is consulted first, the MIME type only when no suffix matches.
	Resolve(name, mimeType string) (Extractor, bool)
}
