package domain

import "time"

// Persona is a marketing persona document synthesised from a folder's text.
type Persona struct {
	// RunID is the ingestion run the persona was built from.
	RunID string

	// Model is the LLM model that produced the document.
	Model string

	// Content is the generated persona document.
	Content string

	// Manifest is the ingestion ledger behind the document.
	Manifest *IngestionManifest

	GeneratedAt time.Time
}
