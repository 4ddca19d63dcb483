package driving

import (
	"context"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

// Ingestor runs the document ingestion pipeline over a remote folder.
type Ingestor interface {
	// Ingest walks rootID, extracts text from every leaf file and returns
	// the per-file manifest. Only a failure to list rootID itself is
	// returned as an error.
	Ingest(ctx context.Context, rootID string) (*domain.IngestionManifest, error)

	// Status returns progress for a run started by Ingest.
	Status(ctx context.Context, runID string) (*IngestStatus, error)
}

// IngestStatus represents the current state of an ingestion run.
type IngestStatus struct {
	// RunID identifies the run.
	RunID string

	// Running indicates if the run is in progress.
	Running bool

	// FilesTotal is the number of files the walker found.
	FilesTotal int

	// FilesDone is the number of files with a recorded outcome.
	FilesDone int

	// ErrorCount is the number of failed or timed-out files so far.
	ErrorCount int
}
