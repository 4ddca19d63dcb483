package mcp

import (
	"context"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driving"
)

// mockIngestor is a mock implementation of driving.Ingestor.
type mockIngestor struct {
	manifest *domain.IngestionManifest
	status   *driving.IngestStatus
	err      error
	rootID   string
}

func (m *mockIngestor) Ingest(_ context.Context, rootID string) (*domain.IngestionManifest, error) {
	m.rootID = rootID
	return m.manifest, m.err
}

func (m *mockIngestor) Status(_ context.Context, runID string) (*driving.IngestStatus, error) {
	if m.status == nil || m.status.RunID != runID {
		return nil, domain.ErrNotFound
	}
	return m.status, nil
}

// mockPersonaService is a mock implementation of driving.PersonaService.
type mockPersonaService struct {
	persona *domain.Persona
	err     error
	rootID  string
}

func (m *mockPersonaService) Generate(_ context.Context, rootID string) (*domain.Persona, error) {
	m.rootID = rootID
	return m.persona, m.err
}
