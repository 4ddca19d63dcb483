package driving

import (
	"context"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

// PersonaService synthesises a marketing persona from a folder's documents.
type PersonaService interface {
	// Generate ingests rootID and asks the LLM for a persona document.
	// When ingestion yields no text it returns domain.ErrNoContent together
	// with a Persona carrying only the manifest.
	Generate(ctx context.Context, rootID string) (*domain.Persona, error)
}
