package mcp

import (
	"github.com/custodia-labs/persona-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ingest runs the document ingestion pipeline.
	Ingest driving.Ingestor

	// Persona synthesises persona documents. Optional: without an LLM the
	// generate_persona tool is not registered.
	Persona driving.PersonaService

	// ResolveRoot turns user input (a folder URL or path) into a root id.
	// Nil leaves input unchanged.
	ResolveRoot func(input string) string
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	return nil
}

func (p *Ports) rootID(input string) string {
	if p.ResolveRoot == nil {
		return input
	}
	return p.ResolveRoot(input)
}
