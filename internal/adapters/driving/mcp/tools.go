package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

// IngestFolderInput is the input schema for the ingest_folder tool.
type IngestFolderInput struct {
	FolderID    string `json:"folder_id" jsonschema:"the Drive folder id or URL to ingest"`
	IncludeText bool   `json:"include_text,omitempty" jsonschema:"include the combined text of all files in the result"`
}

// IngestFolderOutput is the output schema for the ingest_folder tool.
type IngestFolderOutput struct {
	RunID       string              `json:"run_id"`
	Status      string              `json:"status"`
	Counts      map[string]int      `json:"counts"`
	Files       []FileOutcomeOutput `json:"files"`
	Diagnostics []string            `json:"diagnostics,omitempty"`
	Combined    string              `json:"combined,omitempty"`
}

// FileOutcomeOutput represents the outcome recorded for a single file.
type FileOutcomeOutput struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	MIMEType string `json:"mime_type"`
	Outcome  string `json:"outcome"`
	Detail   string `json:"detail,omitempty"`
}

// GeneratePersonaInput is the input schema for the generate_persona tool.
type GeneratePersonaInput struct {
	FolderID string `json:"folder_id" jsonschema:"the Drive folder id or URL whose documents describe the audience"`
}

// GeneratePersonaOutput is the output schema for the generate_persona tool.
type GeneratePersonaOutput struct {
	RunID   string `json:"run_id"`
	Model   string `json:"model"`
	Status  string `json:"status"`
	Content string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_folder",
		Description: "Extract text from every document under a Drive folder and report per-file outcomes",
	}, s.handleIngestFolder)

	if s.ports.Persona != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "generate_persona",
			Description: "Generate a marketing persona document from the text of a Drive folder",
		}, s.handleGeneratePersona)
	}
}

// handleIngestFolder handles the ingest_folder tool invocation.
func (s *Server) handleIngestFolder(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestFolderInput,
) (*mcp.CallToolResult, IngestFolderOutput, error) {
	rootID := s.ports.rootID(input.FolderID)
	if rootID == "" {
		return nil, IngestFolderOutput{}, fmt.Errorf("folder_id: %w", domain.ErrInvalidInput)
	}

	manifest, err := s.ports.Ingest.Ingest(ctx, rootID)
	if err != nil {
		return nil, IngestFolderOutput{}, err
	}

	output := manifestOutput(manifest)
	if input.IncludeText {
		output.Combined = manifest.Combined
	}
	return nil, output, nil
}

// handleGeneratePersona handles the generate_persona tool invocation.
func (s *Server) handleGeneratePersona(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GeneratePersonaInput,
) (*mcp.CallToolResult, GeneratePersonaOutput, error) {
	rootID := s.ports.rootID(input.FolderID)
	if rootID == "" {
		return nil, GeneratePersonaOutput{}, fmt.Errorf("folder_id: %w", domain.ErrInvalidInput)
	}

	persona, err := s.ports.Persona.Generate(ctx, rootID)
	if errors.Is(err, domain.ErrNoContent) {
		return nil, GeneratePersonaOutput{}, fmt.Errorf("no text could be extracted from folder %s: %w", rootID, err)
	}
	if err != nil {
		return nil, GeneratePersonaOutput{}, err
	}

	output := GeneratePersonaOutput{
		RunID:   persona.RunID,
		Model:   persona.Model,
		Content: persona.Content,
	}
	if persona.Manifest != nil {
		output.Status = string(persona.Manifest.Status())
	}
	return nil, output, nil
}

func manifestOutput(m *domain.IngestionManifest) IngestFolderOutput {
	output := IngestFolderOutput{
		RunID:  m.RunID,
		Status: string(m.Status()),
		Counts: make(map[string]int),
		Files:  make([]FileOutcomeOutput, len(m.Entries)),
	}

	for kind, n := range m.Counts() {
		output.Counts[kind.String()] = n
	}

	for i := range m.Entries {
		entry := &m.Entries[i]
		output.Files[i] = FileOutcomeOutput{
			ID:       entry.File.ID,
			Path:     entry.File.Path,
			MIMEType: entry.File.MIMEType,
			Outcome:  entry.Result.Kind.String(),
			Detail:   entry.Result.Detail(),
		}
	}

	for _, d := range m.Diagnostics {
		output.Diagnostics = append(output.Diagnostics, fmt.Sprintf("%s: %v", d.FolderPath, d.Err))
	}

	return output
}
