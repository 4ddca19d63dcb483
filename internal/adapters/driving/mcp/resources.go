package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for persona resources.
	uriScheme = "persona://"
)

// runStatusInfo is the JSON shape of an ingestion run resource.
type runStatusInfo struct {
	RunID      string `json:"run_id"`
	Running    bool   `json:"running"`
	FilesTotal int    `json:"files_total"`
	FilesDone  int    `json:"files_done"`
	ErrorCount int    `json:"error_count"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "runs/{runId}",
		Name:        "ingestion-run",
		Description: "Progress of a running or recently finished ingestion run",
		MIMEType:    "application/json",
	}, s.handleRunResource)
}

// handleRunResource returns the progress of one ingestion run.
func (s *Server) handleRunResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	runID := extractRunID(req.Params.URI)
	if runID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	status, err := s.ports.Ingest.Status(ctx, runID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting run status: %w", err)
	}

	data, err := json.MarshalIndent(runStatusInfo{
		RunID:      status.RunID,
		Running:    status.Running,
		FilesTotal: status.FilesTotal,
		FilesDone:  status.FilesDone,
		ErrorCount: status.ErrorCount,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling run status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRunID extracts the run ID from a URI like persona://runs/{runId}.
func extractRunID(uri string) string {
	const prefix = uriScheme + "runs/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
