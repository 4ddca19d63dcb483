package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/persona-cli/internal/core/ports/driving"
)

func TestExtractRunID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid run URI",
			uri:      "persona://runs/run-123",
			expected: "run-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://runs/run-123",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "persona://runs/run-123/files",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractRunID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleRunResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns run status", func(t *testing.T) {
		ingest := &mockIngestor{
			status: &driving.IngestStatus{
				RunID:      "run-1",
				Running:    true,
				FilesTotal: 4,
				FilesDone:  2,
				ErrorCount: 1,
			},
		}
		server, err := NewServer(&Ports{Ingest: ingest})
		require.NoError(t, err)

		result, err := server.handleRunResource(ctx, makeReadResourceRequest("persona://runs/run-1"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"run_id": "run-1"`)
		assert.Contains(t, result.Contents[0].Text, `"files_total": 4`)
		assert.Contains(t, result.Contents[0].Text, `"error_count": 1`)
	})

	t.Run("unknown run returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Ingest: &mockIngestor{}})
		require.NoError(t, err)

		_, err = server.handleRunResource(ctx, makeReadResourceRequest("persona://runs/missing"))

		require.Error(t, err)
	})

	t.Run("malformed URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Ingest: &mockIngestor{}})
		require.NoError(t, err)

		_, err = server.handleRunResource(ctx, makeReadResourceRequest("persona://other"))

		require.Error(t, err)
	})
}
