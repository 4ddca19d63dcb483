// Package mcp provides an MCP (Model Context Protocol) server adapter for persona.
// It lets AI assistants ingest Drive folders and request persona documents.
package mcp

import "errors"

// ErrMissingIngestService is returned when the ingestion service is not provided.
var ErrMissingIngestService = errors.New("mcp: ingest service is required")
