package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServeCmd_HasPortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_RequiresIngestService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ingestService = nil

	_, err := execute(t, "mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest service not configured")
}
