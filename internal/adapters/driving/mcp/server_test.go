package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil ingest service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingIngestService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Ingest: &mockIngestor{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.Handler())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil ingest service returns error", func(t *testing.T) {
		ports := &Ports{Persona: &mockPersonaService{}}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingIngestService)
	})

	t.Run("ingest only is valid", func(t *testing.T) {
		ports := &Ports{
			Ingest: &mockIngestor{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Ingest:  &mockIngestor{},
			Persona: &mockPersonaService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}

func TestPorts_rootID(t *testing.T) {
	ports := &Ports{}
	assert.Equal(t, "abc", ports.rootID("abc"))

	ports.ResolveRoot = func(input string) string { return "resolved-" + input }
	assert.Equal(t, "resolved-abc", ports.rootID("abc"))
}
