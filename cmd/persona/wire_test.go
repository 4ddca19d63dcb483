package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/persona-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

// clearEnv removes credentials and overrides that would leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_APPLICATION_CREDENTIALS",
		"GOOGLE_ACCESS_TOKEN",
		"PERSONA_DRIVE_CREDENTIALS_FILE",
		"PERSONA_DRIVE_ACCESS_TOKEN",
		"PERSONA_LLM_PROVIDER",
		"PERSONA_LLM_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestBuildServices_SettingsOnly(t *testing.T) {
	clearEnv(t)

	svc, err := buildServices(context.Background(), cli.Options{ConfigDir: t.TempDir(), Source: cli.SourceDrive})

	require.NoError(t, err)
	assert.NotNil(t, svc.Settings)
	assert.Nil(t, svc.Ingest)
	assert.Nil(t, svc.Persona)
	assert.NoError(t, svc.Err)
}

func TestBuildServices_DriveWithoutCredentials(t *testing.T) {
	clearEnv(t)

	svc, err := buildServices(context.Background(), cli.Options{
		ConfigDir: t.TempDir(),
		Source:    cli.SourceDrive,
		NeedStore: true,
	})

	require.NoError(t, err)
	assert.Nil(t, svc.Ingest)
	assert.ErrorIs(t, svc.Err, domain.ErrAuthRequired)
}

func TestBuildServices_DriveWithAccessToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_ACCESS_TOKEN", "ya29.test-token")

	svc, err := buildServices(context.Background(), cli.Options{
		ConfigDir: t.TempDir(),
		Source:    cli.SourceDrive,
		NeedStore: true,
	})

	require.NoError(t, err)
	require.NoError(t, svc.Err)
	assert.NotNil(t, svc.Ingest)
	require.NotNil(t, svc.ResolveRoot)
	assert.Equal(t, "1AbC_d-9", svc.ResolveRoot("https://drive.google.com/drive/folders/1AbC_d-9"))
}

func TestBuildServices_LLMNotConfigured(t *testing.T) {
	clearEnv(t)

	svc, err := buildServices(context.Background(), cli.Options{
		ConfigDir: t.TempDir(),
		Source:    cli.SourceLocal,
		NeedStore: true,
		NeedLLM:   true,
	})

	require.NoError(t, err)
	assert.NotNil(t, svc.Ingest)
	assert.Nil(t, svc.Persona)
	assert.ErrorIs(t, svc.Err, domain.ErrLLMUnavailable)
}

func TestBuildServices_LocalIngest(t *testing.T) {
	clearEnv(t)

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "x.csv"), []byte("a,b\n1,2"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "notes.txt"), []byte("  hello  "), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "blob.bin"), []byte{0x00, 0x01}, 0o600))

	svc, err := buildServices(context.Background(), cli.Options{
		ConfigDir: t.TempDir(),
		Source:    cli.SourceLocal,
		NeedStore: true,
	})
	require.NoError(t, err)
	require.NotNil(t, svc.Ingest)

	manifest, err := svc.Ingest.Ingest(context.Background(), svc.ResolveRoot("file://"+root))

	require.NoError(t, err)
	assert.Equal(t, 3, manifest.Len())
	assert.Contains(t, manifest.Combined, "--- File: x.csv ---\na,b\n1,2")
	assert.Contains(t, manifest.Combined, "--- File: notes.txt ---\nhello")
	assert.Equal(t, 1, manifest.Counts()[domain.OutcomeSkipped])
}
