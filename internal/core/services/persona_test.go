package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driving"
)

type mockIngestor struct {
	manifest *domain.IngestionManifest
	err      error
	calls    int
}

func (m *mockIngestor) Ingest(_ context.Context, _ string) (*domain.IngestionManifest, error) {
	m.calls++
	return m.manifest, m.err
}

func (m *mockIngestor) Status(_ context.Context, _ string) (*driving.IngestStatus, error) {
	return nil, domain.ErrNotFound
}

type mockLLM struct {
	reply    string
	err      error
	messages []driven.ChatMessage
	opts     driven.ChatOptions
}

func (m *mockLLM) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	return m.reply, m.err
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.messages = messages
	m.opts = opts
	return m.reply, m.err
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

type mockPrompts struct {
	prompts map[string]string
}

func (m *mockPrompts) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", domain.ErrNotFound
}

func (m *mockPrompts) Reload() {}

func textManifest() *domain.IngestionManifest {
	return &domain.IngestionManifest{
		RunID:    "run-1",
		RootID:   "root",
		Combined: "--- File: x.csv ---\na,b\n1,2",
		Entries: []domain.ManifestEntry{
			{File: domain.FileDescriptor{Name: "x.csv"}, Result: domain.TextResult("a,b\n1,2")},
		},
	}
}

func TestPersonaService_Generate(t *testing.T) {
	llm := &mockLLM{reply: "  # Persona: Maya  \n"}
	prompts := &mockPrompts{prompts: map[string]string{
		driven.PromptPersonaSystem: "You write personas.",
		driven.PromptPersonaUser:   "Source material:\n%s",
	}}
	svc := NewPersonaService(&mockIngestor{manifest: textManifest()}, llm, prompts)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	persona, err := svc.Generate(context.Background(), "root")

	require.NoError(t, err)
	assert.Equal(t, "# Persona: Maya", persona.Content)
	assert.Equal(t, "mock-model", persona.Model)
	assert.Equal(t, "run-1", persona.RunID)
	assert.Equal(t, fixed, persona.GeneratedAt)
	require.NotNil(t, persona.Manifest)

	require.Len(t, llm.messages, 2)
	assert.Equal(t, "system", llm.messages[0].Role)
	assert.Equal(t, "You write personas.", llm.messages[0].Content)
	assert.Equal(t, "user", llm.messages[1].Role)
	assert.Equal(t, "Source material:\n--- File: x.csv ---\na,b\n1,2", llm.messages[1].Content)
	assert.Equal(t, personaMaxTokens, llm.opts.MaxTokens)
}

func TestPersonaService_FallbackPrompts(t *testing.T) {
	llm := &mockLLM{reply: "persona"}
	svc := NewPersonaService(&mockIngestor{manifest: textManifest()}, llm, nil)

	_, err := svc.Generate(context.Background(), "root")

	require.NoError(t, err)
	assert.Equal(t, fallbackPersonaSystem, llm.messages[0].Content)
	assert.Contains(t, llm.messages[1].Content, "a,b\n1,2")
}

func TestPersonaService_UserPromptWithoutPlaceholder(t *testing.T) {
	llm := &mockLLM{reply: "persona"}
	prompts := &mockPrompts{prompts: map[string]string{driven.PromptPersonaUser: "Read these:"}}
	svc := NewPersonaService(&mockIngestor{manifest: textManifest()}, llm, prompts)

	_, err := svc.Generate(context.Background(), "root")

	require.NoError(t, err)
	assert.Equal(t, "Read these:\n\n--- File: x.csv ---\na,b\n1,2", llm.messages[1].Content)
	// Missing system prompt falls back.
	assert.Equal(t, fallbackPersonaSystem, llm.messages[0].Content)
}

func TestPersonaService_UserPromptWithPercentSigns(t *testing.T) {
	llm := &mockLLM{reply: "persona"}
	prompts := &mockPrompts{prompts: map[string]string{
		driven.PromptPersonaUser: "Cover 100% of the material below.\n%s\nKeep it under %d words.",
	}}
	manifest := textManifest()
	manifest.Combined = "--- File: notes.txt ---\nmargin 40%s"
	svc := NewPersonaService(&mockIngestor{manifest: manifest}, llm, prompts)

	_, err := svc.Generate(context.Background(), "root")

	require.NoError(t, err)
	assert.Equal(t,
		"Cover 100% of the material below.\n--- File: notes.txt ---\nmargin 40%s\nKeep it under %d words.",
		llm.messages[1].Content)
}

func TestPersonaService_NoContent(t *testing.T) {
	llm := &mockLLM{reply: "unused"}
	manifest := &domain.IngestionManifest{RunID: "run-2"}
	svc := NewPersonaService(&mockIngestor{manifest: manifest}, llm, nil)

	persona, err := svc.Generate(context.Background(), "root")

	assert.ErrorIs(t, err, domain.ErrNoContent)
	require.NotNil(t, persona)
	assert.Same(t, manifest, persona.Manifest)
	assert.Nil(t, llm.messages, "LLM must not be called without content")
}

func TestPersonaService_NoLLM(t *testing.T) {
	ingestor := &mockIngestor{manifest: textManifest()}
	svc := NewPersonaService(ingestor, nil, nil)

	_, err := svc.Generate(context.Background(), "root")

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Zero(t, ingestor.calls)
}

func TestPersonaService_IngestError(t *testing.T) {
	walkErr := errors.New("walk: list root folder: 404")
	svc := NewPersonaService(&mockIngestor{err: walkErr}, &mockLLM{}, nil)

	_, err := svc.Generate(context.Background(), "root")

	assert.ErrorIs(t, err, walkErr)
}

func TestPersonaService_LLMError(t *testing.T) {
	rateLimited := errors.New("429")
	svc := NewPersonaService(&mockIngestor{manifest: textManifest()}, &mockLLM{err: rateLimited}, nil)

	persona, err := svc.Generate(context.Background(), "root")

	assert.ErrorIs(t, err, rateLimited)
	require.NotNil(t, persona)
	assert.Empty(t, persona.Content)
}
