package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driving"
	"github.com/custodia-labs/persona-cli/internal/logger"
)

// Ensure PersonaService implements the interface.
var _ driving.PersonaService = (*PersonaService)(nil)

// Fallback prompts used when no PromptStore is configured.
const (
	fallbackPersonaSystem = "You are a marketing strategist. From the documents provided, " +
		"write a detailed marketing persona in Markdown: name, demographics, goals, " +
		"pain points, buying triggers, objections and preferred channels."
	fallbackPersonaUser = "Documents:\n\n%s"
)

// Generation defaults for the persona request.
const (
	personaMaxTokens   = 2048
	personaTemperature = 0.7
)

// PersonaService synthesises a marketing persona from ingested documents.
type PersonaService struct {
	ingestor driving.Ingestor
	llm      driven.LLMService
	prompts  driven.PromptStore
	now      func() time.Time
}

// NewPersonaService creates a persona service.
// llm may be nil, in which case Generate returns domain.ErrLLMUnavailable.
// prompts may be nil, in which case built-in prompts are used.
func NewPersonaService(ingestor driving.Ingestor, llm driven.LLMService, prompts driven.PromptStore) *PersonaService {
	return &PersonaService{
		ingestor: ingestor,
		llm:      llm,
		prompts:  prompts,
		now:      time.Now,
	}
}

// Generate ingests rootID and asks the LLM for a persona document.
func (s *PersonaService) Generate(ctx context.Context, rootID string) (*domain.Persona, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	manifest, err := s.ingestor.Ingest(ctx, rootID)
	if err != nil {
		return nil, err
	}

	persona := &domain.Persona{
		RunID:    manifest.RunID,
		Manifest: manifest,
	}
	if manifest.Combined == "" {
		return persona, domain.ErrNoContent
	}

	userTemplate := s.prompt(driven.PromptPersonaUser, fallbackPersonaUser)
	if !strings.Contains(userTemplate, "%s") {
		userTemplate += "\n\n%s"
	}
	messages := []driven.ChatMessage{
		{Role: "system", Content: s.prompt(driven.PromptPersonaSystem, fallbackPersonaSystem)},
		{Role: "user", Content: strings.Replace(userTemplate, "%s", manifest.Combined, 1)},
	}

	done := logger.Timed("Persona generation with %s", s.llm.ModelName())
	content, err := s.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   personaMaxTokens,
		Temperature: personaTemperature,
	})
	done()
	if err != nil {
		return persona, fmt.Errorf("generate persona: %w", err)
	}

	persona.Content = strings.TrimSpace(content)
	persona.Model = s.llm.ModelName()
	persona.GeneratedAt = s.now()
	return persona, nil
}

func (s *PersonaService) prompt(name, fallback string) string {
	if s.prompts == nil {
		return fallback
	}
	prompt, err := s.prompts.Load(name)
	if err != nil || prompt == "" {
		logger.Debug("Using built-in %s prompt: %v", name, err)
		return fallback
	}
	return prompt
}
