package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

var errEmptyPrompt = errors.New("prompt file is empty")

// PromptStore loads LLM prompts from user-editable files on disk.
// Files live in <dir>/<name>.txt and fall back to embedded defaults.
//
// Initialisation is lazy: the directory and default files are only written
// on the first Load, never in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptPersonaSystem: `You are a senior marketing strategist. You will receive the extracted text of a collection of business documents: briefs, research notes, spreadsheets, slide decks and images.

Write one detailed marketing persona grounded only in what the documents say. Use Markdown with these sections:

## Name and summary
## Demographics
## Goals and motivations
## Pain points
## Buying triggers
## Objections
## Preferred channels
## Key quotes or evidence

Cite the source file name in brackets after any claim drawn from a specific document. If the documents do not support a section, say so rather than inventing details.`,

	driven.PromptPersonaUser: `Documents:

%s`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.persona/prompts/.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Names returns the names of the built-in prompts, sorted.
func Names() []string {
	names := make([]string, 0, len(defaultPrompts))
	for name := range defaultPrompts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load returns the prompt template for the given name.
// Missing or empty files fall back to the embedded default.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Double-check so concurrent loads agree on one value.
	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.promptDir, name+".txt"))
	if err != nil {
		return "", err
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", errEmptyPrompt
	}
	return prompt, nil
}

func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	content := `# Persona Prompts

This directory contains the prompts used to turn ingested documents into a
marketing persona.

## Files

- ` + "`persona_system.txt`" + ` - Instructions for the model: tone, sections, rules
- ` + "`persona_user.txt`" + ` - Wraps the combined document text

## Customisation

Edit either file to change the generated persona. Changes take effect on the
next command. Delete a file to restore its default.

## Format Placeholders

` + "`persona_user.txt`" + ` must contain exactly one ` + "`%s`" + `, which is replaced by the
combined text of every ingested file. If it is missing, the text is appended
after a blank line.
`
	return os.WriteFile(path, []byte(content), 0600)
}
