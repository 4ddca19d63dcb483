// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under ~/.persona on the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration with environment overrides
//   - PromptStore: User-editable prompt templates with embedded defaults
package file
