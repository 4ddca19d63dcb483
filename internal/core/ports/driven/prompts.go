package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptPersonaSystem is the system prompt for persona synthesis.
	// This prompt has no format placeholders.
	PromptPersonaSystem = "persona_system"

	// PromptPersonaUser wraps the combined document text.
	// The template expects a single %s placeholder for the text.
	PromptPersonaUser = "persona_user"
)
