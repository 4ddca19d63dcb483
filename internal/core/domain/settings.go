package domain

import "time"

const unknownDescription = "Unknown"

// Native document types the remote store can export.
const (
	MIMETypeGoogleDoc     = NativeMIMEPrefix + "document"
	MIMETypeGoogleSheet   = NativeMIMEPrefix + "spreadsheet"
	MIMETypeGoogleSlides  = NativeMIMEPrefix + "presentation"
	MIMETypeGoogleDrawing = NativeMIMEPrefix + "drawing"
)

// Concrete formats used as export targets and extractor keys.
const (
	MIMETypeCSV  = "text/csv"
	MIMETypeText = "text/plain"
	MIMETypePDF  = "application/pdf"
	MIMETypePNG  = "image/png"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMETypePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// AIProvider identifies an AI service provider for LLM operations.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if the provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if the provider runs on the local machine.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible gateways).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// IngestSettings bounds one ingestion run.
type IngestSettings struct {
	// MaxTextLength is the per-file character limit applied before combination.
	MaxTextLength int

	// ExtractTimeout is the deadline for deadline-guarded extractors.
	ExtractTimeout time.Duration

	// MaxDepth is the deepest folder level the walker lists (root is 0).
	MaxDepth int

	// MaxFiles caps the number of leaf files collected by one walk.
	MaxFiles int

	// MaxFileSize caps a single download in bytes.
	MaxFileSize int64

	// Concurrency is the number of files processed at once. 1 is sequential.
	Concurrency int

	// ExportFormats maps native document types to their export target type.
	// A native type with no entry cannot be fetched.
	ExportFormats map[string]string
}

// Default ingestion bounds.
const (
	DefaultMaxTextLength  = 3000
	DefaultExtractTimeout = 5 * time.Second
	DefaultMaxDepth       = 32
	DefaultMaxFiles       = 500
	DefaultMaxFileSize    = 25 << 20
	DefaultConcurrency    = 1
)

// DefaultExportFormats returns the export table used when none is configured.
func DefaultExportFormats() map[string]string {
	return map[string]string{
		MIMETypeGoogleDoc:     MIMETypeDOCX,
		MIMETypeGoogleSheet:   MIMETypeCSV,
		MIMETypeGoogleSlides:  MIMETypePPTX,
		MIMETypeGoogleDrawing: MIMETypePNG,
	}
}

// DefaultIngestSettings returns the default ingestion bounds.
func DefaultIngestSettings() IngestSettings {
	return IngestSettings{
		MaxTextLength:  DefaultMaxTextLength,
		ExtractTimeout: DefaultExtractTimeout,
		MaxDepth:       DefaultMaxDepth,
		MaxFiles:       DefaultMaxFiles,
		MaxFileSize:    DefaultMaxFileSize,
		Concurrency:    DefaultConcurrency,
		ExportFormats:  DefaultExportFormats(),
	}
}

// WithDefaults returns a copy with every unset bound replaced by its default.
func (s IngestSettings) WithDefaults() IngestSettings {
	if s.MaxTextLength <= 0 {
		s.MaxTextLength = DefaultMaxTextLength
	}
	if s.ExtractTimeout <= 0 {
		s.ExtractTimeout = DefaultExtractTimeout
	}
	if s.MaxDepth <= 0 {
		s.MaxDepth = DefaultMaxDepth
	}
	if s.MaxFiles <= 0 {
		s.MaxFiles = DefaultMaxFiles
	}
	if s.MaxFileSize <= 0 {
		s.MaxFileSize = DefaultMaxFileSize
	}
	if s.Concurrency <= 0 {
		s.Concurrency = DefaultConcurrency
	}
	if s.ExportFormats == nil {
		s.ExportFormats = DefaultExportFormats()
	}
	return s
}

// DriveSettings holds remote store access configuration.
type DriveSettings struct {
	// CredentialsFile is a service account JSON key path.
	CredentialsFile string

	// AccessToken is a pre-issued OAuth access token, used when no
	// credentials file is set.
	AccessToken string

	// PageSize is the listing page size.
	PageSize int64

	// RequestsPerSecond throttles API calls. Zero uses the service default.
	RequestsPerSecond float64
}

// IsConfigured returns true if some form of credentials is available.
func (d DriveSettings) IsConfigured() bool {
	return d.CredentialsFile != "" || d.AccessToken != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Ingest holds pipeline bounds.
	Ingest IngestSettings

	// Drive holds remote store settings.
	Drive DriveSettings

	// OCREnabled turns on image text detection.
	OCREnabled bool

	// LLM holds LLM provider settings.
	LLM LLMSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; users must set a provider explicitly.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Ingest: DefaultIngestSettings(),
		Drive: DriveSettings{
			PageSize: 100,
		},
		OCREnabled: true,
		LLM:        LLMSettings{},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns the default model per provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}
