package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyMaxTextLength  = "ingest.max_text_length"
	keyExtractTimeout = "ingest.extract_timeout"
	keyMaxDepth       = "ingest.max_depth"
	keyMaxFiles       = "ingest.max_files"
	keyMaxFileSize    = "ingest.max_file_size"
	keyConcurrency    = "ingest.concurrency"
	keyExportDocument = "export.document"
	keyExportSheet    = "export.spreadsheet"
	keyExportSlides   = "export.presentation"
	keyExportDrawing  = "export.drawing"
	keyDriveCreds     = "drive.credentials_file"
	keyDriveToken     = "drive.access_token"
	keyDrivePageSize  = "drive.page_size"
	keyDriveRPS       = "drive.requests_per_second"
	keyOCREnabled     = "ocr.enabled"
	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMAPIKey      = "llm.api_key"
)

const (
	exportDisabled   = "none"
	defaultOllamaURL = "http://localhost:11434"
)

// settingKind describes how Set parses a value.
type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindBool
	kindDuration
	kindExport
	kindProvider
)

// exportKeys maps export config keys to the native type they configure.
var exportKeys = map[string]string{
	keyExportDocument: domain.MIMETypeGoogleDoc,
	keyExportSheet:    domain.MIMETypeGoogleSheet,
	keyExportSlides:   domain.MIMETypeGoogleSlides,
	keyExportDrawing:  domain.MIMETypeGoogleDrawing,
}

// exportAliases lets users name export formats by extension.
var exportAliases = map[string]string{
	"csv":  domain.MIMETypeCSV,
	"txt":  domain.MIMETypeText,
	"pdf":  domain.MIMETypePDF,
	"png":  domain.MIMETypePNG,
	"docx": domain.MIMETypeDOCX,
	"xlsx": domain.MIMETypeXLSX,
	"pptx": domain.MIMETypePPTX,
	"html": "text/html",
}

// settingKinds lists every key Set accepts and how its value is parsed.
var settingKinds = map[string]settingKind{
	keyMaxTextLength:  kindInt,
	keyExtractTimeout: kindDuration,
	keyMaxDepth:       kindInt,
	keyMaxFiles:       kindInt,
	keyMaxFileSize:    kindInt,
	keyConcurrency:    kindInt,
	keyExportDocument: kindExport,
	keyExportSheet:    kindExport,
	keyExportSlides:   kindExport,
	keyExportDrawing:  kindExport,
	keyDriveCreds:     kindString,
	keyDriveToken:     kindString,
	keyDrivePageSize:  kindInt,
	keyDriveRPS:       kindFloat,
	keyOCREnabled:     kindBool,
	keyLLMProvider:    kindProvider,
	keyLLMModel:       kindString,
	keyLLMBaseURL:     kindString,
	keyLLMAPIKey:      kindString,
}

// SettingKeys returns every key accepted by Set, sorted.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingKinds))
	for key := range settingKinds {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type settingValue struct {
	key   string
	value any
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Ingest: domain.IngestSettings{
			MaxTextLength:  s.getInt(keyMaxTextLength, defaults.Ingest.MaxTextLength),
			ExtractTimeout: s.getDuration(keyExtractTimeout, defaults.Ingest.ExtractTimeout),
			MaxDepth:       s.getInt(keyMaxDepth, defaults.Ingest.MaxDepth),
			MaxFiles:       s.getInt(keyMaxFiles, defaults.Ingest.MaxFiles),
			MaxFileSize:    int64(s.getInt(keyMaxFileSize, int(defaults.Ingest.MaxFileSize))),
			Concurrency:    s.getInt(keyConcurrency, defaults.Ingest.Concurrency),
			ExportFormats:  s.getExportFormats(defaults.Ingest.ExportFormats),
		},
		Drive: domain.DriveSettings{
			CredentialsFile:   s.configStore.GetString(keyDriveCreds),
			AccessToken:       s.configStore.GetString(keyDriveToken),
			PageSize:          int64(s.getInt(keyDrivePageSize, int(defaults.Drive.PageSize))),
			RequestsPerSecond: s.configStore.GetFloat(keyDriveRPS),
		},
		OCREnabled: s.getBool(keyOCREnabled, defaults.OCREnabled),
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []settingValue{
		{keyMaxTextLength, settings.Ingest.MaxTextLength},
		{keyExtractTimeout, settings.Ingest.ExtractTimeout.String()},
		{keyMaxDepth, settings.Ingest.MaxDepth},
		{keyMaxFiles, settings.Ingest.MaxFiles},
		{keyMaxFileSize, settings.Ingest.MaxFileSize},
		{keyConcurrency, settings.Ingest.Concurrency},
		{keyDrivePageSize, settings.Drive.PageSize},
		{keyOCREnabled, settings.OCREnabled},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
	}
	for key, native := range exportKeys {
		target, ok := settings.Ingest.ExportFormats[native]
		if !ok || target == "" {
			target = exportDisabled
		}
		values = append(values, settingValue{key, target})
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Optional values are only written when present.
	optional := map[string]string{
		keyDriveCreds: settings.Drive.CredentialsFile,
		keyDriveToken: settings.Drive.AccessToken,
		keyLLMAPIKey:  settings.LLM.APIKey,
	}
	for key, value := range optional {
		if value == "" {
			continue
		}
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	if settings.Drive.RequestsPerSecond > 0 {
		if err := s.configStore.Set(keyDriveRPS, settings.Drive.RequestsPerSecond); err != nil {
			return fmt.Errorf("save %s: %w", keyDriveRPS, err)
		}
	}

	return nil
}

// Set validates value against the type of key and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	value = strings.TrimSpace(value)

	var stored any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		stored = f
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		stored = b
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %s must be a positive duration such as 5s", domain.ErrInvalidInput, key)
		}
		stored = d.String()
	case kindExport:
		target, err := parseExportFormat(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		stored = target
	case kindProvider:
		provider := domain.AIProvider(value)
		if !provider.IsValid() {
			return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, value)
		}
		stored = provider.String()
	default:
		stored = value
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// parseExportFormat accepts a MIME type, an extension alias or "none".
func parseExportFormat(value string) (string, error) {
	lower := strings.ToLower(strings.TrimPrefix(value, "."))
	if lower == exportDisabled {
		return exportDisabled, nil
	}
	if target, ok := exportAliases[lower]; ok {
		return target, nil
	}
	if strings.Contains(lower, "/") && !domain.IsNativeMIMEType(lower) {
		return lower, nil
	}
	return "", fmt.Errorf("unknown export format %q", value)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	// Local providers need a base URL, cloud providers use their own endpoint
	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaURL
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetDuration(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

// getExportFormats overlays configured export targets on the defaults.
// A target of "none" removes the mapping.
func (s *SettingsService) getExportFormats(defaults map[string]string) map[string]string {
	formats := make(map[string]string, len(defaults))
	for native, target := range defaults {
		formats[native] = target
	}
	for key, native := range exportKeys {
		target := strings.TrimSpace(s.configStore.GetString(key))
		switch {
		case target == "":
			continue
		case strings.EqualFold(target, exportDisabled):
			delete(formats, native)
		default:
			if parsed, err := parseExportFormat(target); err == nil {
				formats[native] = parsed
			}
		}
	}
	return formats
}
