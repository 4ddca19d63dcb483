package cli

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure ingestion bounds, Drive access, OCR and the LLM provider.

Settings are stored in ~/.persona/config.toml. Any key can be overridden with
an environment variable named PERSONA_<KEY>, for example PERSONA_LLM_MODEL.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a single configuration value. Run 'persona settings keys' for the list
of accepted keys.

Examples:
  persona settings set ingest.max_text_length 5000
  persona settings set ingest.extract_timeout 10s
  persona settings set export.spreadsheet none
  persona settings set llm.provider openai`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, key := range services.SettingKeys() {
			cmd.Println(key)
		}
	},
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Interactively choose the LLM provider, model and API key used for persona generation.`,
	RunE:  runSettingsLLM,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return unavailable("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	ingest := settings.Ingest
	cmd.Println("[Ingest]")
	cmd.Printf("  Max text length: %d characters per file\n", ingest.MaxTextLength)
	cmd.Printf("  Extract timeout: %s\n", ingest.ExtractTimeout)
	cmd.Printf("  Max depth: %d\n", ingest.MaxDepth)
	cmd.Printf("  Max files: %d\n", ingest.MaxFiles)
	cmd.Printf("  Max file size: %d bytes\n", ingest.MaxFileSize)
	cmd.Printf("  Concurrency: %d\n", ingest.Concurrency)
	cmd.Println()

	cmd.Println("[Export]")
	natives := make([]string, 0, len(ingest.ExportFormats))
	for native := range ingest.ExportFormats {
		natives = append(natives, native)
	}
	sort.Strings(natives)
	for _, native := range natives {
		cmd.Printf("  %s -> %s\n", strings.TrimPrefix(native, domain.NativeMIMEPrefix), ingest.ExportFormats[native])
	}
	cmd.Println()

	cmd.Println("[Drive]")
	switch {
	case settings.Drive.CredentialsFile != "":
		cmd.Printf("  Credentials: %s\n", settings.Drive.CredentialsFile)
	case settings.Drive.AccessToken != "":
		cmd.Printf("  Access token: %s\n", maskAPIKey(settings.Drive.AccessToken))
	default:
		cmd.Println("  Credentials: (not set)")
	}
	cmd.Printf("  Page size: %d\n", settings.Drive.PageSize)
	if settings.Drive.RequestsPerSecond > 0 {
		cmd.Printf("  Requests per second: %g\n", settings.Drive.RequestsPerSecond)
	}
	cmd.Printf("  OCR: %s\n", enabledString(settings.OCREnabled))
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.Provider.IsLocal() || settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return unavailable("settings")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	shown := value
	if strings.HasSuffix(key, "api_key") || strings.HasSuffix(key, "access_token") {
		shown = maskAPIKey(value)
	}
	cmd.Printf("%s = %s\n", key, shown)
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return unavailable("settings")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	selectedProvider := providers[idx-1]

	defaultModel := domain.DefaultLLMModels()[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword(reader)
		cmd.Println()
		if apiKey == "" {
			return fmt.Errorf("%w: API key is required for %s", domain.ErrInvalidInput, selectedProvider)
		}
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n", selectedProvider.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when stdin is a terminal.
func readPassword(reader *bufio.Reader) string {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func enabledString(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
