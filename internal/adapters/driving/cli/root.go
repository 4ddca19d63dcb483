// Package cli implements the persona command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/persona-cli/internal/core/ports/driving"
	"github.com/custodia-labs/persona-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Remote sources a folder id can refer to.
const (
	SourceDrive = "drive"
	SourceLocal = "local"
)

// annotationNeeds lists the services a command requires, comma separated.
const annotationNeeds = "needs"

// Service requirements a command can declare.
const (
	needStore = "store"
	needLLM   = "llm"
)

// Options are the parsed global flags a ServiceFactory builds from.
type Options struct {
	// ConfigDir overrides the configuration directory.
	ConfigDir string

	// Source selects the remote store: drive or local.
	Source string

	// NeedStore is true when the command reads from the remote store.
	NeedStore bool

	// NeedLLM is true when the command talks to the LLM.
	NeedLLM bool
}

// Services bundles the driving ports the commands use.
type Services struct {
	Ingest   driving.Ingestor
	Persona  driving.PersonaService
	Settings driving.SettingsService

	// ResolveRoot turns a folder argument into a root id for the selected source.
	ResolveRoot func(input string) string

	// Err explains why an optional service is missing.
	Err error

	// Close releases resources held by the services.
	Close func() error
}

// ServiceFactory builds the services once flags are parsed.
type ServiceFactory func(ctx context.Context, opts Options) (*Services, error)

var (
	ingestService   driving.Ingestor
	personaService  driving.PersonaService
	settingsService driving.SettingsService
	resolveRoot     func(input string) string
	setupErr        error
	closeServices   func() error

	serviceFactory ServiceFactory
)

var (
	verboseFlag   bool
	configDirFlag string
	sourceFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "persona",
	Short: "Build marketing personas from Drive documents",
	Long: `persona walks a Google Drive folder, extracts text from every document it
finds (PDF, Word, Excel, PowerPoint, CSV, plain text, images via OCR and
native Google documents via export) and asks an LLM to synthesise a
marketing persona from the combined text.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "configuration directory (default ~/.persona)")
	rootCmd.PersistentFlags().StringVarP(&sourceFlag, "source", "s", SourceDrive, "folder source: drive or local")
}

// SetServiceFactory sets the factory used to build services before a command runs.
func SetServiceFactory(factory ServiceFactory) {
	serviceFactory = factory
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and releases services afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeServices != nil {
		if closeErr := closeServices(); closeErr != nil {
			logger.Warn("Failed to release services: %v", closeErr)
		}
		closeServices = nil
	}
	return err
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if serviceFactory == nil {
		return nil
	}

	source := strings.ToLower(strings.TrimSpace(sourceFlag))
	if source != SourceDrive && source != SourceLocal {
		return fmt.Errorf("unknown source %q: use %s or %s", sourceFlag, SourceDrive, SourceLocal)
	}

	needs := commandNeeds(cmd)
	services, err := serviceFactory(cmd.Context(), Options{
		ConfigDir: configDirFlag,
		Source:    source,
		NeedStore: needs[needStore],
		NeedLLM:   needs[needLLM],
	})
	if err != nil {
		return err
	}

	ingestService = services.Ingest
	personaService = services.Persona
	settingsService = services.Settings
	resolveRoot = services.ResolveRoot
	setupErr = services.Err
	closeServices = services.Close
	return nil
}

func commandNeeds(cmd *cobra.Command) map[string]bool {
	needs := make(map[string]bool)
	for _, n := range strings.Split(cmd.Annotations[annotationNeeds], ",") {
		if n = strings.TrimSpace(n); n != "" {
			needs[n] = true
		}
	}
	return needs
}

// unavailable returns the error for a service that was not configured.
func unavailable(name string) error {
	msg := name + " service not configured"
	if setupErr != nil {
		return fmt.Errorf("%s: %w", msg, setupErr)
	}
	return errors.New(msg)
}

func folderRoot(input string) string {
	if resolveRoot == nil {
		return strings.TrimSpace(input)
	}
	return resolveRoot(input)
}
