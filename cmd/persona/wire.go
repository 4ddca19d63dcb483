package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/persona-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/persona-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/persona-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/persona-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/persona-cli/internal/connectors/google"
	"github.com/custodia-labs/persona-cli/internal/connectors/google/drive"
	"github.com/custodia-labs/persona-cli/internal/connectors/google/vision"
	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
	"github.com/custodia-labs/persona-cli/internal/core/services"
	"github.com/custodia-labs/persona-cli/internal/extractors"
	"github.com/custodia-labs/persona-cli/internal/logger"
)

// remote is the store a run reads from plus the root resolver that matches it.
type remote struct {
	store    driven.RemoteStore
	detector driven.TextDetector
	resolve  func(input string) string
}

// buildServices wires adapters into core services for one command.
func buildServices(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config directory: %w", err)
		}
		configDir = dir
	}

	if err := file.LoadDotEnv(configDir); err != nil {
		logger.Warn("Failed to load .env: %v", err)
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	svc := &cli.Services{Settings: settingsService}
	if !opts.NeedStore {
		return svc, nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	r, err := buildRemote(ctx, opts.Source, settings)
	if err != nil {
		svc.Err = err
		return svc, nil
	}
	svc.ResolveRoot = r.resolve

	registry := extractors.NewDefaultRegistry(r.detector)
	ingestor := services.NewIngestionOrchestrator(r.store, registry, settings.Ingest)
	svc.Ingest = ingestor

	if !opts.NeedLLM {
		return svc, nil
	}

	llm, err := ai.CreateAndValidateLLMService(ctx, &settings.LLM)
	if err != nil {
		svc.Err = err
		return svc, nil
	}
	if llm == nil {
		svc.Err = fmt.Errorf("%w: no LLM provider configured. Run 'persona settings llm' to set one", domain.ErrLLMUnavailable)
		return svc, nil
	}

	var promptStore driven.PromptStore
	if prompts, err := file.NewPromptStore(filepath.Join(configDir, "prompts")); err != nil {
		logger.Warn("Using built-in prompts: %v", err)
	} else {
		promptStore = prompts
	}

	svc.Persona = services.NewPersonaService(ingestor, llm, promptStore)
	svc.Close = llm.Close
	return svc, nil
}

// buildRemote selects the remote store for source. OCR is available for both
// sources whenever Google credentials are configured.
func buildRemote(ctx context.Context, source string, settings *domain.AppSettings) (*remote, error) {
	r := &remote{}

	creds := google.CredentialsFromSettings(settings.Drive)
	ts, tsErr := google.NewTokenSource(ctx, creds)

	if settings.OCREnabled && tsErr == nil {
		visionSvc, err := google.NewVisionService(ctx, ts)
		if err != nil {
			logger.Warn("OCR disabled: %v", err)
		} else {
			r.detector = vision.New(visionSvc)
		}
	}

	switch source {
	case cli.SourceLocal:
		home, _ := os.UserHomeDir() //nolint:errcheck // "~" stays unexpanded without a home
		r.store = filesystem.New()
		r.resolve = func(input string) string {
			return filesystem.ResolveRoot(input, home)
		}
		return r, nil
	default:
		if tsErr != nil {
			if errors.Is(tsErr, domain.ErrAuthRequired) {
				return nil, fmt.Errorf("%w: set drive.credentials_file or GOOGLE_APPLICATION_CREDENTIALS", tsErr)
			}
			return nil, tsErr
		}
		driveSvc, err := google.NewDriveService(ctx, ts)
		if err != nil {
			return nil, fmt.Errorf("create drive client: %w", err)
		}
		r.store = drive.New(driveSvc, drive.ParseConfig(settings.Drive))
		r.resolve = drive.ParseFolderID
		return r, nil
	}
}
