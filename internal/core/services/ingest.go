package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driving"
	"github.com/custodia-labs/persona-cli/internal/logger"
)

// Ensure IngestionOrchestrator implements the interface.
var _ driving.Ingestor = (*IngestionOrchestrator)(nil)

// maxRetainedRuns bounds how many finished runs Status can still report.
const maxRetainedRuns = 32

// IngestionOrchestrator drives one ingestion run: walk, then fetch and
// extract every file, then combine the text.
type IngestionOrchestrator struct {
	walker   *FolderWalker
	fetcher  *FileFetcher
	registry driven.ExtractorRegistry
	runner   *DeadlineRunner
	settings domain.IngestSettings

	newRunID func() string
	now      func() time.Time

	// Status tracking
	mu       sync.RWMutex
	runs     map[string]*driving.IngestStatus
	runOrder []string
}

// NewIngestionOrchestrator creates an orchestrator reading from store and
// extracting with registry. Zero-valued settings fall back to defaults.
func NewIngestionOrchestrator(
	store driven.RemoteStore,
	registry driven.ExtractorRegistry,
	settings domain.IngestSettings,
) *IngestionOrchestrator {
	settings = settings.WithDefaults()
	return &IngestionOrchestrator{
		walker:   NewFolderWalker(store, settings),
		fetcher:  NewFileFetcher(store, settings),
		registry: registry,
		runner:   NewDeadlineRunner(settings.ExtractTimeout),
		settings: settings,
		newRunID: uuid.NewString,
		now:      time.Now,
		runs:     make(map[string]*driving.IngestStatus),
	}
}

// Ingest walks rootID and records exactly one outcome per leaf file, in walk
// order. Per-file failures are recorded in the manifest; only a failure to
// list rootID is returned as an error.
func (o *IngestionOrchestrator) Ingest(ctx context.Context, rootID string) (*domain.IngestionManifest, error) {
	manifest := &domain.IngestionManifest{
		RunID:     o.newRunID(),
		RootID:    rootID,
		StartedAt: o.now(),
	}

	logger.Section("Ingesting folder " + rootID)
	walk, err := o.walker.Walk(ctx, rootID)
	if err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}
	manifest.Diagnostics = walk.Diagnostics

	status := &driving.IngestStatus{
		RunID:      manifest.RunID,
		Running:    true,
		FilesTotal: len(walk.Files),
	}
	o.trackRun(status)
	defer o.finishRun(manifest.RunID)

	manifest.Entries = make([]domain.ManifestEntry, len(walk.Files))
	if o.settings.Concurrency > 1 && len(walk.Files) > 1 {
		o.processConcurrently(ctx, walk.Files, manifest.Entries, manifest.RunID)
	} else {
		for i := range walk.Files {
			manifest.Entries[i] = o.processFile(ctx, walk.Files[i])
			o.recordOutcome(manifest.RunID, manifest.Entries[i].Result)
		}
	}

	manifest.Combined = Combine(manifest.Entries)
	manifest.FinishedAt = o.now()

	if ctx.Err() != nil {
		logger.Warn("Ingestion of %s cancelled", rootID)
	}
	counts := manifest.Counts()
	logger.Info("Ingestion complete: %d files, %d text, %d skipped, %d failed, %d timed out",
		manifest.Len(),
		counts[domain.OutcomeText],
		counts[domain.OutcomeSkipped],
		counts[domain.OutcomeFailed],
		counts[domain.OutcomeTimedOut],
	)
	return manifest, nil
}

// processConcurrently fans files out over a bounded errgroup. Every goroutine
// writes only its own slot, so entries keep walk order.
func (o *IngestionOrchestrator) processConcurrently(
	ctx context.Context,
	files []domain.FileDescriptor,
	entries []domain.ManifestEntry,
	runID string,
) {
	var g errgroup.Group
	g.SetLimit(o.settings.Concurrency)
	for i := range files {
		g.Go(func() error {
			entries[i] = o.processFile(ctx, files[i])
			o.recordOutcome(runID, entries[i].Result)
			return nil
		})
	}
	_ = g.Wait()
}

// processFile produces the manifest entry for one file.
func (o *IngestionOrchestrator) processFile(ctx context.Context, file domain.FileDescriptor) domain.ManifestEntry {
	start := o.now()
	result := o.extractFile(ctx, file)
	entry := domain.ManifestEntry{
		File:     file,
		Result:   result,
		Duration: o.now().Sub(start),
	}

	switch result.Kind {
	case domain.OutcomeText:
		logger.Debug("%s: %d characters", file.Path, len([]rune(result.Text)))
	case domain.OutcomeSkipped:
		logger.Debug("%s: skipped (%s)", file.Path, result.Reason)
	default:
		logger.Warn("%s: %s: %s", file.Path, result.Kind, result.Detail())
	}
	return entry
}

func (o *IngestionOrchestrator) extractFile(ctx context.Context, file domain.FileDescriptor) domain.ExtractionResult {
	if err := ctx.Err(); err != nil {
		return domain.FailedResult(err)
	}

	// Files nothing can read are not downloaded at all.
	if !file.IsNative() {
		if _, ok := o.registry.Resolve(file.Name, file.MIMEType); !ok {
			return domain.SkippedResult(domain.SkipUnsupported)
		}
	}

	payload, err := o.fetcher.Fetch(ctx, file)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedType) {
			return domain.SkippedResult(domain.SkipUnsupported)
		}
		return domain.FailedResult(err)
	}

	// Exported documents keep their remote name, which says nothing about
	// the export format, so they resolve by type alone.
	name := file.Name
	if file.IsNative() {
		name = ""
	}
	extractor, ok := o.registry.Resolve(name, payload.MIMEType)
	if !ok {
		return domain.SkippedResult(domain.SkipUnsupported)
	}

	extract := func(ctx context.Context) (string, error) {
		return extractor.Extract(ctx, file.Name, payload.MIMEType, payload.Content)
	}
	var text string
	if extractor.NeedsDeadline() {
		text, err = o.runner.Run(ctx, extract)
	} else {
		text, err = callSafely(ctx, extract)
	}

	switch {
	case errors.Is(err, domain.ErrTimedOut):
		return domain.TimedOutResult()
	case errors.Is(err, domain.ErrNoTextFound):
		return domain.SkippedResult(domain.SkipNoText)
	case errors.Is(err, domain.ErrUnsupportedType):
		return domain.SkippedResult(domain.SkipUnsupported)
	case err != nil:
		return domain.FailedResult(fmt.Errorf("%s: %w", extractor.Name(), err))
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.SkippedResult(domain.SkipNoText)
	}
	return domain.TextResult(Truncate(text, o.settings.MaxTextLength))
}

// Status returns progress for a running or recently finished run.
func (o *IngestionOrchestrator) Status(_ context.Context, runID string) (*driving.IngestStatus, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	status, ok := o.runs[runID]
	if !ok {
		return nil, fmt.Errorf("%w: run %s", domain.ErrNotFound, runID)
	}
	statusCopy := *status
	return &statusCopy, nil
}

func (o *IngestionOrchestrator) trackRun(status *driving.IngestStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.runs[status.RunID] = status
	o.runOrder = append(o.runOrder, status.RunID)
	for len(o.runOrder) > maxRetainedRuns {
		delete(o.runs, o.runOrder[0])
		o.runOrder = o.runOrder[1:]
	}
}

func (o *IngestionOrchestrator) recordOutcome(runID string, result domain.ExtractionResult) {
	o.mu.Lock()
	defer o.mu.Unlock()

	status, ok := o.runs[runID]
	if !ok {
		return
	}
	status.FilesDone++
	if result.Kind == domain.OutcomeFailed || result.Kind == domain.OutcomeTimedOut {
		status.ErrorCount++
	}
}

func (o *IngestionOrchestrator) finishRun(runID string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if status, ok := o.runs[runID]; ok {
		status.Running = false
	}
}
