package domain

import "time"

// ManifestEntry pairs a file with the outcome recorded for it.
type ManifestEntry struct {
	File     FileDescriptor
	Result   ExtractionResult
	Duration time.Duration
}

// RunStatus summarises an ingestion run for callers that only need to know
// whether there is something to summarise.
type RunStatus string

const (
	// RunEmpty means no file produced text.
	RunEmpty RunStatus = "empty"

	// RunPartial means text was produced but some files failed or timed out.
	RunPartial RunStatus = "partial"

	// RunComplete means text was produced and no file failed or timed out.
	RunComplete RunStatus = "complete"
)

// IngestionManifest is the per-file outcome ledger of one ingestion run.
// Entries has exactly one element per file returned by the walker, in walk order.
type IngestionManifest struct {
	// RunID uniquely identifies the run.
	RunID string

	// RootID is the folder the run started from.
	RootID string

	StartedAt  time.Time
	FinishedAt time.Time

	// Entries are the per-file outcomes in walk order.
	Entries []ManifestEntry

	// Diagnostics lists subtrees the walker could not list.
	Diagnostics []WalkDiagnostic

	// Combined is the concatenation of all text outcomes, each prefixed by
	// a delimiter line naming its file.
	Combined string
}

// Len returns the number of recorded entries.
func (m *IngestionManifest) Len() int {
	return len(m.Entries)
}

// Counts returns the number of entries per outcome kind.
func (m *IngestionManifest) Counts() map[OutcomeKind]int {
	counts := make(map[OutcomeKind]int, 4)
	for i := range m.Entries {
		counts[m.Entries[i].Result.Kind]++
	}
	return counts
}

// HasFailures reports whether any entry failed or timed out.
func (m *IngestionManifest) HasFailures() bool {
	for i := range m.Entries {
		switch m.Entries[i].Result.Kind {
		case OutcomeFailed, OutcomeTimedOut:
			return true
		}
	}
	return false
}

// Status distinguishes "nothing to summarise" from "some files failed"
// from full success.
func (m *IngestionManifest) Status() RunStatus {
	if m.Combined == "" {
		return RunEmpty
	}
	if m.HasFailures() {
		return RunPartial
	}
	return RunComplete
}

// Duration returns the wall-clock time the run took.
func (m *IngestionManifest) Duration() time.Duration {
	if m.FinishedAt.IsZero() {
		return 0
	}
	return m.FinishedAt.Sub(m.StartedAt)
}
