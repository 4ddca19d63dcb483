package domain

// OutcomeKind tags the result of processing one file.
type OutcomeKind int

const (
	// OutcomeText indicates text was extracted.
	OutcomeText OutcomeKind = iota

	// OutcomeSkipped indicates the file was intentionally not processed.
	OutcomeSkipped

	// OutcomeFailed indicates fetching or extraction failed.
	OutcomeFailed

	// OutcomeTimedOut indicates extraction exceeded its deadline.
	OutcomeTimedOut
)

// String returns the string representation.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeText:
		return "text"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	case OutcomeTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Skip reasons recorded on skipped outcomes.
const (
	// SkipUnsupported means no extraction strategy or export format exists.
	SkipUnsupported = "unsupported"

	// SkipNoText means extraction succeeded but the trimmed text was empty.
	SkipNoText = "no text found"
)

// ExtractionResult is the outcome recorded for a single file.
// Exactly one of Text, Reason or Err is meaningful, depending on Kind.
type ExtractionResult struct {
	Kind   OutcomeKind
	Text   string
	Reason string
	Err    error
}

// TextResult returns a successful outcome carrying text.
func TextResult(text string) ExtractionResult {
	return ExtractionResult{Kind: OutcomeText, Text: text}
}

// SkippedResult returns a skipped outcome with the given reason.
func SkippedResult(reason string) ExtractionResult {
	return ExtractionResult{Kind: OutcomeSkipped, Reason: reason}
}

// FailedResult returns a failed outcome wrapping err.
func FailedResult(err error) ExtractionResult {
	return ExtractionResult{Kind: OutcomeFailed, Err: err}
}

// TimedOutResult returns a timed-out outcome.
func TimedOutResult() ExtractionResult {
	return ExtractionResult{Kind: OutcomeTimedOut, Err: ErrTimedOut}
}

// Detail returns a short human-readable description of the outcome.
func (r ExtractionResult) Detail() string {
	switch r.Kind {
	case OutcomeText:
		return ""
	case OutcomeSkipped:
		return r.Reason
	case OutcomeFailed, OutcomeTimedOut:
		if r.Err != nil {
			return r.Err.Error()
		}
	}
	return ""
}
