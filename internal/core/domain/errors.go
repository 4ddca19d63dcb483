package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates no extraction strategy or export format exists for a file.
	ErrUnsupportedType = errors.New("unsupported type")

	// Ingestion Errors.

	// ErrNoTextFound indicates extraction succeeded but produced no text.
	ErrNoTextFound = errors.New("no text found")

	// ErrTimedOut indicates an extraction exceeded its deadline and was abandoned.
	ErrTimedOut = errors.New("extraction timed out")

	// ErrPayloadTooLarge indicates a download exceeded the configured size limit.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrDepthExceeded indicates a folder lies deeper than the walk depth limit.
	ErrDepthExceeded = errors.New("folder depth limit exceeded")

	// ErrFileLimit indicates the walk stopped after collecting the maximum number of files.
	ErrFileLimit = errors.New("file count limit reached")

	// ErrCycleDetected indicates a folder was reached twice during one walk.
	ErrCycleDetected = errors.New("folder already visited")

	// ErrNoContent indicates an ingestion run produced no text to summarise.
	ErrNoContent = errors.New("no content to summarise")

	// Collaborator Errors.

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrOCRUnavailable indicates no text detector is configured.
	// Image files are skipped as unsupported without one.
	ErrOCRUnavailable = errors.New("OCR service unavailable")

	// ErrAuthRequired indicates the remote store needs credentials but none are configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
