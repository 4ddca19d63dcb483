package google

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

// Common Google API errors. Each wraps the matching domain error so core
// services can classify failures without importing this package.
var (
	// ErrUnauthorized indicates invalid or expired credentials.
	ErrUnauthorized = fmt.Errorf("google: unauthorised (invalid credentials): %w", domain.ErrAuthRequired)

	// ErrForbidden indicates insufficient permissions.
	ErrForbidden = errors.New("google: forbidden (insufficient permissions)")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = fmt.Errorf("google: resource not found: %w", domain.ErrNotFound)

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = fmt.Errorf("google: %w", domain.ErrRateLimited)

	// ErrQuotaExceeded indicates the daily API quota was exceeded.
	ErrQuotaExceeded = fmt.Errorf("google: quota exceeded: %w", domain.ErrRateLimited)

	// ErrNotExportable indicates a native document cannot be exported to the
	// requested format.
	ErrNotExportable = fmt.Errorf("google: export format not available: %w", domain.ErrUnsupportedType)
)

// Reasons Google reports inside 403 responses.
const (
	reasonRateLimit     = "rateLimitExceeded"
	reasonUserRateLimit = "userRateLimitExceeded"
	reasonQuota         = "quotaExceeded"
	reasonDailyLimit    = "dailyLimitExceeded"
	reasonExportLimit   = "exportSizeLimitExceeded"
	reasonNotExportable = "cannotExportFile"
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusUnauthorized
	}
	return false
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	if errors.Is(err, ErrForbidden) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusForbidden && !hasReason(gerr, reasonRateLimit, reasonUserRateLimit, reasonQuota, reasonDailyLimit)
	}
	return false
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
// Drive reports per-user limits as 403 with a rate limit reason.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == http.StatusTooManyRequests {
			return true
		}
		return gerr.Code == http.StatusForbidden && hasReason(gerr, reasonRateLimit, reasonUserRateLimit)
	}
	return false
}

// RetryAfter returns the Retry-After header of a Google API error in seconds,
// or 0 when absent.
func RetryAfter(err error) int {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil || secs < 0 {
		return 0
	}
	return secs
}

// WrapError converts a Google API error to a more specific error type.
// The original message is kept for diagnostics.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch {
	case gerr.Code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, gerr.Message)
	case gerr.Code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, gerr.Message)
	case gerr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, gerr.Message)
	case gerr.Code == http.StatusForbidden:
		switch {
		case hasReason(gerr, reasonRateLimit, reasonUserRateLimit):
			return fmt.Errorf("%w: %s", ErrRateLimited, gerr.Message)
		case hasReason(gerr, reasonQuota, reasonDailyLimit):
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, gerr.Message)
		case hasReason(gerr, reasonExportLimit, reasonNotExportable):
			return fmt.Errorf("%w: %s", ErrNotExportable, gerr.Message)
		}
		return fmt.Errorf("%w: %s", ErrForbidden, gerr.Message)
	default:
		return err
	}
}

func hasReason(gerr *googleapi.Error, reasons ...string) bool {
	for _, item := range gerr.Errors {
		for _, r := range reasons {
			if item.Reason == r {
				return true
			}
		}
	}
	return false
}
