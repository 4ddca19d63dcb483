package google

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

// ServiceType identifies a Google API service for rate limiting purposes.
type ServiceType string

const (
	// ServiceDrive is the Google Drive API service.
	ServiceDrive ServiceType = "drive"
	// ServiceVision is the Cloud Vision API service.
	ServiceVision ServiceType = "vision"
)

// defaultBackoff is applied after a rate limit response without Retry-After.
const defaultBackoff = 30 * time.Second

// RateLimitConfig holds rate limiting configuration for a service.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits provides conservative defaults for each Google service.
// These are well below Google's actual limits to avoid hitting quotas.
var DefaultRateLimits = map[ServiceType]RateLimitConfig{
	ServiceDrive:  {RequestsPerSecond: 8.0, BurstSize: 10}, // Google allows 10/sec/user
	ServiceVision: {RequestsPerSecond: 5.0, BurstSize: 5},
}

// RateLimiter provides rate limiting for Google API requests.
// It uses a token bucket algorithm with optional backoff for 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	service ServiceType
	now     func() time.Time
}

// NewRateLimiter creates a rate limiter for the specified service.
// A positive rps overrides the service default rate.
func NewRateLimiter(service ServiceType, rps float64) *RateLimiter {
	cfg, ok := DefaultRateLimits[service]
	if !ok {
		cfg = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}
	}
	if rps > 0 {
		cfg.RequestsPerSecond = rps
	}

	r := NewRateLimiterWithConfig(cfg)
	r.service = service
	return r
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
func NewRateLimiterWithConfig(cfg RateLimitConfig) *RateLimiter {
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		now:     time.Now,
	}
}

// Service returns the service this limiter throttles.
func (r *RateLimiter) Service() ServiceType {
	return r.service
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimitError. A wait
// that cannot finish before the context deadline returns domain.ErrTimedOut.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := retryAt.Sub(r.now()); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if err := r.limiter.Wait(ctx); err != nil {
		// The limiter refuses early when the next token falls past the deadline.
		if _, ok := ctx.Deadline(); ok && ctx.Err() == nil {
			return fmt.Errorf("%w: %v", domain.ErrTimedOut, err)
		}
		return err
	}
	return nil
}

// RecordRateLimitError records a rate limit error and sets a backoff period.
// Call this when receiving a 429 response from Google APIs.
func (r *RateLimiter) RecordRateLimitError(retryAfterSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	backoff := defaultBackoff
	if retryAfterSeconds > 0 {
		backoff = time.Duration(retryAfterSeconds) * time.Second
	}
	r.retryAt = r.now().Add(backoff)
}

// Allow checks if a request can be made immediately without blocking.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if r.now().Before(retryAt) {
		return false
	}

	return r.limiter.Allow()
}

// Observe records a backoff when err is a rate limit response.
func (r *RateLimiter) Observe(err error) {
	if err != nil && IsRateLimited(err) {
		r.RecordRateLimitError(RetryAfter(err))
	}
}
