package google

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

func TestNewRateLimiter_Override(t *testing.T) {
	r := NewRateLimiter(ServiceDrive, 3)
	assert.Equal(t, ServiceDrive, r.Service())
	assert.InDelta(t, 3.0, float64(r.limiter.Limit()), 0)

	r = NewRateLimiter(ServiceVision, 0)
	assert.InDelta(t, DefaultRateLimits[ServiceVision].RequestsPerSecond, float64(r.limiter.Limit()), 0)
}

func TestRateLimiter_BackoffBlocksAllow(t *testing.T) {
	r := NewRateLimiter(ServiceDrive, 100)
	require.True(t, r.Allow())

	r.RecordRateLimitError(5)
	assert.False(t, r.Allow())

	now := time.Now()
	r.now = func() time.Time { return now.Add(6 * time.Second) }
	assert.True(t, r.Allow())
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	r := NewRateLimiter(ServiceDrive, 100)
	r.RecordRateLimitError(60)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_WaitPastDeadlineTimesOut(t *testing.T) {
	r := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 0.1, BurstSize: 1})
	require.True(t, r.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := r.Wait(ctx)
	assert.ErrorIs(t, err, domain.ErrTimedOut)
	assert.NoError(t, ctx.Err(), "refusal happens before the deadline")
}

func TestRateLimiter_Observe(t *testing.T) {
	r := NewRateLimiter(ServiceDrive, 100)

	r.Observe(apiError(http.StatusNotFound))
	assert.True(t, r.Allow())

	r.Observe(apiError(http.StatusTooManyRequests))
	assert.False(t, r.Allow())
}
