package services

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/logger"
)

// ExtractFunc is one unit of extraction work run by a DeadlineRunner.
type ExtractFunc func(ctx context.Context) (string, error)

// DeadlineRunner runs extraction calls against a fixed wall-clock deadline.
//
// The call runs on its own goroutine so the caller is released when the
// deadline passes even if the call never yields. Abandonment is best
// effort: the goroutine is not killed, it receives a cancelled context and
// its eventual result is discarded.
type DeadlineRunner struct {
	deadline time.Duration
}

// NewDeadlineRunner creates a runner with the given per-call deadline.
// A non-positive deadline falls back to domain.DefaultExtractTimeout.
func NewDeadlineRunner(deadline time.Duration) *DeadlineRunner {
	if deadline <= 0 {
		deadline = domain.DefaultExtractTimeout
	}
	return &DeadlineRunner{deadline: deadline}
}

// Deadline returns the per-call deadline.
func (r *DeadlineRunner) Deadline() time.Duration {
	return r.deadline
}

type runOutcome struct {
	text string
	err  error
}

// Run executes fn and returns its result, or domain.ErrTimedOut once the
// deadline expires. Cancellation of ctx is reported as ctx.Err().
// There is no retry.
func (r *DeadlineRunner) Run(ctx context.Context, fn ExtractFunc) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.deadline)
	defer cancel()

	// Buffered so an abandoned call can always deliver and exit.
	done := make(chan runOutcome, 1)
	go func() {
		text, err := callSafely(callCtx, fn)
		done <- runOutcome{text: text, err: err}
	}()

	timer := time.NewTimer(r.deadline)
	defer timer.Stop()

	select {
	case out := <-done:
		// The call context expires alongside the timer, so a call that
		// honours it can finish first with its own deadline error.
		if out.err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			logger.Debug("Extraction stopped at deadline %s: %v", r.deadline, out.err)
			return "", domain.ErrTimedOut
		}
		return out.text, out.err
	case <-timer.C:
		logger.Debug("Extraction abandoned after %s", r.deadline)
		return "", domain.ErrTimedOut
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// callSafely runs fn on the current goroutine, converting a panic in a
// third-party parser into an error.
func callSafely(ctx context.Context, fn ExtractFunc) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Debug("Extractor panic: %v\n%s", rec, debug.Stack())
			text = ""
			err = fmt.Errorf("extractor panic: %v", rec)
		}
	}()
	return fn(ctx)
}
