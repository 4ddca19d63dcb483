package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrNoTextFound", ErrNoTextFound},
		{"ErrTimedOut", ErrTimedOut},
		{"ErrPayloadTooLarge", ErrPayloadTooLarge},
		{"ErrDepthExceeded", ErrDepthExceeded},
		{"ErrFileLimit", ErrFileLimit},
		{"ErrCycleDetected", ErrCycleDetected},
		{"ErrNoContent", ErrNoContent},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrOCRUnavailable", ErrOCRUnavailable},
		{"ErrAuthRequired", ErrAuthRequired},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrTimedOut, ErrNoTextFound))
	assert.False(t, errors.Is(ErrUnsupportedType, ErrNotFound))
	assert.False(t, errors.Is(ErrDepthExceeded, ErrFileLimit))
}

func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("export %s: %w", MIMETypeGoogleSheet, ErrUnsupportedType)

	assert.True(t, errors.Is(err, ErrUnsupportedType))
	assert.Contains(t, err.Error(), "unsupported type")
}
