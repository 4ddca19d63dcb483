// Package llmhttp holds the JSON-over-HTTP plumbing shared by the LLM adapters.
package llmhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 512

// StatusError reports a non-2xx response from a provider.
type StatusError struct {
	Provider string
	Code     int
	Message  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.Code, e.Message)
}

// Unwrap maps well-known status codes to domain errors.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrAuthRequired
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	default:
		return nil
	}
}

// Client sends JSON requests to one provider.
type Client struct {
	provider string
	http     *http.Client
	headers  map[string]string
}

// New creates a client. Headers are sent with every request.
func New(provider string, timeout time.Duration, headers map[string]string) *Client {
	return &Client{
		provider: provider,
		http:     &http.Client{Timeout: timeout},
		headers:  headers,
	}
}

// PostJSON sends in as a JSON body to url and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, url string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// Get sends a GET to url and discards the body. It is used for cheap
// reachability checks.
func (c *Client) Get(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("%s: failed to create ping request: %w", c.provider, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: ping failed: %w", c.provider, err)
	}
	return nil
}

func (c *Client) do(req *http.Request, out any) error {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Provider: c.provider, Code: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts a provider error message. OpenAI and Anthropic nest
// it under error.message; Ollama sends a bare error string.
func errorMessage(raw []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &nested) == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	var flat struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &flat) == nil && flat.Error != "" {
		return flat.Error
	}

	msg := strings.TrimSpace(string(raw))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}
	return msg
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
