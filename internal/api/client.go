// Package api provides typed bindings for the vasfood domain endpoints.
// Every call goes through the request gate, so token attachment and the
// refresh-and-retry cycle happen transparently.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasfood/vasfood-cli/internal/gate"
)

// Client calls the order, menu, admin and profile endpoints
type Client struct {
	baseURL string
	gate    *gate.Gate
	logger  zerolog.Logger
}

// NewClient creates the API client
func NewClient(baseURL string, g *gate.Gate, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		gate:    g,
		logger:  logger,
	}
}

// call issues a request through the gate and decodes the envelope,
// normalizing body-tagged errors and non-2xx statuses into *APIError.
func call[T any](ctx context.Context, c *Client, method, path string, payload any) (T, error) {
	var zero T

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return zero, fmt.Errorf("marshaling request: %w", err)
		}
	}

	resp, err := c.gate.Do(ctx, method, c.baseURL+path, body, nil)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, fmt.Errorf("reading response: %w", err)
	}

	var env Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return zero, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return zero, fmt.Errorf("decoding response: %w", err)
	}

	// An error tag in the body wins even on a 200.
	if env.IsError() {
		return zero, &APIError{StatusCode: resp.StatusCode, Message: env.ErrorMessage()}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, &APIError{StatusCode: resp.StatusCode, Message: env.ErrorMessage()}
	}

	return env.Data, nil
}
