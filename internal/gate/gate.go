// Package gate executes authenticated HTTP requests against the vasfood
// backend: it attaches the current access token, detects authorization
// failure and performs at most one refresh-and-retry cycle per request.
package gate

import (
	"bytes"
	"context"
	"net/http"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/vasfood/vasfood-cli/internal/authstore"
)

// HTTPClient is an interface for making HTTP requests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenRefresher obtains a new access token, deduplicating concurrent attempts
type TokenRefresher interface {
	Refresh(ctx context.Context) (string, error)
}

// maxRetries bounds the refresh-and-retry cycle to exactly one retry per
// caller-initiated request. This is a hard bound: a request that fails
// twice is surfaced, never looped.
const maxRetries = 1

// Gate wraps outbound requests with credential attachment and
// single-retry-after-refresh semantics.
type Gate struct {
	httpClient HTTPClient
	store      *authstore.Store
	refresher  TokenRefresher
	logger     zerolog.Logger
}

// New creates a request gate. The store is read fresh on every attempt so a
// refresh completed by another caller mid-flight is always picked up.
func New(httpClient HTTPClient, store *authstore.Store, refresher TokenRefresher, logger zerolog.Logger) *Gate {
	return &Gate{
		httpClient: httpClient,
		store:      store,
		refresher:  refresher,
		logger:     logger,
	}
}

// Do issues an authenticated request. The body may be nil; header carries
// caller-supplied extras that merge under the gate's own headers (callers
// cannot override Authorization or Content-Type). On a 401 or a transport
// error the gate refreshes the token once and reissues the request; if the
// refresh yields no credential the original response or error is returned
// unmodified.
func (g *Gate) Do(ctx context.Context, method, url string, body []byte, header http.Header) (*http.Response, error) {
	return g.do(ctx, ulid.Make().String(), method, url, body, header, 0)
}

func (g *Gate) do(ctx context.Context, reqID, method, url string, body []byte, header http.Header, attempt int) (*http.Response, error) {
	req, err := g.buildRequest(ctx, method, url, body, header)
	if err != nil {
		return nil, err
	}

	logger := g.logger.With().Str("request_id", reqID).Str("method", method).Str("url", url).Logger()

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if attempt >= maxRetries {
			logger.Error().Err(err).Msg("request failed after retry")
			return nil, err
		}
		logger.Warn().Err(err).Msg("request failed, refreshing token before retry")
		if _, rerr := g.refresher.Refresh(ctx); rerr != nil {
			// No new credential: propagate the original transport error.
			return nil, err
		}
		return g.do(ctx, reqID, method, url, body, header, attempt+1)
	}

	if resp.StatusCode == http.StatusUnauthorized && attempt < maxRetries {
		logger.Debug().Msg("got 401, attempting token refresh")
		token, rerr := g.refresher.Refresh(ctx)
		if rerr != nil || token == "" {
			// Refresh failed: hand the original 401 back to the caller.
			return resp, nil
		}
		resp.Body.Close()
		return g.do(ctx, reqID, method, url, body, header, attempt+1)
	}

	return resp, nil
}

// buildRequest constructs the request with the token read from the store at
// this moment, not a copy captured earlier. A concurrent refresh may have
// replaced the credential between the first attempt and the retry.
func (g *Gate) buildRequest(ctx context.Context, method, url string, body []byte, header http.Header) (*http.Request, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	req.Header.Set("Content-Type", "application/json")
	if token, ok := g.store.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}
