package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasfood/vasfood-cli/internal/authstore"
)

// ErrRefreshFailed indicates the refresh endpoint did not yield a usable
// access token. Callers treat it as "no new credential" for the current
// request cycle; the refresh call itself is never retried.
var ErrRefreshFailed = errors.New("token refresh failed")

// Refresher exchanges the long-lived session cookie for a new access token.
// At most one refresh network call is in flight at any time: concurrent
// callers share the result of the call already running.
type Refresher struct {
	baseURL    string
	httpClient *http.Client
	store      *authstore.Store
	logger     zerolog.Logger
}

// NewRefresher creates a refresh coordinator. The HTTP client must carry the
// cookie jar that received the session cookie at login, since /auth/refresh
// authenticates through that cookie alone.
func NewRefresher(baseURL string, httpClient *http.Client, store *authstore.Store, logger zerolog.Logger) *Refresher {
	return &Refresher{
		baseURL:    baseURL,
		httpClient: httpClient,
		store:      store,
		logger:     logger,
	}
}

// Refresh obtains a new access token, deduplicating concurrent attempts.
// The winner of the atomic check-and-set performs the network call and
// settles the shared pending result; everyone else waits on it. On success
// the store is updated before any waiter observes the result.
func (r *Refresher) Refresh(ctx context.Context) (string, error) {
	pending, started := r.store.BeginRefresh(authstore.NewPending())
	if !started {
		r.logger.Debug().Msg("refresh already in flight, awaiting shared result")
		return pending.Wait(ctx)
	}

	token, err := r.doRefresh(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("token refresh failed")
	} else {
		r.store.SetToken(token)
		r.logger.Info().Msg("access token refreshed")
	}

	// Clear the in-progress slot before settling so a caller woken by the
	// settle can immediately start a fresh attempt if it needs one.
	r.store.EndRefresh()
	pending.Settle(token, err)
	return token, err
}

func (r *Refresher) doRefresh(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/auth/refresh", nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", ErrRefreshFailed, resp.StatusCode)
	}

	var body refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decoding response: %w", ErrRefreshFailed, err)
	}

	token := body.AccessToken
	if token == "" {
		token = body.Token
	}
	if token == "" {
		return "", fmt.Errorf("%w: no token field in response", ErrRefreshFailed)
	}

	return token, nil
}
