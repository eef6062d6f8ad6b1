package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	// googleAuthURL is the Google OAuth 2.0 authorization endpoint
	googleAuthURL = "https://accounts.google.com/o/oauth2/v2/auth"
	// googleClientID is the OAuth client ID registered for vasfood
	googleClientID = "414516104038-n1bs477pp4c1v8rur85438ghhifr168o.apps.googleusercontent.com"
)

// ErrCallbackFailed indicates the sign-in callback arrived without tokens,
// meaning the Google flow was denied or the backend rejected the code.
var ErrCallbackFailed = errors.New("sign-in callback carried no tokens")

// CallbackResult holds the tokens delivered to the local callback listener.
// Only the access token is consumed; the long-lived artifact for this client
// is the HTTP-only session cookie, not the refresh token query parameter.
type CallbackResult struct {
	AccessToken  string
	RefreshToken string
}

// GoogleAuthURL builds the browser URL that starts the Google sign-in flow.
// The backend handles the code exchange at its own callback route and then
// redirects the browser to redirectURI with the tokens as query parameters.
func GoogleAuthURL(backendBaseURL string) string {
	params := url.Values{
		"client_id":     {googleClientID},
		"redirect_uri":  {backendBaseURL + "/auth/oauth2/google/callback"},
		"response_type": {"code"},
		"scope":         {"openid email profile"},
		"access_type":   {"offline"},
		"prompt":        {"consent"},
	}
	return googleAuthURL + "?" + params.Encode()
}

// newCallbackRouter builds the one-shot callback route. A callback without
// an access token reports ErrCallbackFailed instead of a result.
func newCallbackRouter(resultCh chan<- *CallbackResult, errCh chan<- error) http.Handler {
	r := chi.NewRouter()
	r.Get("/oauth/callback", func(w http.ResponseWriter, req *http.Request) {
		accessToken := req.URL.Query().Get("accessToken")
		refreshToken := req.URL.Query().Get("refreshToken")

		// Only the first callback counts; sends never block so a stray
		// second hit cannot wedge the handler during shutdown.
		if accessToken == "" {
			http.Error(w, "sign-in failed: missing tokens", http.StatusBadRequest)
			select {
			case errCh <- ErrCallbackFailed:
			default:
			}
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body><p>Signed in. You can close this window and return to the terminal.</p></body></html>")
		select {
		case resultCh <- &CallbackResult{AccessToken: accessToken, RefreshToken: refreshToken}:
		default:
		}
	})
	return r
}

// WaitForCallback runs a short-lived local HTTP server on addr and blocks
// until the sign-in redirect lands on /oauth/callback or ctx is cancelled.
// The server shuts down as soon as one callback is handled.
func WaitForCallback(ctx context.Context, addr string, logger zerolog.Logger) (*CallbackResult, error) {
	resultCh := make(chan *CallbackResult, 1)
	errCh := make(chan error, 1)

	srv := &http.Server{Addr: addr, Handler: newCallbackRouter(resultCh, errCh)}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case errCh <- fmt.Errorf("callback listener: %w", err):
			default:
			}
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", addr).Msg("waiting for sign-in callback")

	select {
	case res := <-resultCh:
		return res, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
