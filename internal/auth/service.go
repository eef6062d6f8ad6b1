package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasfood/vasfood-cli/internal/authstore"
)

// ErrNotVerified is returned by Login when the account exists but the email
// address has not been verified yet.
var ErrNotVerified = errors.New("user is not verified")

// notVerifiedMessage is the exact backend message distinguishing the
// unverified-account case from an ordinary bad-credentials 401.
const notVerifiedMessage = "User is not verified"

// Service implements the credential lifecycle flows: login, logout and
// email verification. It shares its HTTP client (and therefore its cookie
// jar) with the Refresher so the session cookie set at login is the one
// presented to /auth/refresh.
type Service struct {
	baseURL    string
	httpClient *http.Client
	store      *authstore.Store
	logger     zerolog.Logger
}

// NewService creates the auth flow service
func NewService(baseURL string, httpClient *http.Client, store *authstore.Store, logger zerolog.Logger) *Service {
	return &Service{
		baseURL:    baseURL,
		httpClient: httpClient,
		store:      store,
		logger:     logger,
	}
}

// Login authenticates with email and password. On success the access token
// and email are stored and the session cookie lands in the client's jar.
// An unverified account yields ErrNotVerified.
func (s *Service) Login(ctx context.Context, email, password string) error {
	resp, err := s.postJSON(ctx, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	// The error branches must work even when the backend sends an empty or
	// non-JSON body, so a decode failure is not itself fatal.
	var body loginResponse
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading login response: %w", err)
	}
	_ = json.Unmarshal(raw, &body)

	switch {
	case resp.StatusCode == http.StatusOK:
		if body.AccessToken == "" {
			return errors.New("login succeeded but no access token in response")
		}
		s.store.SetToken(body.AccessToken)
		s.store.SetEmail(email)
		s.logger.Info().Str("email", email).Msg("logged in")
		return nil
	case resp.StatusCode == http.StatusUnauthorized && body.Message == notVerifiedMessage:
		s.store.SetEmail(email)
		return ErrNotVerified
	default:
		if body.Message != "" {
			return fmt.Errorf("login failed: %s", body.Message)
		}
		return fmt.Errorf("login failed with status %d", resp.StatusCode)
	}
}

// Logout ends the server-side session and clears local credentials. It is
// fail-open: the local session is cleared even when the backend call fails,
// so a broken backend can never trap the user in a logged-in state.
func (s *Service) Logout(ctx context.Context) error {
	email := s.store.Email()
	defer s.store.Reset()

	resp, err := s.postJSON(ctx, "/auth/logout", logoutRequest{Email: email})
	if err != nil {
		s.logger.Warn().Err(err).Msg("logout request failed, clearing local session anyway")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn().Int("status", resp.StatusCode).Msg("logout rejected by backend, clearing local session anyway")
		return nil
	}

	s.logger.Info().Str("email", email).Msg("logged out")
	return nil
}

// Register creates a new account. The backend answers 201 Created and
// emails a verification code; the account cannot log in until verified.
func (s *Service) Register(ctx context.Context, fullName, email, password string) error {
	resp, err := s.postJSON(ctx, "/auth/register", registerRequest{FullName: fullName, Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		s.store.SetEmail(email)
		s.logger.Info().Str("email", email).Msg("account registered")
		return nil
	}

	var body messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return fmt.Errorf("registration failed: %s", body.Message)
	}
	return fmt.Errorf("registration failed with status %d", resp.StatusCode)
}

// SendVerificationCode asks the backend to email a fresh verification code
func (s *Service) SendVerificationCode(ctx context.Context, email string) error {
	return s.simpleAuthPost(ctx, "/auth/send-verification-code", verificationRequest{Email: email})
}

// ConfirmVerificationCode submits the emailed code to verify the account
func (s *Service) ConfirmVerificationCode(ctx context.Context, email, code string) error {
	return s.simpleAuthPost(ctx, "/auth/confirm-verification-code", verificationRequest{Email: email, Code: code})
}

// SendResetPasswordCode starts the forgotten-password flow
func (s *Service) SendResetPasswordCode(ctx context.Context, email string) error {
	return s.simpleAuthPost(ctx, "/auth/send-reset-password-code", verificationRequest{Email: email})
}

// simpleAuthPost handles the unauthenticated auth endpoints that answer
// with a plain message body
func (s *Service) simpleAuthPost(ctx context.Context, path string, payload any) error {
	resp, err := s.postJSON(ctx, path, payload)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var body messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return fmt.Errorf("POST %s: %s", path, body.Message)
	}
	return fmt.Errorf("POST %s: unexpected status %d", path, resp.StatusCode)
}

func (s *Service) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return s.httpClient.Do(req)
}
