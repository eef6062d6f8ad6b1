// Package authstore holds the current access credential and refresh
// coordination state for the whole process. It is the single source of
// truth: every outbound call reads the token from here at send time.
package authstore

import (
	"context"
	"sync"
)

// Pending is the shared result of a single in-flight refresh. All callers
// that observe a refresh in progress wait on the same Pending and receive
// the identical outcome.
type Pending struct {
	done  chan struct{}
	token string
	err   error
}

// NewPending creates an unsettled pending result
func NewPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// Settle resolves the pending result exactly once. Token is empty on failure.
func (p *Pending) Settle(token string, err error) {
	p.token = token
	p.err = err
	close(p.done)
}

// Wait blocks until the refresh settles or the context is cancelled
func (p *Pending) Wait(ctx context.Context) (string, error) {
	select {
	case <-p.done:
		return p.token, p.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Store is the in-memory credential holder. No persistence: a process
// restart loses the token and requires login or a cookie-backed refresh.
type Store struct {
	mu         sync.Mutex
	token      string
	email      string
	refreshing bool
	pending    *Pending
}

// New creates an empty credential store
func New() *Store {
	return &Store{}
}

// Token returns the current access credential, if one is set
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// SetToken replaces the stored credential; an empty value clears it
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Email returns the email recorded at login, used by the logout request body
func (s *Store) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

// SetEmail records the account email for the session
func (s *Store) SetEmail(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = email
}

// BeginRefresh atomically checks and sets the refresh-in-progress flag.
// If no refresh is running it records p as the shared pending result and
// returns (p, true): the caller owns the network call. Otherwise it returns
// the already-stored pending and false: the caller must wait on it instead
// of issuing its own request. The check and the mark happen under one lock
// acquisition so two near-simultaneous callers can never both win.
func (s *Store) BeginRefresh(p *Pending) (*Pending, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refreshing {
		return s.pending, false
	}
	s.refreshing = true
	s.pending = p
	return p, true
}

// EndRefresh clears the in-progress flag and pending slot. Called
// unconditionally when a refresh settles so a later attempt is never blocked.
func (s *Store) EndRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshing = false
	s.pending = nil
}

// Refreshing reports whether a refresh is in flight and returns its pending result
func (s *Store) Refreshing() (*Pending, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending, s.refreshing
}

// Reset clears all session state, used by logout
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.email = ""
	s.refreshing = false
	s.pending = nil
}
