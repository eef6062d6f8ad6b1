// Package session gates protected operations: it decides whether the
// current user is authenticated (credential present or obtainable via one
// refresh) and enforces role requirements against the cached profile.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vasfood/vasfood-cli/internal/authstore"
)

// ErrNotAuthenticated means no credential is present and the refresh
// attempt did not produce one; the user must log in again.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrForbidden means the user is authenticated but their role does not
// satisfy the requirement.
var ErrForbidden = errors.New("insufficient role")

// TokenRefresher obtains a new access token
type TokenRefresher interface {
	Refresh(ctx context.Context) (string, error)
}

// Notifier surfaces one-time user-facing notices
type Notifier interface {
	Notify(title, message string)
}

// Guard evaluates authentication and role requirements before a protected
// operation runs.
type Guard struct {
	store     *authstore.Store
	refresher TokenRefresher
	profiles  *ProfileCache
	notifier  Notifier
	logger    zerolog.Logger

	// deniedShown dedupes the access-denied notice so repeated checks in
	// one session surface it exactly once.
	mu          sync.Mutex
	deniedShown bool
}

// NewGuard creates a session guard
func NewGuard(store *authstore.Store, refresher TokenRefresher, profiles *ProfileCache, notifier Notifier, logger zerolog.Logger) *Guard {
	return &Guard{
		store:     store,
		refresher: refresher,
		profiles:  profiles,
		notifier:  notifier,
		logger:    logger,
	}
}

// Authenticated reports whether the user holds a credential, attempting
// exactly one refresh when none is present. A transient refresh failure
// reads as unauthenticated for this check; the next check may succeed.
func (g *Guard) Authenticated(ctx context.Context) bool {
	if _, ok := g.store.Token(); ok {
		return true
	}

	g.logger.Debug().Msg("no access token, attempting refresh")
	if _, err := g.refresher.Refresh(ctx); err != nil {
		g.logger.Debug().Err(err).Msg("refresh did not yield a credential")
		return false
	}

	_, ok := g.store.Token()
	return ok
}

// RequireAuth returns ErrNotAuthenticated when no credential is present or
// obtainable via refresh.
func (g *Guard) RequireAuth(ctx context.Context) error {
	if !g.Authenticated(ctx) {
		return ErrNotAuthenticated
	}
	return nil
}

// RequireRole enforces authentication plus a role requirement. super_admin
// satisfies every requirement. On a role mismatch the access-denied notice
// is shown once per guard and ErrForbidden is returned.
func (g *Guard) RequireRole(ctx context.Context, role string) error {
	if err := g.RequireAuth(ctx); err != nil {
		return err
	}

	profile, err := g.profiles.Get(ctx)
	if err != nil {
		return err
	}

	if !RoleSatisfies(profile.Role, role) {
		g.mu.Lock()
		alreadyShown := g.deniedShown
		g.deniedShown = true
		g.mu.Unlock()

		if !alreadyShown && g.notifier != nil {
			g.notifier.Notify("Access Denied", "You don't have permission to access this page.")
		}
		g.logger.Warn().
			Str("required_role", role).
			Str("user_role", profile.Role).
			Msg("role check failed")
		return ErrForbidden
	}

	return nil
}
