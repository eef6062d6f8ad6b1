package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasfood/vasfood-cli/internal/api"
	"github.com/vasfood/vasfood-cli/internal/authstore"
	"github.com/vasfood/vasfood-cli/internal/logger"
)

type fakeRefresher struct {
	calls   atomic.Int32
	refresh func(ctx context.Context) (string, error)
}

func (f *fakeRefresher) Refresh(ctx context.Context) (string, error) {
	f.calls.Add(1)
	return f.refresh(ctx)
}

type fakeProfileFetcher struct {
	calls   atomic.Int32
	profile api.Profile
	err     error
}

func (f *fakeProfileFetcher) GetProfile(ctx context.Context) (api.Profile, error) {
	f.calls.Add(1)
	return f.profile, f.err
}

type recordingNotifier struct {
	notices []string
}

func (n *recordingNotifier) Notify(title, message string) {
	n.notices = append(n.notices, title)
}

func newTestGuard(store *authstore.Store, refresher *fakeRefresher, fetcher *fakeProfileFetcher, notifier Notifier) *Guard {
	cache := NewProfileCache(fetcher, time.Minute)
	return NewGuard(store, refresher, cache, notifier, logger.Nop())
}

func TestAuthenticatedWithToken(t *testing.T) {
	store := authstore.New()
	store.SetToken("T1")
	refresher := &fakeRefresher{refresh: func(ctx context.Context) (string, error) { return "", errors.New("unused") }}
	g := newTestGuard(store, refresher, &fakeProfileFetcher{}, nil)

	assert.True(t, g.Authenticated(context.Background()))
	assert.Equal(t, int32(0), refresher.calls.Load(), "no refresh when a token is present")
}

func TestAuthenticatedViaRefresh(t *testing.T) {
	store := authstore.New()
	refresher := &fakeRefresher{refresh: func(ctx context.Context) (string, error) {
		store.SetToken("T2")
		return "T2", nil
	}}
	g := newTestGuard(store, refresher, &fakeProfileFetcher{}, nil)

	assert.True(t, g.Authenticated(context.Background()))
	assert.Equal(t, int32(1), refresher.calls.Load(), "exactly one refresh attempt")
}

func TestUnauthenticatedWhenRefreshFails(t *testing.T) {
	store := authstore.New()
	refresher := &fakeRefresher{refresh: func(ctx context.Context) (string, error) {
		return "", errors.New("refresh rejected")
	}}
	g := newTestGuard(store, refresher, &fakeProfileFetcher{}, nil)

	assert.False(t, g.Authenticated(context.Background()))
	assert.ErrorIs(t, g.RequireAuth(context.Background()), ErrNotAuthenticated)
}

func TestRequireRoleExactMatch(t *testing.T) {
	store := authstore.New()
	store.SetToken("T1")
	fetcher := &fakeProfileFetcher{profile: api.Profile{Role: RoleHR}}
	g := newTestGuard(store, &fakeRefresher{refresh: nil}, fetcher, nil)

	assert.NoError(t, g.RequireRole(context.Background(), RoleHR))
}

func TestSuperAdminSatisfiesAnyRole(t *testing.T) {
	store := authstore.New()
	store.SetToken("T1")
	fetcher := &fakeProfileFetcher{profile: api.Profile{Role: RoleSuperAdmin}}
	g := newTestGuard(store, &fakeRefresher{refresh: nil}, fetcher, nil)

	assert.NoError(t, g.RequireRole(context.Background(), RoleHR))
	assert.NoError(t, g.RequireRole(context.Background(), RoleStaff))
	assert.NoError(t, g.RequireRole(context.Background(), RoleSuperAdmin))
}

func TestLesserRoleDeniedElevatedRequirement(t *testing.T) {
	store := authstore.New()
	store.SetToken("T1")
	fetcher := &fakeProfileFetcher{profile: api.Profile{Role: RoleHR}}
	notifier := &recordingNotifier{}
	g := newTestGuard(store, &fakeRefresher{refresh: nil}, fetcher, notifier)

	err := g.RequireRole(context.Background(), RoleSuperAdmin)
	assert.ErrorIs(t, err, ErrForbidden)
	require.Len(t, notifier.notices, 1, "access-denied notice shown")

	// Re-checks must not repeat the notice.
	for i := 0; i < 3; i++ {
		err = g.RequireRole(context.Background(), RoleSuperAdmin)
		assert.ErrorIs(t, err, ErrForbidden)
	}
	assert.Len(t, notifier.notices, 1, "notice is deduplicated across re-checks")
}

func TestRequireRoleProfileFetchErrorPropagates(t *testing.T) {
	store := authstore.New()
	store.SetToken("T1")
	fetchErr := errors.New("profile unavailable")
	fetcher := &fakeProfileFetcher{err: fetchErr}
	g := newTestGuard(store, &fakeRefresher{refresh: nil}, fetcher, nil)

	assert.ErrorIs(t, g.RequireRole(context.Background(), RoleHR), fetchErr)
}
