package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasfood/vasfood-cli/internal/authstore"
	"github.com/vasfood/vasfood-cli/internal/logger"
)

func newTestRefresher(t *testing.T, handler http.HandlerFunc) (*Refresher, *authstore.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := authstore.New()
	return NewRefresher(srv.URL, srv.Client(), store, logger.Nop()), store
}

func TestRefreshSuccessUpdatesStore(t *testing.T) {
	r, store := newTestRefresher(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/auth/refresh", req.URL.Path)
		w.Write([]byte(`{"accessToken":"T2"}`))
	})

	token, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "T2", token)

	stored, ok := store.Token()
	require.True(t, ok, "refresh success must update the store")
	assert.Equal(t, "T2", stored)
}

func TestRefreshAcceptsLegacyTokenField(t *testing.T) {
	r, store := newTestRefresher(t, func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"token":"T3"}`))
	})

	token, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "T3", token)

	stored, _ := store.Token()
	assert.Equal(t, "T3", stored)
}

func TestRefreshFailureLeavesStoreUntouched(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
		{
			name: "missing token field",
			handler: func(w http.ResponseWriter, req *http.Request) {
				w.Write([]byte(`{"message":"ok"}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, req *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store := newTestRefresher(t, tt.handler)
			store.SetToken("OLD")

			_, err := r.Refresh(context.Background())
			assert.ErrorIs(t, err, ErrRefreshFailed)

			stored, _ := store.Token()
			assert.Equal(t, "OLD", stored, "failed refresh must not alter the stored credential")

			_, refreshing := store.Refreshing()
			assert.False(t, refreshing, "in-progress flag must be cleared after failure")
		})
	}
}

func TestRefreshFailureDoesNotBlockNextAttempt(t *testing.T) {
	var calls atomic.Int32
	r, store := newTestRefresher(t, func(w http.ResponseWriter, req *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"accessToken":"T2"}`))
	})

	_, err := r.Refresh(context.Background())
	require.ErrorIs(t, err, ErrRefreshFailed)

	token, err := r.Refresh(context.Background())
	require.NoError(t, err, "a later refresh must be able to proceed")
	assert.Equal(t, "T2", token)

	stored, _ := store.Token()
	assert.Equal(t, "T2", stored)
}

func TestConcurrentRefreshesShareOneCall(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})

	r, _ := newTestRefresher(t, func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		<-release
		w.Write([]byte(`{"accessToken":"T2"}`))
	})

	const n = 10
	var wg sync.WaitGroup
	tokens := make([]string, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = r.Refresh(context.Background())
		}(i)
	}

	// Give every goroutine time to reach the coordinator while the first
	// network call is parked in the handler.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "N concurrent callers must produce exactly one network refresh")
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "T2", tokens[i], "all callers must observe the same result")
	}
}

func TestConcurrentRefreshFailureSharedByAllWaiters(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})

	r, _ := newTestRefresher(t, func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	})

	const n = 4
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = r.Refresh(context.Background())
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := 0; i < n; i++ {
		assert.ErrorIs(t, errs[i], ErrRefreshFailed, "every waiter gets the same failure")
	}
}
