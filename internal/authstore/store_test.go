package authstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenLifecycle(t *testing.T) {
	s := New()

	_, ok := s.Token()
	assert.False(t, ok, "fresh store should hold no token")

	s.SetToken("T1")
	token, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "T1", token)

	s.SetToken("")
	_, ok = s.Token()
	assert.False(t, ok, "empty value should clear the token")
}

func TestResetClearsEverything(t *testing.T) {
	s := New()
	s.SetToken("T1")
	s.SetEmail("ada@example.com")
	s.BeginRefresh(NewPending())

	s.Reset()

	_, ok := s.Token()
	assert.False(t, ok)
	assert.Empty(t, s.Email())
	_, refreshing := s.Refreshing()
	assert.False(t, refreshing)
}

func TestBeginRefreshSingleWinner(t *testing.T) {
	s := New()

	first := NewPending()
	got, started := s.BeginRefresh(first)
	require.True(t, started)
	assert.Same(t, first, got)

	second := NewPending()
	got, started = s.BeginRefresh(second)
	assert.False(t, started, "second BeginRefresh must lose while one is in flight")
	assert.Same(t, first, got, "loser must receive the winner's pending")

	s.EndRefresh()
	got, started = s.BeginRefresh(second)
	assert.True(t, started, "EndRefresh must unblock future refreshes")
	assert.Same(t, second, got)
}

func TestBeginRefreshConcurrentWinners(t *testing.T) {
	s := New()

	const n = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, started := s.BeginRefresh(NewPending()); started {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners, "exactly one caller may win the check-and-set")
}

func TestPendingSharedResult(t *testing.T) {
	p := NewPending()

	const n = 5
	results := make(chan string, n)
	for i := 0; i < n; i++ {
		go func() {
			token, err := p.Wait(context.Background())
			if err != nil {
				results <- "err:" + err.Error()
				return
			}
			results <- token
		}()
	}

	p.Settle("T2", nil)

	for i := 0; i < n; i++ {
		assert.Equal(t, "T2", <-results, "every waiter must observe the same resolution")
	}
}

func TestPendingFailurePropagates(t *testing.T) {
	p := NewPending()
	wantErr := errors.New("refresh rejected")
	p.Settle("", wantErr)

	token, err := p.Wait(context.Background())
	assert.Empty(t, token)
	assert.ErrorIs(t, err, wantErr)
}

func TestPendingWaitRespectsContext(t *testing.T) {
	p := NewPending()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
