package session

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vasfood/vasfood-cli/internal/api"
)

// ProfileFetcher fetches the session identity from the backend
type ProfileFetcher interface {
	GetProfile(ctx context.Context) (api.Profile, error)
}

// ProfileCache is a read-through cache for the session identity. The
// profile rarely changes, so it is served from memory within the staleness
// window; concurrent cache misses collapse into a single backend fetch.
type ProfileCache struct {
	fetcher ProfileFetcher
	ttl     time.Duration

	mu        sync.Mutex
	profile   api.Profile
	fetchedAt time.Time

	sf singleflight.Group
}

// NewProfileCache creates a profile cache with the given staleness window
func NewProfileCache(fetcher ProfileFetcher, ttl time.Duration) *ProfileCache {
	return &ProfileCache{
		fetcher: fetcher,
		ttl:     ttl,
	}
}

// Get returns the cached profile, fetching it when absent or stale
func (p *ProfileCache) Get(ctx context.Context) (api.Profile, error) {
	p.mu.Lock()
	if !p.fetchedAt.IsZero() && time.Since(p.fetchedAt) < p.ttl {
		profile := p.profile
		p.mu.Unlock()
		return profile, nil
	}
	p.mu.Unlock()

	v, err, _ := p.sf.Do("profile", func() (any, error) {
		profile, err := p.fetcher.GetProfile(ctx)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.profile = profile
		p.fetchedAt = time.Now()
		p.mu.Unlock()
		return profile, nil
	})
	if err != nil {
		return api.Profile{}, err
	}
	return v.(api.Profile), nil
}

// Invalidate drops the cached profile, forcing a fetch on the next Get.
// Called on logout and login so identities never bleed across sessions.
func (p *ProfileCache) Invalidate() {
	p.mu.Lock()
	p.fetchedAt = time.Time{}
	p.profile = api.Profile{}
	p.mu.Unlock()
}
