// Package app wires the client components together: one cookie jar, one
// credential store, one refresh coordinator shared by every consumer.
package app

import (
	"fmt"
	"net/http/cookiejar"

	"github.com/rs/zerolog"

	"github.com/vasfood/vasfood-cli/internal/api"
	"github.com/vasfood/vasfood-cli/internal/auth"
	"github.com/vasfood/vasfood-cli/internal/authstore"
	"github.com/vasfood/vasfood-cli/internal/config"
	"github.com/vasfood/vasfood-cli/internal/gate"
	"github.com/vasfood/vasfood-cli/internal/session"
)

// App holds the composed client
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Store     *authstore.Store
	Auth      *auth.Service
	Refresher *auth.Refresher
	Gate      *gate.Gate
	API       *api.Client
	Profiles  *session.ProfileCache
	Guard     *session.Guard
}

// New builds the client from configuration. The notifier receives one-time
// user-facing notices from the session guard and may be nil.
func New(cfg *config.Config, logger zerolog.Logger, notifier session.Notifier) (*App, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	httpClient := gate.NewHTTPClient(jar, cfg.RequestTimeout)
	store := authstore.New()

	refresher := auth.NewRefresher(cfg.APIBaseURL, httpClient, store, logger)
	authSvc := auth.NewService(cfg.APIBaseURL, httpClient, store, logger)

	g := gate.New(httpClient, store, refresher, logger)
	apiClient := api.NewClient(cfg.APIBaseURL, g, logger)

	profiles := session.NewProfileCache(apiClient, cfg.ProfileTTL)
	guard := session.NewGuard(store, refresher, profiles, notifier, logger)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Auth:      authSvc,
		Refresher: refresher,
		Gate:      g,
		API:       apiClient,
		Profiles:  profiles,
		Guard:     guard,
	}, nil
}
