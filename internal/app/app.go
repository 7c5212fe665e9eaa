// Package app builds the client's dependency graph from configuration.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/adapter/pebblestore"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/adapter/portalapi"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/config"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/metrics"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/auth"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/broadcast"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/complaint"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/dashboard"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/directory"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/notification"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/unread"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/session"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/transport/middleware"
)

// Poller sources.
const (
	SourceComplaints    = "complaints"
	SourceNotifications = "notifications"
)

// App holds every service of a client process.
type App struct {
	Config  config.Config
	Log     *slog.Logger
	Session *session.Service
	API     *portalapi.Client
	Metrics *metrics.Metrics

	Auth          *auth.Service
	Dashboard     *dashboard.Service
	Complaints    *complaint.Service
	Notifications *notification.Panel
	Directory     *directory.Resolver
	Composer      *broadcast.Composer

	store sessionStore
}

type sessionStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	DeletePrefix(prefix string) error
	Close() error
}

// Bootstrap opens the session store and wires the API client and services.
// The caller must Close the returned App.
func Bootstrap(cfg config.Config, logger *slog.Logger) (*App, error) {
	store, err := openStore(cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("app.Bootstrap: %w", err)
	}

	sess := session.NewService(logger, store)
	if _, err := sess.Load(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("app.Bootstrap: %w", err)
	}

	m := metrics.New(prometheus.NewRegistry())

	httpClient := &http.Client{
		Timeout: cfg.API.Timeout,
		Transport: middleware.Chain(
			middleware.RequestID,
			middleware.UserAgent(UserAgent(cfg.API.UserAgent)),
			middleware.Logger(logger),
			middleware.Metrics(m),
			middleware.RateLimit(middleware.NewLimiter(cfg.API.RateLimitRPS, cfg.API.RateLimitBurst)),
			middleware.Auth(sess, cfg.API.BaseURL),
		)(http.DefaultTransport),
	}

	api, err := portalapi.New(cfg.API.BaseURL, httpClient, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("app.Bootstrap: %w", err)
	}

	dir := directory.NewResolver(logger, api, directory.Options{
		Strategies: []directory.Strategy{
			{Name: "users", Path: cfg.Directory.PrimaryPath},
			{Name: "employees", Path: cfg.Directory.FallbackPath},
		},
		PageSize: cfg.Directory.PageSize,
	})

	a := &App{
		Config:  cfg,
		Log:     logger,
		Session: sess,
		API:     api,
		Metrics: m,

		Auth:          auth.NewService(logger, api, sess),
		Dashboard:     dashboard.NewService(logger, api, sess),
		Complaints:    complaint.NewService(logger, api, sess),
		Notifications: notification.NewPanel(logger, api),
		Directory:     dir,
		Composer:      broadcast.NewComposer(logger, api, dir),

		store: store,
	}

	logger.Debug("app ready",
		slog.String("version", BuildVersion()),
		slog.String("api", api.BaseURL()),
		slog.Bool("logged_in", sess.Current().HasCredential()),
	)
	return a, nil
}

// openStore returns the session store. The on-disk store is shared: it is
// locked only while an operation runs, so concurrent portal processes (a
// running watch and a login, say) can use the same session.
func openStore(cfg config.SessionConfig) (sessionStore, error) {
	if cfg.InMemory {
		return pebblestore.OpenInMemory()
	}
	return pebblestore.OpenShared(cfg.Path, cfg.LockTimeout)
}

// NewPoller creates the unread poller of a source with the configured
// cadence. onUpdate may be nil.
func (a *App) NewPoller(source string, onUpdate func(int)) *unread.Poller {
	interval := a.Config.Poll.ComplaintsInterval
	if source == SourceNotifications {
		interval = a.Config.Poll.NotificationsInterval
	}
	return unread.NewPoller(unread.Options{
		Source:        source,
		Interval:      interval,
		TriggerMinGap: a.Config.Poll.TriggerMinGap,
		OnUpdate:      onUpdate,
	}, a.Metrics, a.Log)
}

// FetcherFor returns the per-session fetcher factory of a source.
func (a *App) FetcherFor(source string) func(domain.Session) unread.Fetcher {
	if source == SourceNotifications {
		return unread.NotificationFetcher(a.API)
	}
	return unread.ComplaintFetcher(a.API)
}

// Close waits for background work and closes the session store.
func (a *App) Close() error {
	a.Complaints.Wait()
	return a.store.Close()
}
