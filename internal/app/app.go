// Package app builds the client graph shared by the portal and the CLI:
// local storage, the cookie-carrying and token-only API clients, the session
// resolver and the data clients.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"uwevents/internal/apiclient"
	"uwevents/internal/catalog"
	"uwevents/internal/credential"
	"uwevents/internal/moderation"
	"uwevents/internal/newsletter"
	"uwevents/internal/platform/config"
	"uwevents/internal/platform/cookiejar"
	"uwevents/internal/platform/localstore"
	"uwevents/internal/platform/metrics"
	"uwevents/internal/platform/querycache"
	"uwevents/internal/platform/tracer"
	"uwevents/internal/promotion"
	"uwevents/internal/session"
)

// App holds the wired clients. Close releases local storage.
type App struct {
	Store      localstore.Store
	Cache      *querycache.Cache
	Metrics    *metrics.Metrics
	Resolver   *session.Resolver
	Admin      *credential.Domain
	Member     *credential.Domain
	Promotions *promotion.Client
	Moderation *moderation.Client
	Catalog    *catalog.Client
	Newsletter *newsletter.Client

	closer io.Closer
}

// Cached reads whose content depends on the signed-in user or on a held
// token. Public listings are shared across identities.
var (
	userScopes = []string{
		catalog.ScopeUserSubmissions,
		catalog.ScopeUserClubSubmissions,
		moderation.ScopePendingEvents,
		moderation.ScopePendingClubs,
		promotion.ScopePromotedEvents,
		promotion.ScopePromotionStatus,
	}
	adminTokenScopes = []string{
		promotion.ScopePromotedEvents,
		promotion.ScopePromotionStatus,
	}
	memberTokenScopes = []string{
		catalog.ScopeUserClubSubmissions,
		moderation.ScopePendingEvents,
		moderation.ScopePendingClubs,
	}
)

type options struct {
	logger   *slog.Logger
	registry prometheus.Registerer
	tracer   tracer.Tracer
	store    localstore.Store
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegisterer registers metrics on reg. Without it no metrics are kept.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registry = reg
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// WithStore replaces the SQLite store, e.g. with localstore.NewMemory.
func WithStore(store localstore.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// New wires every client against cfg.APIBaseURL.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.tracer == nil {
		o.tracer = tracer.NewNoop()
	}

	a := &App{}
	if o.registry != nil {
		a.Metrics = metrics.New(o.registry)
	}

	a.Store = o.store
	if a.Store == nil {
		path, err := storagePath(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		sqlite, err := localstore.OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		a.Store, a.closer = sqlite, sqlite
	}

	jar, err := cookiejar.New(ctx, cfg.APIBaseURL, a.Store, o.logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	common := []apiclient.Option{
		apiclient.WithTimeout(cfg.HTTPTimeout),
		apiclient.WithLogger(o.logger),
		apiclient.WithMetrics(a.Metrics),
		apiclient.WithTracer(o.tracer),
	}
	sessionAPI := apiclient.New(cfg.APIBaseURL, append(common, apiclient.WithCookieJar(jar))...)
	tokenAPI := apiclient.New(cfg.APIBaseURL, common...)

	a.Cache = querycache.New(querycache.WithInvalidationHook(a.Metrics.IncCacheInvalidation))
	a.Admin = credential.NewAdmin(a.Store, credential.WithOnChange(func(context.Context) {
		a.Cache.Invalidate(adminTokenScopes...)
	}))
	a.Member = credential.NewMember(a.Store, credential.WithOnChange(func(context.Context) {
		a.Cache.Invalidate(memberTokenScopes...)
	}))

	a.Resolver = session.New(sessionAPI,
		session.WithLogger(o.logger),
		session.WithMetrics(a.Metrics),
		session.WithOnChange(func(_, next session.State) {
			o.logger.Debug("session identity changed, dropping user data",
				"status", next.Status.String())
			a.Cache.Invalidate(userScopes...)
		}),
	)
	a.Promotions = promotion.New(tokenAPI, a.Admin,
		promotion.WithScheme(cfg.AdminAuthScheme),
		promotion.WithCache(a.Cache),
		promotion.WithSingleFlight(cfg.SingleFlight),
		promotion.WithLogger(o.logger),
	)
	a.Moderation = moderation.New(tokenAPI, a.Member,
		moderation.WithCache(a.Cache),
		moderation.WithSingleFlight(cfg.SingleFlight),
		moderation.WithLogger(o.logger),
	)
	a.Catalog = catalog.New(sessionAPI, a.Member,
		catalog.WithCache(a.Cache),
		catalog.WithLogger(o.logger),
	)
	a.Newsletter = newsletter.New(tokenAPI,
		newsletter.WithCache(a.Cache),
		newsletter.WithLogger(o.logger),
	)
	return a, nil
}

// StorageCheck reports whether local storage answers.
func (a *App) StorageCheck(ctx context.Context) error {
	_, err := a.Store.Get(ctx, credential.AdminKey)
	if err != nil && !errors.Is(err, localstore.ErrNotFound) {
		return err
	}
	return nil
}

// Close stops the resolver and releases local storage.
func (a *App) Close() error {
	if a.Resolver != nil {
		a.Resolver.Close()
	}
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

func storagePath(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve storage dir: %w", err)
	}
	return filepath.Join(dir, config.DefaultStorageFile), nil
}
