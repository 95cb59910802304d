// Package blog serves and exports a personal blog built from a directory of
// post descriptors.
//
// Posts live under <content>/posts/<folder>/ as post.yaml plus document.md.
// The App serves them with Echo; Build writes the same pages as a static
// tree. Both render through Pages, so the two outputs never drift apart.
package blog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// App is the central blog application. It wires together the route
// source, cache, handlers and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *RouteCache
	Pages  Pages

	source       RouteSource
	customRoutes []func(*App)
	prepared     bool
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config: cfg,
		Echo:   e,
		Pages:  NewPages(cfg),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Prepare opens the store, builds the cache and registers middleware and
// routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Prepare() error {
	if a.prepared {
		return nil
	}
	if err := a.Config.Validate(); err != nil {
		return fmt.Errorf("blog: %w", err)
	}

	if a.source == nil {
		if a.Config.DatabasePath != "" {
			store, err := NewStore(a.Config.DatabasePath)
			if err != nil {
				return fmt.Errorf("blog: init store: %w", err)
			}
			a.Store = store
			a.source = store
		} else {
			a.source = DirSource{Dir: a.Config.ContentDir}
		}
	}
	a.Cache = NewRouteCache(a.source, a.Config.PostCacheTTL)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.prepared = true
	return nil
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Prepare(); err != nil {
		return err
	}
	if a.Config.Watch {
		w, err := NewWatcher(a.Config.ContentDir, a.Reload)
		if err != nil {
			return fmt.Errorf("blog: watch: %w", err)
		}
		defer w.Close()
		go w.Run(ctx)
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", a.Config.Addr).Str("url", a.Config.URL).Msg("Serving blog")
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("Server exited gracefully")
	return nil
}

// Reload re-syncs the store from the content directory, when a store is in
// use, and drops the cached registry.
func (a *App) Reload(ctx context.Context) error {
	if a.Store != nil {
		routes, err := DirSource{Dir: a.Config.ContentDir}.Routes(ctx)
		if err != nil {
			return err
		}
		res, err := a.Store.Sync(ctx, routes)
		if err != nil {
			return err
		}
		log.Info().Int("upserted", res.Upserted).Int("deleted", res.Deleted).Msg("Synced content")
	}
	if a.Cache != nil {
		a.Cache.Invalidate()
	}
	return nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
