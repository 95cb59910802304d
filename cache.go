package blog

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/kjgalvan/blog/content"
)

// ErrNotFound is returned when a requested page or post does not exist.
var ErrNotFound = errors.New("not found")

// RouteSource produces the current list of routes.
type RouteSource interface {
	Routes(ctx context.Context) ([]content.Route, error)
}

// DirSource reads routes straight from a content directory.
type DirSource struct {
	Dir string
}

// Routes loads the posts under Dir.
func (d DirSource) Routes(_ context.Context) ([]content.Route, error) {
	return content.LoadDir(os.DirFS(d.Dir))
}

// RouteCache keeps a registry built from a RouteSource for ttl.
type RouteCache struct {
	mu      sync.RWMutex
	reg     *content.Registry
	fetched time.Time
	ttl     time.Duration
	source  RouteSource
}

// NewRouteCache creates a RouteCache backed by src.
func NewRouteCache(src RouteSource, ttl time.Duration) *RouteCache {
	return &RouteCache{source: src, ttl: ttl}
}

func (c *RouteCache) valid() bool {
	return c.reg != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *RouteCache) Invalidate() {
	c.mu.Lock()
	c.reg = nil
	c.mu.Unlock()
}

// Registry returns the cached registry, reloading it when stale. It tries a
// read lock first and only takes the write lock to reload.
func (c *RouteCache) Registry(ctx context.Context) (*content.Registry, error) {
	c.mu.RLock()
	if c.valid() {
		reg := c.reg
		c.mu.RUnlock()
		return reg, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.reg, nil
	}
	routes, err := c.source.Routes(ctx)
	if err != nil {
		return nil, err
	}
	reg, err := content.NewRegistry(routes)
	if err != nil {
		return nil, err
	}
	c.reg = reg
	c.fetched = time.Now()
	return reg, nil
}
