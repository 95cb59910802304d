package blog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/kjgalvan/blog/content"
)

// SiteConfig holds all configuration for a blog.
type SiteConfig struct {
	Site content.SiteMetadata `yaml:"site"`

	URL          string `yaml:"url"`          // Canonical URL (default "http://localhost:3000")
	Addr         string `yaml:"addr"`         // Listen address (default ":3000")
	ContentDir   string `yaml:"contentDir"`   // Posts and site.yaml (default "content")
	DatabasePath string `yaml:"databasePath"` // SQLite index; empty serves straight from ContentDir
	StaticDir    string `yaml:"staticDir"`    // User static assets (default "public")
	OutDir       string `yaml:"outDir"`       // Static export target (default "dist")
	LogLevel     string `yaml:"logLevel"`     // zerolog level (default "info")

	PostCacheTTL time.Duration `yaml:"postCacheTTL"` // Route cache TTL (default 5min)
	Watch        bool          `yaml:"watch"`        // Reload on content changes while serving
	Gzip         bool          `yaml:"gzip"`         // Write .gz siblings during export
}

func (c *SiteConfig) setDefaults() {
	c.Site.SetDefaults()
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.OutDir == "" {
		c.OutDir = "dist"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// LoadConfig reads an optional YAML config file, merges site.yaml from the
// content directory, applies environment overrides and fills defaults.
// Values in the config file win over site.yaml.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path != "" {
		b, err := os.ReadFile(path) // #nosec G304 -- operator-supplied config path
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.ApplyEnv()

	dir := cfg.ContentDir
	if dir == "" {
		dir = "content"
	}
	site, err := content.LoadSite(os.DirFS(dir))
	if err != nil {
		return cfg, fmt.Errorf("load site metadata: %w", err)
	}
	cfg.Site = mergeSite(cfg.Site, site)
	cfg.setDefaults()
	return cfg, cfg.Validate()
}

// mergeSite fills zero fields of cfg from file.
func mergeSite(cfg, file content.SiteMetadata) content.SiteMetadata {
	if cfg.Title == "" {
		cfg.Title = file.Title
	}
	if cfg.Author == "" {
		cfg.Author = file.Author
	}
	if cfg.Description == "" {
		cfg.Description = file.Description
	}
	if cfg.IndexPageSize == 0 {
		cfg.IndexPageSize = file.IndexPageSize
	}
	return cfg
}

// ApplyEnv overrides fields from BLOG_* and SITE_URL environment variables.
func (c *SiteConfig) ApplyEnv() {
	c.Addr = EnvOr("BLOG_ADDR", c.Addr)
	c.URL = EnvOr("SITE_URL", c.URL)
	c.ContentDir = EnvOr("BLOG_CONTENT_DIR", c.ContentDir)
	c.DatabasePath = EnvOr("BLOG_DATABASE_PATH", c.DatabasePath)
	c.StaticDir = EnvOr("BLOG_STATIC_DIR", c.StaticDir)
	c.OutDir = EnvOr("BLOG_OUT_DIR", c.OutDir)
	c.LogLevel = EnvOr("BLOG_LOG_LEVEL", c.LogLevel)
}

// Validate reports configuration the server cannot run with.
func (c SiteConfig) Validate() error {
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if c.PostCacheTTL < 0 {
		return fmt.Errorf("postCacheTTL must not be negative: %s", c.PostCacheTTL)
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithSource replaces the route source chosen from the config.
func WithSource(src RouteSource) Option {
	return func(a *App) {
		a.source = src
	}
}
