package blog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeFixture(t)
	t.Setenv("BLOG_CONTENT_DIR", dir)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "http://localhost:3000", cfg.URL)
	assert.Equal(t, dir, cfg.ContentDir)
	assert.Equal(t, "dist", cfg.OutDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.PostCacheTTL)

	assert.Equal(t, "Test Blog", cfg.Site.Title)
	assert.Equal(t, "Kim", cfg.Site.Author)
	assert.Equal(t, 2, cfg.Site.IndexPageSize)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := writeFixture(t)
	path := filepath.Join(t.TempDir(), "blog.yaml")
	writeTestFile(t, path, "url: https://example.org/\naddr: \":8080\"\ncontentDir: "+dir+"\nsite:\n  title: Override\n")
	t.Setenv("BLOG_ADDR", ":9090")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org", cfg.URL)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "Override", cfg.Site.Title)
	assert.Equal(t, "Kim", cfg.Site.Author)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("BLOG_CONTENT_DIR", t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Blog", cfg.Site.Title)
	assert.Equal(t, 10, cfg.Site.IndexPageSize)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.yaml")
	writeTestFile(t, path, "contentDir: "+t.TempDir()+"\nsite:\n  indexPageSize: -1\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestEnvOr(t *testing.T) {
	t.Setenv("BLOG_TEST_VALUE", "set")
	assert.Equal(t, "set", EnvOr("BLOG_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", EnvOr("BLOG_TEST_UNSET", "fallback"))
}
