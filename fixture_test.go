package blog

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kjgalvan/blog/content"
)

var fixtureFiles = map[string]string{
	"site.yaml": "title: Test Blog\nauthor: Kim\ndescription: Notes\nindexPageSize: 2\n",

	"posts/2024-01-01-first/post.yaml":   "title: First\ntags: [go]\nspoiler: The first one\n",
	"posts/2024-01-01-first/document.md": "# First\n\nHello from the first post.\n",

	"posts/2024-02-01-pipelines/post.yaml":   "title: Pipelines\ntags: [\"ci/cd\", devops]\nspoiler: Shipping\n",
	"posts/2024-02-01-pipelines/document.md": "Build, test, deploy.\n",

	"posts/2024-03-01-other/post.yaml":   "title: Other\ntags: [cicd]\n",
	"posts/2024-03-01-other/document.md": "Not the same tag.\n",
}

// writeFixture lays out a content directory with three posts and returns
// its path.
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range fixtureFiles {
		writeTestFile(t, filepath.Join(dir, filepath.FromSlash(name)), body)
	}
	return dir
}

func writeTestFile(t *testing.T, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
	require.NoError(t, os.WriteFile(name, []byte(body), 0o644))
}

func testConfig(t *testing.T, contentDir string) SiteConfig {
	t.Helper()
	site, err := content.LoadSite(os.DirFS(contentDir))
	require.NoError(t, err)
	return SiteConfig{
		Site:       site,
		URL:        "https://blog.example.com",
		ContentDir: contentDir,
		StaticDir:  filepath.Join(t.TempDir(), "public"),
		OutDir:     filepath.Join(t.TempDir(), "dist"),
	}
}

func newTestApp(t *testing.T, cfg SiteConfig, opts ...Option) *App {
	t.Helper()
	app := New(cfg, opts...)
	require.NoError(t, app.Prepare())
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func serve(app *App, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}
