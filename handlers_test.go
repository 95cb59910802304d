package blog

import (
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseBody(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func TestIndexListsNewestFirst(t *testing.T) {
	app := newTestApp(t, testConfig(t, writeFixture(t)))

	rec := serve(app, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseBody(t, rec.Body.String())
	var titles []string
	doc.Find(".articles .ArticleSummary h2").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, s.Text())
	})
	assert.Equal(t, []string{"Other", "Pipelines"}, titles)
	assert.Equal(t, "/page/2/", doc.Find(".pagination a[rel=next]").AttrOr("href", ""))
	assert.Contains(t, doc.Find("title").Text(), "Test Blog")
}

func TestIndexPagination(t *testing.T) {
	app := newTestApp(t, testConfig(t, writeFixture(t)))

	rec := serve(app, "/page/2/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "First", parseBody(t, rec.Body.String()).Find(".ArticleSummary h2").Text())

	rec = serve(app, "/page/1/")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	assert.Equal(t, http.StatusNotFound, serve(app, "/page/3/").Code)
	assert.Equal(t, http.StatusNotFound, serve(app, "/page/x/").Code)
}

func TestTagPageMatchesExactly(t *testing.T) {
	app := newTestApp(t, testConfig(t, writeFixture(t)))

	rec := serve(app, "/tags/ci-cd/")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseBody(t, rec.Body.String())
	assert.Equal(t, "ci/cd posts", doc.Find(".TagPage h1").Text())
	items := doc.Find(".TagPage > ul > li")
	require.Equal(t, 1, items.Length())
	assert.Equal(t, "/posts/2024-02-01-pipelines/", items.AttrOr("data-key", ""))

	rec = serve(app, "/tags/cicd/")
	require.Equal(t, http.StatusOK, rec.Code)
	items = parseBody(t, rec.Body.String()).Find(".TagPage > ul > li")
	require.Equal(t, 1, items.Length())
	assert.Equal(t, "/posts/2024-03-01-other/", items.AttrOr("data-key", ""))
}

func TestTagPageMatchesTagsWithEscapes(t *testing.T) {
	dir := writeFixture(t)
	writeTestFile(t, filepath.Join(dir, "posts", "2024-04-02-percent", "post.yaml"), "title: Percent\ntags: [\"a%41\", \"c#\"]\n")
	writeTestFile(t, filepath.Join(dir, "posts", "2024-04-02-percent", "document.md"), "Literal escapes.\n")
	app := newTestApp(t, testConfig(t, dir))

	post := parseBody(t, serve(app, "/posts/2024-04-02-percent/").Body.String())
	var hrefs []string
	post.Find(".Post .tags a").Each(func(_ int, s *goquery.Selection) {
		hrefs = append(hrefs, s.AttrOr("href", ""))
	})
	require.Equal(t, []string{"/tags/a-41/", "/tags/c/"}, hrefs)

	for _, href := range hrefs {
		rec := serve(app, href)
		require.Equal(t, http.StatusOK, rec.Code, href)
		items := parseBody(t, rec.Body.String()).Find(".TagPage > ul > li")
		require.Equal(t, 1, items.Length(), href)
		assert.Equal(t, "/posts/2024-04-02-percent/", items.AttrOr("data-key", ""), href)
	}
	assert.Equal(t, "a%41 posts", parseBody(t, serve(app, "/tags/a-41/").Body.String()).Find(".TagPage h1").Text())
}

func TestUnknownTagRendersEmptyList(t *testing.T) {
	app := newTestApp(t, testConfig(t, writeFixture(t)))

	rec := serve(app, "/tags/rust/")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseBody(t, rec.Body.String())
	assert.Equal(t, 1, doc.Find(".TagPage > ul").Length())
	assert.Equal(t, 0, doc.Find(".TagPage > ul > li").Length())
}

func TestTagDirectory(t *testing.T) {
	app := newTestApp(t, testConfig(t, writeFixture(t)))

	rec := serve(app, "/tags/")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseBody(t, rec.Body.String())
	var hrefs []string
	doc.Find(".TagDirectory li a").Each(func(_ int, s *goquery.Selection) {
		hrefs = append(hrefs, s.AttrOr("href", ""))
	})
	assert.Equal(t, []string{"/tags/ci-cd/", "/tags/cicd/", "/tags/devops/", "/tags/go/"}, hrefs)
}

func TestPostPage(t *testing.T) {
	app := newTestApp(t, testConfig(t, writeFixture(t)))

	rec := serve(app, "/posts/2024-01-01-first/")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseBody(t, rec.Body.String())
	assert.Equal(t, "First", doc.Find(".Post > header h1").Text())
	assert.Contains(t, doc.Find(".Post .document").Text(), "Hello from the first post.")
	assert.Equal(t, "2024-01-01", doc.Find(".Post time").AttrOr("datetime", ""))
	assert.Equal(t, "/tags/go/", doc.Find(".Post .tags a").AttrOr("href", ""))
	assert.Equal(t, 1, doc.Find(`script[type="application/ld+json"]`).Length())
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	app := newTestApp(t, testConfig(t, writeFixture(t)))

	for _, target := range []string{"/nope/", "/posts/missing/"} {
		rec := serve(app, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		doc := parseBody(t, rec.Body.String())
		assert.Equal(t, "404 - Not Found", doc.Find(".NotFound h1").Text(), target)
		assert.Equal(t, "/", doc.Find(".NotFound a").AttrOr("href", ""), target)
	}
}

func TestMissingDocumentIsServerError(t *testing.T) {
	dir := writeFixture(t)
	writeTestFile(t, filepath.Join(dir, "posts", "2024-04-01-broken", "post.yaml"), "title: Broken\n")
	app := newTestApp(t, testConfig(t, dir))

	rec := serve(app, "/posts/2024-04-01-broken/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "500 - Something went wrong")

	// The listing never loads bodies.
	assert.Equal(t, http.StatusOK, serve(app, "/").Code)
}

func TestFeedAndSitemap(t *testing.T) {
	app := newTestApp(t, testConfig(t, writeFixture(t)))

	rec := serve(app, "/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/rss+xml")
	body := rec.Body.String()
	assert.Contains(t, body, "<category>ci/cd</category>")
	assert.Contains(t, body, "<link>https://blog.example.com/posts/2024-01-01-first/</link>")

	rec = serve(app, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "<loc>https://blog.example.com/tags/ci-cd/</loc>")
	assert.Contains(t, body, "<lastmod>2024-02-01</lastmod>")

	rec = serve(app, "/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: https://blog.example.com/sitemap.xml")
}

func TestEmbeddedStylesheet(t *testing.T) {
	app := newTestApp(t, testConfig(t, writeFixture(t)))

	rec := serve(app, "/public/style.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".NotFound")
	assert.Contains(t, rec.Header().Get("Cache-Control"), "immutable")
}

func TestCustomRoutes(t *testing.T) {
	app := newTestApp(t, testConfig(t, writeFixture(t)), WithCustomRoutes(func(a *App) {
		a.Echo.GET("/healthz/", func(c echo.Context) error {
			return c.String(http.StatusOK, "ok")
		})
	}))

	rec := serve(app, "/healthz/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
