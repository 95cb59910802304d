package blog

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kjgalvan/blog/content"
)

func (a *App) setupRoutes() {
	e := a.Echo

	embedded, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET("/public/style.css", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embedded)))))
	e.Static("/public", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleIndex)
	e.GET("/page/:n/", a.handleIndexPage)
	e.GET("/posts/:slug/", a.handlePost)
	e.GET("/tags/", a.handleTagDirectory)
	e.GET("/tags/:tag/", a.handleTag)
}

func (a *App) handleIndex(c echo.Context) error {
	reg, err := a.Cache.Registry(c.Request().Context())
	if err != nil {
		return err
	}
	page, err := a.Pages.Index(reg, 1)
	if err != nil {
		return err
	}
	return Render(c, page)
}

func (a *App) handleIndexPage(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		return echo.ErrNotFound
	}
	if n == 1 {
		return c.Redirect(http.StatusMovedPermanently, "/")
	}
	reg, err := a.Cache.Registry(c.Request().Context())
	if err != nil {
		return err
	}
	page, err := a.Pages.Index(reg, n)
	if err != nil {
		return err
	}
	return Render(c, page)
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	reg, err := a.Cache.Registry(ctx)
	if err != nil {
		return err
	}
	page, err := a.Pages.Post(ctx, reg, content.PostURL(c.Param("slug")))
	if err != nil {
		return err
	}
	return Render(c, page)
}

func (a *App) handleTagDirectory(c echo.Context) error {
	reg, err := a.Cache.Registry(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Pages.TagDirectory(reg))
}

// handleTag lists posts for one tag. The parameter is the tag's slug, which
// never needs unescaping.
func (a *App) handleTag(c echo.Context) error {
	reg, err := a.Cache.Registry(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Pages.Tag(reg, c.Param("tag")))
}

func (a *App) handleSitemap(c echo.Context) error {
	reg, err := a.Cache.Registry(c.Request().Context())
	if err != nil {
		return err
	}
	return writeXML(c, "application/xml; charset=utf-8", a.Pages.sitemap(reg))
}

func (a *App) handleFeed(c echo.Context) error {
	reg, err := a.Cache.Registry(c.Request().Context())
	if err != nil {
		return err
	}
	return writeXML(c, "application/rss+xml; charset=utf-8", a.Pages.feed(reg))
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, robotsTxt(a.Config.URL))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	isHTTP := errors.As(err, &he)
	if (errors.Is(err, ErrNotFound) && !isLoadError(err)) || (isHTTP && he.Code == http.StatusNotFound) {
		_ = RenderStatus(c, http.StatusNotFound, a.Pages.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if isHTTP {
		code = he.Code
	}
	if code >= 500 {
		log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("Server error")
		_ = RenderStatus(c, code, a.Pages.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// isLoadError reports a post body that could not be read. It is a server
// error even when the cause is a missing row or file.
func isLoadError(err error) bool {
	var le *content.LoadError
	return errors.As(err, &le)
}
