package blog

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/kjgalvan/blog/content"
	"github.com/kjgalvan/blog/views"
)

// Pages builds every page of the site from a registry. The server and the
// static export both render through it.
type Pages struct {
	Site views.Site
}

// NewPages returns Pages for cfg.
func NewPages(cfg SiteConfig) Pages {
	return Pages{Site: views.Site{SiteMetadata: cfg.Site, URL: cfg.URL}}
}

// IndexPageCount returns how many index pages reg needs.
func (p Pages) IndexPageCount(reg *content.Registry) int {
	return p.Site.PageCount(reg.Len())
}

// Index renders index page n (1-based). Page 1 always exists.
func (p Pages) Index(reg *content.Registry, n int) (templ.Component, error) {
	pages := p.IndexPageCount(reg)
	if n < 1 || n > pages {
		return nil, fmt.Errorf("index page %d: %w", n, ErrNotFound)
	}
	routes := reg.Routes()
	start := (n - 1) * p.Site.IndexPageSize
	end := min(start+p.Site.IndexPageSize, len(routes))
	meta := views.PageMeta{
		Title:  p.Site.Title,
		Path:   views.IndexPath(n),
		JSONLD: views.WebsiteJSONLD(p.Site),
	}
	return views.Page(p.Site, meta, views.Index(routes[start:end], n, pages, reg)), nil
}

// Post renders the post at url. This is the only place a body is loaded.
func (p Pages) Post(ctx context.Context, reg *content.Registry, url string) (templ.Component, error) {
	r, ok := reg.Lookup(url)
	if !ok {
		return nil, fmt.Errorf("post %s: %w", url, ErrNotFound)
	}
	c, err := content.Resolve(ctx, r)
	if err != nil {
		return nil, err
	}
	body, err := views.PostBody(ctx, c.Source)
	if err != nil {
		return nil, err
	}
	meta := views.PageMeta{
		Title:       r.Post.Title,
		Description: r.Post.Spoiler,
		Path:        r.URL,
		OGType:      "article",
		JSONLD:      views.BlogPostingJSONLD(p.Site, r),
	}
	return views.Page(p.Site, meta, views.Post(r, body, reg)), nil
}

// Tag renders the listing for the tag whose page segment is slug. A slug no
// tag owns renders an empty list headed by the slug.
func (p Pages) Tag(reg *content.Registry, slug string) templ.Component {
	meta := views.PageMeta{Path: content.TagPathPrefix + slug + "/"}
	name, routes := slug, []content.Route{}
	if tag, ok := reg.TagForSlug(slug); ok {
		name, routes = tag, content.FilterByTag(tag, reg.Routes())
	}
	meta.Title = name + " posts"
	return views.Page(p.Site, meta, views.TagPage(name, routes, reg))
}

// TagDirectory renders the list of all tags.
func (p Pages) TagDirectory(reg *content.Registry) templ.Component {
	meta := views.PageMeta{Title: "Tags", Path: "/tags/"}
	return views.Page(p.Site, meta, views.TagDirectory(content.TagCounts(reg.Routes()), reg))
}

// NotFound renders the 404 page.
func (p Pages) NotFound() templ.Component {
	return views.Page(p.Site, views.PageMeta{Title: "Not Found", Path: "/404.html"}, views.NotFound())
}

// ServerError renders the 500 page.
func (p Pages) ServerError() templ.Component {
	return views.Page(p.Site, views.PageMeta{Title: "Error"}, views.ServerError())
}
