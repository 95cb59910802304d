package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/kjgalvan/blog/markdown"
	"github.com/kjgalvan/blog/markup"
)

// StylesheetPath is where the embedded stylesheet is served.
const StylesheetPath = "/public/style.css"

// Layout wraps a page body in the full HTML document.
func Layout(site Site, meta PageMeta, body markup.Node) markup.Node {
	title := site.Title
	if meta.Title != "" && meta.Title != site.Title {
		title = meta.Title + " | " + site.Title
	}
	desc := meta.Description
	if desc == "" {
		desc = site.Description
	}
	ogType := meta.OGType
	if ogType == "" {
		ogType = "website"
	}
	canonical := AbsURL(site.URL, meta.Path)

	head := []markup.Node{
		markup.El("meta", markup.Attrs(markup.A("charset", "utf-8"))),
		markup.El("meta", markup.Attrs(markup.A("name", "viewport"), markup.A("content", "width=device-width, initial-scale=1"))),
		markup.El("title", nil, markup.Text(title)),
		markup.El("meta", markup.Attrs(markup.A("name", "description"), markup.A("content", desc))),
		markup.El("link", markup.Attrs(markup.A("rel", "canonical"), markup.Href(canonical))),
		markup.El("meta", markup.Attrs(markup.A("property", "og:title"), markup.A("content", title))),
		markup.El("meta", markup.Attrs(markup.A("property", "og:type"), markup.A("content", ogType))),
		markup.El("meta", markup.Attrs(markup.A("property", "og:url"), markup.A("content", canonical))),
		markup.El("link", markup.Attrs(markup.A("rel", "alternate"), markup.A("type", "application/rss+xml"), markup.A("title", site.Title), markup.Href("/feed.xml"))),
		markup.El("link", markup.Attrs(markup.A("rel", "stylesheet"), markup.Href(StylesheetPath))),
	}
	if meta.JSONLD != "" {
		// JSON-LD is produced by json.Marshal, which escapes <, > and &.
		head = append(head, markup.El("script", markup.Attrs(markup.A("type", "application/ld+json")), markup.Raw(meta.JSONLD)))
	}

	footer := "© " + site.Title
	if site.Author != "" {
		footer = "© " + site.Author
	}

	return markup.Fragment(
		markup.Raw("<!DOCTYPE html>"),
		markup.El("html", markup.Attrs(markup.A("lang", "en")),
			markup.El("head", nil, head...),
			markup.El("body", nil,
				markup.El("header", markup.Attrs(markup.Class("site-header")),
					markup.El("a", markup.Attrs(markup.Href("/"), markup.Class("site-title")), markup.Text(site.Title)),
					markup.El("nav", nil, markup.El("a", markup.Attrs(markup.Href("/tags/")), markup.Text("Tags"))),
				),
				markup.El("main", nil, body),
				markup.El("footer", markup.Attrs(markup.Class("site-footer")), markup.Text(footer)),
			),
		),
	)
}

// Page renders body inside the layout as a templ component.
func Page(site Site, meta PageMeta, body markup.Node) templ.Component {
	return markup.Component(Layout(site, meta, body))
}

var bodyRenderer = markdown.New(markdown.WithImage(func(src, alt, caption string) string {
	return CaptionedImage(src, alt, caption).String()
}))

// PostBody renders a markdown body. Images become captioned images.
func PostBody(ctx context.Context, md string) (markup.Node, error) {
	return markup.FromComponent(ctx, bodyRenderer.Component(md))
}
