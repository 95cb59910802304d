package views

import (
	"strconv"
	"time"

	"github.com/kjgalvan/blog/content"
	"github.com/kjgalvan/blog/markup"
)

// CaptionedImage renders an image followed by its caption. A non-empty
// className is added next to the base "image" class.
func CaptionedImage(src, alt, caption string, className ...string) markup.Node {
	return markup.Fragment(
		markup.El("img", markup.Attrs(markup.Class(append([]string{"image"}, className...)...), markup.A("src", src), markup.A("alt", alt))),
		markup.El("small", markup.Attrs(markup.Class("caption")), markup.Text(caption)),
	)
}

// NotFound is the static 404 page body.
func NotFound() markup.Node {
	return markup.El("div", markup.Attrs(markup.Class("NotFound")),
		markup.El("h1", nil, markup.Text("404 - Not Found")),
		markup.El("a", markup.Attrs(markup.Href("/")), markup.Text("Return")),
	)
}

// ServerError is shown when a page fails to render.
func ServerError() markup.Node {
	return markup.El("div", markup.Attrs(markup.Class("NotFound")),
		markup.El("h1", nil, markup.Text("500 - Something went wrong")),
		markup.El("p", nil, markup.Text("This page could not be loaded. Try again in a moment.")),
		markup.El("a", markup.Attrs(markup.Href("/")), markup.Text("Return")),
	)
}

// TagPage lists the given routes under a heading for tag name. It renders
// what it is given; filtering is the caller's job. links resolves the tag
// URLs shown in each summary.
func TagPage(name string, routes []content.Route, links content.TagLinker) markup.Node {
	items := make([]markup.Node, 0, len(routes))
	for _, r := range routes {
		items = append(items, markup.El("li", markup.Attrs(markup.A("data-key", r.URL)), ArticleSummary(r, links)))
	}
	return markup.El("div", markup.Attrs(markup.Class("TagPage")),
		markup.El("h1", nil, markup.Text(name+" posts")),
		markup.El("ul", nil, items...),
		markup.El("a", markup.Attrs(markup.Href("/")), markup.Text("Return")),
	)
}

// ArticleSummary is the list entry for one post.
func ArticleSummary(r content.Route, links content.TagLinker) markup.Node {
	return markup.El("article", markup.Attrs(markup.Class("ArticleSummary")),
		markup.El("h2", nil, markup.El("a", markup.Attrs(markup.Href(r.URL)), markup.Text(r.Post.Title))),
		dateline(r.Post.Date),
		markup.El("p", markup.Attrs(markup.Class("spoiler")), markup.Text(r.Post.Spoiler)),
		tagList(r.Post.Tags, links),
	)
}

func dateline(d time.Time) markup.Node {
	if d.IsZero() {
		return markup.Fragment()
	}
	return markup.El("time", markup.Attrs(markup.A("datetime", d.Format(time.DateOnly))), markup.Text(FormatDate(d)))
}

func tagList(tags content.TagSet, links content.TagLinker) markup.Node {
	if tags.Len() == 0 {
		return markup.Fragment()
	}
	var items []markup.Node
	for _, t := range tags.Slice() {
		items = append(items, markup.El("li", nil, markup.El("a", markup.Attrs(markup.Href(links.TagPath(t))), markup.Text(t))))
	}
	return markup.El("ul", markup.Attrs(markup.Class("tags")), items...)
}

// Index is one page of the post index. page is 1-based.
func Index(routes []content.Route, page, pages int, links content.TagLinker) markup.Node {
	items := make([]markup.Node, 0, len(routes))
	for _, r := range routes {
		items = append(items, markup.El("li", markup.Attrs(markup.A("data-key", r.URL)), ArticleSummary(r, links)))
	}
	return markup.El("div", markup.Attrs(markup.Class("Index")),
		markup.El("ul", markup.Attrs(markup.Class("articles")), items...),
		pagination(page, pages),
	)
}

// IndexPath returns the URL of index page n.
func IndexPath(n int) string {
	if n <= 1 {
		return "/"
	}
	return "/page/" + strconv.Itoa(n) + "/"
}

func pagination(page, pages int) markup.Node {
	if pages <= 1 {
		return markup.Fragment()
	}
	var links []markup.Node
	if page > 1 {
		links = append(links, markup.El("a", markup.Attrs(markup.Href(IndexPath(page-1)), markup.A("rel", "prev")), markup.Text("← Newer")))
	}
	links = append(links, markup.El("span", nil, markup.Text("Page "+strconv.Itoa(page)+" of "+strconv.Itoa(pages))))
	if page < pages {
		links = append(links, markup.El("a", markup.Attrs(markup.Href(IndexPath(page+1)), markup.A("rel", "next")), markup.Text("Older →")))
	}
	return markup.El("nav", markup.Attrs(markup.Class("pagination")), links...)
}

// Post is a full article. body is the rendered markdown.
func Post(r content.Route, body markup.Node, links content.TagLinker) markup.Node {
	return markup.El("article", markup.Attrs(markup.Class("Post")),
		markup.El("header", nil,
			markup.El("h1", nil, markup.Text(r.Post.Title)),
			dateline(r.Post.Date),
			tagList(r.Post.Tags, links),
		),
		markup.El("div", markup.Attrs(markup.Class("document")), body),
		markup.El("a", markup.Attrs(markup.Href("/")), markup.Text("Return")),
	)
}

// TagDirectory lists every tag with its post count.
func TagDirectory(counts []content.TagCount, links content.TagLinker) markup.Node {
	items := make([]markup.Node, 0, len(counts))
	for _, c := range counts {
		items = append(items, markup.El("li", nil,
			markup.El("a", markup.Attrs(markup.Href(links.TagPath(c.Tag))), markup.Text(c.Tag)),
			markup.Text(" ("+strconv.Itoa(c.Count)+")"),
		))
	}
	return markup.El("div", markup.Attrs(markup.Class("TagDirectory")),
		markup.El("h1", nil, markup.Text("Tags")),
		markup.El("ul", nil, items...),
		markup.El("a", markup.Attrs(markup.Href("/")), markup.Text("Return")),
	)
}
