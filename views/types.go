package views

import "github.com/kjgalvan/blog/content"

// Site is what every page needs to know about the blog it belongs to.
type Site struct {
	content.SiteMetadata
	URL string // canonical base URL, no trailing slash
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	Path        string // site-relative; joined with Site.URL for canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}
