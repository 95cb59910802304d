package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/kjgalvan/blog/content"
)

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// AbsURL resolves a site-relative route URL such as /posts/x/ against base.
func AbsURL(base, rel string) string {
	return strings.TrimSuffix(base, "/") + rel
}

// FormatDate renders a post date for display. Zero dates render empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// WebsiteJSONLD produces a Schema.org WebSite block for the index pages.
func WebsiteJSONLD(site Site) string {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     site.Title,
		"url":      BuildURL(site.URL),
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	if site.Author != "" {
		data["author"] = map[string]string{"@type": "Person", "name": site.Author}
	}
	return marshalJSONLD(data)
}

// BlogPostingJSONLD produces a Schema.org BlogPosting block for a post page.
func BlogPostingJSONLD(site Site, r content.Route) string {
	postURL := AbsURL(site.URL, r.URL)
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    r.Post.Title,
		"description": r.Post.Spoiler,
		"url":         postURL,
		"publisher":   map[string]string{"@type": "Organization", "name": site.Title},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if !r.Post.Date.IsZero() {
		data["datePublished"] = r.Post.Date.Format(time.DateOnly)
	}
	if site.Author != "" {
		data["author"] = map[string]string{"@type": "Person", "name": site.Author}
	}
	if r.Post.Tags.Len() > 0 {
		data["keywords"] = strings.Join(r.Post.Tags.Slice(), ", ")
	}
	return marshalJSONLD(data)
}

func marshalJSONLD(data map[string]any) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
