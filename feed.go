package blog

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/kjgalvan/blog/content"
	"github.com/kjgalvan/blog/views"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
}

// feed builds the RSS 2.0 document for every post in reg.
func (p Pages) feed(reg *content.Registry) rssXML {
	routes := reg.Routes()
	items := make([]rssItem, 0, len(routes))
	for _, r := range routes {
		pubDate := ""
		if !r.Post.Date.IsZero() {
			pubDate = r.Post.Date.Format(time.RFC1123Z)
		}
		postURL := views.AbsURL(p.Site.URL, r.URL)
		items = append(items, rssItem{
			Title:       r.Post.Title,
			Link:        postURL,
			Description: r.Post.Spoiler,
			PubDate:     pubDate,
			GUID:        postURL,
			Categories:  r.Post.Tags.Slice(),
		})
	}
	return rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       p.Site.Title,
			Link:        views.BuildURL(p.Site.URL),
			Description: p.Site.Description,
			Items:       items,
		},
	}
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// sitemap lists the index, the tag directory, every post and every tag page.
func (p Pages) sitemap(reg *content.Registry) sitemapURLSet {
	base := p.Site.URL
	urls := []sitemapURL{
		{Loc: views.BuildURL(base)},
		{Loc: views.AbsURL(base, "/tags/")},
	}
	for _, r := range reg.Routes() {
		u := sitemapURL{Loc: views.AbsURL(base, r.URL)}
		if !r.Post.Date.IsZero() {
			u.LastMod = r.Post.Date.Format(time.DateOnly)
		}
		urls = append(urls, u)
	}
	for _, t := range reg.Tags() {
		urls = append(urls, sitemapURL{Loc: views.AbsURL(base, reg.TagPath(t))})
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

func robotsTxt(siteURL string) string {
	return fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", siteURL)
}
