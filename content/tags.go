package content

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterByTag returns the routes whose post carries tag, in input order.
// Matching is exact and case-sensitive. The result is never nil.
func FilterByTag(tag string, routes []Route) []Route {
	out := make([]Route, 0)
	for _, r := range routes {
		if r.Post.Tags.Has(tag) {
			out = append(out, r)
		}
	}
	return out
}

// TagCount is a tag and the number of routes that carry it.
type TagCount struct {
	Tag   string
	Count int
}

// TagCounts tallies tags across routes, ordered for display.
func TagCounts(routes []Route) []TagCount {
	idx := make(map[string]int)
	var out []TagCount
	for _, r := range routes {
		for _, t := range r.Post.Tags.tags {
			if i, ok := idx[t]; ok {
				out[i].Count++
				continue
			}
			idx[t] = len(out)
			out = append(out, TagCount{Tag: t, Count: 1})
		}
	}
	c := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		if n := c.CompareString(out[i].Tag, out[j].Tag); n != 0 {
			return n < 0
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// TagLinker maps a tag to the URL of its listing page.
type TagLinker interface {
	TagPath(tag string) string
}
