package content

import (
	"errors"
	"fmt"
)

// TagPathPrefix is the URL prefix of every tag listing page.
const TagPathPrefix = "/tags/"

// ErrDuplicateRoute is returned when two routes share a URL.
var ErrDuplicateRoute = errors.New("duplicate route")

// Registry is the read-only, ordered list of routes for a site. Build it
// once with NewRegistry; nothing mutates it afterwards.
type Registry struct {
	routes []Route
	byURL  map[string]int
	tags   []string
	slugs  map[string]string // tag -> slug
	bySlug map[string]string // slug -> tag
}

// NewRegistry indexes routes by URL, keeping their order.
func NewRegistry(routes []Route) (*Registry, error) {
	r := &Registry{
		routes: make([]Route, len(routes)),
		byURL:  make(map[string]int, len(routes)),
	}
	for i, rt := range routes {
		if _, ok := r.byURL[rt.URL]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoute, rt.URL)
		}
		r.byURL[rt.URL] = i
		r.routes[i] = rt
	}
	for _, c := range TagCounts(r.routes) {
		r.tags = append(r.tags, c.Tag)
	}
	r.slugs = tagSlugs(r.tags)
	r.bySlug = make(map[string]string, len(r.slugs))
	for t, s := range r.slugs {
		r.bySlug[s] = t
	}
	return r, nil
}

// Routes returns a copy of every route in registry order.
func (r *Registry) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Lookup finds the route for url.
func (r *Registry) Lookup(url string) (Route, bool) {
	i, ok := r.byURL[url]
	if !ok {
		return Route{}, false
	}
	return r.routes[i], true
}

// Len returns the number of routes.
func (r *Registry) Len() int { return len(r.routes) }

// Tags returns every distinct tag in collated order.
func (r *Registry) Tags() []string {
	out := make([]string, len(r.tags))
	copy(out, r.tags)
	return out
}

// TagSlug returns the path segment of tag's listing page.
func (r *Registry) TagSlug(tag string) (string, bool) {
	s, ok := r.slugs[tag]
	return s, ok
}

// TagPath returns the URL of the listing page for tag, or "" when no route
// carries it.
func (r *Registry) TagPath(tag string) string {
	s, ok := r.slugs[tag]
	if !ok {
		return ""
	}
	return TagPathPrefix + s + "/"
}

// TagForSlug resolves the path segment of a tag page back to its exact tag.
func (r *Registry) TagForSlug(slug string) (string, bool) {
	t, ok := r.bySlug[slug]
	return t, ok
}
