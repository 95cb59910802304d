package content

import (
	"strconv"
	"strings"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func baseSlug(tag string) string {
	if s := Slugify(tag); s != "" {
		return s
	}
	return "tag"
}

// tagSlugs gives every tag a distinct path segment made only of [a-z0-9-],
// so tag pages need no escaping on the wire or on disk. Tags earlier in the
// list keep their plain slug; later tags that collide get -2, -3 and so on.
func tagSlugs(tags []string) map[string]string {
	taken := make(map[string]bool, len(tags))
	out := make(map[string]string, len(tags))
	var collided []string
	for _, t := range tags {
		s := baseSlug(t)
		if taken[s] {
			collided = append(collided, t)
			continue
		}
		taken[s] = true
		out[t] = s
	}
	for _, t := range collided {
		base := baseSlug(t)
		for n := 2; ; n++ {
			s := base + "-" + strconv.Itoa(n)
			if !taken[s] {
				taken[s] = true
				out[t] = s
				break
			}
		}
	}
	return out
}
