// Package content holds the post registry, the tag index, and the lazily
// resolved post bodies that the rest of the blog renders.
package content

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrDuplicateTag is returned when a post lists the same tag twice.
	ErrDuplicateTag = errors.New("duplicate tag")
	// ErrInvalidTag is returned for empty tags or tags containing a comma.
	ErrInvalidTag = errors.New("invalid tag")
)

// TagSet is an ordered set of exact tag strings. Tags are never trimmed or
// case-folded, so "cicd" and "ci/cd" are different tags.
type TagSet struct {
	tags []string
}

// NewTagSet builds a TagSet, keeping the given order.
func NewTagSet(tags ...string) (TagSet, error) {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || strings.Contains(t, ",") {
			return TagSet{}, fmt.Errorf("%w: %q", ErrInvalidTag, t)
		}
		if _, ok := seen[t]; ok {
			return TagSet{}, fmt.Errorf("%w: %q", ErrDuplicateTag, t)
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return TagSet{tags: out}, nil
}

// MustTagSet is like NewTagSet but panics on error. Use it for literals.
func MustTagSet(tags ...string) TagSet {
	ts, err := NewTagSet(tags...)
	if err != nil {
		panic(err)
	}
	return ts
}

// Has reports whether tag is in the set, compared byte for byte.
func (ts TagSet) Has(tag string) bool {
	for _, t := range ts.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Len returns the number of tags.
func (ts TagSet) Len() int { return len(ts.tags) }

// Slice returns a copy of the tags in declaration order.
func (ts TagSet) Slice() []string {
	out := make([]string, len(ts.tags))
	copy(out, ts.tags)
	return out
}

// PostDescriptor is the static metadata of one post plus a handle to its body.
type PostDescriptor struct {
	Title   string
	Tags    TagSet
	Spoiler string
	// Date comes from the YYYY-MM-DD prefix of the post folder. Zero when absent.
	Date    time.Time
	Content ContentLoader
}

// Route binds a unique URL to a post.
type Route struct {
	URL  string
	Post PostDescriptor
}
