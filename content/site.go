package content

import (
	"errors"
	"fmt"
)

// DefaultIndexPageSize is the number of posts per index page when unset.
const DefaultIndexPageSize = 10

// ErrInvalidPageSize is returned when the index page size is not positive.
var ErrInvalidPageSize = errors.New("index page size must be positive")

// SiteMetadata is the process-wide, read-only description of the blog.
type SiteMetadata struct {
	// Title appears in the layout header and the document <title>.
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Description string `yaml:"description"`
	// IndexPageSize is the number of posts per page on the site index.
	IndexPageSize int `yaml:"indexPageSize"`
}

// SetDefaults fills zero fields.
func (m *SiteMetadata) SetDefaults() {
	if m.Title == "" {
		m.Title = "Blog"
	}
	if m.IndexPageSize == 0 {
		m.IndexPageSize = DefaultIndexPageSize
	}
}

// Validate checks the metadata for values the renderer cannot use.
func (m SiteMetadata) Validate() error {
	if m.IndexPageSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, m.IndexPageSize)
	}
	return nil
}

// PageCount returns how many index pages n posts need. It is at least 1.
func (m SiteMetadata) PageCount(n int) int {
	if n <= 0 || m.IndexPageSize <= 0 {
		return 1
	}
	return (n + m.IndexPageSize - 1) / m.IndexPageSize
}
