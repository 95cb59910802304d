package blog

import (
	"time"

	"github.com/kjgalvan/blog/content"
)

// PostFolder names a new post folder as <date>-<slug>, so folders sort by
// publication date.
func PostFolder(title string, date time.Time) string {
	folder := date.Format(time.DateOnly)
	if slug := content.Slugify(title); slug != "" {
		folder += "-" + slug
	}
	return folder
}
