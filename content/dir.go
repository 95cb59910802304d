package content

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"time"

	"github.com/goccy/go-yaml"
)

// Layout of a content directory.
const (
	PostsDir     = "posts"
	PostFile     = "post.yaml"
	DocumentFile = "document.md"
	SiteFile     = "site.yaml"
)

type postFile struct {
	Title   string   `yaml:"title"`
	Tags    []string `yaml:"tags"`
	Spoiler string   `yaml:"spoiler"`
}

// LoadDir reads every posts/<folder>/post.yaml in fsys and returns one route
// per folder, newest folder first. Bodies are not read; each route gets a
// loader for posts/<folder>/document.md.
func LoadDir(fsys fs.FS) ([]Route, error) {
	entries, err := fs.ReadDir(fsys, PostsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Route{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", PostsDir, err)
	}
	var folders []string
	for _, e := range entries {
		if e.IsDir() {
			folders = append(folders, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(folders)))

	routes := make([]Route, 0, len(folders))
	for _, folder := range folders {
		dir := path.Join(PostsDir, folder)
		b, err := fs.ReadFile(fsys, path.Join(dir, PostFile))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("post %s: %w", folder, err)
		}
		var pf postFile
		if err := yaml.Unmarshal(b, &pf); err != nil {
			return nil, fmt.Errorf("post %s: parse %s: %w", folder, PostFile, err)
		}
		if pf.Title == "" {
			return nil, fmt.Errorf("post %s: title is required", folder)
		}
		tags, err := NewTagSet(pf.Tags...)
		if err != nil {
			return nil, fmt.Errorf("post %s: %w", folder, err)
		}
		routes = append(routes, Route{
			URL: PostURL(folder),
			Post: PostDescriptor{
				Title:   pf.Title,
				Tags:    tags,
				Spoiler: pf.Spoiler,
				Date:    FolderDate(folder),
				Content: FileContent(fsys, path.Join(dir, DocumentFile)),
			},
		})
	}
	return routes, nil
}

// LoadSite reads site.yaml from fsys. A missing file yields defaults.
func LoadSite(fsys fs.FS) (SiteMetadata, error) {
	var m SiteMetadata
	b, err := fs.ReadFile(fsys, SiteFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return m, fmt.Errorf("read %s: %w", SiteFile, err)
	default:
		if err := yaml.Unmarshal(b, &m); err != nil {
			return m, fmt.Errorf("parse %s: %w", SiteFile, err)
		}
	}
	m.SetDefaults()
	return m, m.Validate()
}

// PostURL returns the route URL of a post folder.
func PostURL(folder string) string {
	return "/" + PostsDir + "/" + folder + "/"
}

// FolderDate parses the YYYY-MM-DD prefix of a folder name.
func FolderDate(folder string) time.Time {
	if len(folder) < 10 {
		return time.Time{}
	}
	t, err := time.Parse(time.DateOnly, folder[:10])
	if err != nil {
		return time.Time{}
	}
	return t
}
