// Package scaffold creates new post folders from embedded templates.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
)

// Templates contains the files of a new post folder.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// ErrExists is returned when the target folder is already present.
var ErrExists = errors.New("post folder already exists")

// Post holds the values passed to every template.
type Post struct {
	Title string
	Tags  []string
}

var funcs = template.FuncMap{
	// quote produces a YAML double-quoted scalar.
	"quote": strconv.Quote,
}

// NewPost renders the templates into dir, which must not exist yet. It
// returns the paths it created.
func NewPost(dir string, p Post) ([]string, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("%s: %w", dir, ErrExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	const root = "templates"
	entries, err := fs.ReadDir(Templates, root)
	if err != nil {
		return nil, err
	}
	var created []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".tmpl") {
			continue
		}
		src := path.Join(root, e.Name())
		b, err := Templates.ReadFile(src)
		if err != nil {
			return created, fmt.Errorf("read %s: %w", src, err)
		}
		tmpl, err := template.New(e.Name()).Funcs(funcs).Parse(string(b))
		if err != nil {
			return created, fmt.Errorf("parse template %s: %w", src, err)
		}

		out := filepath.Join(dir, strings.TrimSuffix(e.Name(), ".tmpl"))
		f, err := os.Create(out)
		if err != nil {
			return created, fmt.Errorf("create %s: %w", out, err)
		}
		err = tmpl.Execute(f, p)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return created, fmt.Errorf("execute template %s: %w", src, err)
		}
		created = append(created, out)
	}
	return created, nil
}
