package content

import (
	"context"
	"fmt"
	"io/fs"
)

// Content is a resolved post body in markdown.
type Content struct {
	Source string
}

// ContentLoader resolves a post body on demand. Listing pages never call it;
// only the post page does.
type ContentLoader interface {
	Load(ctx context.Context) (Content, error)
}

// LoaderFunc adapts a function to ContentLoader.
type LoaderFunc func(ctx context.Context) (Content, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) (Content, error) {
	return f(ctx)
}

// LoadError reports a post body that could not be resolved.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load content %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FileContent returns a loader that reads name from fsys on every call.
func FileContent(fsys fs.FS, name string) ContentLoader {
	return LoaderFunc(func(ctx context.Context) (Content, error) {
		if err := ctx.Err(); err != nil {
			return Content{}, &LoadError{Path: name, Err: err}
		}
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return Content{}, &LoadError{Path: name, Err: err}
		}
		return Content{Source: string(b)}, nil
	})
}

// Resolve loads the body of r. A route without a loader is a LoadError.
func Resolve(ctx context.Context, r Route) (Content, error) {
	if r.Post.Content == nil {
		return Content{}, &LoadError{Path: r.URL, Err: fs.ErrNotExist}
	}
	return r.Post.Content.Load(ctx)
}
