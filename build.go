package blog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/a-h/templ"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/kjgalvan/blog/content"
	"github.com/kjgalvan/blog/views"
)

// builder writes rendered outputs below out.
type builder struct {
	out     string
	gzip    bool
	written atomic.Int64
}

// Build exports every page of reg as a static tree in cfg.OutDir. Pages are
// rendered concurrently, at most one per CPU. The first error, including a
// post body that fails to load, cancels the rest and is returned.
func Build(ctx context.Context, cfg SiteConfig, reg *content.Registry) error {
	cfg.setDefaults()
	p := NewPages(cfg)
	b := &builder{out: cfg.OutDir, gzip: cfg.Gzip}

	if err := os.MkdirAll(b.out, 0o755); err != nil {
		return fmt.Errorf("build: create %s: %w", b.out, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	page := func(urlPath string, render func(context.Context) (templ.Component, error)) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := render(gctx)
			if err != nil {
				return fmt.Errorf("build %s: %w", urlPath, err)
			}
			var buf bytes.Buffer
			if err := c.Render(gctx, &buf); err != nil {
				return fmt.Errorf("build %s: %w", urlPath, err)
			}
			return b.write(outputPath(urlPath), buf.Bytes())
		})
	}
	static := func(c templ.Component) func(context.Context) (templ.Component, error) {
		return func(context.Context) (templ.Component, error) { return c, nil }
	}

	for n := 1; n <= p.IndexPageCount(reg); n++ {
		page(views.IndexPath(n), func(context.Context) (templ.Component, error) {
			return p.Index(reg, n)
		})
	}
	for _, r := range reg.Routes() {
		page(r.URL, func(ctx context.Context) (templ.Component, error) {
			return p.Post(ctx, reg, r.URL)
		})
	}
	for _, tag := range reg.Tags() {
		slug, _ := reg.TagSlug(tag)
		page(reg.TagPath(tag), static(p.Tag(reg, slug)))
	}
	page("/tags/", static(p.TagDirectory(reg)))
	page("/404.html", static(p.NotFound()))

	g.Go(func() error {
		data, err := marshalXML(p.feed(reg))
		if err != nil {
			return fmt.Errorf("build feed: %w", err)
		}
		return b.write("feed.xml", data)
	})
	g.Go(func() error {
		data, err := marshalXML(p.sitemap(reg))
		if err != nil {
			return fmt.Errorf("build sitemap: %w", err)
		}
		return b.write("sitemap.xml", data)
	})
	g.Go(func() error {
		return b.write("robots.txt", []byte(robotsTxt(cfg.URL)))
	})

	if err := g.Wait(); err != nil {
		return err
	}

	assets, err := b.copyStatic(cfg.StaticDir)
	if err != nil {
		return fmt.Errorf("build: copy static: %w", err)
	}

	log.Info().
		Str("out", b.out).
		Int("posts", reg.Len()).
		Int64("files", b.written.Load()).
		Int("assets", assets).
		Bool("gzip", b.gzip).
		Msg("Build complete")
	return nil
}

// outputPath maps a site URL to the file that serves it. Directory URLs
// get an index.html.
func outputPath(urlPath string) string {
	rel := strings.TrimPrefix(urlPath, "/")
	if rel == "" || strings.HasSuffix(rel, "/") {
		rel = path.Join(rel, "index.html")
	}
	return rel
}

func (b *builder) write(rel string, data []byte) error {
	name := filepath.Join(b.out, filepath.FromSlash(rel))
	if err := writeFile(name, data); err != nil {
		return err
	}
	b.written.Add(1)
	log.Debug().Str("file", rel).Int("bytes", len(data)).Msg("Wrote")
	if b.gzip && compressible(rel) {
		return b.writeGzip(name, data)
	}
	return nil
}

func (b *builder) writeGzip(name string, data []byte) error {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return err
	}
	if _, err := zw.Write(data); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return writeFile(name+".gz", buf.Bytes())
}

func compressible(name string) bool {
	switch path.Ext(name) {
	case ".html", ".xml", ".txt", ".css", ".js", ".svg":
		return true
	}
	return false
}

// copyStatic copies the user static dir, then the embedded stylesheet,
// into public/. The embedded stylesheet wins, as it does when serving.
func (b *builder) copyStatic(dir string) (int, error) {
	dst := filepath.Join(b.out, "public")
	n := 0
	if dir != "" {
		if _, err := os.Stat(dir); err == nil {
			copied, err := copyAssets(os.DirFS(dir), dst)
			if err != nil {
				return copied, err
			}
			n = copied
		} else if !errors.Is(err, fs.ErrNotExist) {
			return 0, err
		}
	}
	css, err := fs.ReadFile(EmbeddedAssets, "embedded/style.css")
	if err != nil {
		return n, err
	}
	if err := b.write("public/style.css", css); err != nil {
		return n, err
	}
	return n, nil
}
