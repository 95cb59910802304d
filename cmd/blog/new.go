package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kjgalvan/blog"
	"github.com/kjgalvan/blog/content"
	"github.com/kjgalvan/blog/scaffold"
)

func runNew(args []string) error {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	contentDir := fs.String("content", blog.EnvOr("BLOG_CONTENT_DIR", "content"), "content directory")
	folder := fs.String("folder", "", "post folder name (default <date>-<slug>)")
	tags := fs.String("tags", "", "comma-separated tags")
	_ = fs.Parse(args)

	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		return fmt.Errorf("usage: blog new [-content dir] [-folder name] [-tags a,b] <title>")
	}
	if *folder == "" {
		*folder = blog.PostFolder(title, time.Now())
	}

	post := scaffold.Post{Title: title}
	for _, t := range strings.Split(*tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			post.Tags = append(post.Tags, t)
		}
	}
	if _, err := content.NewTagSet(post.Tags...); err != nil {
		return err
	}

	created, err := scaffold.NewPost(filepath.Join(*contentDir, content.PostsDir, *folder), post)
	if err != nil {
		return err
	}
	for _, p := range created {
		fmt.Printf("  created %s\n", p)
	}
	return nil
}
