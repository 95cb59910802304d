package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kjgalvan/blog/content"
)

// Store is a SQLite index of posts. It holds descriptors and bodies so a
// server can run without the content directory.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the server read while sync writes; busy_timeout makes writers
	// wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    path TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    spoiler TEXT NOT NULL,
    body TEXT NOT NULL
);
`)
	return err
}

// SyncResult counts what a Sync changed.
type SyncResult struct {
	Upserted int
	Deleted  int
}

// Sync makes the table match routes: every route is upserted with its
// resolved body and rows for routes that no longer exist are deleted. Bodies
// are resolved before the transaction starts, so a LoadError leaves the
// table untouched.
func (s *Store) Sync(ctx context.Context, routes []content.Route) (SyncResult, error) {
	var res SyncResult
	bodies := make([]string, len(routes))
	keep := make(map[string]struct{}, len(routes))
	for i, r := range routes {
		c, err := content.Resolve(ctx, r)
		if err != nil {
			return res, err
		}
		bodies[i] = c.Source
		keep[r.URL] = struct{}{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return res, err
	}
	defer tx.Rollback()

	for i, r := range routes {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO posts (path, title, date, tags, spoiler, body) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET title = excluded.title, date = excluded.date,
    tags = excluded.tags, spoiler = excluded.spoiler, body = excluded.body`,
			r.URL, r.Post.Title, formatDate(r.Post.Date), JoinTags(r.Post.Tags), r.Post.Spoiler, bodies[i]); err != nil {
			return res, fmt.Errorf("upsert %s: %w", r.URL, err)
		}
		res.Upserted++
	}

	rows, err := tx.QueryContext(ctx, `SELECT path FROM posts`)
	if err != nil {
		return res, err
	}
	var stale []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return res, err
		}
		if _, ok := keep[p]; !ok {
			stale = append(stale, p)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return res, err
	}
	for _, p := range stale {
		if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE path = ?`, p); err != nil {
			return res, fmt.Errorf("delete %s: %w", p, err)
		}
		res.Deleted++
	}
	return res, tx.Commit()
}

// Routes returns every stored post, newest first. Bodies are not read here;
// each route's loader selects its body when called.
func (s *Store) Routes(ctx context.Context) ([]content.Route, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, title, date, tags, spoiler FROM posts ORDER BY date DESC, path DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := []content.Route{}
	for rows.Next() {
		var path, title, date, tags, spoiler string
		if err := rows.Scan(&path, &title, &date, &tags, &spoiler); err != nil {
			return nil, err
		}
		ts, err := content.NewTagSet(ParseTags(tags)...)
		if err != nil {
			return nil, fmt.Errorf("post %s: %w", path, err)
		}
		routes = append(routes, content.Route{
			URL: path,
			Post: content.PostDescriptor{
				Title:   title,
				Tags:    ts,
				Spoiler: spoiler,
				Date:    parseDate(date),
				Content: s.bodyLoader(path),
			},
		})
	}
	return routes, rows.Err()
}

func (s *Store) bodyLoader(path string) content.ContentLoader {
	return content.LoaderFunc(func(ctx context.Context) (content.Content, error) {
		var body string
		err := s.db.QueryRowContext(ctx, `SELECT body FROM posts WHERE path = ?`, path).Scan(&body)
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		if err != nil {
			return content.Content{}, &content.LoadError{Path: path, Err: err}
		}
		return content.Content{Source: body}, nil
	})
}

// JoinTags encodes tags as ",a,b," for storage. Tags are kept exactly as
// written.
func JoinTags(tags content.TagSet) string {
	if tags.Len() == 0 {
		return ""
	}
	return "," + strings.Join(tags.Slice(), ",") + ","
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	return strings.Split(tagString, ",")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func parseDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
