package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/kjgalvan/blog"
	"github.com/kjgalvan/blog/content"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "serve":
		err = runServe(ctx, args)
	case "build":
		err = runBuild(ctx, args)
	case "sync":
		err = runSync(ctx, args)
	case "new":
		err = runNew(args)
	case "version":
		fmt.Printf("blog %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Error().Err(err).Msg("Command failed")
		stop()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`blog - serve or export a blog from a directory of posts

Usage:
  blog <command> [flags] [arguments]

Commands:
  serve    Serve the blog over HTTP
  build    Export the blog as static files
  sync     Index the content directory into SQLite
  new      Create a new post folder
  version  Print the blog version
  help     Show this help message

Examples:
  blog serve -watch
  blog build -out dist -gzip
  blog new -tags go,testing "Table tests in Go"`)
}

// loadConfig reads the config file and points the logger at stderr.
func loadConfig(path string) (blog.SiteConfig, error) {
	cfg, err := blog.LoadConfig(path)
	blog.SetupLogger(cfg.LogLevel, os.Stderr)
	return cfg, err
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "blog.yaml", "config file")
	watch := fs.Bool("watch", false, "reload when content changes")
	db := fs.String("db", "", "SQLite index path (overrides config)")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *watch {
		cfg.Watch = true
	}
	if *db != "" {
		cfg.DatabasePath = *db
	}

	app := blog.New(cfg)
	defer app.Close()
	if err := app.Prepare(); err != nil {
		return err
	}
	if app.Store != nil {
		if err := app.Reload(ctx); err != nil {
			return err
		}
	}
	return app.Start(ctx)
}

func runBuild(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	configPath := fs.String("config", "blog.yaml", "config file")
	out := fs.String("out", "", "output directory (overrides config)")
	gzip := fs.Bool("gzip", false, "write precompressed .gz siblings")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *out != "" {
		cfg.OutDir = *out
	}
	if *gzip {
		cfg.Gzip = true
	}

	routes, err := blog.DirSource{Dir: cfg.ContentDir}.Routes(ctx)
	if err != nil {
		return err
	}
	reg, err := content.NewRegistry(routes)
	if err != nil {
		return err
	}
	return blog.Build(ctx, cfg, reg)
}

func runSync(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	configPath := fs.String("config", "blog.yaml", "config file")
	db := fs.String("db", "", "SQLite index path (overrides config)")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *db != "" {
		cfg.DatabasePath = *db
	}
	if cfg.DatabasePath == "" {
		return fmt.Errorf("sync: no database path; set databasePath or pass -db")
	}

	store, err := blog.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	routes, err := blog.DirSource{Dir: cfg.ContentDir}.Routes(ctx)
	if err != nil {
		return err
	}
	res, err := store.Sync(ctx, routes)
	if err != nil {
		return err
	}
	log.Info().
		Str("db", cfg.DatabasePath).
		Int("upserted", res.Upserted).
		Int("deleted", res.Deleted).
		Msg("Synced content")
	return nil
}
