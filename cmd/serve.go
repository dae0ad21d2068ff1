package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/folio/internal/progress"
	"github.com/ziadkadry99/folio/internal/rebuild"
	"github.com/ziadkadry99/folio/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and preview it locally with live reload",
	Long: `Builds the site, serves it over HTTP together with a JSON API over the
portfolio data, and rebuilds whenever the data file, posts or static
files change. Open pages reload after every rebuild.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("no-watch", false, "build once and do not watch for changes")
	serveCmd.Flags().Bool("open", false, "open the site in a browser")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Serve.Port = port
	}
	if err := checkedConfig(); err != nil {
		return err
	}
	noWatch, _ := cmd.Flags().GetBool("no-watch")
	openBrowser, _ := cmd.Flags().GetBool("open")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, closeCache, err := newGenerator(cfg.OutputDir, false, cfg.Serve.LiveReload && !noWatch, progress.Nop{})
	if err != nil {
		return err
	}
	defer closeCache()

	srv := server.New(server.Config{
		Port:     cfg.Serve.Port,
		Dir:      cfg.OutputDir,
		AllowAll: cfg.Serve.AllowAllOrigins,
	}, logger)

	build := func(ctx context.Context, dir string) (func(), error) {
		doc, err := loadData(cfg.Strict)
		if err != nil {
			return nil, err
		}
		res, err := gen.Into(dir).Generate(ctx, doc)
		if err != nil {
			return nil, err
		}
		return func() {
			srv.SetInfo(doc)
			srv.SetPosts(res.Entries)
		}, nil
	}
	rebuilder := rebuild.New(cfg.OutputDir, build, logger)

	if err := rebuilder.Run(ctx); err != nil {
		if printViolations(os.Stderr, err) {
			return validationFailed(err)
		}
		return fmt.Errorf("building site: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	if !noWatch {
		ignore := []string{cfg.OutputDir}
		if dir := filepath.Dir(cfg.CacheFile); dir != "." {
			ignore = append(ignore, dir)
		}
		watcher, err := rebuild.NewWatcher(rebuild.WatcherConfig{
			Paths:     []string{cfg.DataFile, cfg.PostsDir, cfg.StaticDir},
			Ignore:    ignore,
			OnRebuilt: srv.Reload,
		}, rebuilder, logger)
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		g.Go(func() error {
			if err := watcher.Run(gctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		if err := srv.Start(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	url := fmt.Sprintf("http://localhost:%d", cfg.Serve.Port)
	fmt.Fprintf(os.Stderr, "Serving %s at %s, press Ctrl+C to stop\n", cfg.OutputDir, url)
	if openBrowser {
		server.OpenBrowser(url)
	}

	return g.Wait()
}
