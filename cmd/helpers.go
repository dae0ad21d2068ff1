package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/folio/internal/db"
	"github.com/ziadkadry99/folio/internal/info"
	"github.com/ziadkadry99/folio/internal/posts"
	"github.com/ziadkadry99/folio/internal/progress"
	"github.com/ziadkadry99/folio/internal/site"
	"github.com/ziadkadry99/folio/internal/store"
)

// checkedConfig validates the loaded config, providing a user-friendly error.
func checkedConfig() error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return nil
}

// loadData reads the data file, validating it when strict is set.
func loadData(strict bool) (*info.Info, error) {
	doc, err := info.Load(cfg.DataFile, info.Options{Strict: strict})
	if errors.Is(err, info.ErrNotFound) {
		return nil, fmt.Errorf("%w\nRun `folio init` to create one", err)
	}
	return doc, err
}

// printViolations lists every violation carried by err and reports
// whether err was a validation failure.
func printViolations(w io.Writer, err error) bool {
	var verr *info.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	fmt.Fprintf(w, "Validation failed for %s:\n", verr.Path)
	for _, v := range verr.Violations {
		fmt.Fprintf(w, "  • %s\n", v)
	}
	return true
}

// validationFailed turns a printed validation error into the command's
// exit error.
func validationFailed(err error) error {
	var verr *info.ValidationError
	errors.As(err, &verr)
	n := len(verr.Violations)
	if n == 1 {
		return errors.New("1 validation error")
	}
	return fmt.Errorf("%d validation errors", n)
}

// loadPostIndex reads the posts index. A missing index means no blog.
func loadPostIndex() ([]posts.Entry, error) {
	entries, err := posts.LoadIndex(os.DirFS("."), cfg.PostsIndex)
	if errors.Is(err, posts.ErrNotFound) {
		return nil, nil
	}
	return entries, err
}

// loadPosts reads the posts index and applies each post's frontmatter, so
// the entries match what the blog pages show.
func loadPosts() ([]posts.Entry, error) {
	entries, err := loadPostIndex()
	if entries == nil || err != nil {
		return entries, err
	}
	return posts.Resolve(os.DirFS("."), cfg.PostsDir, entries), nil
}

// highlightStyle is the chroma style for posts, or "" when disabled.
func highlightStyle() string {
	if !cfg.Highlight.Enabled {
		return ""
	}
	return cfg.Highlight.Style
}

// newGenerator builds a site generator from the config. The render cache
// lives in cfg.CacheFile unless noCache is set, in which case an
// in-memory database is used. The returned close func releases it.
func newGenerator(outputDir string, noCache, liveReload bool, reporter progress.Reporter) (*site.Generator, func(), error) {
	var (
		database *db.DB
		err      error
	)
	if noCache {
		database, err = db.OpenMemory()
	} else {
		database, err = db.Open(cfg.CacheFile)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("opening render cache: %w", err)
	}

	gen, err := site.New(site.Options{
		Root:           ".",
		OutputDir:      outputDir,
		StaticDir:      cfg.StaticDir,
		PostsDir:       cfg.PostsDir,
		PostsIndex:     cfg.PostsIndex,
		DataDir:        filepath.Dir(cfg.DataFile),
		Title:          cfg.Title,
		BasePath:       cfg.BasePath,
		Exclude:        cfg.Exclude,
		MaxConcurrency: cfg.MaxConcurrency,
		HeaderOffset:   cfg.HeaderOffset,
		HighlightStyle: highlightStyle(),
		LiveReload:     liveReload,
	},
		site.WithLogger(logger),
		site.WithCache(store.NewRenderCache(database)),
		site.WithBuilds(store.NewBuilds(database)),
		site.WithReporter(reporter),
	)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return gen, func() { database.Close() }, nil
}
