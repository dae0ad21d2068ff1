// Package site renders the portfolio into a static website: one HTML page
// per view, the shared stylesheet and script, JSON data files for the
// client, and a search index.
package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/folio/internal/info"
	"github.com/ziadkadry99/folio/internal/logging"
	"github.com/ziadkadry99/folio/internal/markdown"
	"github.com/ziadkadry99/folio/internal/posts"
	"github.com/ziadkadry99/folio/internal/progress"
	"github.com/ziadkadry99/folio/internal/query"
	"github.com/ziadkadry99/folio/internal/store"
	"github.com/ziadkadry99/folio/internal/walker"
)

// Options configures a Generator. StaticDir, PostsDir and PostsIndex are
// slash-separated paths relative to Root.
type Options struct {
	Root           string
	OutputDir      string
	StaticDir      string
	PostsDir       string
	PostsIndex     string
	DataDir        string // Directory of the data file, an OS path. Never cleared.
	Title          string // Used when the data file has no site title.
	BasePath       string
	Exclude        []string
	MaxConcurrency int
	HeaderOffset   int
	HighlightStyle string // Empty disables syntax highlighting.
	LiveReload     bool
}

// Option customises a Generator.
type Option func(*Generator)

// WithLogger sets the logger. Runtime problems are logged at warn level.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.logger = logging.OrNop(l) }
}

// WithCache enables the render cache for post bodies.
func WithCache(c *store.RenderCache) Option {
	return func(g *Generator) { g.cache = c }
}

// WithBuilds records every Generate call in the build history.
func WithBuilds(b *store.Builds) Option {
	return func(g *Generator) { g.builds = b }
}

// WithReporter reports per-page progress.
func WithReporter(r progress.Reporter) Option {
	return func(g *Generator) { g.reporter = r }
}

// WithClock replaces time.Now for the "last updated" footer.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// Generator builds the static site.
type Generator struct {
	opts     Options
	fsys     fs.FS
	conv     *markdown.Converter
	tmpl     *template.Template
	logger   *zap.Logger
	cache    *store.RenderCache
	builds   *store.Builds
	reporter progress.Reporter
	now      func() time.Time
}

// Result summarises a build.
type Result struct {
	BuildID  string
	Pages    []string
	Posts    int // Posts rendered successfully.
	Assets   int // Static files copied.
	CacheHit int
	Warnings []string
	// Entries lists the blog posts with frontmatter applied, in index order.
	Entries []posts.Entry
}

// New validates opts and parses the templates.
func New(opts Options, options ...Option) (*Generator, error) {
	if opts.OutputDir == "" {
		return nil, errors.New("site: output directory is required")
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = 4
	}

	var convOpts []markdown.Option
	if opts.HighlightStyle != "" {
		convOpts = append(convOpts, markdown.WithHighlighting(opts.HighlightStyle))
	}

	tmpl, err := template.New("site").Funcs(template.FuncMap{
		"json":  toJSON,
		"label": label,
	}).Parse(layoutTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	g := &Generator{
		opts:     opts,
		fsys:     os.DirFS(opts.Root),
		conv:     markdown.New(convOpts...),
		tmpl:     tmpl,
		logger:   zap.NewNop(),
		reporter: progress.Nop{},
		now:      time.Now,
	}
	for _, o := range options {
		o(g)
	}
	return g, nil
}

// Into returns a copy of g that writes to dir. The copy shares the
// templates, cache and logger.
func (g *Generator) Into(dir string) *Generator {
	c := *g
	c.opts.OutputDir = dir
	return &c
}

// OutputDir is where Generate writes.
func (g *Generator) OutputDir() string { return g.opts.OutputDir }

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

// Generate builds the whole site from doc into the output directory,
// replacing what was there. Problems with individual posts, media or
// regions are logged and reported in Result.Warnings; only I/O failures on
// the output and context cancellation fail the build.
func (g *Generator) Generate(ctx context.Context, doc *info.Info) (res *Result, err error) {
	res = &Result{BuildID: uuid.New().String()}
	if g.builds != nil {
		id, startErr := g.builds.Start(ctx, g.opts.OutputDir)
		if startErr != nil {
			g.logger.Warn("recording build start", zap.Error(startErr))
		} else {
			res.BuildID = id
			defer func() {
				if finErr := g.builds.Finish(context.WithoutCancel(ctx), id, len(res.Pages), err); finErr != nil {
					g.logger.Warn("recording build finish", zap.Error(finErr))
				}
			}()
		}
	}

	start := time.Now()
	warn := &warnings{}

	if err := g.prepareOutput(); err != nil {
		return res, err
	}

	assets, err := g.copyAssets()
	if err != nil {
		return res, err
	}
	res.Assets = len(assets)

	blog, err := g.loadBlog(ctx, warn)
	if err != nil {
		return res, err
	}
	res.Posts = len(blog.loaded)
	res.CacheHit = blog.hits
	res.Entries = blog.resolved()

	pages := g.pages(doc, blog.entries)
	g.reporter.Start(len(pages), "Rendering pages")
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			g.reporter.Finish()
			return res, err
		}
		rc := &renderContext{
			info:         doc,
			page:         p,
			link:         newLinker(p.Path, g.opts.BasePath),
			blog:         &blog.blogData,
			assets:       assets,
			headerOffset: g.opts.HeaderOffset,
			logger:       g.logger,
			warnings:     warn,
		}
		if p.post != nil {
			rc.post = blog.loaded[p.post.Ref()]
			rc.postErr = blog.failed[p.post.Ref()]
		}
		if err := g.renderPage(rc); err != nil {
			g.reporter.Finish()
			return res, fmt.Errorf("rendering %s: %w", p.Path, err)
		}
		res.Pages = append(res.Pages, p.Path)
		g.reporter.Step(p.Path)
	}
	g.reporter.Finish()

	if len(blog.entries) > 0 {
		if err := g.renderForwarder(doc, blog.entries); err != nil {
			return res, fmt.Errorf("rendering blog-post.html: %w", err)
		}
		res.Pages = append(res.Pages, "blog-post.html")
	}

	if err := g.writeAssets(doc, &blog.blogData, res.Entries); err != nil {
		return res, err
	}

	res.Warnings = warn.list
	g.logger.Info("site generated",
		zap.String("output", g.opts.OutputDir),
		zap.Int("pages", len(res.Pages)),
		zap.Int("posts", res.Posts),
		zap.Int("cache_hits", res.CacheHit),
		zap.Int("warnings", len(res.Warnings)),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// prepareOutput empties the output directory. It refuses to clear the
// project root or one of its ancestors, and any directory that overlaps
// the posts, static or data trees.
func (g *Generator) prepareOutput() error {
	out, err := filepath.Abs(g.opts.OutputDir)
	if err != nil {
		return err
	}
	root, err := filepath.Abs(g.opts.Root)
	if err != nil {
		return err
	}
	if out == root || strings.HasPrefix(root, out+string(filepath.Separator)) {
		return fmt.Errorf("refusing to clear %s: it contains the project", out)
	}
	for _, src := range g.sourceDirs() {
		if walker.Overlaps(out, src) {
			return fmt.Errorf("refusing to clear %s: it overlaps source directory %s", out, src)
		}
	}
	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("clearing output dir: %w", err)
	}
	return os.MkdirAll(out, 0o755)
}

// sourceDirs lists the input trees below the root. The root itself is
// left out; the check above covers it.
func (g *Generator) sourceDirs() []string {
	var dirs []string
	for _, rel := range []string{g.opts.PostsDir, g.opts.StaticDir} {
		if rel != "" && path.Clean(rel) != "." {
			dirs = append(dirs, filepath.Join(g.opts.Root, filepath.FromSlash(rel)))
		}
	}
	if g.opts.DataDir != "" && filepath.Clean(g.opts.DataDir) != "." {
		dirs = append(dirs, g.opts.DataDir)
	}
	return dirs
}

// copyAssets copies the static tree to the output root and non-Markdown
// files of the posts tree to posts/. The returned map is keyed by the
// site-relative path.
func (g *Generator) copyAssets() (map[string]walker.File, error) {
	assets := make(map[string]walker.File)

	static, err := walker.Walk(walker.Config{
		RootDir: filepath.Join(g.opts.Root, filepath.FromSlash(g.opts.StaticDir)),
		Exclude: g.opts.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("walking static dir: %w", err)
	}
	if err := walker.Copy(static, g.opts.OutputDir); err != nil {
		return nil, err
	}
	for _, f := range static {
		assets[f.RelPath] = f
	}

	if g.opts.PostsDir == "" {
		return assets, nil
	}
	exclude := append([]string{"**/*.md", path.Base(g.opts.PostsIndex)}, g.opts.Exclude...)
	media, err := walker.Walk(walker.Config{
		RootDir: filepath.Join(g.opts.Root, filepath.FromSlash(g.opts.PostsDir)),
		Exclude: exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("walking posts dir: %w", err)
	}
	if err := walker.Copy(media, filepath.Join(g.opts.OutputDir, "posts")); err != nil {
		return nil, err
	}
	for _, f := range media {
		assets["posts/"+f.RelPath] = f
	}
	return assets, nil
}

// loadedBlog extends blogData with per-post failures and cache counters.
type loadedBlog struct {
	blogData
	failed map[string]error
	hits   int
}

// resolved lists the index entries, replaced by their rendered posts'
// entries where a post loaded. It is nil when the site has no blog.
func (b *loadedBlog) resolved() []posts.Entry {
	if b.entries == nil {
		return nil
	}
	out := make([]posts.Entry, len(b.entries))
	for i, e := range b.entries {
		if p, ok := b.loaded[e.Ref()]; ok {
			e = p.Resolved()
		}
		out[i] = e
	}
	return out
}

// loadBlog reads the posts index and renders every post, at most
// MaxConcurrency at a time. A missing index means the site has no blog.
func (g *Generator) loadBlog(ctx context.Context, warn *warnings) (*loadedBlog, error) {
	b := &loadedBlog{
		blogData: blogData{loaded: make(map[string]*posts.Post)},
		failed:   make(map[string]error),
	}

	entries, err := posts.LoadIndex(g.fsys, g.opts.PostsIndex)
	switch {
	case errors.Is(err, posts.ErrNotFound):
		g.logger.Debug("no posts index", zap.String("path", g.opts.PostsIndex))
		b.tree = BuildPanelTree(nil, nil)
		return b, nil
	case err != nil:
		warn.add(g.logger, g.opts.PostsIndex, "posts index unreadable", zap.Error(err))
		b.err = err
		b.tree = BuildPanelTree(nil, nil)
		return b, nil
	}
	b.entries = entries

	results := make([]*posts.Post, len(entries))
	errs := make([]error, len(entries))
	var hits atomic.Int64

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.MaxConcurrency)
	for i, e := range entries {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			p, hit, err := g.renderPost(egCtx, e)
			if hit {
				hits.Add(1)
			}
			results[i], errs[i] = p, err
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var keep []string
	for i, e := range entries {
		ref := e.Ref()
		keep = append(keep, path.Join(g.opts.PostsDir, ref))
		if errs[i] != nil {
			b.failed[ref] = errs[i]
			warn.add(g.logger, ref, "post failed to load", zap.Error(errs[i]))
			continue
		}
		b.loaded[ref] = results[i]
	}
	b.hits = int(hits.Load())
	b.tree = BuildPanelTree(entries, b.loaded)

	if g.cache != nil {
		if n, err := g.cache.Prune(ctx, keep); err != nil {
			g.logger.Warn("pruning render cache", zap.Error(err))
		} else if n > 0 {
			g.logger.Debug("pruned render cache", zap.Int64("entries", n))
		}
	}
	return b, nil
}

// renderPost reads and renders one post, reusing the cached body when the
// file content and highlight style are unchanged.
func (g *Generator) renderPost(ctx context.Context, e posts.Entry) (*posts.Post, bool, error) {
	data, err := posts.Read(g.fsys, g.opts.PostsDir, e.Ref())
	if err != nil {
		return nil, false, err
	}
	if g.cache == nil {
		p, err := posts.Parse(data, e, g.conv)
		return p, false, err
	}

	key := path.Join(g.opts.PostsDir, e.Ref())
	hash := store.Hash(append([]byte(g.conv.Style()+"\x00"), data...))

	cached, ok, err := g.cache.Get(ctx, key, hash)
	if err != nil {
		g.logger.Warn("render cache lookup", zap.String("post", key), zap.Error(err))
	}
	if ok {
		p, err := posts.Parse(data, e, posts.ConverterFunc(func([]byte) (markdown.Document, error) {
			return markdown.Document{HTML: cached.HTML, Headings: cached.Headings}, nil
		}))
		return p, true, err
	}

	p, err := posts.Parse(data, e, g.conv)
	if err != nil {
		return nil, false, err
	}
	entry := store.CacheEntry{Path: key, Hash: hash, HTML: p.Doc.HTML, Headings: p.Doc.Headings}
	if err := g.cache.Put(ctx, entry); err != nil {
		g.logger.Warn("render cache store", zap.String("post", key), zap.Error(err))
	}
	return p, false, nil
}

// Page is one generated HTML file and the regions it may populate.
type Page struct {
	Path    string
	Heading string // Page heading; empty for pages that render their own.
	Nav     string // site-nav target shown as active.
	Regions []Region

	post *posts.Entry
}

var chrome = []Region{RegionSiteNav, RegionProfileRail, RegionStats}

func withChrome(regions ...Region) []Region {
	return append(append([]Region(nil), chrome...), regions...)
}

// pages lists every page of the site. Pages are generated even when
// their data is absent; their regions then render nothing.
func (g *Generator) pages(doc *info.Info, entries []posts.Entry) []Page {
	out := []Page{
		{
			Path: "index.html",
			Nav:  "index.html",
			Regions: withChrome(RegionProfile, RegionNews, RegionInterests, RegionHighlights,
				RegionProjects, RegionExperience, RegionCV, RegionContact),
		},
		{Path: "publications.html", Heading: "Publications", Nav: "publications.html", Regions: withChrome(RegionPublications, RegionPubNav)},
		{Path: "awards.html", Heading: "Awards", Nav: "awards.html", Regions: withChrome(RegionAwards)},
		{Path: "blog.html", Heading: "Blog", Nav: "blog.html", Regions: withChrome(RegionBlogCats, RegionBlogList, RegionBlogNav)},
		{Path: "gallery.html", Heading: "Gallery", Nav: "gallery.html", Regions: withChrome(RegionGallery)},
	}
	for i := range entries {
		e := &entries[i]
		out = append(out, Page{
			Path:    postPagePath(*e),
			Nav:     "blog.html",
			Regions: withChrome(RegionPost, RegionPostNav),
			post:    e,
		})
	}
	return out
}

// slot is where a region sits in the layout.
func slot(r Region) string {
	switch r {
	case RegionSiteNav:
		return "header"
	case RegionProfileRail, RegionStats:
		return "rail"
	case RegionPubNav, RegionPostNav, RegionBlogNav:
		return "side"
	}
	return "main"
}

// pageView is the layout's data.
type pageView struct {
	Lang         string
	Theme        string
	AllowToggle  bool
	Title        string
	SiteTitle    string
	Description  string
	OGImage      string
	Favicon      string
	Root         string
	Heading      string
	Highlight    bool
	LiveReload   bool
	HeaderOffset int
	LastUpdated  string
	Header       []template.HTML
	Rail         []template.HTML
	Main         []template.HTML
	Side         []template.HTML
	Posts        map[string]string
}

func (g *Generator) baseView(doc *info.Info, l linker) pageView {
	v := pageView{
		Lang:         "en",
		Theme:        "light",
		AllowToggle:  true,
		SiteTitle:    g.opts.Title,
		Root:         l.prefix,
		Highlight:    g.opts.HighlightStyle != "",
		LiveReload:   g.opts.LiveReload,
		HeaderOffset: g.opts.HeaderOffset,
	}
	if v.SiteTitle == "" {
		v.SiteTitle = doc.Profile.Name.Display()
	}
	if s := doc.Site; s != nil {
		if s.Title != "" {
			v.SiteTitle = s.Title
		}
		if s.Locale != "" {
			v.Lang = s.Locale
		}
		if s.Theme != nil {
			if s.Theme.DefaultMode == "dark" {
				v.Theme = "dark"
			}
			if s.Theme.AllowToggle != nil {
				v.AllowToggle = *s.Theme.AllowToggle
			}
		}
		v.Description = s.Description
		v.OGImage = l.URL(s.OGImage)
		v.Favicon = l.URL(s.Favicon)
		switch s.LastUpdated {
		case "manual":
			v.LastUpdated = s.LastUpdatedValue
		case "auto":
			v.LastUpdated = g.now().Format("January 2, 2006")
		}
	}
	return v
}

func (g *Generator) renderPage(rc *renderContext) error {
	regions := renderRegions(g.tmpl, rc)

	v := g.baseView(rc.info, rc.link)
	v.Heading = rc.page.Heading
	v.Title = rc.page.Heading
	if rc.post != nil {
		v.Title = rc.post.Title
	}
	for _, r := range rc.page.Regions {
		h, ok := regions[string(r)]
		if !ok {
			continue
		}
		switch slot(r) {
		case "header":
			v.Header = append(v.Header, h)
		case "rail":
			v.Rail = append(v.Rail, h)
		case "side":
			v.Side = append(v.Side, h)
		default:
			v.Main = append(v.Main, h)
		}
	}

	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, "layout", v); err != nil {
		return err
	}
	return g.writeFile(rc.page.Path, buf.Bytes())
}

// renderForwarder writes blog-post.html, which sends old ?file=name.md
// links to the generated post pages.
func (g *Generator) renderForwarder(doc *info.Info, entries []posts.Entry) error {
	v := g.baseView(doc, linker{})
	v.Posts = make(map[string]string, len(entries))
	for _, e := range entries {
		v.Posts[e.Ref()] = postPagePath(e)
	}
	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, "forwarder", v); err != nil {
		return err
	}
	return g.writeFile("blog-post.html", buf.Bytes())
}

// writeAssets writes the stylesheet, script, data files and search index.
func (g *Generator) writeAssets(doc *info.Info, blog *blogData, entries []posts.Entry) error {
	if err := g.writeFile("assets/style.css", []byte(cssContent)); err != nil {
		return err
	}
	if err := g.writeFile("assets/script.js", []byte(jsContent)); err != nil {
		return err
	}
	if g.opts.HighlightStyle != "" {
		css, err := markdown.HighlightCSS(g.opts.HighlightStyle)
		if err != nil {
			return fmt.Errorf("highlight stylesheet: %w", err)
		}
		if err := g.writeFile("assets/highlight.css", []byte(css)); err != nil {
			return err
		}
	}

	var pubs []info.Publication
	var settings *info.PublicationSettings
	if doc.Publications != nil {
		pubs = doc.Publications.Items
		settings = doc.Publications.Settings
	}
	if err := g.writeJSON("data/publications.json", query.Query(pubs, query.PubState{}, settings)); err != nil {
		return err
	}

	if entries == nil {
		entries = []posts.Entry{}
	}
	if err := g.writeJSON("data/posts.json", entries); err != nil {
		return err
	}

	if err := WriteSearchIndex(BuildSearchIndex(blog.entries, blog.loaded, pubs),
		filepath.Join(g.opts.OutputDir, "search-index.json")); err != nil {
		return fmt.Errorf("writing search index: %w", err)
	}
	return nil
}

func (g *Generator) writeJSON(rel string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", rel, err)
	}
	return g.writeFile(rel, data)
}

func (g *Generator) writeFile(rel string, data []byte) error {
	target := filepath.Join(g.opts.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

// warnings collects distinct runtime problems of one build.
type warnings struct {
	mu   sync.Mutex
	seen map[string]bool
	list []string
}

func (w *warnings) add(logger *zap.Logger, where, msg string, fields ...zap.Field) {
	key := where + ": " + msg
	for _, f := range fields {
		if f.Type == zapcore.StringType {
			key += " " + f.Key + "=" + f.String
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seen[key] {
		return
	}
	if w.seen == nil {
		w.seen = make(map[string]bool)
	}
	w.seen[key] = true
	w.list = append(w.list, key)
	logger.Warn(msg, append(fields, zap.String("where", where))...)
}
