package rebuild

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ziadkadry99/folio/internal/logging"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 500 * time.Millisecond

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	// Paths are files or directories to watch. Directories are watched
	// recursively; missing paths are skipped.
	Paths    []string
	Ignore   []string // Directories whose events are dropped, e.g. the output dir.
	Debounce time.Duration
	// OnRebuilt runs after every build that was published.
	OnRebuilt func()
}

// Watcher rebuilds the site when watched files change.
type Watcher struct {
	cfg     WatcherConfig
	r       *Rebuilder
	fsw     *fsnotify.Watcher
	logger  *zap.Logger
	files   map[string]bool // Watched single files, by cleaned path.
	dirs    []string        // Watched directory roots.
	ignore  []string
	mu      sync.Mutex
	timer   *time.Timer
	pending sync.WaitGroup
}

// NewWatcher registers the configured paths with fsnotify.
func NewWatcher(cfg WatcherConfig, r *Rebuilder, logger *zap.Logger) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		cfg:    cfg,
		r:      r,
		fsw:    fsw,
		logger: logging.OrNop(logger),
		files:  make(map[string]bool),
	}
	for _, p := range cfg.Ignore {
		if abs, err := filepath.Abs(p); err == nil {
			w.ignore = append(w.ignore, abs)
		}
	}
	for _, p := range cfg.Paths {
		if err := w.add(p); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// add watches p. A file is watched through its parent directory since
// editors often replace files instead of writing them.
func (w *Watcher) add(p string) error {
	abs, err := filepath.Abs(p)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		w.logger.Debug("not watching missing path", zap.String("path", p))
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		w.files[abs] = true
		return w.fsw.Add(filepath.Dir(abs))
	}
	if !w.relevant(abs) {
		w.dirs = append(w.dirs, abs)
	}
	return filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("walking watch path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("watching directory", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
}

func (w *Watcher) ignored(path string) bool {
	for _, dir := range w.ignore {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && strings.Contains(base, "-staging-")
}

// relevant reports whether name is a watched file or lies under a
// watched directory.
func (w *Watcher) relevant(name string) bool {
	if w.ignored(name) {
		return false
	}
	if w.files[name] {
		return true
	}
	for _, dir := range w.dirs {
		if name == dir || strings.HasPrefix(name, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run handles events until ctx is done, then waits for a pending rebuild.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil && w.timer.Stop() {
				w.pending.Done()
			}
			w.mu.Unlock()
			w.pending.Wait()
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.relevant(event.Name) {
				continue
			}
			w.logger.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.add(event.Name); err != nil {
						w.logger.Warn("watching new directory", zap.String("path", event.Name), zap.Error(err))
					}
				}
			}
			w.schedule(ctx)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// schedule (re)starts the debounce timer.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil && w.timer.Stop() {
		w.pending.Done()
	}
	w.pending.Add(1)
	w.timer = time.AfterFunc(w.cfg.Debounce, func() {
		defer w.pending.Done()
		w.rebuild(ctx)
	})
}

func (w *Watcher) rebuild(ctx context.Context) {
	start := time.Now()
	err := w.r.Run(ctx)
	switch {
	case errors.Is(err, ErrStale), errors.Is(err, context.Canceled):
		return
	case err != nil:
		w.logger.Error("rebuild failed", zap.Error(err))
		return
	}
	w.logger.Info("site rebuilt", zap.Duration("elapsed", time.Since(start)))
	if w.cfg.OnRebuilt != nil {
		w.cfg.OnRebuilt()
	}
}
