// Package rebuild runs site builds so that the most recent request wins:
// each build renders into a staging directory, and only the newest one is
// swapped into the live output directory.
package rebuild

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ziadkadry99/folio/internal/logging"
)

// ErrStale is returned when a newer build started before this one finished.
var ErrStale = errors.New("rebuild: superseded by a newer build")

// Guard hands out tickets in increasing order.
type Guard struct {
	seq atomic.Uint64
}

// Ticket identifies one request.
type Ticket struct {
	g *Guard
	n uint64
}

// Next issues a ticket newer than every earlier one.
func (g *Guard) Next() Ticket {
	return Ticket{g: g, n: g.seq.Add(1)}
}

// Current reports whether no newer ticket has been issued.
func (t Ticket) Current() bool {
	return t.g != nil && t.g.seq.Load() == t.n
}

// BuildFunc renders the site into dir. The returned commit, if any, runs
// only when the build is swapped into place.
type BuildFunc func(ctx context.Context, dir string) (commit func(), err error)

// Rebuilder owns an output directory and the builds that write it.
type Rebuilder struct {
	output string
	build  BuildFunc
	logger *zap.Logger

	guard  Guard
	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a Rebuilder for outputDir.
func New(outputDir string, build BuildFunc, logger *zap.Logger) *Rebuilder {
	return &Rebuilder{output: filepath.Clean(outputDir), build: build, logger: logging.OrNop(logger)}
}

// Run builds the site and publishes it. Starting a Run cancels the one in
// flight; a build that loses the race returns ErrStale and leaves the
// output untouched.
func (r *Rebuilder) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.mu.Lock()
	t := r.guard.Next()
	if r.cancel != nil {
		r.cancel()
	}
	r.cancel = cancel
	build := r.build
	r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.output), 0o755); err != nil {
		return err
	}
	staging, err := os.MkdirTemp(filepath.Dir(r.output), "."+filepath.Base(r.output)+"-staging-")
	if err != nil {
		return fmt.Errorf("creating staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	commit, err := build(ctx, staging)
	if !t.Current() {
		r.logger.Debug("discarding stale build", zap.Uint64("ticket", t.n))
		return ErrStale
	}
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !t.Current() {
		return ErrStale
	}
	if err := swap(staging, r.output); err != nil {
		return err
	}
	if commit != nil {
		commit()
	}
	r.logger.Debug("published build", zap.Uint64("ticket", t.n), zap.String("output", r.output))
	return nil
}

// swap replaces dst with src, keeping dst intact if the move fails.
func swap(src, dst string) error {
	old := dst + ".old"
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	hadOld := true
	if err := os.Rename(dst, old); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("moving old output aside: %w", err)
		}
		hadOld = false
	}
	if err := os.Rename(src, dst); err != nil {
		if hadOld {
			_ = os.Rename(old, dst)
		}
		return fmt.Errorf("publishing build: %w", err)
	}
	return os.RemoveAll(old)
}
