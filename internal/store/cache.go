// Package store keeps rendered post HTML and the build history in SQLite.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ziadkadry99/folio/internal/db"
	"github.com/ziadkadry99/folio/internal/nav"
)

// CacheEntry is the rendered form of one post body.
type CacheEntry struct {
	Path      string
	Hash      string
	HTML      string
	Headings  []nav.Heading
	UpdatedAt time.Time
}

// RenderCache maps a post path and content hash to its rendered HTML.
type RenderCache struct {
	db *db.DB
}

// NewRenderCache creates a RenderCache backed by the given database.
func NewRenderCache(database *db.DB) *RenderCache {
	return &RenderCache{db: database}
}

// Hash is the cache key for content.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Get returns the entry for path if it was rendered from content with the
// given hash. A miss returns ok == false and no error.
func (c *RenderCache) Get(ctx context.Context, path, hash string) (entry *CacheEntry, ok bool, err error) {
	var (
		e        CacheEntry
		headings string
		updated  string
	)
	row := c.db.QueryRowContext(ctx,
		`SELECT path, hash, html, headings, updated_at FROM render_cache WHERE path = ? AND hash = ?`,
		path, hash)
	if err := row.Scan(&e.Path, &e.Hash, &e.HTML, &headings, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading render cache: %w", err)
	}
	if err := json.Unmarshal([]byte(headings), &e.Headings); err != nil {
		return nil, false, fmt.Errorf("decoding cached headings for %s: %w", path, err)
	}
	e.UpdatedAt, _ = time.Parse(timeLayout, updated)
	return &e, true, nil
}

// Put stores or replaces the entry for e.Path.
func (c *RenderCache) Put(ctx context.Context, e CacheEntry) error {
	headings, err := json.Marshal(e.Headings)
	if err != nil {
		return fmt.Errorf("encoding headings: %w", err)
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now()
	}
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO render_cache (path, hash, html, headings, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			hash = excluded.hash,
			html = excluded.html,
			headings = excluded.headings,
			updated_at = excluded.updated_at`,
		e.Path, e.Hash, e.HTML, string(headings), formatTime(e.UpdatedAt))
	if err != nil {
		return fmt.Errorf("writing render cache: %w", err)
	}
	return nil
}

// Prune drops entries for paths not in keep and returns how many went.
func (c *RenderCache) Prune(ctx context.Context, keep []string) (int64, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting prune: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `CREATE TEMP TABLE IF NOT EXISTS keep_paths (path TEXT PRIMARY KEY)`); err != nil {
		return 0, fmt.Errorf("creating keep table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM keep_paths`); err != nil {
		return 0, fmt.Errorf("clearing keep table: %w", err)
	}
	for _, p := range keep {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO keep_paths (path) VALUES (?)`, p); err != nil {
			return 0, fmt.Errorf("recording kept path: %w", err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM render_cache WHERE path NOT IN (SELECT path FROM keep_paths)`)
	if err != nil {
		return 0, fmt.Errorf("pruning render cache: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing prune: %w", err)
	}
	return res.RowsAffected()
}
