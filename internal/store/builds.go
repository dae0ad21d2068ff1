package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/folio/internal/db"
)

// Build is one recorded site build.
type Build struct {
	ID         string
	StartedAt  time.Time
	FinishedAt *time.Time
	OutputDir  string
	Pages      int
	Error      string
}

// Succeeded reports whether the build finished without error.
func (b *Build) Succeeded() bool { return b.FinishedAt != nil && b.Error == "" }

// Builds is the build history.
type Builds struct {
	db  *db.DB
	now func() time.Time
}

// NewBuilds creates a Builds log backed by the given database.
func NewBuilds(database *db.DB) *Builds {
	return &Builds{db: database, now: time.Now}
}

// Start records a new build and returns its ID.
func (b *Builds) Start(ctx context.Context, outputDir string) (string, error) {
	id := uuid.New().String()
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO builds (id, started_at, output_dir) VALUES (?, ?, ?)`,
		id, formatTime(b.now()), outputDir)
	if err != nil {
		return "", fmt.Errorf("recording build start: %w", err)
	}
	return id, nil
}

// Finish closes the build id with its page count and error, if any.
func (b *Builds) Finish(ctx context.Context, id string, pages int, buildErr error) error {
	msg := ""
	if buildErr != nil {
		msg = buildErr.Error()
	}
	res, err := b.db.ExecContext(ctx,
		`UPDATE builds SET finished_at = ?, pages = ?, error = ? WHERE id = ?`,
		formatTime(b.now()), pages, msg, id)
	if err != nil {
		return fmt.Errorf("recording build finish: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("build %s not found", id)
	}
	return nil
}

// Latest returns the most recently started build, or nil when none exist.
func (b *Builds) Latest(ctx context.Context) (*Build, error) {
	row := b.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, output_dir, pages, error
		FROM builds ORDER BY started_at DESC, rowid DESC LIMIT 1`)

	var (
		build    Build
		started  string
		finished sql.NullString
	)
	if err := row.Scan(&build.ID, &started, &finished, &build.OutputDir, &build.Pages, &build.Error); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading latest build: %w", err)
	}
	build.StartedAt, _ = time.Parse(timeLayout, started)
	if finished.Valid {
		t, _ := time.Parse(timeLayout, finished.String)
		build.FinishedAt = &t
	}
	return &build, nil
}

// timeLayout has a fixed width so stored times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
