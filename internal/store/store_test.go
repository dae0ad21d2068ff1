package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/folio/internal/db"
	"github.com/ziadkadry99/folio/internal/nav"
)

func openDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestRenderCache(t *testing.T) {
	ctx := context.Background()
	cache := NewRenderCache(openDB(t))

	content := []byte("## Hello\n")
	hash := Hash(content)
	if len(hash) != 64 {
		t.Fatalf("Hash() length = %d", len(hash))
	}

	if _, ok, err := cache.Get(ctx, "hello.md", hash); err != nil || ok {
		t.Fatalf("empty cache Get() = ok %v, err %v", ok, err)
	}

	entry := CacheEntry{
		Path:     "hello.md",
		Hash:     hash,
		HTML:     `<h2 id="hello">Hello</h2>`,
		Headings: []nav.Heading{{Level: 2, Text: "Hello", ID: "hello"}},
	}
	if err := cache.Put(ctx, entry); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, ok, err := cache.Get(ctx, "hello.md", hash)
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if got.HTML != entry.HTML {
		t.Errorf("HTML = %q", got.HTML)
	}
	if diff := cmp.Diff(entry.Headings, got.Headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}

	if _, ok, _ := cache.Get(ctx, "hello.md", Hash([]byte("changed"))); ok {
		t.Error("Get() hit with a stale hash")
	}

	entry.Hash = Hash([]byte("changed"))
	entry.HTML = "<p>changed</p>"
	if err := cache.Put(ctx, entry); err != nil {
		t.Fatalf("second Put() error: %v", err)
	}
	if _, ok, _ := cache.Get(ctx, "hello.md", hash); ok {
		t.Error("old hash still cached after replace")
	}
}

func TestRenderCachePrune(t *testing.T) {
	ctx := context.Background()
	cache := NewRenderCache(openDB(t))
	for _, p := range []string{"a.md", "b.md", "c.md"} {
		if err := cache.Put(ctx, CacheEntry{Path: p, Hash: "h", HTML: p}); err != nil {
			t.Fatalf("Put(%s) error: %v", p, err)
		}
	}
	n, err := cache.Prune(ctx, []string{"b.md"})
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if n != 2 {
		t.Errorf("Prune() removed %d, want 2", n)
	}
	if _, ok, _ := cache.Get(ctx, "b.md", "h"); !ok {
		t.Error("kept entry was pruned")
	}
}

func TestBuilds(t *testing.T) {
	ctx := context.Background()
	builds := NewBuilds(openDB(t))

	latest, err := builds.Latest(ctx)
	if err != nil || latest != nil {
		t.Fatalf("Latest() on empty log = %+v, %v", latest, err)
	}

	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	builds.now = func() time.Time { return clock }

	first, err := builds.Start(ctx, "public")
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := builds.Finish(ctx, first, 7, nil); err != nil {
		t.Fatalf("Finish() error: %v", err)
	}

	clock = clock.Add(time.Minute)
	second, err := builds.Start(ctx, "public")
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := builds.Finish(ctx, second, 0, errors.New("boom")); err != nil {
		t.Fatalf("Finish() error: %v", err)
	}

	latest, err = builds.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if latest.ID != second || latest.Error != "boom" || latest.Succeeded() {
		t.Errorf("Latest() = %+v", latest)
	}
	if !latest.StartedAt.Equal(clock) {
		t.Errorf("StartedAt = %v, want %v", latest.StartedAt, clock)
	}

	if err := builds.Finish(ctx, "missing", 0, nil); err == nil {
		t.Error("Finish() of unknown build should fail")
	}
}
