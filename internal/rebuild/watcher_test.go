package rebuild

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherRebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	posts := filepath.Join(root, "posts")
	if err := os.MkdirAll(posts, 0o755); err != nil {
		t.Fatal(err)
	}
	dataFile := filepath.Join(root, "info.json")
	if err := os.WriteFile(dataFile, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	var builds atomic.Int32
	r := New(filepath.Join(root, "public"), func(ctx context.Context, dir string) (func(), error) {
		builds.Add(1)
		return nil, nil
	}, nil)

	rebuilt := make(chan struct{}, 10)
	w, err := NewWatcher(WatcherConfig{
		Paths:     []string{dataFile, posts, filepath.Join(root, "missing")},
		Ignore:    []string{filepath.Join(root, "public")},
		Debounce:  20 * time.Millisecond,
		OnRebuilt: func() { rebuilt <- struct{}{} },
	}, r, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	wait := func(what string) {
		t.Helper()
		select {
		case <-rebuilt:
		case <-time.After(5 * time.Second):
			t.Fatalf("no rebuild after %s", what)
		}
	}

	if err := os.WriteFile(filepath.Join(posts, "a.md"), []byte("# A"), 0o644); err != nil {
		t.Fatal(err)
	}
	wait("writing a post")

	if err := os.WriteFile(dataFile, []byte(`{"profile":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	wait("writing the data file")

	before := builds.Load()
	if err := os.WriteFile(filepath.Join(root, "unrelated.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if builds.Load() != before {
		t.Error("a file beside the data file should not trigger a rebuild")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcherDebounces(t *testing.T) {
	root := t.TempDir()
	var builds atomic.Int32
	r := New(filepath.Join(t.TempDir(), "public"), func(ctx context.Context, dir string) (func(), error) {
		builds.Add(1)
		return nil, nil
	}, nil)

	rebuilt := make(chan struct{}, 10)
	w, err := NewWatcher(WatcherConfig{
		Paths:     []string{root},
		Debounce:  150 * time.Millisecond,
		OnRebuilt: func() { rebuilt <- struct{}{} },
	}, r, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(filepath.Join(root, "f.md"), []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-rebuilt:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild")
	}
	time.Sleep(300 * time.Millisecond)
	if n := builds.Load(); n != 1 {
		t.Errorf("builds = %d, want 1 for a burst of writes", n)
	}
}
