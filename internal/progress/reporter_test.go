package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestCIReporterCountsSteps(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf}
	r.Start(2, "Building site")
	r.Step("index.html")
	r.Step("blog.html")
	r.Finish()

	want := "Building site: 2 steps\n[1/2] index.html\n[2/2] blog.html\nBuilding site: done\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestCIReporterConcurrentSteps(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf}
	r.Start(50, "posts")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Step("post")
		}()
	}
	wg.Wait()

	if !strings.Contains(buf.String(), "[50/50] post") {
		t.Errorf("expected final step line, got:\n%s", buf.String())
	}
}

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter().(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}
