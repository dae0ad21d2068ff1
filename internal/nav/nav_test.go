package nav

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func numbers(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Number
	}
	return out
}

func TestOutlineNumbering(t *testing.T) {
	tests := []struct {
		name   string
		levels []int
		want   []string
	}{
		{"title skipped and deeper counter reset", []int{1, 2, 3, 2}, []string{"1", "1.1", "2"}},
		{"siblings then child", []int{1, 2, 2, 3, 2}, []string{"1", "2", "2.1", "3"}},
		{"three levels", []int{2, 3, 4, 3, 2, 3}, []string{"1", "1.1", "1.1.1", "1.2", "2", "2.1"}},
		{"skipped level left out", []int{2, 4, 2}, []string{"1", "1.1", "2"}},
		{"relative to shallowest", []int{3, 3, 4}, []string{"1", "2", "2.1"}},
		{"deeper heading before first section", []int{3, 2, 3}, []string{"0.1", "1", "1.1"}},
		{"orphan two levels down", []int{4, 2, 4}, []string{"0.1", "1", "1.1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := make([]Heading, len(tt.levels))
			for i, l := range tt.levels {
				hs[i] = Heading{Level: l, Text: "h"}
			}
			got := numbers(Outline(hs, true))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Outline() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOutlineWithoutSkip(t *testing.T) {
	hs := []Heading{{Level: 1, Text: "Title"}, {Level: 2, Text: "A"}}
	got := numbers(Outline(hs, false))
	if diff := cmp.Diff([]string{"1", "1.1"}, got); diff != "" {
		t.Errorf("Outline() mismatch (-want +got):\n%s", diff)
	}
	if Outline(nil, true) != nil {
		t.Error("Outline(nil) should be nil")
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Hello, World!":       "hello-world",
		"  Go 1.22 release  ": "go-1-22-release",
		"---":                 "",
		"Über Café":           "ber-caf",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAssignIDs(t *testing.T) {
	in := []Heading{
		{Level: 2, Text: "Intro"},
		{Level: 2, Text: "Intro"},
		{Level: 2, Text: "???"},
		{Level: 2, Text: "Kept", ID: "custom"},
		{Level: 3, Text: "Custom"},
	}
	got := AssignIDs(in)
	want := []string{"intro", "intro-1", "heading-2", "custom", "custom-1"}
	for i, h := range got {
		if h.ID != want[i] {
			t.Errorf("heading %d id = %q, want %q", i, h.ID, want[i])
		}
	}
	if in[0].ID != "" {
		t.Error("AssignIDs modified its input")
	}
}

func TestScrollTarget(t *testing.T) {
	if got := ScrollTarget(400, DefaultHeaderOffset); got != 350 {
		t.Errorf("ScrollTarget(400) = %v, want 350", got)
	}
	if got := ScrollTarget(20, DefaultHeaderOffset); got != 0 {
		t.Errorf("ScrollTarget(20) = %v, want 0", got)
	}
}

func TestActiveIndex(t *testing.T) {
	tops := []float64{100, 400, 900}
	tests := []struct {
		scrollY float64
		want    int
	}{
		{0, -1},
		{50, 0},
		{349, 0},
		{350, 1},
		{849, 1},
		{850, 2},
		{5000, 2},
	}
	for _, tt := range tests {
		if got := ActiveIndex(tops, tt.scrollY, 50); got != tt.want {
			t.Errorf("ActiveIndex(scrollY=%v) = %d, want %d", tt.scrollY, got, tt.want)
		}
	}
	if got := ActiveIndex(nil, 100, 50); got != -1 {
		t.Errorf("ActiveIndex(nil) = %d, want -1", got)
	}
}

func TestPanelDrillDownAndBack(t *testing.T) {
	p := NewPanel()
	if p.State() != PanelPosts {
		t.Fatalf("initial state = %s", p.State())
	}

	p.Back()
	if p.State() != PanelPosts || p.Depth() != 0 {
		t.Fatal("Back at root should be a no-op")
	}

	steps := []struct {
		ev   Event
		arg  string
		want PanelState
	}{
		{EventShowCategories, "", PanelCategories},
		{EventSelectCategory, "Research", PanelPosts},
		{EventSelectPost, "hello.md", PanelHeaders},
	}
	for _, s := range steps {
		if err := p.Fire(s.ev, s.arg); err != nil {
			t.Fatalf("Fire(%s) error: %v", s.ev, err)
		}
		if p.State() != s.want {
			t.Fatalf("after %s state = %s, want %s", s.ev, p.State(), s.want)
		}
	}
	if p.Category != "Research" || p.Post != "hello.md" {
		t.Errorf("selection = %q / %q", p.Category, p.Post)
	}

	var trail []PanelState
	for p.Depth() > 0 {
		if err := p.Fire(EventBack, ""); err != nil {
			t.Fatalf("Back error: %v", err)
		}
		trail = append(trail, p.State())
	}
	if diff := cmp.Diff([]PanelState{PanelPosts, PanelCategories, PanelPosts}, trail); diff != "" {
		t.Errorf("back trail mismatch (-want +got):\n%s", diff)
	}
	if p.Category != "" || p.Post != "" {
		t.Errorf("selection not restored: %q / %q", p.Category, p.Post)
	}
}

func TestPanelInvalidTransition(t *testing.T) {
	p := NewPanel()
	err := p.Fire(EventSelectCategory, "x")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if p.State() != PanelPosts {
		t.Error("state changed after invalid event")
	}

	_ = p.Fire(EventSelectPost, "a.md")
	if err := p.Fire(EventShowCategories, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("headers should not accept show_categories, got %v", err)
	}
}
