package frontmatter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantFM   Frontmatter
		wantBody string
	}{
		{
			name:    "json tags",
			content: "---\ntitle: \"Hello\"\ntags: [\"a\",\"b\"]\n---\nBody",
			wantFM: Frontmatter{
				Fields: map[string]string{"title": "Hello"},
				Tags:   []string{"a", "b"},
			},
			wantBody: "Body",
		},
		{
			name:    "single quoted tags fall back to comma split",
			content: "---\ntags: ['go', 'web']\ndate: 2024-05-01\n---\n\nText\n",
			wantFM: Frontmatter{
				Fields: map[string]string{"date": "2024-05-01"},
				Tags:   []string{"go", "web"},
			},
			wantBody: "Text",
		},
		{
			name:    "value keeps later colons",
			content: "---\ntitle: Go: the good parts\nsummary: 'quoted'\n---\nx",
			wantFM: Frontmatter{
				Fields: map[string]string{"title": "Go: the good parts", "summary": "quoted"},
			},
			wantBody: "x",
		},
		{
			name:    "horizontal rule in body is kept",
			content: "---\ntitle: Rules\n---\nabove\n\n---\n\nbelow",
			wantFM: Frontmatter{
				Fields: map[string]string{"title": "Rules"},
			},
			wantBody: "above\n\n---\n\nbelow",
		},
		{
			name:    "crlf line endings",
			content: "---\r\ntitle: Windows\r\n---\r\nBody\r\n",
			wantFM: Frontmatter{
				Fields: map[string]string{"title": "Windows"},
			},
			wantBody: "Body",
		},
		{
			name:    "angle brackets kept as text",
			content: "---\ntitle: Why Vec<T> is fast & safe\ntags: [\"<x>\", \"go\"]\n---\n",
			wantFM: Frontmatter{
				Fields: map[string]string{"title": "Why Vec<T> is fast & safe"},
				Tags:   []string{"<x>", "go"},
			},
			wantBody: "",
		},
		{
			name:     "no frontmatter",
			content:  "# Just a post\n\nText",
			wantFM:   Frontmatter{},
			wantBody: "# Just a post\n\nText",
		},
		{
			name:     "unterminated block",
			content:  "---\ntitle: never closed\nText",
			wantFM:   Frontmatter{},
			wantBody: "---\ntitle: never closed\nText",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body := Parse(tt.content)
			if diff := cmp.Diff(tt.wantFM, fm); diff != "" {
				t.Errorf("frontmatter mismatch (-want +got):\n%s", diff)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	fm, _ := Parse("---\ntitle: T\ndate: 2024-01-02\ncategory: Notes\nsummary: S\ncover: c.png\n---\n")
	got := []string{fm.Title(), fm.Date(), fm.Category(), fm.Summary(), fm.Cover()}
	want := []string{"T", "2024-01-02", "Notes", "S", "c.png"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("accessors mismatch (-want +got):\n%s", diff)
	}
	if fm.Empty() {
		t.Error("Empty() = true for populated frontmatter")
	}
}
