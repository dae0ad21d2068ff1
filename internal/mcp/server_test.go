package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

const testData = `{
  "profile": {"name": "Ada Lovelace", "email": "ada@example.org", "links": [], "bio": "Hi"},
  "publications": {"items": [
    {"id": "notes", "title": "Notes on the Engine", "authors": "Ada Lovelace and Charles Babbage", "venue": {"name": "Memoirs", "short": "TM"}, "year": 2023, "month": 3, "type": "journal", "featured": true, "bibtex": "@article{notes}"},
    {"id": "loom", "title": "Looms", "authors": "Ada Lovelace", "venue": "Draft", "type": "preprint", "status": "in_preparation", "bibtex": "@misc{loom}"},
    {"id": "nobib", "title": "No Citation", "authors": "Ada Lovelace", "venue": "X 2021", "bibtex": " "}
  ]}
}`

func newTestServer(t *testing.T, withPosts bool) *Server {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{"data/info.json": testData}
	if withPosts {
		files["posts/index.json"] = `[{"filename": "hello.md", "title": "Hello", "category": "Notes", "date": "2025-01-02"}, {"slug": "bare", "tags": ["go"]}]`
		files["posts/hello.md"] = "---\ntitle: Hello World\n---\n# Hello World\n\n## Setup\n\n### Tools\n\n## Usage\n"
		files["posts/bare.md"] = "---\ncategory: ML\n---\nJust text.\n"
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return NewServer(Config{
		Root:       root,
		DataFile:   filepath.Join(root, "data", "info.json"),
		PostsDir:   "posts",
		PostsIndex: "posts/index.json",
	}, nil)
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var text strings.Builder
	for _, c := range result.Content {
		if tc, ok := mcp.AsTextContent(c); ok {
			text.WriteString(tc.Text)
		}
	}
	return text.String(), result.IsError
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		tool     mcp.Tool
		wantName string
		required []string
	}{
		{listPublicationsTool, "list_publications", nil},
		{getBibtexTool, "get_bibtex", []string{"id"}},
		{listPostsTool, "list_posts", nil},
		{getPostOutlineTool, "get_post_outline", []string{"file"}},
	}
	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
			if len(tt.tool.InputSchema.Required) != len(tt.required) {
				t.Errorf("required = %v, want %v", tt.tool.InputSchema.Required, tt.required)
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer(Config{}, nil)
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.cfg.Root != "." {
		t.Errorf("Root = %q, want the working directory", srv.cfg.Root)
	}
}

func TestHandleListPublications(t *testing.T) {
	srv := newTestServer(t, false)

	t.Run("all", func(t *testing.T) {
		text, isErr := call(t, srv.handleListPublications, map[string]any{})
		if isErr {
			t.Fatalf("tool error: %s", text)
		}
		for _, want := range []string{
			"2023 (1)\n  [notes] Notes on the Engine\n      Ada Lovelace, Charles Babbage\n      TM · Mar · journal · featured\n",
			"2021 (1)",
			"Unknown (1)\n  [loom] Looms",
			"in preparation",
			"3 of 3 publications",
		} {
			if !strings.Contains(text, want) {
				t.Errorf("output lacks %q:\n%s", want, text)
			}
		}
		if strings.Index(text, "2021 (1)") > strings.Index(text, "Unknown (1)") {
			t.Error("Unknown must be listed last")
		}
	})

	t.Run("filtered", func(t *testing.T) {
		text, _ := call(t, srv.handleListPublications, map[string]any{"year": "2023, 2021", "featured": true})
		if !strings.Contains(text, "1 of 3 publications") || strings.Contains(text, "loom") {
			t.Errorf("output:\n%s", text)
		}
	})

	t.Run("no match", func(t *testing.T) {
		text, isErr := call(t, srv.handleListPublications, map[string]any{"query": "zzz"})
		if isErr || !strings.Contains(text, "No publications match") {
			t.Errorf("output: %s", text)
		}
	})

	t.Run("bad sort", func(t *testing.T) {
		if _, isErr := call(t, srv.handleListPublications, map[string]any{"sort": "random"}); !isErr {
			t.Error("expected an error for an unknown sort mode")
		}
	})
}

func TestHandleListPublicationsMissingData(t *testing.T) {
	srv := NewServer(Config{DataFile: filepath.Join(t.TempDir(), "missing.json")}, nil)
	text, isErr := call(t, srv.handleListPublications, map[string]any{})
	if !isErr || !strings.Contains(text, "data file not found") {
		t.Errorf("got %q, isError %v", text, isErr)
	}
}

func TestHandleGetBibtex(t *testing.T) {
	srv := newTestServer(t, false)

	text, isErr := call(t, srv.handleGetBibtex, map[string]any{"id": "notes"})
	if isErr || text != "@article{notes}" {
		t.Errorf("got %q, isError %v", text, isErr)
	}
	for _, args := range []map[string]any{{}, {"id": "missing"}, {"id": "nobib"}} {
		if _, isErr := call(t, srv.handleGetBibtex, args); !isErr {
			t.Errorf("args %v: expected a tool error", args)
		}
	}
}

func TestHandleListPosts(t *testing.T) {
	srv := newTestServer(t, true)

	text, isErr := call(t, srv.handleListPosts, map[string]any{})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}
	want := "- Hello World (Notes, 2025-01-02) file: hello.md\n- bare (ML) file: bare.md\n"
	if text != want {
		t.Errorf("got:\n%s\nwant:\n%s", text, want)
	}

	text, _ = call(t, srv.handleListPosts, map[string]any{"query": "GO"})
	if !strings.Contains(text, "bare.md") || strings.Contains(text, "hello.md") {
		t.Errorf("search output:\n%s", text)
	}

	text, _ = call(t, srv.handleListPosts, map[string]any{"category": "ML"})
	if text != "- bare (ML) file: bare.md\n" {
		t.Errorf("frontmatter category output: %q", text)
	}

	text, _ = call(t, srv.handleListPosts, map[string]any{"category": "Physics"})
	if text != "No posts match.\n" {
		t.Errorf("category output: %q", text)
	}

	text, isErr = call(t, newTestServer(t, false).handleListPosts, map[string]any{})
	if isErr || text != "The site has no blog." {
		t.Errorf("no blog: %q, isError %v", text, isErr)
	}
}

func TestHandleGetPostOutline(t *testing.T) {
	srv := newTestServer(t, true)

	text, isErr := call(t, srv.handleGetPostOutline, map[string]any{"file": "hello.md"})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}
	want := "Hello World\n  1 Setup\n    1.1 Tools\n  2 Usage\n"
	if text != want {
		t.Errorf("got:\n%s\nwant:\n%s", text, want)
	}

	text, _ = call(t, srv.handleGetPostOutline, map[string]any{"file": "bare.md"})
	if text != "bare\n(no headings)\n" {
		t.Errorf("bare: %q", text)
	}

	for _, file := range []string{"../secret.md", "missing.md", "notes.txt"} {
		if _, isErr := call(t, srv.handleGetPostOutline, map[string]any{"file": file}); !isErr {
			t.Errorf("%s: expected a tool error", file)
		}
	}
}
