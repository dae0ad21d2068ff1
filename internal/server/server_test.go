package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/folio/internal/info"
	"github.com/ziadkadry99/folio/internal/posts"
	"github.com/ziadkadry99/folio/internal/query"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range map[string]string{
		"index.html":       "<h1>home</h1>",
		"posts/hello.html": "<h1>hello</h1>",
		"img/.keep":        "",
	} {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	year := info.Year(2023)
	doc := &info.Info{Publications: &info.Publications{Items: []info.Publication{
		{ID: "a", Title: "Alpha", Year: &year, Type: "journal", Bibtex: "@article{a}", Featured: true},
		{ID: "b", Title: "Beta", Type: "preprint", Bibtex: "@misc{b}"},
		{ID: "c", Title: "Gamma", Year: &year, Type: "conference"},
	}}}
	info.Normalize(doc)

	srv := New(Config{Dir: dir}, nil)
	srv.SetInfo(doc)
	srv.SetPosts([]posts.Entry{
		{Filename: "hello.md", Title: "Hello", Category: "Notes", Tags: []string{"go"}},
		{Slug: "other", Title: "Other"},
	})
	return srv
}

func do(t *testing.T, srv *Server, method, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := do(t, New(Config{}, nil), "GET", "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := New(Config{AllowAll: true}, nil)
	w := do(t, srv, "OPTIONS", "/healthz", map[string]string{
		"Origin":                        "http://example.com",
		"Access-Control-Request-Method": "GET",
	})
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestPublicationsAPI(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		target string
		groups []string
		ids    []string
	}{
		{"all", "/api/publications", []string{"2023", "Unknown"}, []string{"a", "c", "b"}},
		{"by year", "/api/publications?year=2023", []string{"2023"}, []string{"a", "c"}},
		{"by type list", "/api/publications?type=preprint,conference", []string{"2023", "Unknown"}, []string{"c", "b"}},
		{"featured", "/api/publications?featured=true", []string{"2023"}, []string{"a"}},
		{"search", "/api/publications?q=gam", []string{"2023"}, []string{"c"}},
		{"title sort", "/api/publications?sort=title_az&year=2023", []string{"2023"}, []string{"a", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, "GET", tt.target, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", w.Code, w.Body)
			}
			var res query.PubResult
			if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
				t.Fatal(err)
			}
			var groups, ids []string
			for _, g := range res.Groups {
				groups = append(groups, g.Year)
				for _, p := range g.Items {
					ids = append(ids, p.ID)
				}
			}
			if diff := cmp.Diff(tt.groups, groups); diff != "" {
				t.Errorf("groups (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.ids, ids); diff != "" {
				t.Errorf("ids (-want +got):\n%s", diff)
			}
			if res.Total != 3 {
				t.Errorf("total = %d", res.Total)
			}
		})
	}
}

func TestPublicationsAPIBadParams(t *testing.T) {
	srv := newTestServer(t)
	for _, target := range []string{"/api/publications?sort=random", "/api/publications?featured=maybe"} {
		if w := do(t, srv, "GET", target, nil); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, w.Code)
		}
	}
}

func TestPubStateFromQueryExpand(t *testing.T) {
	state, err := PubStateFromQuery(map[string][]string{"expand": {"2021,2020"}, "year": {"2021", "2020"}})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]bool{"2021": true, "2020": true}, state.Expanded); diff != "" {
		t.Errorf("expanded (-want +got):\n%s", diff)
	}
	if len(state.Filter.Years) != 2 || state.Sort != query.SortYearDesc {
		t.Errorf("state = %+v", state)
	}

	state, _ = PubStateFromQuery(nil)
	if state.Expanded != nil {
		t.Error("no expand parameter should keep the default set")
	}
}

func TestBibtexAPI(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "GET", "/api/publications/a/bibtex", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Body.String(); got != "@article{a}" {
		t.Errorf("body = %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="a.bib"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain") {
		t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
	}

	for _, id := range []string{"missing", "c"} {
		if w := do(t, srv, "GET", "/api/publications/"+id+"/bibtex", nil); w.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", id, w.Code)
		}
	}
}

func TestPostsAPI(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "GET", "/api/posts?q=GO", nil)
	var res postsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Posts) != 1 || res.Posts[0].Title != "Hello" {
		t.Errorf("posts = %+v", res.Posts)
	}
	want := []query.CategoryCount{{Name: "Notes", Count: 1}, {Name: "Uncategorized", Count: 1}}
	if diff := cmp.Diff(want, res.Categories); diff != "" {
		t.Errorf("categories (-want +got):\n%s", diff)
	}

	w = do(t, srv, "GET", "/api/posts?category=Uncategorized", nil)
	res = postsResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Posts) != 1 || res.Posts[0].Title != "Other" {
		t.Errorf("posts = %+v", res.Posts)
	}
}

func TestPostsAPIFrontmatterCategory(t *testing.T) {
	fsys := fstest.MapFS{
		"posts/nets.md": {Data: []byte("---\ncategory: ML\n---\nBody\n")},
	}
	srv := New(Config{Dir: t.TempDir()}, nil)
	srv.SetPosts(posts.Resolve(fsys, "posts", []posts.Entry{
		{Filename: "nets.md", Title: "Nets"},
		{Filename: "plain.md", Title: "Plain"},
	}))

	w := do(t, srv, "GET", "/api/posts?category=ML", nil)
	var res postsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Posts) != 1 || res.Posts[0].Filename != "nets.md" {
		t.Errorf("posts = %+v", res.Posts)
	}
	want := []query.CategoryCount{{Name: "ML", Count: 1}, {Name: "Uncategorized", Count: 1}}
	if diff := cmp.Diff(want, res.Categories); diff != "" {
		t.Errorf("categories (-want +got):\n%s", diff)
	}
}

func TestBlogPostForward(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "GET", "/blog-post.html?file=hello.md", nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/posts/hello.html" {
		t.Errorf("status %d, Location %q", w.Code, w.Header().Get("Location"))
	}
	if w := do(t, srv, "GET", "/blog-post.html?file=../secret.md", nil); w.Code != http.StatusBadRequest {
		t.Errorf("traversal: status = %d, want 400", w.Code)
	}
	if w := do(t, srv, "GET", "/blog-post.html?file=notes.txt", nil); w.Code != http.StatusBadRequest {
		t.Errorf("non-markdown: status = %d, want 400", w.Code)
	}
	w = do(t, srv, "GET", "/blog-post.html?file=missing.md", nil)
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "Failed to load post") {
		t.Errorf("unknown post: status = %d, body %q", w.Code, w.Body)
	}
}

func TestStaticFiles(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "GET", "/posts/hello.html", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "hello") {
		t.Fatalf("status %d, body %q", w.Code, w.Body)
	}
	if got := w.Header().Get("Cache-Control"); !strings.Contains(got, "no-store") {
		t.Errorf("Cache-Control = %q", got)
	}

	if w := do(t, srv, "GET", "/", nil); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "home") {
		t.Errorf("root: status %d", w.Code)
	}
	if w := do(t, srv, "GET", "/img/", nil); w.Code != http.StatusNotFound {
		t.Errorf("directory listing: status = %d, want 404", w.Code)
	}
}

func TestLiveReload(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/livereload", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for srv.hub.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	srv.Reload()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != "reload" {
		t.Errorf("message = %q", msg)
	}

	conn.Close()
	for srv.hub.count() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("closed client was not dropped")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
