package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/folio/internal/info"
	"github.com/ziadkadry99/folio/internal/posts"
	"github.com/ziadkadry99/folio/internal/query"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// listParam collects a parameter given repeatedly or comma separated.
func listParam(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// PubStateFromQuery reads the publications view state from URL parameters:
// q, year, type, featured, sort and expand.
func PubStateFromQuery(q url.Values) (query.PubState, error) {
	sort, err := query.ParseSortMode(q.Get("sort"))
	if err != nil {
		return query.PubState{}, err
	}
	state := query.PubState{
		Filter: query.PubFilter{
			Search: q.Get("q"),
			Years:  listParam(q, "year"),
			Types:  listParam(q, "type"),
		},
		Sort: sort,
	}
	if v := q.Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return query.PubState{}, errors.New("featured must be a boolean")
		}
		state.Filter.FeaturedOnly = featured
	}
	if _, ok := q["expand"]; ok {
		state.Expanded = make(map[string]bool)
		for _, y := range listParam(q, "expand") {
			state.Expanded[y] = true
		}
	}
	return state, nil
}

func publications(doc *info.Info) ([]info.Publication, *info.PublicationSettings) {
	if doc == nil || doc.Publications == nil {
		return nil, nil
	}
	return doc.Publications.Items, doc.Publications.Settings
}

func (s *Server) handlePublications(w http.ResponseWriter, r *http.Request) {
	state, err := PubStateFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, _ := s.snapshot()
	items, settings := publications(doc)
	writeJSON(w, http.StatusOK, query.Query(items, state, settings))
}

func (s *Server) handleBibtex(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, _ := s.snapshot()
	items, _ := publications(doc)
	for i := range items {
		p := &items[i]
		if p.ID != id {
			continue
		}
		if strings.TrimSpace(p.Bibtex) == "" {
			break
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+bibFilename(id)+`"`)
		_, err := w.Write([]byte(p.Bibtex))
		s.logWriteError(err)
		return
	}
	writeError(w, http.StatusNotFound, "no BibTeX for publication "+strconv.Quote(id))
}

// bibFilename is "<id>.bib" with characters unsafe in a header dropped.
func bibFilename(id string) string {
	clean := strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r == '/' || r < 0x20 {
			return -1
		}
		return r
	}, id)
	if clean == "" {
		clean = "citation"
	}
	return clean + ".bib"
}

type postsResponse struct {
	Posts      []posts.Entry         `json:"posts"`
	Categories []query.CategoryCount `json:"categories"`
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	_, entries := s.snapshot()
	f := query.PostFilter{Search: r.URL.Query().Get("q"), Category: r.URL.Query().Get("category")}
	writeJSON(w, http.StatusOK, postsResponse{
		Posts:      query.FilterPosts(entries, f),
		Categories: query.Categories(entries),
	})
}

// handleForward sends old blog-post.html?file=name.md links to the
// generated page of that post.
func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("file")
	if name == "" {
		s.staticHandler().ServeHTTP(w, r)
		return
	}
	if err := posts.ValidateName(name); err != nil {
		http.Error(w, "Invalid post name", http.StatusBadRequest)
		return
	}
	_, entries := s.snapshot()
	for _, e := range entries {
		if e.Ref() == name {
			http.Redirect(w, r, "/posts/"+url.PathEscape(e.PageName())+".html", http.StatusFound)
			return
		}
	}
	http.Error(w, "Failed to load post", http.StatusNotFound)
}

// staticHandler serves the output directory without caching and without
// directory listings.
func (s *Server) staticHandler() http.Handler {
	files := http.FileServer(http.Dir(s.cfg.Dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p := r.URL.Path; strings.HasSuffix(p, "/") && p != "/" {
			index := filepath.Join(s.cfg.Dir, filepath.FromSlash(path.Clean(p)), "index.html")
			if _, err := os.Stat(index); err != nil {
				http.NotFound(w, r)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		files.ServeHTTP(w, r)
	})
}

func (s *Server) logWriteError(err error) {
	if err != nil {
		s.logger.Debug("writing response", zap.Error(err))
	}
}
