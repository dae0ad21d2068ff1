// Package posts loads the blog: the posts index and individual Markdown
// posts with their frontmatter.
package posts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

var (
	// ErrInvalidName is returned for post names that are not a plain .md
	// file inside the posts directory.
	ErrInvalidName = errors.New("invalid post name")
	// ErrNotFound is returned when the post file does not exist.
	ErrNotFound = errors.New("post not found")
)

// Uncategorized is the category shown for posts without one.
const Uncategorized = "Uncategorized"

// UntitledPost is the last-resort post title.
const UntitledPost = "Untitled Post"

// Entry is one record of posts/index.json.
type Entry struct {
	Title    string   `json:"title"`
	Filename string   `json:"filename,omitempty"`
	Slug     string   `json:"slug,omitempty"`
	Date     string   `json:"date,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Category string   `json:"category,omitempty"`
	Summary  string   `json:"summary,omitempty"`
	Cover    string   `json:"cover,omitempty"`
}

// Ref is the Markdown file the entry points at: the filename, else the
// slug with ".md" appended when it has no extension.
func (e Entry) Ref() string {
	if e.Filename != "" {
		return e.Filename
	}
	if e.Slug != "" && path.Ext(e.Slug) == "" {
		return e.Slug + ".md"
	}
	return e.Slug
}

// PageName is the base name of the rendered page, e.g. "hello" for
// hello.md, which is written to posts/hello.html.
func (e Entry) PageName() string {
	return stripExt(path.Base(e.Ref()))
}

// DisplayCategory maps an empty category to Uncategorized.
func (e Entry) DisplayCategory() string {
	if e.Category == "" {
		return Uncategorized
	}
	return e.Category
}

func stripExt(name string) string {
	name = strings.TrimSuffix(name, ".md")
	return strings.TrimSuffix(name, ".html")
}

// LoadIndex reads the posts index. Both a bare array and {"posts": [...]}
// are accepted.
func LoadIndex(fsys fs.FS, name string) ([]Entry, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("posts index %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("reading posts index: %w", err)
	}
	return DecodeIndex(data)
}

// DecodeIndex parses the bytes of a posts index.
func DecodeIndex(data []byte) ([]Entry, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parsing posts index: %w", err)
		}
		return entries, nil
	}
	var wrapped struct {
		Posts []Entry `json:"posts"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing posts index: %w", err)
	}
	return wrapped.Posts, nil
}

// ValidateName accepts a relative, slash-separated .md path that stays
// inside the posts directory.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.Contains(name, `\`), strings.HasPrefix(name, "/"):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case !fs.ValidPath(name):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case path.Ext(name) != ".md":
		return fmt.Errorf("%w: %q is not a .md file", ErrInvalidName, name)
	}
	return nil
}
