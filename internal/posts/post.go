package posts

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/ziadkadry99/folio/internal/frontmatter"
	"github.com/ziadkadry99/folio/internal/markdown"
)

// Converter renders a post body.
type Converter interface {
	Convert(src []byte) (markdown.Document, error)
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(src []byte) (markdown.Document, error)

func (f ConverterFunc) Convert(src []byte) (markdown.Document, error) { return f(src) }

// Post is a loaded and rendered blog post.
type Post struct {
	Entry       Entry                   `json:"entry"`
	Frontmatter frontmatter.Frontmatter `json:"-"`
	Title       string                  `json:"title"`
	Doc         markdown.Document       `json:"doc"`
	// Source is the raw file content, used as the render cache key.
	Source []byte `json:"-"`
}

// Meta is the line under the title: the date and the comma separated tags.
func (p *Post) Meta() string {
	var parts []string
	if p.Entry.Date != "" {
		parts = append(parts, p.Entry.Date)
	}
	if len(p.Entry.Tags) > 0 {
		parts = append(parts, strings.Join(p.Entry.Tags, ", "))
	}
	return strings.Join(parts, " • ")
}

// Read returns the raw content of the post file after checking its name.
func Read(fsys fs.FS, dir, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, path.Join(dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("reading post %s: %w", name, err)
	}
	return data, nil
}

// Load reads, parses and renders the post name under dir. entry carries
// the index record, if any; its values fill fields the frontmatter leaves
// empty.
func Load(fsys fs.FS, dir string, entry Entry, conv Converter) (*Post, error) {
	name := entry.Ref()
	data, err := Read(fsys, dir, name)
	if err != nil {
		return nil, err
	}
	return Parse(data, entry, conv)
}

// Parse builds a Post from raw file content.
func Parse(data []byte, entry Entry, conv Converter) (*Post, error) {
	fm, body := frontmatter.Parse(string(data))

	doc, err := conv.Convert([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", entry.Ref(), err)
	}

	merged := merge(entry, fm)
	return &Post{
		Entry:       merged,
		Frontmatter: fm,
		Title:       title(fm, entry),
		Doc:         doc,
		Source:      data,
	}, nil
}

// Resolve merges each index entry with its post's frontmatter, giving the
// values the rendered blog shows. A post that cannot be read keeps its
// index values.
func Resolve(fsys fs.FS, dir string, entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		data, err := Read(fsys, dir, e.Ref())
		if err != nil {
			out[i] = e
			continue
		}
		fm, _ := frontmatter.Parse(string(data))
		out[i] = merge(e, fm)
		out[i].Title = title(fm, e)
	}
	return out
}

// Resolved is the post's index entry as the blog lists it.
func (p *Post) Resolved() Entry {
	e := p.Entry
	e.Title = p.Title
	return e
}

func merge(e Entry, fm frontmatter.Frontmatter) Entry {
	pick := func(fmValue, indexValue string) string {
		if fmValue != "" {
			return fmValue
		}
		return indexValue
	}
	e.Title = pick(fm.Title(), e.Title)
	e.Date = pick(fm.Date(), e.Date)
	e.Category = pick(fm.Category(), e.Category)
	e.Summary = pick(fm.Summary(), e.Summary)
	e.Cover = pick(fm.Cover(), e.Cover)
	if len(fm.Tags) > 0 {
		e.Tags = fm.Tags
	}
	return e
}

func title(fm frontmatter.Frontmatter, e Entry) string {
	if t := fm.Title(); t != "" {
		return t
	}
	if e.Title != "" {
		return e.Title
	}
	if name := stripExt(path.Base(e.Ref())); name != "" && name != "." {
		return name
	}
	return UntitledPost
}
