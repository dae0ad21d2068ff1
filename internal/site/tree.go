package site

import (
	"fmt"
	"html"
	"strings"

	"github.com/ziadkadry99/folio/internal/nav"
	"github.com/ziadkadry99/folio/internal/posts"
	"github.com/ziadkadry99/folio/internal/query"
)

// NodeKind tells the levels of the blog panel tree apart.
type NodeKind string

const (
	NodeRoot     NodeKind = "root"
	NodeCategory NodeKind = "category"
	NodePost     NodeKind = "post"
	NodeHeading  NodeKind = "heading"
)

// PanelTree is the content of the blog's slide-out panel: categories hold
// posts, and posts hold their numbered heading outline.
type PanelTree struct {
	Kind     NodeKind
	Title    string
	Path     string // Page of a post, anchor of a heading, category name otherwise.
	Number   string // Outline number of a heading.
	Count    int    // Posts in a category.
	Children []*PanelTree
}

// BuildPanelTree groups entries by displayed category. Categories are sorted
// by name and posts keep index order. loaded maps a post's Ref to its
// rendered form; posts missing from it have no headings.
func BuildPanelTree(entries []posts.Entry, loaded map[string]*posts.Post) *PanelTree {
	root := &PanelTree{Kind: NodeRoot, Title: "Posts"}

	byName := make(map[string]*PanelTree)
	for _, c := range query.Categories(entries) {
		node := &PanelTree{Kind: NodeCategory, Title: c.Name, Path: c.Name, Count: c.Count}
		byName[c.Name] = node
		root.Children = append(root.Children, node)
	}

	for _, e := range entries {
		page := postPagePath(e)
		postNode := &PanelTree{Kind: NodePost, Title: e.Title, Path: page}
		if p, ok := loaded[e.Ref()]; ok {
			postNode.Title = p.Title
			for _, h := range nav.Outline(p.Doc.Headings, true) {
				postNode.Children = append(postNode.Children, &PanelTree{
					Kind:   NodeHeading,
					Title:  h.Text,
					Path:   page + "#" + h.ID,
					Number: h.Number,
				})
			}
		}
		if postNode.Title == "" {
			postNode.Title = e.PageName()
		}
		cat := byName[e.DisplayCategory()]
		cat.Children = append(cat.Children, postNode)
	}
	return root
}

// Posts returns the post nodes in index order across categories.
func (t *PanelTree) Posts() []*PanelTree {
	var out []*PanelTree
	for _, c := range t.Children {
		out = append(out, c.Children...)
	}
	return out
}

// ToHTML renders the three panes the client script switches between:
// every post, the category list, and one heading list per post.
// activePath is the page being rendered; basePath leads back to the root.
func (t *PanelTree) ToHTML(activePath, basePath string) string {
	var b strings.Builder

	b.WriteString(`<div class="panel-pane" data-pane="posts">` + "\n<ul>\n")
	for _, c := range t.Children {
		for _, p := range c.Children {
			fmt.Fprintf(&b, `<li class="panel-post%s" data-post="%s" data-category="%s"><a href="%s%s">%s</a></li>`+"\n",
				activeClass(p.Path == activePath), attr(p.Path), attr(c.Title), basePath, attr(p.Path), html.EscapeString(p.Title))
		}
	}
	b.WriteString("</ul>\n</div>\n")

	b.WriteString(`<div class="panel-pane" data-pane="categories" hidden>` + "\n<ul>\n")
	for _, c := range t.Children {
		fmt.Fprintf(&b, `<li class="panel-category" data-category="%s"><button type="button">%s <span class="count">%d</span></button></li>`+"\n",
			attr(c.Title), html.EscapeString(c.Title), c.Count)
	}
	b.WriteString("</ul>\n</div>\n")

	b.WriteString(`<div class="panel-pane" data-pane="headers" hidden>` + "\n")
	for _, p := range t.Posts() {
		if len(p.Children) == 0 {
			continue
		}
		fmt.Fprintf(&b, `<ol class="panel-headers" data-post="%s" hidden>`+"\n", attr(p.Path))
		for _, h := range p.Children {
			fmt.Fprintf(&b, `<li><a href="%s%s"><span class="num">%s</span> %s</a></li>`+"\n",
				basePath, attr(h.Path), html.EscapeString(h.Number), html.EscapeString(h.Title))
		}
		b.WriteString("</ol>\n")
	}
	b.WriteString("</div>\n")

	return b.String()
}

func activeClass(active bool) string {
	if active {
		return " active"
	}
	return ""
}

func attr(s string) string { return html.EscapeString(s) }

// postPagePath is where the post for e is written, relative to the root.
func postPagePath(e posts.Entry) string {
	return "posts/" + e.PageName() + ".html"
}
