package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/ziadkadry99/folio/internal/nav"
)

// externalLinks opens every link in a new tab.
type externalLinks struct{}

func (externalLinks) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindLink {
			n.SetAttributeString("target", []byte("_blank"))
			n.SetAttributeString("rel", []byte("noopener"))
		}
		return ast.WalkContinue, nil
	})
}

// listRenderer wraps ordered and unordered lists alike in <ul>.
type listRenderer struct{}

func (listRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindList, renderList)
}

func renderList(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<ul>\n")
	} else {
		_, _ = w.WriteString("</ul>\n")
	}
	return ast.WalkContinue, nil
}

// idAdapter lets goldmark draw heading IDs from a nav.IDSet so anchors
// match what the navigation panel links to.
type idAdapter struct {
	set nav.IDSet
}

func (a *idAdapter) Generate(value []byte, _ ast.NodeKind) []byte {
	return []byte(a.set.Next(string(value)))
}

func (a *idAdapter) Put(value []byte) {
	a.set.Reserve(string(value))
}
