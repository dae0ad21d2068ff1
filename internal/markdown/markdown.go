// Package markdown converts the blog's Markdown subset to HTML.
//
// Only ATX headings, fenced code, lists, paragraphs, code spans,
// emphasis and links are recognised. Anything else, raw HTML included,
// is treated as paragraph text.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/ziadkadry99/folio/internal/nav"
)

// Document is a converted post body.
type Document struct {
	HTML     string        `json:"html"`
	Headings []nav.Heading `json:"headings"`
}

// Option configures a Converter.
type Option func(*Converter)

// WithHighlighting renders fenced code through chroma using CSS classes.
// The matching stylesheet comes from HighlightCSS.
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		c.style = style
	}
}

// Converter turns Markdown into sanitised HTML. It is safe for concurrent use.
type Converter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	style  string
}

// New builds a Converter with the restricted parser.
func New(opts ...Option) *Converter {
	c := &Converter{}
	for _, o := range opts {
		o(c)
	}

	gmOpts := []goldmark.Option{
		goldmark.WithParser(newParser()),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			renderer.WithNodeRenderers(util.Prioritized(listRenderer{}, 100)),
		),
	}
	if c.style != "" {
		gmOpts = append(gmOpts, goldmark.WithExtensions(
			highlighting.NewHighlighting(
				highlighting.WithStyle(c.style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		))
	}
	c.md = goldmark.New(gmOpts...)
	c.policy = newPolicy()
	return c
}

// Style is the highlighting style, empty when highlighting is off.
func (c *Converter) Style() string { return c.style }

func newParser() parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewListParser(), 300),
			util.Prioritized(parser.NewListItemParser(), 400),
			util.Prioritized(parser.NewATXHeadingParser(parser.WithAutoHeadingID()), 600),
			util.Prioritized(parser.NewFencedCodeBlockParser(), 700),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewLinkParser(), 200),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
		parser.WithParagraphTransformers(
			util.Prioritized(parser.LinkReferenceParagraphTransformer, 100),
		),
		parser.WithASTTransformers(
			util.Prioritized(externalLinks{}, 100),
		),
	)
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowAttrs("rel").Matching(bluemonday.SpaceSeparatedTokens).OnElements("a")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("pre", "code", "span")
	return p
}

// Convert parses src, collects its headings and renders sanitised HTML.
func (c *Converter) Convert(src []byte) (Document, error) {
	ids := &idAdapter{}
	pc := parser.NewContext(parser.WithIDs(ids))
	root := c.md.Parser().Parse(text.NewReader(src), parser.WithContext(pc))

	headings := collectHeadings(root, src)

	var buf bytes.Buffer
	if err := c.md.Renderer().Render(&buf, src, root); err != nil {
		return Document{}, fmt.Errorf("rendering markdown: %w", err)
	}
	return Document{
		HTML:     c.policy.Sanitize(buf.String()),
		Headings: headings,
	}, nil
}

var defaultConverter = New()

// Convert renders src with the default converter.
func Convert(src []byte) (Document, error) {
	return defaultConverter.Convert(src)
}

func collectHeadings(root ast.Node, src []byte) []nav.Heading {
	var out []nav.Heading
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		heading := nav.Heading{Level: h.Level, Text: plainText(h, src)}
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				heading.ID = string(b)
			}
		}
		out = append(out, heading)
		return ast.WalkSkipChildren, nil
	})
	return out
}

// plainText concatenates the text content of n's inline descendants.
func plainText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return string(bytes.TrimSpace(buf.Bytes()))
}
