package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/folio/internal/nav"
	"github.com/ziadkadry99/folio/internal/posts"
	"github.com/ziadkadry99/folio/internal/query"
)

// splitList turns "a, b" into ["a", "b"].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// handleListPublications filters, sorts and groups the publications.
func (s *Server) handleListPublications(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sort, err := query.ParseSortMode(request.GetString("sort", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := s.loadInfo()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load portfolio data: %v", err)), nil
	}
	if doc.Publications == nil || len(doc.Publications.Items) == 0 {
		return mcp.NewToolResultText("The portfolio lists no publications."), nil
	}

	state := query.PubState{
		Filter: query.PubFilter{
			Search:       request.GetString("query", ""),
			Years:        splitList(request.GetString("year", "")),
			Types:        splitList(request.GetString("type", "")),
			FeaturedOnly: request.GetBool("featured", false),
		},
		Sort: sort,
	}
	res := query.Query(doc.Publications.Items, state, doc.Publications.Settings)
	if res.Matched == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No publications match. %d publications in total.", res.Total)), nil
	}

	var sb strings.Builder
	if err := query.WriteText(&sb, res); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetBibtex returns one publication's BibTeX entry.
func (s *Server) handleGetBibtex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	doc, err := s.loadInfo()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load portfolio data: %v", err)), nil
	}
	if doc.Publications != nil {
		for _, p := range doc.Publications.Items {
			if p.ID != id {
				continue
			}
			if strings.TrimSpace(p.Bibtex) == "" {
				return mcp.NewToolResultError(fmt.Sprintf("publication %q has no BibTeX entry", id)), nil
			}
			return mcp.NewToolResultText(p.Bibtex), nil
		}
	}
	return mcp.NewToolResultError(fmt.Sprintf("no publication with id %q", id)), nil
}

// handleListPosts lists the posts index, optionally filtered.
func (s *Server) handleListPosts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := s.loadPosts()
	if errors.Is(err, posts.ErrNotFound) {
		return mcp.NewToolResultText("The site has no blog."), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to load blog posts: %v", err)), nil
	}

	f := query.PostFilter{
		Search:   request.GetString("query", ""),
		Category: request.GetString("category", ""),
	}
	var sb strings.Builder
	if err := query.WritePostsText(&sb, query.FilterPosts(entries, f)); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetPostOutline renders a post and returns its numbered outline.
func (s *Server) handleGetPostOutline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := request.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: file"), nil
	}
	if err := posts.ValidateName(file); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entry := posts.Entry{Filename: file}
	if entries, err := s.loadPosts(); err == nil {
		for _, e := range entries {
			if e.Ref() == file {
				entry = e
				break
			}
		}
	}

	p, err := posts.Load(os.DirFS(s.cfg.Root), s.cfg.PostsDir, entry, s.conv)
	if errors.Is(err, posts.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("no post file %q", file)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to load post: %v", err)), nil
	}

	return mcp.NewToolResultText(formatOutline(p.Title, nav.Outline(p.Doc.Headings, true))), nil
}

// formatOutline prints the title and one indented line per heading.
func formatOutline(title string, entries []nav.Entry) string {
	var sb strings.Builder
	sb.WriteString(title + "\n")
	if len(entries) == 0 {
		sb.WriteString("(no headings)\n")
	}
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s%s %s\n", strings.Repeat("  ", e.Depth+1), e.Number, e.Text)
	}
	return sb.String()
}
