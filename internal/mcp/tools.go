package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listPublicationsTool defines the list_publications MCP tool.
var listPublicationsTool = mcp.NewTool("list_publications",
	mcp.WithDescription("List publications grouped by year, newest first. All filters are optional and combine."),
	mcp.WithString("query",
		mcp.Description("Case-insensitive text matched against title, authors, venue and keywords"),
	),
	mcp.WithString("year",
		mcp.Description("Comma separated years to keep, e.g. \"2024,2023\" or \"Unknown\""),
	),
	mcp.WithString("type",
		mcp.Description("Comma separated publication types to keep"),
	),
	mcp.WithBoolean("featured",
		mcp.Description("Only featured publications"),
	),
	mcp.WithString("sort",
		mcp.Description("Order inside each year"),
		mcp.Enum("year_desc", "year_asc", "title_az"),
	),
)

// getBibtexTool defines the get_bibtex MCP tool.
var getBibtexTool = mcp.NewTool("get_bibtex",
	mcp.WithDescription("Get the BibTeX entry of a publication."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Publication id"),
	),
)

// listPostsTool defines the list_posts MCP tool.
var listPostsTool = mcp.NewTool("list_posts",
	mcp.WithDescription("List blog posts in index order."),
	mcp.WithString("query",
		mcp.Description("Case-insensitive text matched against title, tags and summary"),
	),
	mcp.WithString("category",
		mcp.Description("Exact category; \"Uncategorized\" selects posts without one"),
	),
)

// getPostOutlineTool defines the get_post_outline MCP tool.
var getPostOutlineTool = mcp.NewTool("get_post_outline",
	mcp.WithDescription("Get the numbered heading outline of a blog post."),
	mcp.WithString("file",
		mcp.Required(),
		mcp.Description("Markdown file of the post, as listed by list_posts"),
	),
)
