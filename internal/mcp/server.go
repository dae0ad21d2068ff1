package mcp

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ziadkadry99/folio/internal/info"
	"github.com/ziadkadry99/folio/internal/logging"
	"github.com/ziadkadry99/folio/internal/markdown"
	"github.com/ziadkadry99/folio/internal/posts"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Config locates the portfolio. DataFile and Root are OS paths;
// PostsDir and PostsIndex are slash-separated and relative to Root.
type Config struct {
	Root       string
	DataFile   string
	PostsDir   string
	PostsIndex string
}

// Server wraps an MCP server that answers questions about the portfolio.
// Data is read on every call so edits show up without a restart.
type Server struct {
	cfg    Config
	conv   *markdown.Converter
	logger *zap.Logger
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server for the portfolio in cfg.
func NewServer(cfg Config, logger *zap.Logger) *Server {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	s := &Server{
		cfg:    cfg,
		conv:   markdown.New(),
		logger: logging.OrNop(logger),
	}

	s.mcp = server.NewMCPServer(
		"folio",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listPublicationsTool, s.handleListPublications)
	s.mcp.AddTool(getBibtexTool, s.handleGetBibtex)
	s.mcp.AddTool(listPostsTool, s.handleListPosts)
	s.mcp.AddTool(getPostOutlineTool, s.handleGetPostOutline)
}

func (s *Server) loadInfo() (*info.Info, error) {
	return info.Load(s.cfg.DataFile, info.Options{})
}

// loadPosts reads the posts index with each post's frontmatter applied.
func (s *Server) loadPosts() ([]posts.Entry, error) {
	fsys := os.DirFS(s.cfg.Root)
	entries, err := posts.LoadIndex(fsys, s.cfg.PostsIndex)
	if err != nil {
		return nil, err
	}
	return posts.Resolve(fsys, s.cfg.PostsDir, entries), nil
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	s.logger.Debug("serving MCP on stdio", zap.String("data", s.cfg.DataFile))
	return server.ServeStdio(s.mcp)
}
