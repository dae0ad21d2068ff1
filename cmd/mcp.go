package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/folio/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio that answers
questions about the portfolio: publications, BibTeX entries, blog posts
and post outlines. Data is re-read on every call.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkedConfig(); err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "folio MCP server started on stdio (data=%s)\n", cfg.DataFile)

		srv := mcpserver.NewServer(mcpserver.Config{
			Root:       ".",
			DataFile:   cfg.DataFile,
			PostsDir:   cfg.PostsDir,
			PostsIndex: cfg.PostsIndex,
		}, logger)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
