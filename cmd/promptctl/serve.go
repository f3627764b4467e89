package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	promptmcp "github.com/debendraoli/promptctl/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run promptctl as a Model Context Protocol (MCP) server over stdio.

Agents can pull guidelines on demand instead of reading a static file.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "promptctl": {
        "command": "promptctl",
        "args": ["serve"]
      }
    }
  }

Available tools: list_catalog, scan_project, show_skillset, generate_prompt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := projectRoot(path)
			if err != nil {
				return fail(newPrinter(cmd), err)
			}
			server := promptmcp.NewServer(buildVersion(), &promptmcp.Env{
				Root:   root,
				Logger: loggerFrom(cmd),
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Default project for tool calls (default: current directory)")
	return cmd
}
