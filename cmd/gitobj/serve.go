package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	gitobjmcp "github.com/gorewood/gitobj/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run gitobj as a Model Context Protocol (MCP) server over stdio.

This exposes read-only object lookups as MCP tools for any MCP-capable
agent environment. Logs go to stderr; stdout carries the protocol.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "gitobj": {
        "command": "gitobj",
        "args": ["serve", "-C", "/path/to/repo"]
      }
    }
  }

Available tools: object, tree, contents, commit, tag, log, grep`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			a.logger.Info("serving MCP over stdio", "repo", a.repoDir)
			server := gitobjmcp.NewServer(buildVersion(), st)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
