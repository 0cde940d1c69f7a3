package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftlab/genograph/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-serve",
		Short: "Run the MCP server over stdio",
		Long: `Run the genograph MCP (Model Context Protocol) server over stdio.

Exposes the catalog, resolver, codec, and graph operations as MCP tools
for agent clients. The server reads from stdin and writes to stdout;
register it with your MCP client configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")

			server, err := mcp.NewServer(&mcp.Config{
				Name:    "genograph",
				Version: version,
				Root:    root,
			})
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			return server.Run(context.Background())
		},
	}
}
