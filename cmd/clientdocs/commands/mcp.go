package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/clientdocs/internal/mcpserver"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve analyze, fix and generate as MCP tools over stdio",
		Long: "Start a Model Context Protocol server on stdin/stdout exposing the\n" +
			"analyze_clashes, fix_clashes and generate_examples tools. Defaults are\n" +
			"read from CLIENTDOCS_* environment variables.\n",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}
