package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/clientdocs"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			Writef(cmd.OutOrStdout(), "clientdocs %s\n%s", clientdocs.Version(), clientdocs.BuildInfo())
		},
	}
}
