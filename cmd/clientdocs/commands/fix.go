package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erraggy/clientdocs/fixer"
)

type fixFlags struct {
	table       string
	noFallbacks bool
	noFormat    bool
	dryRun      bool
}

func newFixCmd(a *app) *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [flags] <file.go>",
		Short: "Rename clashing single-letter fields in a generated Go client",
		Long: "Rename struct fields whose JSON keys clash (P/p, S/s, ...) using a rename\n" +
			"table, then rewrite member accesses of the old names. Without --table the\n" +
			"built-in quote/trade table is used. The file is rewritten in place.\n\n" +
			"A rename table is a YAML or JSON mapping of JSON key to Go identifier:\n" +
			"  P: AskPrice\n" +
			"  p: BidPrice\n\n" +
			"Examples:\n" +
			"  clientdocs fix rest/gen/client.gen.go\n" +
			"  clientdocs fix --table renames.yaml --dry-run rest/gen/client.gen.go\n",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []fixer.Option{
				fixer.WithFilePath(args[0]),
				fixer.WithFormat(!flags.noFormat),
				fixer.WithDryRun(flags.dryRun),
				fixer.WithLogger(a.logger),
			}
			if flags.table != "" {
				table, err := fixer.LoadRenameTable(flags.table)
				if err != nil {
					return err
				}
				opts = append(opts, fixer.WithRenameTable(table))
			}
			if flags.noFallbacks {
				opts = append(opts, fixer.WithFallbacks())
			}

			result, err := fixer.FixWithOptions(opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range result.Fixes {
				Writef(out, "  %s\n", f.Description())
			}
			Writef(out, "Renamed %d fields (%d by fallback), rewrote %d references\n",
				result.CountByType(fixer.FixTypeRenamedField)+result.CountByType(fixer.FixTypeFallbackField),
				result.CountByType(fixer.FixTypeFallbackField),
				result.CountByType(fixer.FixTypeRewrittenReference))

			switch {
			case flags.dryRun:
				Writef(cmd.ErrOrStderr(), "Dry run: %s not modified\n", args[0])
			case !result.HasFixes():
				Writef(cmd.ErrOrStderr(), "Nothing to fix in %s\n", args[0])
			default:
				if err := result.WriteFile(); err != nil {
					return fmt.Errorf("saving fixes: %w", err)
				}
				Writef(cmd.ErrOrStderr(), "Wrote %s\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.table, "table", "t", "", "Rename table file (YAML or JSON)")
	cmd.Flags().BoolVar(&flags.noFallbacks, "no-fallbacks", false, "Disable the exact fallback patterns for quote fields")
	cmd.Flags().BoolVar(&flags.noFormat, "no-format", false, "Skip the Go formatter")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print fixes without modifying the file")
	return cmd
}
