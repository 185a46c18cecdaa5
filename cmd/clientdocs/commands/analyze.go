package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erraggy/clientdocs/analyzer"
)

// ErrClashesFound is returned by analyze --fail-on-clash when the document
// has at least one clash.
var ErrClashesFound = errors.New("clashes found")

type analyzeFlags struct {
	format         string
	failOnClash    bool
	maxSchemaDepth int
}

func newAnalyzeCmd(a *app) *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze [flags] <file|->",
		Short: "Report single-letter JSON keys that map to the same Go field name",
		Long: "Walk every response and component schema of an OpenAPI document and report\n" +
			"objects whose single-letter property keys fold to the same Go field name\n" +
			"(for example P and p). Finding no clashes is a success.\n\n" +
			"Examples:\n" +
			"  clientdocs analyze openapi.json\n" +
			"  clientdocs analyze --format json openapi.yaml\n" +
			"  cat openapi.json | clientdocs analyze --fail-on-clash -\n",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := analyzer.ParseFormat(flags.format)
			if err != nil {
				return err
			}

			specPath := args[0]
			doc, err := loadDocument(specPath, cmd.InOrStdin(), a.logger)
			if err != nil {
				return fmt.Errorf("loading document: %w", err)
			}

			report, err := analyzer.AnalyzeWithOptions(
				analyzer.WithParsed(doc),
				analyzer.WithLogger(a.logger),
				analyzer.WithMaxSchemaDepth(flags.maxSchemaDepth),
			)
			if err != nil {
				return err
			}

			if format == analyzer.FormatText || format == analyzer.FormatTable {
				outputSpecHeader(cmd.ErrOrStderr(), specPath, doc)
				Writef(cmd.ErrOrStderr(), "Objects scanned: %d\n\n", report.ObjectsScanned)
			}
			if err := report.Write(cmd.OutOrStdout(), format); err != nil {
				return err
			}

			if flags.failOnClash && report.HasClashes() {
				return fmt.Errorf("%w: %d", ErrClashesFound, report.ClashCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", string(analyzer.FormatText), "Output format: text, json, yaml or table")
	cmd.Flags().BoolVar(&flags.failOnClash, "fail-on-clash", false, "Exit with status 1 when any clash is found")
	cmd.Flags().IntVar(&flags.maxSchemaDepth, "max-depth", 0, "Deepest schema nesting to analyze (0 uses the default)")
	return cmd
}
