// Package commands provides CLI command handlers for clientdocs.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/erraggy/clientdocs"
	"github.com/erraggy/clientdocs/parser"
)

type rootOptions struct {
	Verbose bool
	Quiet   bool
}

// app carries state shared by all subcommands.
type app struct {
	opts   rootOptions
	logger parser.Logger
}

// NewRootCmd builds the clientdocs command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: parser.NopLogger{}}

	root := &cobra.Command{
		Use:   "clientdocs",
		Short: "Keep a generated Go API client and its examples in sync with an OpenAPI document",
		Long: "clientdocs finds JSON keys that collapse to the same Go field name, renames\n" +
			"the clashing fields in the generated client, and writes one runnable example\n" +
			"program per API operation.\n\n" +
			"Typical flow:\n" +
			"  clientdocs analyze openapi.json          # review clashes, write a rename table\n" +
			"  clientdocs fix --table renames.yaml rest/gen/client.gen.go\n" +
			"  clientdocs generate openapi.json\n",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.logger = newLogger(cmd.ErrOrStderr(), a.opts.Verbose, a.opts.Quiet)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&a.opts.Verbose, "verbose", "v", false, "Log debug details to stderr")
	root.PersistentFlags().BoolVarP(&a.opts.Quiet, "quiet", "q", false, "Only log warnings and errors")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.SetVersionTemplate("{{.Version}}\n")
	root.Version = clientdocs.Version()

	root.AddCommand(
		newAnalyzeCmd(a),
		newGenerateCmd(a),
		newFixCmd(a),
		newMCPCmd(),
		newVersionCmd(),
	)
	return root
}

// newLogger returns a slog-backed logger writing to w: human-readable text
// on a terminal, JSON lines otherwise.
func newLogger(w io.Writer, verbose, quiet bool) parser.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return parser.NewSlogAdapter(slog.New(handler))
}
