package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/erraggy/clientdocs"
	"github.com/erraggy/clientdocs/parser"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// FormatSpecPath returns a display-friendly path for the document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// loadDocument reads the document at specPath, or from stdin when specPath
// is StdinFilePath.
func loadDocument(specPath string, stdin io.Reader, logger parser.Logger) (*parser.Document, error) {
	opts := []parser.Option{parser.WithLogger(logger)}
	if specPath == StdinFilePath {
		opts = append(opts, parser.WithReader(stdin), parser.WithSourceName(FormatSpecPath(specPath)))
	} else {
		opts = append(opts, parser.WithFilePath(specPath))
	}
	return parser.ParseWithOptions(opts...)
}

// outputSpecHeader writes the common document header.
func outputSpecHeader(w io.Writer, specPath string, doc *parser.Document) {
	Writef(w, "clientdocs version: %s\n", clientdocs.Version())
	Writef(w, "Document: %s\n", FormatSpecPath(specPath))
	Writef(w, "OpenAPI Version: %s\n", doc.OpenAPI)
	for _, warning := range doc.Warnings {
		Writef(w, "Warning: %s\n", warning)
	}
}
