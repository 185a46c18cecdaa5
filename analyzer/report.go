package analyzer

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bndr/gotabulate"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/clientdocs/oaserrors"
)

// Format selects how a Report is rendered.
type Format string

const (
	// FormatText is the human-readable report.
	FormatText Format = "text"
	// FormatJSON renders the Report struct as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders the Report struct as YAML.
	FormatYAML Format = "yaml"
	// FormatTable renders one grid row per clashing key.
	FormatTable Format = "table"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTable}

// ParseFormat converts a user-supplied name into a Format.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", &oaserrors.ConfigError{
		Option:  "format",
		Value:   s,
		Message: fmt.Sprintf("must be one of %v", Formats),
	}
}

// Report text.
const (
	noClashesLine   = "No clashes found: no single-letter JSON keys share a Go field name."
	reviewLine      = "Review these carefully, especially where the same letter means different things."
	renameTableLine = "Build a rename table from this output before running the fix command."
)

// Write renders the report in the given format.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatText, "":
		return r.WriteText(w)
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("analyzer: marshaling report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("analyzer: marshaling report: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatTable:
		return r.WriteTable(w)
	default:
		_, err := ParseFormat(string(format))
		return err
	}
}

// WriteText writes the human-readable report. A report without clashes
// prints a single success line.
func (r *Report) WriteText(w io.Writer) error {
	if !r.HasClashes() {
		_, err := fmt.Fprintln(w, noClashesLine)
		return err
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Found %d clashes:\n\n", r.ClashCount)
	for i, clash := range r.Clashes {
		fmt.Fprintf(&b, "#%d  %s\n", i+1, clash.Context)
		fmt.Fprintf(&b, "   Go field \"%s\" is used by multiple JSON keys:\n", clash.FoldedName)
		for _, e := range clash.Entries {
			fmt.Fprintf(&b, "     • json:\"%s\"  →  \"%s\"\n", e.Key, e.Description)
		}
		b.WriteString("\n")
	}
	b.WriteString(reviewLine + "\n")
	b.WriteString(renameTableLine + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteTable writes a grid with one row per clashing key.
func (r *Report) WriteTable(w io.Writer) error {
	if !r.HasClashes() {
		_, err := fmt.Fprintln(w, noClashesLine)
		return err
	}

	var rows [][]any
	for i, clash := range r.Clashes {
		for _, e := range clash.Entries {
			rows = append(rows, []any{strconv.Itoa(i + 1), clash.Context, clash.FoldedName, e.Key, e.Description})
		}
	}
	t := gotabulate.Create(rows)
	t.SetHeaders([]string{"#", "Context", "Go field", "JSON key", "Description"})
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(60)
	_, err := io.WriteString(w, t.Render("grid"))
	return err
}
