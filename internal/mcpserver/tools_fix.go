package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/clientdocs/fixer"
)

type fixInput struct {
	File           string `json:"file"                      jsonschema:"Path to the generated Go client file to fix"`
	RenameTable    string `json:"rename_table,omitempty"    jsonschema:"Path to a YAML or JSON mapping of JSON key to Go identifier (default: built-in quote/trade table)"`
	NoFallbacks    bool   `json:"no_fallbacks,omitempty"    jsonschema:"Disable the exact fallback patterns for quote fields"`
	NoFormat       bool   `json:"no_format,omitempty"       jsonschema:"Skip the Go formatter"`
	DryRun         bool   `json:"dry_run,omitempty"         jsonschema:"Preview fixes without writing the file"`
	IncludeContent bool   `json:"include_content,omitempty" jsonschema:"Include the rewritten source in output"`
	Offset         int    `json:"offset,omitempty"          jsonschema:"Skip the first N fixes (for pagination)"`
	Limit          int    `json:"limit,omitempty"           jsonschema:"Maximum number of fixes to return (default 100)"`
}

type fixApplied struct {
	Type        string `json:"type"`
	Line        int    `json:"line"`
	Description string `json:"description"`
}

type fixOutput struct {
	FixCount   int          `json:"fix_count"`
	Renamed    int          `json:"renamed"`
	Fallbacks  int          `json:"fallbacks"`
	References int          `json:"references"`
	Formatted  bool         `json:"formatted"`
	Returned   int          `json:"returned"`
	Fixes      []fixApplied `json:"fixes,omitempty"`
	WrittenTo  string       `json:"written_to,omitempty"`
	Content    string       `json:"content,omitempty"`
}

func handleFixClashes(_ context.Context, _ *mcp.CallToolRequest, input fixInput) (*mcp.CallToolResult, fixOutput, error) {
	opts, err := buildFixerOptions(input)
	if err != nil {
		return errResult(err), fixOutput{}, nil
	}

	result, err := fixer.FixWithOptions(opts...)
	if err != nil {
		return errResult(err), fixOutput{}, nil
	}

	output := fixOutput{
		FixCount:   result.FixCount,
		Renamed:    result.CountByType(fixer.FixTypeRenamedField),
		Fallbacks:  result.CountByType(fixer.FixTypeFallbackField),
		References: result.CountByType(fixer.FixTypeRewrittenReference),
		Formatted:  result.Formatted,
	}

	fixes := makeSlice[fixApplied](len(result.Fixes))
	for _, f := range result.Fixes {
		fixes = append(fixes, fixApplied{
			Type:        string(f.Type),
			Line:        f.Line,
			Description: f.Description(),
		})
	}
	output.Fixes = paginate(fixes, input.Offset, input.Limit)
	output.Returned = len(output.Fixes)

	if !input.DryRun && result.HasFixes() {
		if err := result.WriteFile(); err != nil {
			return errResult(err), fixOutput{}, nil
		}
		output.WrittenTo = input.File
	}
	if input.IncludeContent {
		output.Content = string(result.Content)
	}

	return nil, output, nil
}

// buildFixerOptions translates the MCP input into fixer options.
func buildFixerOptions(input fixInput) ([]fixer.Option, error) {
	opts := []fixer.Option{
		fixer.WithFilePath(input.File),
		fixer.WithFormat(!input.NoFormat),
		fixer.WithDryRun(input.DryRun),
	}
	if input.RenameTable != "" {
		table, err := fixer.LoadRenameTable(input.RenameTable)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fixer.WithRenameTable(table))
	}
	if input.NoFallbacks {
		opts = append(opts, fixer.WithFallbacks())
	}
	return opts, nil
}
