package mcpserver

import (
	"bytes"
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/clientdocs/analyzer"
)

type analyzeInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OpenAPI document to analyze"`
	Format string    `json:"format,omitempty" jsonschema:"Also render the report as text\\, yaml or table in the report field (default: structured output only)"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N clashes (for pagination)"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of clashes to return (default 100)"`
}

type analyzeOutput struct {
	ClashCount     int              `json:"clash_count"`
	ObjectsScanned int              `json:"objects_scanned"`
	Returned       int              `json:"returned"`
	Clashes        []analyzer.Clash `json:"clashes,omitempty"`
	Warnings       []string         `json:"warnings,omitempty"`
	Report         string           `json:"report,omitempty"`
}

func handleAnalyzeClashes(_ context.Context, _ *mcp.CallToolRequest, input analyzeInput) (*mcp.CallToolResult, analyzeOutput, error) {
	var format analyzer.Format
	if input.Format != "" {
		f, err := analyzer.ParseFormat(input.Format)
		if err != nil {
			return errResult(err), analyzeOutput{}, nil
		}
		format = f
	}

	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), analyzeOutput{}, nil
	}

	a := analyzer.New()
	a.MaxSchemaDepth = cfg.MaxSchemaDepth
	report, err := a.Analyze(doc)
	if err != nil {
		return errResult(err), analyzeOutput{}, nil
	}

	output := analyzeOutput{
		ClashCount:     report.ClashCount,
		ObjectsScanned: report.ObjectsScanned,
		Clashes:        paginate(report.Clashes, input.Offset, input.Limit),
		Warnings:       report.Warnings,
	}
	output.Returned = len(output.Clashes)

	if format != "" && format != analyzer.FormatJSON {
		var buf bytes.Buffer
		if err := report.Write(&buf, format); err != nil {
			return errResult(err), analyzeOutput{}, nil
		}
		output.Report = buf.String()
	}

	return nil, output, nil
}
