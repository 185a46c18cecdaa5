package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/clientdocs/generator"
)

type generateInput struct {
	Spec         specInput `json:"spec"                    jsonschema:"The OpenAPI document to generate examples from"`
	OutputDir    string    `json:"output_dir,omitempty"    jsonschema:"Root directory for the examples/go and examples/go-tokenized trees (required unless dry_run)"`
	ClientImport string    `json:"client_import,omitempty" jsonschema:"Import path of the generated client package"`
	Format       bool      `json:"format,omitempty"        jsonschema:"Run the Go formatter over each program"`
	DryRun       bool      `json:"dry_run,omitempty"       jsonschema:"List the files that would be written without writing them"`
}

type generatedFileInfo struct {
	Name        string `json:"name"`
	OperationID string `json:"operation_id"`
	Mode        string `json:"mode"`
	Size        int    `json:"size"`
}

type generateOutput struct {
	OperationCount int                           `json:"operation_count"`
	FileCount      int                           `json:"file_count"`
	Files          []generatedFileInfo           `json:"files,omitempty"`
	Skipped        []string                      `json:"skipped,omitempty"`
	Collisions     []generator.FilenameCollision `json:"collisions,omitempty"`
	WrittenTo      string                        `json:"written_to,omitempty"`
}

func handleGenerateExamples(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	if !input.DryRun && input.OutputDir == "" {
		return errResult(errors.New("output_dir is required unless dry_run is set")), generateOutput{}, nil
	}

	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	opts := []generator.Option{generator.WithParsed(doc), generator.WithFormat(input.Format)}
	if input.ClientImport != "" {
		opts = append(opts, generator.WithClientImport(input.ClientImport))
	}
	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		OperationCount: len(result.Operations),
		FileCount:      len(result.Files),
		Files:          makeSlice[generatedFileInfo](len(result.Files)),
		Skipped:        result.Skipped,
		Collisions:     result.Collisions,
	}
	for _, f := range result.Files {
		output.Files = append(output.Files, generatedFileInfo{
			Name:        f.Name,
			OperationID: f.OperationID,
			Mode:        f.Mode.String(),
			Size:        len(f.Content),
		})
	}

	if !input.DryRun {
		if err := result.WriteFiles(input.OutputDir); err != nil {
			return errResult(err), generateOutput{}, nil
		}
		output.WrittenTo = input.OutputDir
	}

	return nil, output, nil
}
