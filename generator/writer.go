package generator

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/bndr/gotabulate"

	"github.com/erraggy/clientdocs/internal/fileutil"
)

// WriteFiles writes every generated program below root, creating
// directories as needed. Existing files are replaced whole.
func (r *GenerateResult) WriteFiles(root string) error {
	for _, file := range r.Files {
		rel := filepath.FromSlash(file.Name)
		if !filepath.IsLocal(rel) {
			return fmt.Errorf("generator: invalid file name %q: must stay inside the output root", file.Name)
		}
		if err := file.WriteFile(filepath.Join(root, rel)); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes a single generated program to path.
func (f *GeneratedFile) WriteFile(path string) error {
	if err := fileutil.WriteFile(path, f.Content, fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	return nil
}

// SummaryTable renders one grid row per generated operation.
func (r *GenerateResult) SummaryTable() string {
	if len(r.Operations) == 0 {
		return "No operations with an operationId.\n"
	}
	rows := make([][]any, 0, len(r.Operations))
	for _, op := range r.Operations {
		rows = append(rows, []any{
			op.OperationID,
			op.Method,
			op.Path,
			op.Filename,
			strconv.FormatBool(op.Paginated),
			strconv.Itoa(op.PathParams),
			strconv.Itoa(op.QueryParams),
		})
	}
	t := gotabulate.Create(rows)
	t.SetHeaders([]string{"Operation", "Method", "Path", "File", "Paginated", "Path params", "Query params"})
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(60)
	return t.Render("grid")
}
