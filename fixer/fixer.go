package fixer

import (
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/clientdocs/internal/fileutil"
	"github.com/erraggy/clientdocs/oaserrors"
	"github.com/erraggy/clientdocs/parser"
)

// FixType identifies the type of fix applied
type FixType string

const (
	// FixTypeRenamedField indicates a declaration renamed through the rename table
	FixTypeRenamedField FixType = "renamed-field"
	// FixTypeFallbackField indicates a declaration renamed by a fallback pattern
	FixTypeFallbackField FixType = "fallback-field"
	// FixTypeRewrittenReference indicates a member access rewritten to the new name
	FixTypeRewrittenReference FixType = "rewritten-reference"
)

// Fix represents a single rewrite applied to the source
type Fix struct {
	// Type identifies the category of fix
	Type FixType
	// Line is the 1-based line of the rewrite in the text the pass ran over
	Line int
	// Key is the JSON key of the renamed field, empty for references
	Key string
	// Before is the old identifier
	Before string
	// After is the new identifier
	After string
}

// Description returns a one-line, human-readable summary of the fix.
func (f Fix) Description() string {
	switch f.Type {
	case FixTypeRewrittenReference:
		return fmt.Sprintf("line %d: .%s → .%s", f.Line, f.Before, f.After)
	default:
		return fmt.Sprintf("line %d: %s → %s (json:%q)", f.Line, f.Before, f.After, f.Key)
	}
}

// FixResult contains the results of a fix operation
type FixResult struct {
	// SourcePath is the file the source was read from, if any
	SourcePath string
	// Content is the rewritten source
	Content []byte
	// Fixes lists every rewrite in the order applied
	Fixes []Fix
	// FixCount is the total number of fixes applied
	FixCount int
	// Formatted is true when the Go formatter ran successfully
	Formatted bool
	// DryRun disables WriteFile
	DryRun bool
}

// HasFixes returns true if any fixes were applied
func (r *FixResult) HasFixes() bool {
	return r.FixCount > 0
}

// CountByType returns the number of fixes of type t.
func (r *FixResult) CountByType(t FixType) int {
	n := 0
	for _, f := range r.Fixes {
		if f.Type == t {
			n++
		}
	}
	return n
}

// WriteFile replaces SourcePath with the rewritten content. It does
// nothing for dry runs.
func (r *FixResult) WriteFile() error {
	if r.DryRun {
		return nil
	}
	if r.SourcePath == "" {
		return errors.New("fixer: result has no source path to write to")
	}
	if err := fileutil.WriteFile(r.SourcePath, r.Content, fileutil.ReadableByAll); err != nil {
		return &oaserrors.RewriteError{Path: r.SourcePath, Op: "write", Cause: err}
	}
	return nil
}

// Fixer rewrites clashing field declarations in generated Go source
type Fixer struct {
	// Table maps JSON keys to field names. Nil means DefaultRenameTable.
	Table RenameTable
	// Fallbacks are exact declarations fixed after the table pass
	Fallbacks []Fallback
	// Format runs the result through the Go formatter
	Format bool
	// DryRun marks results so that WriteFile leaves the source untouched
	DryRun bool
	// Logger receives one debug message per rewrite; nil disables logging
	Logger parser.Logger
}

// New creates a new Fixer with the default table and fallbacks
func New() *Fixer {
	return &Fixer{
		Table:     DefaultRenameTable(),
		Fallbacks: DefaultFallbacks(),
		Format:    true,
	}
}

// Fix reads the Go file at path and rewrites it in memory.
func (f *Fixer) Fix(path string) (*FixResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &oaserrors.RewriteError{Path: path, Op: "read", Cause: err}
	}
	return f.FixSource(path, src)
}

// FixSource rewrites src. The name is used for the result's SourcePath and
// for formatter messages; it may be empty.
func (f *Fixer) FixSource(name string, src []byte) (*FixResult, error) {
	table := f.Table
	if table == nil {
		table = DefaultRenameTable()
	}
	if err := validateWithTable(table, f.Fallbacks); err != nil {
		return nil, err
	}

	logger := parser.LoggerOrNop(f.Logger)
	if name != "" {
		logger = logger.With("file", name)
	}
	r := &rewriter{logger: logger}
	content := string(src)
	content = r.renameFields(content, table)
	content = r.applyFallbacks(content, f.Fallbacks)
	content = r.rewriteReferences(content, referenceTargets(table, r.matched))

	result := &FixResult{
		SourcePath: name,
		Content:    []byte(content),
		Fixes:      r.fixes,
		FixCount:   len(r.fixes),
		DryRun:     f.DryRun,
	}
	if f.Format {
		formatted, err := formatSource(name, result.Content)
		if err != nil {
			logger.Warn("formatting skipped; keeping unformatted source", "error", err)
		} else {
			result.Content = formatted
			result.Formatted = true
		}
	}

	logger.Info("fix complete",
		"renamed", result.CountByType(FixTypeRenamedField),
		"fallbacks", result.CountByType(FixTypeFallbackField),
		"references", result.CountByType(FixTypeRewrittenReference),
		"formatted", result.Formatted,
	)
	return result, nil
}
