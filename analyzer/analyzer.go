package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/erraggy/clientdocs/internal/options"
	"github.com/erraggy/clientdocs/parser"
	"github.com/erraggy/clientdocs/walker"
)

// NoDescription replaces a missing property description in reports.
const NoDescription = "(no description)"

// Entry is one JSON key taking part in a clash.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Description string `json:"description" yaml:"description"`
}

// Clash is a group of single-character JSON keys on one object that fold to
// the same Go field name. A Clash always has at least two entries.
type Clash struct {
	// Context is the breadcrumb of the object declaring the keys
	Context string `json:"context" yaml:"context"`
	// FoldedName is the Go field name every entry maps to
	FoldedName string `json:"go_field" yaml:"go_field"`
	// Entries lists the clashing keys in property order
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Report is the result of an analysis.
type Report struct {
	// SourcePath is the analyzed document's path, if known
	SourcePath string `json:"source,omitempty" yaml:"source,omitempty"`
	// Clashes lists clashes in document traversal order
	Clashes []Clash `json:"clashes" yaml:"clashes"`
	// ClashCount is len(Clashes)
	ClashCount int `json:"clash_count" yaml:"clash_count"`
	// ObjectsScanned counts the object schemas inspected
	ObjectsScanned int `json:"objects_scanned" yaml:"objects_scanned"`
	// Warnings carries load warnings of the analyzed document
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HasClashes reports whether any clash was found.
func (r *Report) HasClashes() bool {
	return r.ClashCount > 0
}

// FoldKey returns the Go field name a single-character key maps to.
func FoldKey(key string) string {
	return strings.ToUpper(key)
}

// isShortKey reports whether key is a single character.
func isShortKey(key string) bool {
	return utf8.RuneCountInString(key) == 1
}

// DetectClashes returns the clashes among the direct properties of schema.
// Groups are ordered by the first appearance of their folded name.
func DetectClashes(schema *parser.Schema, context string) []Clash {
	if !schema.IsObject() {
		return nil
	}

	var order []string
	groups := make(map[string][]Entry)
	for _, prop := range schema.Properties {
		if !isShortKey(prop.Key) {
			continue
		}
		folded := FoldKey(prop.Key)
		if _, seen := groups[folded]; !seen {
			order = append(order, folded)
		}
		desc := ""
		if prop.Schema != nil {
			desc = prop.Schema.Description
		}
		if desc == "" {
			desc = NoDescription
		}
		groups[folded] = append(groups[folded], Entry{Key: prop.Key, Description: desc})
	}

	var clashes []Clash
	for _, folded := range order {
		if entries := groups[folded]; len(entries) > 1 {
			clashes = append(clashes, Clash{Context: context, FoldedName: folded, Entries: entries})
		}
	}
	return clashes
}

// Analyzer detects field clashes in OpenAPI documents.
type Analyzer struct {
	// Logger receives progress messages; nil disables logging
	Logger parser.Logger
	// MaxSchemaDepth limits schema nesting; 0 uses the walker default
	MaxSchemaDepth int
}

// New creates an Analyzer with default settings.
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze reports the clashes in doc. The document is not modified.
func (a *Analyzer) Analyze(doc *parser.Document) (*Report, error) {
	logger := parser.LoggerOrNop(a.Logger)
	report := &Report{SourcePath: doc.SourcePath, Clashes: []Clash{}, Warnings: doc.Warnings}

	err := walker.Walk(doc,
		walker.WithMaxSchemaDepth(a.MaxSchemaDepth),
		walker.WithObjectHandler(func(wc *walker.WalkContext, schema *parser.Schema) walker.Action {
			report.ObjectsScanned++
			for _, clash := range DetectClashes(schema, wc.Breadcrumb) {
				logger.Debug("field clash", "context", clash.Context, "go_field", clash.FoldedName, "keys", len(clash.Entries))
				report.Clashes = append(report.Clashes, clash)
			}
			return walker.Continue
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}

	report.ClashCount = len(report.Clashes)
	logger.Info("analysis complete", "objects", report.ObjectsScanned, "clashes", report.ClashCount)
	return report, nil
}

// AnalyzeFile loads the document at path and analyzes it.
func (a *Analyzer) AnalyzeFile(path string) (*Report, error) {
	doc, err := parser.ParseWithOptions(parser.WithFilePath(path), parser.WithLogger(a.Logger))
	if err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}
	return a.Analyze(doc)
}

// Option is a function that configures an analysis
type Option func(*analyzeConfig) error

type analyzeConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.Document

	logger         parser.Logger
	maxSchemaDepth int
}

// AnalyzeWithOptions analyzes a document using functional options.
//
// Example:
//
//	report, err := analyzer.AnalyzeWithOptions(
//	    analyzer.WithFilePath("openapi.json"),
//	    analyzer.WithLogger(logger),
//	)
func AnalyzeWithOptions(opts ...Option) (*Report, error) {
	cfg := &analyzeConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("analyzer: invalid options: %w", err)
		}
	}
	if err := options.ValidateSingleInputSource(
		"analyzer: must specify an input source (use WithFilePath or WithParsed)",
		"analyzer: must specify exactly one input source",
		cfg.filePath != nil, cfg.parsed != nil,
	); err != nil {
		return nil, fmt.Errorf("analyzer: invalid options: %w", err)
	}

	a := &Analyzer{Logger: cfg.logger, MaxSchemaDepth: cfg.maxSchemaDepth}
	if cfg.filePath != nil {
		return a.AnalyzeFile(*cfg.filePath)
	}
	return a.Analyze(cfg.parsed)
}

// WithFilePath specifies a document path as the input source
func WithFilePath(path string) Option {
	return func(cfg *analyzeConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies an already loaded document as the input source
func WithParsed(doc *parser.Document) Option {
	return func(cfg *analyzeConfig) error {
		if doc == nil {
			return nil
		}
		cfg.parsed = doc
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(l parser.Logger) Option {
	return func(cfg *analyzeConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxSchemaDepth limits schema nesting during the walk
func WithMaxSchemaDepth(depth int) Option {
	return func(cfg *analyzeConfig) error {
		cfg.maxSchemaDepth = depth
		return nil
	}
}
