package fixer

import (
	"fmt"

	"github.com/erraggy/clientdocs/internal/options"
	"github.com/erraggy/clientdocs/oaserrors"
	"github.com/erraggy/clientdocs/parser"
)

// Option is a function that configures a fix operation
type Option func(*fixConfig) error

// fixConfig holds configuration for a fix operation
type fixConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	source   []byte

	sourceName string
	fixer      *Fixer

	tableSet     bool
	fallbacksSet bool
}

// FixWithOptions fixes a generated Go file using functional options.
// The rewritten content is returned; call [FixResult.WriteFile] to save it.
//
// Example:
//
//	result, err := fixer.FixWithOptions(
//	    fixer.WithFilePath("rest/gen/client.gen.go"),
//	    fixer.WithRenameTable(table),
//	    fixer.WithFallbacks(),
//	)
func FixWithOptions(opts ...Option) (*FixResult, error) {
	cfg := &fixConfig{fixer: New()}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("fixer: invalid options: %w", err)
		}
	}
	if err := options.ValidateSingleInputSource(
		"fixer: must specify an input source (use WithFilePath or WithSource)",
		"fixer: must specify exactly one input source",
		cfg.filePath != nil, cfg.source != nil,
	); err != nil {
		return nil, fmt.Errorf("fixer: invalid options: %w", err)
	}
	if cfg.tableSet && !cfg.fallbacksSet {
		cfg.fixer.Fallbacks = DefaultFallbacksFor(cfg.fixer.Table)
	}

	if cfg.filePath != nil {
		return cfg.fixer.Fix(*cfg.filePath)
	}
	return cfg.fixer.FixSource(cfg.sourceName, cfg.source)
}

// WithFilePath specifies the Go file to fix
func WithFilePath(path string) Option {
	return func(cfg *fixConfig) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "WithFilePath", Message: "file path cannot be empty"}
		}
		cfg.filePath = &path
		return nil
	}
}

// WithSource specifies in-memory Go source to fix. The name is reported
// as the result's SourcePath and may be empty.
func WithSource(name string, src []byte) Option {
	return func(cfg *fixConfig) error {
		if src == nil {
			src = []byte{}
		}
		cfg.source = src
		cfg.sourceName = name
		return nil
	}
}

// WithRenameTable replaces the default rename table. Unless WithFallbacks
// is also given, the default fallbacks are limited to the keys in table and
// renamed to its targets.
func WithRenameTable(table RenameTable) Option {
	return func(cfg *fixConfig) error {
		if err := table.Validate(); err != nil {
			return err
		}
		cfg.fixer.Table = table
		cfg.tableSet = true
		return nil
	}
}

// WithFallbacks replaces the default fallback patterns. Calling it with no
// arguments disables the fallback pass.
func WithFallbacks(fallbacks ...Fallback) Option {
	return func(cfg *fixConfig) error {
		for _, fb := range fallbacks {
			if err := fb.validate(); err != nil {
				return err
			}
		}
		cfg.fixer.Fallbacks = fallbacks
		cfg.fallbacksSet = true
		return nil
	}
}

// WithFormat enables or disables the Go formatter (enabled by default)
func WithFormat(enabled bool) Option {
	return func(cfg *fixConfig) error {
		cfg.fixer.Format = enabled
		return nil
	}
}

// WithDryRun marks the result so that WriteFile does nothing
func WithDryRun(dryRun bool) Option {
	return func(cfg *fixConfig) error {
		cfg.fixer.DryRun = dryRun
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(l parser.Logger) Option {
	return func(cfg *fixConfig) error {
		cfg.fixer.Logger = l
		return nil
	}
}
