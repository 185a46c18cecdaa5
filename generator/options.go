package generator

import (
	"fmt"
	"strings"

	"github.com/erraggy/clientdocs/internal/options"
	"github.com/erraggy/clientdocs/oaserrors"
	"github.com/erraggy/clientdocs/parser"
)

// Option is a function that configures a generation run
type Option func(*generateConfig) error

type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.Document

	gen *Generator
}

// GenerateWithOptions generates example programs using functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("openapi.json"),
//		generator.WithLiteralDir("docs/examples"),
//		generator.WithModes(generator.ModeSymbolic),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg := &generateConfig{gen: New()}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("generator: invalid options: %w", err)
		}
	}
	if err := options.ValidateSingleInputSource(
		"generator: must specify an input source (use WithFilePath or WithParsed)",
		"generator: must specify exactly one input source",
		cfg.filePath != nil, cfg.parsed != nil,
	); err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}
	if err := cfg.gen.validateDirs(); err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	if cfg.filePath != nil {
		return cfg.gen.GenerateFile(*cfg.filePath)
	}
	return cfg.gen.Generate(cfg.parsed)
}

// WithFilePath specifies a document path as the input source
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies an already loaded document as the input source
func WithParsed(doc *parser.Document) Option {
	return func(cfg *generateConfig) error {
		if doc != nil {
			cfg.parsed = doc
		}
		return nil
	}
}

// WithClientImport sets the import path of the client package
func WithClientImport(importPath string) Option {
	return func(cfg *generateConfig) error {
		if strings.TrimSpace(importPath) == "" {
			return &oaserrors.ConfigError{Option: "WithClientImport", Message: "import path must not be empty"}
		}
		cfg.gen.ClientImport = importPath
		return nil
	}
}

// WithCredential sets the API key placeholder passed to the client
func WithCredential(credential string) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.Credential = credential
		return nil
	}
}

// WithLiteralDir sets the output directory for literal programs
func WithLiteralDir(dir string) Option {
	return func(cfg *generateConfig) error {
		if dir == "" {
			return &oaserrors.ConfigError{Option: "WithLiteralDir", Message: "directory must not be empty"}
		}
		cfg.gen.LiteralDir = dir
		return nil
	}
}

// WithSymbolicDir sets the output directory for symbolic programs
func WithSymbolicDir(dir string) Option {
	return func(cfg *generateConfig) error {
		if dir == "" {
			return &oaserrors.ConfigError{Option: "WithSymbolicDir", Message: "directory must not be empty"}
		}
		cfg.gen.SymbolicDir = dir
		return nil
	}
}

// WithModes restricts generation to the given flavors
func WithModes(modes ...ValueMode) Option {
	return func(cfg *generateConfig) error {
		for _, m := range modes {
			if m != ModeLiteral && m != ModeSymbolic {
				return &oaserrors.ConfigError{Option: "WithModes", Value: m, Message: "unknown mode"}
			}
		}
		cfg.gen.Modes = modes
		return nil
	}
}

// WithFormat runs generated programs through the Go formatter
func WithFormat(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.Format = enabled
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(l parser.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.Logger = l
		return nil
	}
}
