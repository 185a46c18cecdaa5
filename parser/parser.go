package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strconv"

	"github.com/erraggy/clientdocs/oaserrors"
	"go.yaml.in/yaml/v4"
)

// DefaultMaxFileSize is the largest document accepted when no limit is set.
const DefaultMaxFileSize int64 = 100 * 1024 * 1024

// Parser loads OpenAPI documents.
type Parser struct {
	// Logger receives diagnostics; nil means no logging
	Logger Logger
	// MaxFileSize limits the input size in bytes; 0 means DefaultMaxFileSize
	MaxFileSize int64
}

// New creates a Parser with default settings.
func New() *Parser {
	return &Parser{}
}

// Parse is a convenience wrapper that loads the document at path with
// default settings.
func Parse(path string) (*Document, error) {
	return ParseWithOptions(WithFilePath(path))
}

// Parse loads the document stored at path.
// A missing file yields a *oaserrors.ParseError matching
// oaserrors.ErrDocumentNotFound.
func (p *Parser) Parse(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &oaserrors.ParseError{
			Path:     path,
			NotFound: errors.Is(err, fs.ErrNotExist),
			Message:  "failed to open document",
			Cause:    err,
		}
	}
	defer func() { _ = f.Close() }()

	data, err := p.readAll(f, path)
	if err != nil {
		return nil, err
	}
	return p.parse(data, path)
}

// ParseReader loads a document from r.
func (p *Parser) ParseReader(r io.Reader) (*Document, error) {
	data, err := p.readAll(r, "")
	if err != nil {
		return nil, err
	}
	return p.parse(data, "")
}

// ParseBytes loads a document from data.
func (p *Parser) ParseBytes(data []byte) (*Document, error) {
	if int64(len(data)) > p.maxFileSize() {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        p.maxFileSize(),
			Actual:       int64(len(data)),
		}
	}
	return p.parse(data, "")
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

func (p *Parser) readAll(r io.Reader, path string) ([]byte, error) {
	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read document", Cause: err}
	}
	if int64(len(data)) > limit {
		return nil, &oaserrors.ResourceLimitError{ResourceType: "file_size", Limit: limit, Context: path}
	}
	return data, nil
}

var errorLine = regexp.MustCompile(`line (\d+)`)

func (p *Parser) parse(data []byte, path string) (*Document, error) {
	logger := LoggerOrNop(p.Logger)
	if path != "" {
		logger = logger.With("source", path)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: path, Message: "empty document"}
	}

	format := detectFormat(data)
	root, err := decodeNodes(data, format)
	if err != nil {
		perr := &oaserrors.ParseError{Path: path, Message: "invalid " + describeFormat(format), Cause: err}
		if m := errorLine.FindStringSubmatch(err.Error()); m != nil {
			perr.Line, _ = strconv.Atoi(m[1])
		}
		return nil, perr
	}

	doc, err := newDecoder(logger).decodeDocument(root)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: err.Error()}
	}
	doc.SourcePath = path
	doc.SourceFormat = format
	doc.Warnings = append(doc.Warnings, checkVersion(doc)...)
	for _, w := range doc.Warnings {
		logger.Debug("load warning", "warning", w)
	}

	logger.Info("document loaded",
		"format", doc.SourceFormat,
		"openapi", doc.OpenAPI,
		"paths", len(doc.Paths),
		"schemas", len(doc.Components.Schemas),
	)
	return doc, nil
}

// decodeNodes builds the node tree. JSON goes through encoding/json since
// the YAML scanner rejects some valid JSON escapes.
func decodeNodes(data []byte, format SourceFormat) (*yaml.Node, error) {
	if format == SourceFormatJSON {
		return decodeJSONNodes(data)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

func describeFormat(format SourceFormat) string {
	if format == SourceFormatJSON {
		return "JSON"
	}
	return "JSON or YAML"
}

// detectFormat reports JSON when the first non-blank byte opens an object.
func detectFormat(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// ParseWithOptions loads a document using functional options.
//
// Example:
//
//	doc, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithLogger(logger),
//	)
func ParseWithOptions(opts ...Option) (*Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{Logger: cfg.logger, MaxFileSize: cfg.maxFileSize}

	var doc *Document
	switch {
	case cfg.filePath != nil:
		doc, err = p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		doc, err = p.ParseReader(cfg.reader)
	default:
		doc, err = p.ParseBytes(cfg.bytes)
	}
	if err != nil {
		return nil, err
	}

	if cfg.sourceName != nil {
		doc.SourcePath = *cfg.sourceName
	}
	return doc, nil
}
