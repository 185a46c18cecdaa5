package generator

import (
	"fmt"
	"path"
	"regexp"
	"slices"

	"github.com/erraggy/clientdocs/classifier"
	"github.com/erraggy/clientdocs/internal/naming"
	"github.com/erraggy/clientdocs/oaserrors"
	"github.com/erraggy/clientdocs/parser"
)

// Defaults for the generated programs.
const (
	DefaultClientImport = "github.com/massive-com/client-go/v3/rest"
	DefaultCredential   = "GLOBAL_TOKEN_API_KEY"
	DefaultLiteralDir   = "examples/go"
	DefaultSymbolicDir  = "examples/go-tokenized"

	// paramsPackage is the client subpackage holding request parameter types.
	paramsPackage = "gen"
)

// ValueMode selects how argument values are rendered.
type ValueMode int

const (
	// ModeLiteral renders example, default or placeholder values.
	ModeLiteral ValueMode = iota
	// ModeSymbolic renders TOKEN_* placeholders.
	ModeSymbolic
)

// String returns the mode name.
func (m ValueMode) String() string {
	switch m {
	case ModeLiteral:
		return "literal"
	case ModeSymbolic:
		return "symbolic"
	default:
		return fmt.Sprintf("ValueMode(%d)", int(m))
	}
}

// GeneratedFile is one example program.
type GeneratedFile struct {
	// Name is the slash-separated path relative to the output root
	Name string
	// OperationID is the operation the program calls
	OperationID string
	// Mode is the value flavor of the program
	Mode ValueMode
	// Content is the program source
	Content []byte
}

// OperationSummary describes the program generated for one operation.
type OperationSummary struct {
	OperationID string
	Method      string
	Path        string
	Filename    string
	Paginated   bool
	PathParams  int
	QueryParams int
}

// FilenameCollision records an operation whose file name was already taken
// by an earlier operation.
type FilenameCollision struct {
	Filename string
	// Kept is the operationId that owns the file
	Kept string
	// Skipped is the operationId whose programs were not generated
	Skipped string
}

// GenerateResult contains the programs generated for a document.
type GenerateResult struct {
	// Files lists programs in operation order, literal before symbolic
	Files []GeneratedFile
	// Operations summarizes each operation that produced programs
	Operations []OperationSummary
	// Skipped lists operations without an operationId, as "METHOD /path"
	Skipped []string
	// Collisions lists operations dropped because of a file name clash
	Collisions []FilenameCollision
	// SourcePath is the document's path, if known
	SourcePath string
}

// HasCollisions reports whether any operation was dropped for a file name clash.
func (r *GenerateResult) HasCollisions() bool {
	return len(r.Collisions) > 0
}

// GetFile returns the file with the given name, or nil.
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator produces example programs.
type Generator struct {
	// ClientImport is the import path of the client package
	ClientImport string
	// Credential is the API key placeholder passed to the client constructor
	Credential string
	// LiteralDir is the output directory for literal programs
	LiteralDir string
	// SymbolicDir is the output directory for symbolic programs
	SymbolicDir string
	// Modes selects which flavors to generate; nil means both
	Modes []ValueMode
	// Format runs generated programs through the Go formatter
	Format bool
	// Logger receives progress messages; nil disables logging
	Logger parser.Logger
}

// New creates a Generator with default settings.
func New() *Generator {
	return &Generator{
		ClientImport: DefaultClientImport,
		Credential:   DefaultCredential,
		LiteralDir:   DefaultLiteralDir,
		SymbolicDir:  DefaultSymbolicDir,
	}
}

func (g *Generator) modes() []ValueMode {
	if len(g.Modes) == 0 {
		return []ValueMode{ModeLiteral, ModeSymbolic}
	}
	return g.Modes
}

func (g *Generator) dir(mode ValueMode) string {
	if mode == ModeSymbolic {
		return g.SymbolicDir
	}
	return g.LiteralDir
}

// validateDirs rejects a literal and symbolic directory that resolve to the
// same place when both flavors are generated.
func (g *Generator) validateDirs() error {
	modes := g.modes()
	if !slices.Contains(modes, ModeLiteral) || !slices.Contains(modes, ModeSymbolic) {
		return nil
	}
	if path.Clean(g.LiteralDir) == path.Clean(g.SymbolicDir) {
		return &oaserrors.ConfigError{
			Option:  "output directories",
			Value:   g.LiteralDir,
			Message: "literal and symbolic programs must be written to different directories",
		}
	}
	return nil
}

// Filename returns the file name of the programs for operationID.
func Filename(operationID string) string {
	return naming.ToSnakeFilename(operationID) + ".go"
}

// Generate produces the programs for every operation in doc.
func (g *Generator) Generate(doc *parser.Document) (*GenerateResult, error) {
	if doc == nil {
		return nil, fmt.Errorf("generator: nil document")
	}
	if err := g.validateDirs(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	logger := parser.LoggerOrNop(g.Logger)
	result := &GenerateResult{SourcePath: doc.SourcePath}
	owners := make(map[string]string)

	for _, op := range doc.Operations() {
		if op.OperationID == "" {
			logger.Debug("skipping operation without operationId", "operation", op.DisplayID())
			result.Skipped = append(result.Skipped, op.DisplayID())
			continue
		}

		filename := Filename(op.OperationID)
		if owner, taken := owners[filename]; taken {
			logger.Warn("file name collision; keeping the first operation",
				"file", filename, "kept", owner, "skipped", op.OperationID)
			result.Collisions = append(result.Collisions, FilenameCollision{
				Filename: filename,
				Kept:     owner,
				Skipped:  op.OperationID,
			})
			continue
		}
		owners[filename] = op.OperationID

		class := classifier.Classify(op)
		for _, mode := range g.modes() {
			src, err := g.Program(op, mode)
			if err != nil {
				return nil, err
			}
			result.Files = append(result.Files, GeneratedFile{
				Name:        path.Join(g.dir(mode), filename),
				OperationID: op.OperationID,
				Mode:        mode,
				Content:     src,
			})
		}
		result.Operations = append(result.Operations, OperationSummary{
			OperationID: op.OperationID,
			Method:      op.Method,
			Path:        op.Path,
			Filename:    filename,
			Paginated:   class.Paginated,
			PathParams:  len(class.PathParams),
			QueryParams: len(class.QueryParams),
		})
		logger.Debug("generated example", "operation", op.OperationID, "paginated", class.Paginated)
	}

	logger.Info("generation complete",
		"operations", len(result.Operations),
		"files", len(result.Files),
		"skipped", len(result.Skipped),
		"collisions", len(result.Collisions),
	)
	return result, nil
}

// GenerateFile loads the document at path and generates its programs.
func (g *Generator) GenerateFile(path string) (*GenerateResult, error) {
	doc, err := parser.ParseWithOptions(parser.WithFilePath(path), parser.WithLogger(g.Logger))
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	return g.Generate(doc)
}

var majorVersionElem = regexp.MustCompile(`^v[0-9]+$`)

// clientPackageName returns the package identifier of the client import
// path, skipping a trailing major version element.
func clientPackageName(importPath string) string {
	base := path.Base(importPath)
	if majorVersionElem.MatchString(base) {
		if parent := path.Base(path.Dir(importPath)); parent != "." && parent != "/" {
			return parent
		}
	}
	return base
}
