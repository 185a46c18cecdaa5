package generator

import (
	"bytes"
	"fmt"
	"path"
	"strconv"

	"golang.org/x/tools/imports"

	"github.com/erraggy/clientdocs/classifier"
	"github.com/erraggy/clientdocs/internal/naming"
	"github.com/erraggy/clientdocs/parser"
)

// Program returns the example program for op in the given mode.
func (g *Generator) Program(op *parser.Operation, mode ValueMode) ([]byte, error) {
	if op.OperationID == "" {
		return nil, fmt.Errorf("generator: operation %s has no operationId", op.DisplayID())
	}

	class := classifier.Classify(op)
	pascal := naming.ToUpperCamel(op.OperationID)
	method := pascal + "WithResponse"
	paramsType := pascal + "Params"
	client := clientPackageName(g.ClientImport)
	hasQuery := len(class.QueryParams) > 0

	var buf bytes.Buffer
	line := func(format string, args ...any) {
		fmt.Fprintf(&buf, format, args...)
		buf.WriteByte('\n')
	}

	line("package main")
	line("")
	line("import (")
	line("\t\"context\"")
	line("\t\"fmt\"")
	line("\t\"log\"")
	line("\t%q", g.ClientImport)
	if hasQuery {
		line("\t%q", path.Join(g.ClientImport, paramsPackage))
	}
	line(")")
	line("")
	line("func main() {")
	line("")
	line("\tc := %s.NewWithOptions(%q,", client, g.Credential)
	line("\t\t%s.WithTrace(false),", client)
	line("\t\t%s.WithPagination(true),", client)
	line("\t)")
	line("\tctx := context.Background()")
	line("")

	if hasQuery {
		line("\tparams := &%s.%s{", paramsPackage, paramsType)
		for _, p := range class.QueryParams {
			field := naming.ToFieldPath(p.Name)
			value := g.value(p, mode)
			switch {
			case classifier.IsEnumParam(p) && classifier.ShouldUseTypedEnum(p):
				line("\t\t%s: %s.Ptr(%s.%s%s(%s)),", field, client, paramsPackage, paramsType, field, value)
			case classifier.IsEnumParam(p):
				line("\t\t%s: %s,", field, value)
			default:
				line("\t\t%s: %s.Ptr(%s),", field, client, value)
			}
		}
		line("\t}")
		line("")
	}

	line("\tresp, err := c.%s(", method)
	line("\t\tctx,")
	for _, p := range class.PathParams {
		line("\t\t%s,", g.value(p, mode))
	}
	if hasQuery {
		line("\t\tparams,")
	}
	line("\t)")
	line("\tif err != nil {")
	line("\t\tlog.Fatal(err)")
	line("\t}")
	line("")
	line("\tif err := %s.CheckResponse(resp); err != nil {", client)
	line("\t\tlog.Fatal(err)")
	line("\t}")

	if class.Paginated {
		line("")
		line("\titer := %s.NewIteratorFromResponse(c, resp)", client)
		line("\tfor iter.Next() {")
		line("\t\titem := iter.Item()")
		line("\t\tfmt.Printf(\"%%+v\\n\", item)")
		line("\t}")
		line("\tif err := iter.Err(); err != nil {")
		line("\t\tlog.Fatal(err)")
		line("\t}")
	} else {
		line("\tfmt.Printf(\"%%+v\\n\", resp.JSON200)")
	}
	line("}")

	src := buf.Bytes()
	if !g.Format {
		return src, nil
	}
	formatted, err := formatSource(Filename(op.OperationID), src)
	if err != nil {
		parser.LoggerOrNop(g.Logger).Warn("formatting failed; keeping unformatted program",
			"operation", op.OperationID, "error", err)
		return src, nil
	}
	return formatted, nil
}

// formatSource runs gofmt over src without touching the import list.
func formatSource(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
}

// value renders the argument for p.
//
// Symbolic mode emits the parameter's TOKEN_* name, quoted when the
// parameter is string-like. Literal mode uses the first scalar among the
// parameter example, the schema example and the schema default, then falls
// back to a placeholder chosen by type.
func (g *Generator) value(p *parser.Parameter, mode ValueMode) string {
	if mode == ModeSymbolic {
		token := naming.ToSymbolicToken(p.Name)
		if classifier.IsStringLikeDomain(p) {
			return strconv.Quote(token)
		}
		return token
	}

	candidates := []parser.Value{p.Example}
	if p.Schema != nil {
		candidates = append(candidates, p.Schema.Example, p.Schema.Default)
	}
	for _, v := range candidates {
		if lit, ok := v.GoLiteral(); ok {
			return lit
		}
	}

	schemaType := ""
	if p.Schema != nil {
		schemaType = p.Schema.Type
	}
	switch schemaType {
	case "boolean":
		return "true"
	case "integer", "number":
		return "100"
	default:
		return strconv.Quote(p.Name)
	}
}
