// Package parser loads OpenAPI 3.x documents into an immutable, order
// preserving model.
//
// Import path: github.com/erraggy/clientdocs/parser
//
// JSON and YAML inputs are both decoded through a YAML node tree so that
// every mapping (paths, operations, responses, schema properties) keeps the
// order it has in the source. Downstream reports and generated files depend
// on that order being stable.
//
// The model covers only what clientdocs consumes: operations and their path
// and query parameters, JSON response schemas, and component schemas. A
// missing "paths" or "components" section yields an empty model rather than
// an error. References ($ref) are recorded but never resolved.
//
// # Quick Start
//
//	doc, err := parser.Parse("openapi.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, op := range doc.Operations() {
//	    fmt.Println(op.Method, op.Path, op.OperationID)
//	}
//
// With options:
//
//	doc, err := parser.ParseWithOptions(
//	    parser.WithBytes(data),
//	    parser.WithSourceName("inline.yaml"),
//	    parser.WithLogger(parser.NewSlogAdapter(slog.Default())),
//	)
package parser
