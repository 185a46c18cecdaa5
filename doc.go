// Package clientdocs keeps a generated Go API client and its documentation
// examples in sync with an OpenAPI document.
//
// The work is split into small packages that can be used on their own:
//
//   - parser: load an OpenAPI 3.x document (JSON or YAML) keeping key order
//   - walker: visit every schema below responses and components with a
//     breadcrumb describing where it sits
//   - analyzer: report single-letter JSON keys that collapse to the same Go
//     field name (P and p both become P)
//   - fixer: rename those fields in the generated client using a rename table
//   - classifier: decide per operation which parameters go in the path or
//     query, and whether the response is paginated
//   - generator: write one runnable example program per operation, in a
//     literal and a symbolic (TOKEN_*) flavor
//
// # Quick Start
//
//	doc, err := parser.ParseWithOptions(parser.WithFilePath("openapi.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	report, err := analyzer.New().Analyze(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = report.WriteText(os.Stdout)
//
//	result, err := generator.New().Generate(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = result.WriteFiles(".")
//
// The clientdocs command wraps the same steps (analyze, fix, generate) and
// also serves them as MCP tools over stdio.
package clientdocs
