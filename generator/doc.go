// Package generator writes one runnable example program per API operation,
// showing how to call the operation through the generated Go client.
//
// Each operation gets two flavors of the same program:
//
//   - literal: arguments use example, default or placeholder values taken
//     from the document, so the program runs as-is
//   - symbolic: arguments are TOKEN_* placeholders (TOKEN_TICKER,
//     TOKEN_TIMESTAMP.GTE, ...) for documentation pipelines to substitute
//
// Programs for operations whose success response carries a next_url
// property iterate over pages; all others print the single response body.
//
// # Quick Start
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("openapi.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("."); err != nil {
//		log.Fatal(err)
//	}
//
// Files land in examples/go and examples/go-tokenized by default, named
// after the snake_case operationId. Operations without an operationId are
// skipped. When two operationIds map to the same file name the first one
// keeps the file and the collision is reported in
// [GenerateResult.Collisions].
package generator
