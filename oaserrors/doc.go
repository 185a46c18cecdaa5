// Package oaserrors provides structured error types for clientdocs.
//
// Import path: github.com/erraggy/clientdocs/oaserrors
//
// Every pipeline (analysis, example generation, artifact rewriting) reports
// failures through these types so callers can branch with [errors.Is] and
// [errors.As] instead of matching strings.
//
// # Error Types
//
//   - [ParseError]: the input document is missing or is not valid JSON/YAML
//   - [ConfigError]: invalid options, rename tables, or input combinations
//   - [ResourceLimitError]: schema nesting too deep or a schema cycle
//   - [RewriteError]: reading or writing a generated client artifact failed
//
// # Sentinel Errors
//
//   - [ErrParse]: matches any [ParseError]
//   - [ErrDocumentNotFound]: matches a [ParseError] with NotFound set
//   - [ErrConfig]: matches any [ConfigError]
//   - [ErrResourceLimit]: matches any [ResourceLimitError]
//   - [ErrCycle]: matches a [ResourceLimitError] with IsCycle set
//   - [ErrRewrite]: matches any [RewriteError]
//
// # Usage
//
//	doc, err := parser.Parse("openapi.json")
//	if errors.Is(err, oaserrors.ErrDocumentNotFound) {
//	    // nothing to analyze
//	}
//
//	var cfgErr *oaserrors.ConfigError
//	if errors.As(err, &cfgErr) {
//	    fmt.Println("bad option:", cfgErr.Option)
//	}
package oaserrors
