// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes clientdocs capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/clientdocs"
)

const serverInstructions = `clientdocs MCP server: finds clashing single-letter JSON keys in OpenAPI documents, renames the clashing fields in generated Go clients, and writes runnable example programs per operation.

Typical flow: analyze_clashes on the document, write a rename table from the report, fix_clashes on the generated client file, then generate_examples.

Configuration: defaults are configurable via CLIENTDOCS_* environment variables set in your MCP client config.

Key settings:
- CLIENTDOCS_CACHE_ENABLED (default: true): disable document caching entirely
- CLIENTDOCS_CACHE_FILE_TTL (default: 15m): cache TTL for documents read from disk
- CLIENTDOCS_CACHE_CONTENT_TTL (default: 15m): cache TTL for inline documents
- CLIENTDOCS_RESULT_LIMIT (default: 100): default number of clashes or fixes returned
- CLIENTDOCS_MAX_INLINE_SIZE (default: 10MiB): largest accepted inline document
- CLIENTDOCS_MAX_SCHEMA_DEPTH (default: 100): deepest schema nesting analyzed

Caching: loaded documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "clientdocs", Version: clientdocs.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_clashes",
		Description: "Find single-letter JSON property keys in an OpenAPI document that map to the same Go field name (for example P and p both become P). Returns one entry per clash with its location breadcrumb, the shared Go field and each key's description. Use format=text for the human-readable report used to write a rename table. Use offset/limit to paginate through clashes.",
	}, handleAnalyzeClashes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_examples",
		Description: "Generate one runnable Go example program per operation of an OpenAPI document, in a literal flavor (example or placeholder values) and a symbolic flavor (TOKEN_* placeholders). Operations without operationId are skipped. Use dry_run=true to list the files without writing; otherwise output_dir is required.",
	}, handleGenerateExamples)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fix_clashes",
		Description: "Rename clashing single-letter struct fields in a generated Go client file using a rename table (JSON key to Go identifier), then rewrite member accesses of the old names. Without rename_table the built-in quote/trade table is used (P→AskPrice, p→BidPrice, ...). Use dry_run=true to preview fixes without writing the file.",
	}, handleFixClashes)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ResultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ResultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
