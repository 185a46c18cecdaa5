// Package fixer renames clashing single-letter struct fields in generated Go
// client code.
//
// Code generators derive a Go field name from each JSON key, so sibling keys
// such as "P" and "p" both become a field named P and the generated file
// fails to compile. The fixer works on the generated file as text and
// rewrites it in three passes:
//
//   - Pass 1 renames every declaration of the form
//     <indent><X> <type> `json:"<key>[,<modifiers>]"` whose key has an entry
//     in the [RenameTable], keeping indentation, type and tag modifiers.
//   - Pass 2 applies a short list of exact [Fallback] patterns for
//     declarations known to cause trouble, in case pass 1 missed them.
//   - Pass 3 rewrites member accesses of the old identifiers (".P") to the
//     new names across the whole file.
//
// The result is then run through the Go formatter when formatting is
// enabled. A formatter failure is logged and the unformatted text is kept.
//
// # Quick Start
//
//	result, err := fixer.FixWithOptions(
//		fixer.WithFilePath("rest/gen/client.gen.go"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Applied %d fixes\n", result.FixCount)
//	if err := result.WriteFile(); err != nil {
//		log.Fatal(err)
//	}
//
// # Rename tables
//
// [DefaultRenameTable] covers quote and trade payloads (P to AskPrice, p to
// BidPrice and so on). A custom table is usually written by hand from the
// analyzer's clash report and loaded with [LoadRenameTable]:
//
//	P: AskPrice
//	p: BidPrice
//
// With a custom table, [FixWithOptions] keeps only the fallbacks whose key
// is in the table and renames them to the table's targets. Fallback targets
// are checked together with the table, and a fallback takes part in pass 3
// only when it matched a declaration.
//
// Pass 3 is not scope aware: any ".P" in the file is rewritten, including
// accesses on unrelated types that happen to have a field named P. Review
// the diff when the file declares such types.
//
// Fixing is idempotent. Running the fixer again with the same table matches
// no declarations and no references.
package fixer
