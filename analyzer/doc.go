// Package analyzer detects JSON property keys that would collapse onto one
// Go field name in a generated client.
//
// Client generators derive a field name from each JSON key by upper-casing
// its first letter. Two single-character keys that differ only in case, such
// as "P" (ask price) and "p" (bid price), therefore both become field "P" and
// the generated struct will not compile, or will silently drop one of them.
//
// The analyzer walks every JSON response schema and every component schema,
// groups the single-character keys of each object by their upper-case form,
// and reports every group with more than one member as a [Clash]. Reports
// preserve document traversal order so that repeated runs are identical.
//
// # Quick Start
//
//	report, err := analyzer.AnalyzeWithOptions(analyzer.WithFilePath("openapi.json"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = report.WriteText(os.Stdout)
//
// The text report is meant for a human who then writes a rename table for
// the fixer package. There is deliberately no automatic hand-off.
package analyzer
