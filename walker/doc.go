// Package walker traverses the schemas of a loaded OpenAPI document.
//
// Every visited schema carries a breadcrumb describing how it was reached,
// for example:
//
//	getLastQuote → 200 response → prop "results"
//	components.schemas.Trade → allOf[1] → items
//
// # Quick Start
//
// Visit every object schema that declares properties:
//
//	doc, _ := parser.Parse("openapi.json")
//	err := walker.Walk(doc,
//	    walker.WithObjectHandler(func(wc *walker.WalkContext, s *parser.Schema) walker.Action {
//	        fmt.Println(wc.Breadcrumb, len(s.Properties))
//	        return walker.Continue
//	    }),
//	)
//
// # Traversal Order
//
// Response schemas are walked first, operation by operation in document
// order, then component schemas. Within a schema the node itself is visited
// first, then each allOf branch, then items, then each property in document
// order.
//
// # Flow Control
//
// Handlers return an [Action]:
//
//   - [Continue]: descend into children
//   - [SkipChildren]: do not descend, continue with siblings
//   - [Stop]: end the walk; Walk returns nil
//
// # Limits
//
// Schemas that reach themselves (possible through YAML aliases) and schemas
// nested deeper than the configured maximum end the walk with a
// *oaserrors.ResourceLimitError.
package walker
