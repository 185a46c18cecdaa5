// Package classifier derives per-operation facts used when writing examples:
// which parameters go in the path and query, whether the success response is
// a paginated collection, and what kind of value each parameter takes.
//
// Every predicate is purely structural. References are never followed, so a
// parameter whose schema is a $ref is classified by the reference alone.
package classifier

import (
	"github.com/erraggy/clientdocs/parser"
)

// NextPageProperty is the response property that marks a paginated collection.
const NextPageProperty = "next_url"

// Classification holds the derived facts for one operation.
type Classification struct {
	// PathParams lists path parameters in declaration order
	PathParams []*parser.Parameter
	// QueryParams lists query parameters in declaration order
	QueryParams []*parser.Parameter
	// Paginated is true when the success response declares NextPageProperty
	Paginated bool
}

// Classify computes the Classification of op.
func Classify(op *parser.Operation) Classification {
	return Classification{
		PathParams:  op.PathParameters(),
		QueryParams: op.QueryParameters(),
		Paginated:   IsPaginated(op),
	}
}

// IsPaginated reports whether the success response schema ("200", else
// "default") or one of its direct allOf branches declares NextPageProperty.
func IsPaginated(op *parser.Operation) bool {
	schema := op.SuccessSchema()
	if schema == nil {
		return false
	}
	if hasPropertyKey(schema, NextPageProperty) {
		return true
	}
	for _, branch := range schema.AllOf {
		if hasPropertyKey(branch, NextPageProperty) {
			return true
		}
	}
	return false
}

// hasPropertyKey matches on the key alone, so a property declared with a
// boolean schema still counts.
func hasPropertyKey(s *parser.Schema, key string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.Properties {
		if p.Key == key {
			return true
		}
	}
	return false
}

// IsEnumParam reports whether the parameter's schema declares an enum or a
// reference (referenced schemas are treated as enumerations).
func IsEnumParam(p *parser.Parameter) bool {
	if p.Schema == nil {
		return false
	}
	return p.Schema.Enum != nil || p.Schema.Ref != ""
}

// ShouldUseTypedEnum reports whether an enum value must be wrapped in the
// generated named type: the schema is a reference or declares a default.
// An inline enum without a default is assigned as a plain value.
func ShouldUseTypedEnum(p *parser.Parameter) bool {
	if p.Schema == nil {
		return false
	}
	return p.Schema.Ref != "" || p.Schema.Default.IsPresent()
}

// IsStringLikeDomain reports whether values of the parameter are written as
// quoted strings:
//   - no schema, type string, or no type: true
//   - integer, number, boolean: false
//   - any other type: true for enums, references and arrays of strings
func IsStringLikeDomain(p *parser.Parameter) bool {
	s := p.Schema
	if s == nil {
		return true
	}
	switch s.Type {
	case "string", "":
		return true
	case "integer", "number", "boolean":
		return false
	}
	if s.Enum != nil || s.Ref != "" {
		return true
	}
	return s.Type == "array" && s.Items != nil && s.Items.Type == "string"
}
