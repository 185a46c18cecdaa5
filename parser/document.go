package parser

import "strings"

// SourceFormat identifies the serialization of the input document.
type SourceFormat string

const (
	// SourceFormatJSON indicates a JSON document.
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatYAML indicates a YAML document.
	SourceFormatYAML SourceFormat = "yaml"
)

// HTTPMethods lists the operation keys recognized under a path item, in the
// order they are checked.
var HTTPMethods = []string{"get", "post", "put", "delete", "patch", "head", "options", "trace"}

// JSONMediaType is the only response media type whose schema is inspected.
const JSONMediaType = "application/json"

// Document is a loaded OpenAPI document. It is never modified after loading.
type Document struct {
	// OpenAPI is the value of the "openapi" field
	OpenAPI string
	// Swagger is the value of the "swagger" field of a 2.0 document, if any
	Swagger string
	// Info holds the document title and version
	Info Info
	// Paths lists path items in document order
	Paths []*PathItem
	// Components holds reusable definitions; never nil
	Components *Components
	// SourcePath is the file path or source name the document came from
	SourcePath string
	// SourceFormat is the detected input format
	SourceFormat SourceFormat
	// Warnings collects non-fatal problems found while loading
	Warnings []string
}

// Info is the subset of the info object clientdocs reports.
type Info struct {
	Title   string
	Version string
}

// PathItem is a single entry of the "paths" object.
type PathItem struct {
	Path       string
	Operations []*Operation
}

// Components holds the "components" section.
type Components struct {
	// Schemas lists component schemas in document order
	Schemas []*NamedSchema
}

// NamedSchema pairs a component schema with its name.
type NamedSchema struct {
	Name   string
	Schema *Schema
}

// Operations returns every operation in the document in path order, then
// method order as written in the source.
func (d *Document) Operations() []*Operation {
	var ops []*Operation
	for _, item := range d.Paths {
		ops = append(ops, item.Operations...)
	}
	return ops
}

// Operation returns the operation with the given operationId, or nil.
func (d *Document) Operation(operationID string) *Operation {
	for _, op := range d.Operations() {
		if op.OperationID == operationID {
			return op
		}
	}
	return nil
}

// Schema returns the component schema with the given name, or nil.
func (d *Document) Schema(name string) *Schema {
	if d.Components == nil {
		return nil
	}
	for _, ns := range d.Components.Schemas {
		if ns.Name == name {
			return ns.Schema
		}
	}
	return nil
}

// Operation is a single HTTP operation.
type Operation struct {
	// OperationID is empty when the source does not declare one
	OperationID string
	// Method is the lower-case HTTP method
	Method string
	// Path is the templated route, e.g. /v2/last/trade/{ticker}
	Path       string
	Summary    string
	Parameters []*Parameter
	// Responses lists responses in document order
	Responses []*Response
}

// DisplayID returns the operationId, or "<METHOD> <path>" when absent.
func (o *Operation) DisplayID() string {
	if o.OperationID != "" {
		return o.OperationID
	}
	return strings.ToUpper(o.Method) + " " + o.Path
}

// Response returns the response for the given status code key, or nil.
func (o *Operation) Response(code string) *Response {
	for _, r := range o.Responses {
		if r.StatusCode == code {
			return r
		}
	}
	return nil
}

// SuccessResponse returns the "200" response, falling back to "default".
func (o *Operation) SuccessResponse() *Response {
	if r := o.Response("200"); r != nil {
		return r
	}
	return o.Response("default")
}

// SuccessSchema returns the JSON schema of SuccessResponse, or nil.
func (o *Operation) SuccessSchema() *Schema {
	if r := o.SuccessResponse(); r != nil {
		return r.Schema
	}
	return nil
}

// PathParameters returns the parameters located in the path, in declaration order.
func (o *Operation) PathParameters() []*Parameter {
	return o.parametersIn("path")
}

// QueryParameters returns the parameters located in the query, in declaration order.
func (o *Operation) QueryParameters() []*Parameter {
	return o.parametersIn("query")
}

func (o *Operation) parametersIn(location string) []*Parameter {
	var params []*Parameter
	for _, p := range o.Parameters {
		if p.In == location {
			params = append(params, p)
		}
	}
	return params
}

// Response is one entry of an operation's "responses" object.
type Response struct {
	// StatusCode is the response key, e.g. "200" or "default"
	StatusCode  string
	Description string
	// Schema is the application/json content schema, or nil
	Schema *Schema
}

// Parameter is an operation parameter.
type Parameter struct {
	Name     string
	In       string
	Required bool
	// Schema is nil when the parameter declares none
	Schema  *Schema
	Example Value
}

// Schema is the subset of a JSON Schema object clientdocs inspects.
//
// Schemas reached through YAML aliases are shared, so the schema graph may
// contain cycles. Use the walker package to traverse it safely.
type Schema struct {
	// Type is the declared type; for a type list the first non-null entry
	Type        string
	Format      string
	Ref         string
	Description string
	// Properties lists object properties in document order
	Properties []*Property
	Items      *Schema
	AllOf      []*Schema
	Enum       []Value
	Default    Value
	Example    Value
}

// Property is a named schema property.
type Property struct {
	Key    string
	Schema *Schema
}

// HasProperties reports whether the schema declares at least one property.
func (s *Schema) HasProperties() bool {
	return s != nil && len(s.Properties) > 0
}

// IsObject reports whether the schema is an object node with properties.
// A missing type counts as object when properties are present.
func (s *Schema) IsObject() bool {
	return s.HasProperties() && (s.Type == "" || s.Type == "object")
}

// Property returns the schema of the named property, or nil.
func (s *Schema) Property(key string) *Schema {
	if s == nil {
		return nil
	}
	for _, p := range s.Properties {
		if p.Key == key {
			return p.Schema
		}
	}
	return nil
}
