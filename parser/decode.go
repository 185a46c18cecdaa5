package parser

import (
	"fmt"
	"slices"

	"go.yaml.in/yaml/v4"
)

// decoder turns a YAML node tree into the document model. Schemas are
// memoized by node so aliases to one anchor share a single *Schema.
type decoder struct {
	logger   Logger
	schemas  map[*yaml.Node]*Schema
	warnings []string
}

func newDecoder(logger Logger) *decoder {
	return &decoder{
		logger:  logger,
		schemas: make(map[*yaml.Node]*Schema),
	}
}

func (d *decoder) warnf(n *yaml.Node, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if n != nil && n.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", n.Line, msg)
	}
	d.warnings = append(d.warnings, msg)
	d.logger.Warn("document warning", "detail", msg)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// lookup returns the value node stored under key in a mapping node.
func lookup(n *yaml.Node, key string) *yaml.Node {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return resolveAlias(n.Content[i+1])
		}
	}
	return nil
}

// eachPair calls fn for every key/value pair of a mapping node, in order.
func eachPair(n *yaml.Node, fn func(key string, value *yaml.Node)) {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		fn(n.Content[i].Value, resolveAlias(n.Content[i+1]))
	}
}

func scalar(n *yaml.Node) string {
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

func (d *decoder) decodeDocument(root *yaml.Node) (*Document, error) {
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, fmt.Errorf("empty document")
		}
		root = root.Content[0]
	}
	root = resolveAlias(root)
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: document root must be a mapping", root.Line)
	}

	doc := &Document{
		OpenAPI:    scalar(lookup(root, "openapi")),
		Swagger:    scalar(lookup(root, "swagger")),
		Components: &Components{},
	}
	if info := lookup(root, "info"); info != nil {
		doc.Info = Info{
			Title:   scalar(lookup(info, "title")),
			Version: scalar(lookup(info, "version")),
		}
	}

	paths := lookup(root, "paths")
	switch {
	case paths == nil:
		d.logger.Debug("document has no paths")
	case paths.Kind != yaml.MappingNode:
		d.warnf(paths, "paths is not a mapping; ignoring it")
	default:
		eachPair(paths, func(route string, item *yaml.Node) {
			doc.Paths = append(doc.Paths, d.decodePathItem(route, item))
		})
	}

	if schemas := lookup(lookup(root, "components"), "schemas"); schemas != nil {
		eachPair(schemas, func(name string, n *yaml.Node) {
			doc.Components.Schemas = append(doc.Components.Schemas, &NamedSchema{
				Name:   name,
				Schema: d.decodeSchema(n),
			})
		})
	}

	doc.Warnings = d.warnings
	return doc, nil
}

func (d *decoder) decodePathItem(route string, n *yaml.Node) *PathItem {
	item := &PathItem{Path: route}
	eachPair(n, func(key string, value *yaml.Node) {
		if !slices.Contains(HTTPMethods, key) {
			return
		}
		if value == nil || value.Kind != yaml.MappingNode {
			d.warnf(value, "operation %s %s is not a mapping; ignoring it", key, route)
			return
		}
		item.Operations = append(item.Operations, d.decodeOperation(route, key, value))
	})
	return item
}

func (d *decoder) decodeOperation(route, method string, n *yaml.Node) *Operation {
	op := &Operation{
		OperationID: scalar(lookup(n, "operationId")),
		Method:      method,
		Path:        route,
		Summary:     scalar(lookup(n, "summary")),
	}

	if params := lookup(n, "parameters"); params != nil && params.Kind == yaml.SequenceNode {
		for _, p := range params.Content {
			if param := d.decodeParameter(resolveAlias(p)); param != nil {
				op.Parameters = append(op.Parameters, param)
			}
		}
	}

	eachPair(lookup(n, "responses"), func(code string, value *yaml.Node) {
		resp := &Response{
			StatusCode:  code,
			Description: scalar(lookup(value, "description")),
		}
		if schema := lookup(lookup(lookup(value, "content"), JSONMediaType), "schema"); schema != nil {
			resp.Schema = d.decodeSchema(schema)
		}
		op.Responses = append(op.Responses, resp)
	})

	return op
}

func (d *decoder) decodeParameter(n *yaml.Node) *Parameter {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	param := &Parameter{
		Name:     scalar(lookup(n, "name")),
		In:       scalar(lookup(n, "in")),
		Required: scalar(lookup(n, "required")) == "true",
		Example:  decodeValue(lookup(n, "example")),
	}
	if schema := lookup(n, "schema"); schema != nil {
		param.Schema = d.decodeSchema(schema)
	}
	return param
}

func (d *decoder) decodeSchema(n *yaml.Node) *Schema {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	if s, ok := d.schemas[n]; ok {
		return s
	}
	s := &Schema{}
	d.schemas[n] = s

	s.Type = decodeType(lookup(n, "type"))
	s.Format = scalar(lookup(n, "format"))
	s.Ref = scalar(lookup(n, "$ref"))
	s.Description = scalar(lookup(n, "description"))
	s.Default = decodeValue(lookup(n, "default"))
	s.Example = decodeValue(lookup(n, "example"))

	eachPair(lookup(n, "properties"), func(key string, value *yaml.Node) {
		s.Properties = append(s.Properties, &Property{Key: key, Schema: d.decodeSchema(value)})
	})
	if items := lookup(n, "items"); items != nil {
		s.Items = d.decodeSchema(items)
	}
	if allOf := lookup(n, "allOf"); allOf != nil && allOf.Kind == yaml.SequenceNode {
		for _, branch := range allOf.Content {
			if child := d.decodeSchema(branch); child != nil {
				s.AllOf = append(s.AllOf, child)
			}
		}
	}
	if enum := lookup(n, "enum"); enum != nil && enum.Kind == yaml.SequenceNode {
		s.Enum = make([]Value, 0, len(enum.Content))
		for _, member := range enum.Content {
			s.Enum = append(s.Enum, decodeValue(member))
		}
	}
	return s
}

// decodeType accepts both "type: string" and the 3.1 list form
// "type: [string, null]".
func decodeType(n *yaml.Node) string {
	if n == nil {
		return ""
	}
	if n.Kind == yaml.SequenceNode {
		for _, t := range n.Content {
			if v := scalar(t); v != "null" {
				return v
			}
		}
		return ""
	}
	return scalar(n)
}

func decodeValue(n *yaml.Node) Value {
	n = resolveAlias(n)
	if n == nil {
		return Value{}
	}
	switch n.Kind {
	case yaml.MappingNode:
		return Value{Kind: ValueMap}
	case yaml.SequenceNode:
		return Value{Kind: ValueList}
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int":
			return Value{Kind: ValueInteger, Raw: n.Value}
		case "!!float":
			return Value{Kind: ValueNumber, Raw: n.Value}
		case "!!bool":
			return Value{Kind: ValueBoolean, Raw: n.Value}
		case "!!null":
			return Value{Kind: ValueNull, Raw: n.Value}
		default:
			return Value{Kind: ValueString, Raw: n.Value}
		}
	default:
		return Value{}
	}
}
