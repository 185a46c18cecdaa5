package walker

import (
	"context"

	"github.com/erraggy/clientdocs/parser"
)

// WalkContext describes where the current node sits in the document.
type WalkContext struct {
	// Breadcrumb is the human-readable path to the node, e.g.
	// `getLastQuote → 200 response → prop "results"`
	Breadcrumb string

	// Depth is the schema nesting depth; 0 for a root schema
	Depth int

	// Operation is the enclosing operation, nil for component schemas
	Operation *parser.Operation

	// StatusCode is the enclosing response key, e.g. "200" or "default"
	StatusCode string

	// ComponentName is the enclosing component schema name
	ComponentName string

	// PropertyKey is the key under which this node appears in its parent's
	// properties; empty for roots, allOf branches and items
	PropertyKey string

	ctx context.Context
}

// Context returns the context.Context for cancellation and deadline propagation.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// InComponents reports whether the node lies under components.schemas.
func (wc *WalkContext) InComponents() bool {
	return wc.ComponentName != ""
}

// walkState carries scope through the recursion. Scope-changing helpers
// return copies that share the cycle set and context.
type walkState struct {
	operation     *parser.Operation
	statusCode    string
	componentName string
	propertyKey   string

	onPath map[*parser.Schema]bool
	ctx    context.Context
}

func (s *walkState) buildContext(breadcrumb string, depth int) *WalkContext {
	return &WalkContext{
		Breadcrumb:    breadcrumb,
		Depth:         depth,
		Operation:     s.operation,
		StatusCode:    s.statusCode,
		ComponentName: s.componentName,
		PropertyKey:   s.propertyKey,
		ctx:           s.ctx,
	}
}

func (s *walkState) forOperation(op *parser.Operation) *walkState {
	c := *s
	c.operation = op
	c.statusCode = ""
	c.propertyKey = ""
	return &c
}

func (s *walkState) forResponse(code string) *walkState {
	c := *s
	c.statusCode = code
	return &c
}

func (s *walkState) forComponent(name string) *walkState {
	c := *s
	c.operation = nil
	c.statusCode = ""
	c.componentName = name
	c.propertyKey = ""
	return &c
}

func (s *walkState) forProperty(key string) *walkState {
	c := *s
	c.propertyKey = key
	return &c
}
