package walker

import (
	"context"
	"errors"
	"fmt"

	"github.com/erraggy/clientdocs/oaserrors"
	"github.com/erraggy/clientdocs/parser"
)

// DefaultMaxDepth is the schema nesting limit used when none is configured.
const DefaultMaxDepth = 100

// Breadcrumb separators.
const (
	arrow             = " → "
	itemsSegment      = "items"
	componentsSegment = "components.schemas."
	responseSuffix    = " response"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// SchemaHandler is called for a schema node.
type SchemaHandler func(wc *WalkContext, schema *parser.Schema) Action

// OperationHandler is called for each operation before its responses are walked.
type OperationHandler func(wc *WalkContext, op *parser.Operation) Action

// Option configures a Walker.
type Option func(*Walker)

// Walker traverses documents and schemas, calling the configured handlers.
// A Walker holds no per-walk state and may be reused.
type Walker struct {
	onSchema    SchemaHandler
	onObject    SchemaHandler
	onOperation OperationHandler

	maxDepth int
	userCtx  context.Context
}

// New creates a Walker with the given options.
func New(opts ...Option) *Walker {
	w := &Walker{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WithSchemaHandler sets a handler called for every schema node.
func WithSchemaHandler(fn SchemaHandler) Option {
	return func(w *Walker) {
		w.onSchema = fn
	}
}

// WithObjectHandler sets a handler called for schema nodes that are objects
// with at least one property. It runs after the schema handler, and only
// when that handler returned Continue.
func WithObjectHandler(fn SchemaHandler) Option {
	return func(w *Walker) {
		w.onObject = fn
	}
}

// WithOperationHandler sets a handler called for each operation.
func WithOperationHandler(fn OperationHandler) Option {
	return func(w *Walker) {
		w.onOperation = fn
	}
}

// WithMaxSchemaDepth sets the maximum schema nesting depth.
// Non-positive values keep the default.
func WithMaxSchemaDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// WithUserContext sets the context checked for cancellation between nodes.
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) {
		w.userCtx = ctx
	}
}

// Walk traverses doc with a Walker built from opts.
func Walk(doc *parser.Document, opts ...Option) error {
	return New(opts...).Walk(doc)
}

// WalkSchema traverses a single schema tree rooted at schema, labelled with
// breadcrumb, with a Walker built from opts.
func WalkSchema(schema *parser.Schema, breadcrumb string, opts ...Option) error {
	return New(opts...).WalkSchema(schema, breadcrumb)
}

// errStop unwinds the recursion when a handler returns Stop.
var errStop = errors.New("walker: stopped")

// Walk traverses the response schemas of every operation, then every
// component schema.
func (w *Walker) Walk(doc *parser.Document) error {
	if doc == nil {
		return &oaserrors.ConfigError{Option: "document", Message: "nil document"}
	}
	st := w.newState()
	err := w.walkDocument(doc, st)
	if errors.Is(err, errStop) {
		return nil
	}
	return err
}

// WalkSchema traverses one schema tree.
func (w *Walker) WalkSchema(schema *parser.Schema, breadcrumb string) error {
	err := w.walkSchema(schema, w.newState(), breadcrumb, 0)
	if errors.Is(err, errStop) {
		return nil
	}
	return err
}

func (w *Walker) newState() *walkState {
	ctx := w.userCtx
	if ctx == nil {
		ctx = context.Background()
	}
	return &walkState{ctx: ctx, onPath: make(map[*parser.Schema]bool)}
}

func (w *Walker) walkDocument(doc *parser.Document, st *walkState) error {
	for _, op := range doc.Operations() {
		if err := st.ctx.Err(); err != nil {
			return err
		}
		opState := st.forOperation(op)

		if w.onOperation != nil {
			switch w.onOperation(opState.buildContext(op.DisplayID(), 0), op) {
			case Stop:
				return errStop
			case SkipChildren:
				continue
			}
		}

		for _, resp := range op.Responses {
			if resp.Schema == nil {
				continue
			}
			breadcrumb := op.DisplayID() + arrow + resp.StatusCode + responseSuffix
			if err := w.walkSchema(resp.Schema, opState.forResponse(resp.StatusCode), breadcrumb, 0); err != nil {
				return err
			}
		}
	}

	if doc.Components == nil {
		return nil
	}
	for _, ns := range doc.Components.Schemas {
		if err := w.walkSchema(ns.Schema, st.forComponent(ns.Name), componentsSegment+ns.Name, 0); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) walkSchema(schema *parser.Schema, st *walkState, breadcrumb string, depth int) error {
	if schema == nil {
		return nil
	}
	if err := st.ctx.Err(); err != nil {
		return err
	}
	if depth > w.maxDepth {
		return &oaserrors.ResourceLimitError{
			ResourceType: "schema_depth",
			Limit:        int64(w.maxDepth),
			Actual:       int64(depth),
			Context:      breadcrumb,
		}
	}
	if st.onPath[schema] {
		return &oaserrors.ResourceLimitError{
			ResourceType: "schema_graph",
			Context:      breadcrumb,
			IsCycle:      true,
		}
	}
	st.onPath[schema] = true
	defer delete(st.onPath, schema)

	wc := st.buildContext(breadcrumb, depth)
	action := Continue
	if w.onSchema != nil {
		action = w.onSchema(wc, schema)
	}
	if action == Continue && w.onObject != nil && schema.IsObject() {
		action = w.onObject(wc, schema)
	}
	switch action {
	case Stop:
		return errStop
	case SkipChildren:
		return nil
	}

	unnamed := st.forProperty("")
	for i, branch := range schema.AllOf {
		if err := w.walkSchema(branch, unnamed, fmt.Sprintf("%s%sallOf[%d]", breadcrumb, arrow, i), depth+1); err != nil {
			return err
		}
	}
	if err := w.walkSchema(schema.Items, unnamed, breadcrumb+arrow+itemsSegment, depth+1); err != nil {
		return err
	}
	for _, prop := range schema.Properties {
		crumb := breadcrumb + arrow + `prop "` + prop.Key + `"`
		if err := w.walkSchema(prop.Schema, st.forProperty(prop.Key), crumb, depth+1); err != nil {
			return err
		}
	}
	return nil
}
