package walker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/clientdocs/internal/testutil"
	"github.com/erraggy/clientdocs/oaserrors"
	"github.com/erraggy/clientdocs/parser"
	"github.com/erraggy/clientdocs/walker"
)

func collectObjects(t *testing.T, doc *parser.Document, opts ...walker.Option) []string {
	t.Helper()
	var crumbs []string
	opts = append(opts, walker.WithObjectHandler(func(wc *walker.WalkContext, _ *parser.Schema) walker.Action {
		crumbs = append(crumbs, wc.Breadcrumb)
		return walker.Continue
	}))
	require.NoError(t, walker.Walk(doc, opts...))
	return crumbs
}

// TestWalkOrder tests that object nodes are visited in document traversal
// order with their breadcrumbs.
func TestWalkOrder(t *testing.T) {
	doc := testutil.MustParse(t, testutil.MarketDataJSON)

	assert.Equal(t, []string{
		`getLastQuote → 200 response`,
		`getLastQuote → 200 response → prop "results"`,
		`listTrades → 200 response → allOf[0]`,
		`listTrades → 200 response → allOf[1]`,
		`listTrades → 200 response → allOf[1] → prop "results" → items`,
		`getMarketStatus → 200 response`,
		`GET /v1/legacy/status → 200 response`,
		`components.schemas.Trade`,
	}, collectObjects(t, doc))
}

func TestWalkSchemaHandlerSeesLeaves(t *testing.T) {
	doc := testutil.MustParse(t, testutil.MarketDataJSON)
	op := doc.Operation("getMarketStatus")
	require.NotNil(t, op)

	var crumbs []string
	err := walker.WalkSchema(op.SuccessSchema(), "root",
		walker.WithSchemaHandler(func(wc *walker.WalkContext, _ *parser.Schema) walker.Action {
			crumbs = append(crumbs, wc.Breadcrumb)
			return walker.Continue
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`root`,
		`root → prop "market"`,
		`root → prop "serverTime"`,
	}, crumbs)
}

func TestWalkContextFields(t *testing.T) {
	doc := testutil.MustParse(t, testutil.MarketDataJSON)

	contexts := map[string]walker.WalkContext{}
	err := walker.Walk(doc, walker.WithObjectHandler(func(wc *walker.WalkContext, _ *parser.Schema) walker.Action {
		contexts[wc.Breadcrumb] = *wc
		return walker.Continue
	}))
	require.NoError(t, err)

	items := contexts[`listTrades → 200 response → allOf[1] → prop "results" → items`]
	assert.Equal(t, 3, items.Depth)
	assert.Equal(t, "200", items.StatusCode)
	assert.Empty(t, items.PropertyKey)
	require.NotNil(t, items.Operation)
	assert.Equal(t, "listTrades", items.Operation.OperationID)
	assert.False(t, items.InComponents())

	results := contexts[`getLastQuote → 200 response → prop "results"`]
	assert.Equal(t, "results", results.PropertyKey)
	assert.Equal(t, 1, results.Depth)

	trade := contexts[`components.schemas.Trade`]
	assert.True(t, trade.InComponents())
	assert.Equal(t, "Trade", trade.ComponentName)
	assert.Nil(t, trade.Operation)
	assert.NotNil(t, trade.Context())
}

func TestWalkFlowControl(t *testing.T) {
	doc := testutil.MustParse(t, testutil.MarketDataJSON)

	t.Run("SkipChildren", func(t *testing.T) {
		var crumbs []string
		err := walker.Walk(doc, walker.WithObjectHandler(func(wc *walker.WalkContext, _ *parser.Schema) walker.Action {
			crumbs = append(crumbs, wc.Breadcrumb)
			if wc.Operation != nil && wc.Operation.OperationID == "getLastQuote" {
				return walker.SkipChildren
			}
			return walker.Continue
		}))
		require.NoError(t, err)
		assert.NotContains(t, crumbs, `getLastQuote → 200 response → prop "results"`)
		assert.Contains(t, crumbs, `components.schemas.Trade`)
	})

	t.Run("Stop", func(t *testing.T) {
		count := 0
		err := walker.Walk(doc, walker.WithObjectHandler(func(*walker.WalkContext, *parser.Schema) walker.Action {
			count++
			return walker.Stop
		}))
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("operation SkipChildren", func(t *testing.T) {
		crumbs := collectObjects(t, doc, walker.WithOperationHandler(func(_ *walker.WalkContext, op *parser.Operation) walker.Action {
			if op.OperationID == "" {
				return walker.SkipChildren
			}
			return walker.Continue
		}))
		assert.NotContains(t, crumbs, `GET /v1/legacy/status → 200 response`)
		assert.Len(t, crumbs, 7)
	})

	t.Run("operation Stop", func(t *testing.T) {
		crumbs := collectObjects(t, doc, walker.WithOperationHandler(func(*walker.WalkContext, *parser.Operation) walker.Action {
			return walker.Stop
		}))
		assert.Empty(t, crumbs)
	})
}

func TestWalkLimits(t *testing.T) {
	t.Run("alias cycle", func(t *testing.T) {
		doc := testutil.MustParse(t, testutil.CyclicYAML)
		err := walker.Walk(doc)
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrCycle)
		assert.Contains(t, err.Error(), `components.schemas.Node → prop "children" → items`)
	})

	t.Run("constructed cycle", func(t *testing.T) {
		a := &parser.Schema{Type: "object"}
		b := &parser.Schema{Type: "object", AllOf: []*parser.Schema{a}}
		a.Properties = []*parser.Property{{Key: "b", Schema: b}}

		err := walker.WalkSchema(a, "root")
		assert.ErrorIs(t, err, oaserrors.ErrCycle)
	})

	t.Run("shared schema is not a cycle", func(t *testing.T) {
		leaf := &parser.Schema{Type: "object", Properties: []*parser.Property{{Key: "x"}}}
		root := &parser.Schema{Type: "object", Properties: []*parser.Property{
			{Key: "first", Schema: leaf},
			{Key: "second", Schema: leaf},
		}}
		count := 0
		err := walker.WalkSchema(root, "root", walker.WithObjectHandler(func(*walker.WalkContext, *parser.Schema) walker.Action {
			count++
			return walker.Continue
		}))
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("max depth", func(t *testing.T) {
		root := &parser.Schema{Type: "array"}
		node := root
		for range 3 {
			node.Items = &parser.Schema{Type: "array"}
			node = node.Items
		}
		err := walker.WalkSchema(root, "root", walker.WithMaxSchemaDepth(2))
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)
		assert.NotErrorIs(t, err, oaserrors.ErrCycle)

		assert.NoError(t, walker.WalkSchema(root, "root", walker.WithMaxSchemaDepth(3)))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		doc := testutil.MustParse(t, testutil.MarketDataJSON)
		err := walker.Walk(doc, walker.WithUserContext(ctx))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("nil document", func(t *testing.T) {
		assert.ErrorIs(t, walker.Walk(nil), oaserrors.ErrConfig)
	})
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "Continue", walker.Continue.String())
	assert.Equal(t, "SkipChildren", walker.SkipChildren.String())
	assert.Equal(t, "Stop", walker.Stop.String())
	assert.Equal(t, "Action(7)", walker.Action(7).String())
}
