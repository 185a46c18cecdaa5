package analyzer

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/clientdocs/internal/testutil"
	"github.com/erraggy/clientdocs/oaserrors"
	"github.com/erraggy/clientdocs/parser"
)

const resultsContext = `getLastQuote → 200 response → prop "results"`

// TestAnalyzeMarketData tests detection order and content on a realistic document.
func TestAnalyzeMarketData(t *testing.T) {
	doc := testutil.MustParse(t, testutil.MarketDataJSON)

	report, err := New().Analyze(doc)
	require.NoError(t, err)

	want := []Clash{
		{Context: resultsContext, FoldedName: "P", Entries: []Entry{
			{Key: "P", Description: "The ask price."},
			{Key: "p", Description: "The bid price."},
		}},
		{Context: resultsContext, FoldedName: "S", Entries: []Entry{
			{Key: "S", Description: "The ask size."},
			{Key: "s", Description: "The bid size."},
		}},
		{Context: resultsContext, FoldedName: "T", Entries: []Entry{
			{Key: "T", Description: "The exchange symbol."},
			{Key: "t", Description: "The SIP timestamp."},
		}},
		{Context: resultsContext, FoldedName: "X", Entries: []Entry{
			{Key: "X", Description: "The ask exchange ID."},
			{Key: "x", Description: "The bid exchange ID."},
		}},
		{Context: `listTrades → 200 response → allOf[1] → prop "results" → items`, FoldedName: "I", Entries: []Entry{
			{Key: "i", Description: "The trade ID."},
			{Key: "I", Description: "The trade correction indicator."},
		}},
		{Context: `GET /v1/legacy/status → 200 response`, FoldedName: "A", Entries: []Entry{
			{Key: "a", Description: "Lower a."},
			{Key: "A", Description: "Upper A."},
		}},
		{Context: `components.schemas.Trade`, FoldedName: "P", Entries: []Entry{
			{Key: "p", Description: "The price."},
			{Key: "P", Description: NoDescription},
		}},
	}
	assert.Equal(t, want, report.Clashes)
	assert.Equal(t, 7, report.ClashCount)
	assert.Equal(t, 8, report.ObjectsScanned)
	assert.True(t, report.HasClashes())
}

func TestAnalyzeIsRepeatable(t *testing.T) {
	doc := testutil.MustParse(t, testutil.MarketDataJSON)

	first, err := New().Analyze(doc)
	require.NoError(t, err)
	second, err := New().Analyze(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var a, b bytes.Buffer
	require.NoError(t, first.WriteText(&a))
	require.NoError(t, second.WriteText(&b))
	assert.Equal(t, a.String(), b.String())
}

func TestAnalyzeNoClashes(t *testing.T) {
	report, err := AnalyzeWithOptions(WithParsed(testutil.MustParse(t, testutil.CleanYAML)))
	require.NoError(t, err)
	assert.False(t, report.HasClashes())
	assert.Empty(t, report.Clashes)

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf))
	assert.Equal(t, noClashesLine+"\n", buf.String())
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	report, err := New().Analyze(testutil.MustParse(t, `{"openapi": "3.0.0"}`))
	require.NoError(t, err)
	assert.Zero(t, report.ObjectsScanned)
	assert.False(t, report.HasClashes())
}

func TestAnalyzeCycle(t *testing.T) {
	_, err := New().Analyze(testutil.MustParse(t, testutil.CyclicYAML))
	assert.ErrorIs(t, err, oaserrors.ErrCycle)
}

func TestDetectClashes(t *testing.T) {
	prop := func(key, desc string) *parser.Property {
		return &parser.Property{Key: key, Schema: &parser.Schema{Type: "string", Description: desc}}
	}

	tests := []struct {
		name   string
		schema *parser.Schema
		want   []Clash
	}{
		{
			name: "two keys fold together",
			schema: &parser.Schema{Type: "object", Properties: []*parser.Property{
				prop("P", "ask"), prop("p", "bid"),
			}},
			want: []Clash{{Context: "ctx", FoldedName: "P", Entries: []Entry{
				{Key: "P", Description: "ask"}, {Key: "p", Description: "bid"},
			}}},
		},
		{
			name: "long keys are ignored",
			schema: &parser.Schema{Type: "object", Properties: []*parser.Property{
				prop("id", ""), prop("ID", ""), prop("Id", ""),
			}},
		},
		{
			name: "unique short key is not a clash",
			schema: &parser.Schema{Type: "object", Properties: []*parser.Property{
				prop("p", ""), prop("q", ""),
			}},
		},
		{
			name: "group order follows first appearance",
			schema: &parser.Schema{Type: "object", Properties: []*parser.Property{
				prop("s", "1"), prop("p", "2"), prop("S", "3"), prop("P", "4"),
			}},
			want: []Clash{
				{Context: "ctx", FoldedName: "S", Entries: []Entry{{Key: "s", Description: "1"}, {Key: "S", Description: "3"}}},
				{Context: "ctx", FoldedName: "P", Entries: []Entry{{Key: "p", Description: "2"}, {Key: "P", Description: "4"}}},
			},
		},
		{
			name: "missing schema uses placeholder",
			schema: &parser.Schema{Properties: []*parser.Property{
				{Key: "x"}, prop("X", ""),
			}},
			want: []Clash{{Context: "ctx", FoldedName: "X", Entries: []Entry{
				{Key: "x", Description: NoDescription}, {Key: "X", Description: NoDescription},
			}}},
		},
		{
			name: "non-object is skipped",
			schema: &parser.Schema{Type: "array", Properties: []*parser.Property{
				prop("P", ""), prop("p", ""),
			}},
		},
		{name: "nil schema"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectClashes(tt.schema, "ctx"))
		})
	}
}

// TestDetectClashesOrderIndependentSet tests that reordering properties
// changes only the order of the report, not the set of clashes.
func TestDetectClashesOrderIndependentSet(t *testing.T) {
	keys := []string{"P", "p", "S", "s", "y"}
	reversed := []string{"y", "s", "S", "p", "P"}

	build := func(ks []string) *parser.Schema {
		s := &parser.Schema{Type: "object"}
		for _, k := range ks {
			s.Properties = append(s.Properties, &parser.Property{Key: k, Schema: &parser.Schema{}})
		}
		return s
	}
	summarize := func(clashes []Clash) map[string][]string {
		out := map[string][]string{}
		for _, c := range clashes {
			for _, e := range c.Entries {
				out[c.FoldedName] = append(out[c.FoldedName], e.Key)
			}
		}
		return out
	}

	a := summarize(DetectClashes(build(keys), "x"))
	b := summarize(DetectClashes(build(reversed), "x"))
	require.Len(t, a, 2)
	require.Len(t, b, 2)
	for folded, entries := range a {
		assert.ElementsMatch(t, entries, b[folded], folded)
	}
}

func TestAnalyzeWithOptions(t *testing.T) {
	t.Run("file path", func(t *testing.T) {
		path := testutil.WriteFile(t, "api.json", testutil.MarketDataJSON)
		report, err := AnalyzeWithOptions(WithFilePath(path))
		require.NoError(t, err)
		assert.Equal(t, path, report.SourcePath)
		assert.Equal(t, 7, report.ClashCount)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := AnalyzeWithOptions(WithFilePath(filepath.Join(t.TempDir(), "nope.json")))
		assert.ErrorIs(t, err, oaserrors.ErrDocumentNotFound)
	})

	t.Run("no input", func(t *testing.T) {
		_, err := AnalyzeWithOptions()
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})

	t.Run("two inputs", func(t *testing.T) {
		_, err := AnalyzeWithOptions(WithFilePath("a.json"), WithParsed(&parser.Document{}))
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})

	t.Run("depth limit", func(t *testing.T) {
		_, err := AnalyzeWithOptions(
			WithParsed(testutil.MustParse(t, testutil.MarketDataJSON)),
			WithMaxSchemaDepth(1),
		)
		assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)
	})
}

func TestReportText(t *testing.T) {
	report := &Report{
		Clashes: []Clash{{
			Context:    "getLastQuote → 200 response",
			FoldedName: "P",
			Entries:    []Entry{{Key: "P", Description: "ask"}, {Key: "p", Description: NoDescription}},
		}},
		ClashCount: 1,
	}

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, FormatText))
	want := "Found 1 clashes:\n" +
		"\n" +
		"#1  getLastQuote → 200 response\n" +
		"   Go field \"P\" is used by multiple JSON keys:\n" +
		"     • json:\"P\"  →  \"ask\"\n" +
		"     • json:\"p\"  →  \"(no description)\"\n" +
		"\n" +
		reviewLine + "\n" +
		renameTableLine + "\n"
	assert.Equal(t, want, buf.String())
}

func TestReportStructuredFormats(t *testing.T) {
	report, err := New().Analyze(testutil.MustParse(t, testutil.MarketDataJSON))
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Write(&buf, FormatJSON))
		var decoded Report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, report.Clashes, decoded.Clashes)
		assert.Contains(t, buf.String(), `"go_field": "P"`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Write(&buf, FormatYAML))
		var decoded Report
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, 7, decoded.ClashCount)
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Write(&buf, FormatTable))
		assert.Contains(t, buf.String(), "JSON key")
		assert.Contains(t, buf.String(), "The ask price.")
	})

	t.Run("table without clashes", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, (&Report{}).WriteTable(&buf))
		assert.Equal(t, noClashesLine+"\n", buf.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		err := report.Write(&bytes.Buffer{}, Format("xml"))
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	got, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, got)

	_, err = ParseFormat("csv")
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}
