package fixer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/clientdocs/oaserrors"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

// quoteSource mirrors a generated client file with the clashing quote struct.
var quoteSource = lines(
	"package gen",
	"",
	"type LastQuote struct {",
	"\tResults *struct {",
	"\t\tP *float64 `json:\"P,omitempty\"`",
	"\t\tS *int     `json:\"S,omitempty\"`",
	"\t\tT *string  `json:\"T,omitempty\"`",
	"\t\tX *int     `json:\"X,omitempty\"`",
	"\t\tP *float64 `json:\"p,omitempty\"`",
	"\t\tS *int     `json:\"s,omitempty\"`",
	"\t\tT *int64   `json:\"t,omitempty\"`",
	"\t\tX *int     `json:\"x,omitempty\"`",
	"\t\tY *int64   `json:\"y,omitempty\"`",
	"\t} `json:\"results,omitempty\"`",
	"}",
	"",
	"func askOf(q *LastQuote) (float64, string) {",
	"\treturn *q.Results.P, *q.Results.T",
	"}",
)

var fixedQuoteSource = lines(
	"package gen",
	"",
	"type LastQuote struct {",
	"\tResults *struct {",
	"\t\tAskPrice *float64 `json:\"P,omitempty\"`",
	"\t\tAskSize *int `json:\"S,omitempty\"`",
	"\t\tTicker *string `json:\"T,omitempty\"`",
	"\t\tAskExchange *int `json:\"X,omitempty\"`",
	"\t\tBidPrice *float64 `json:\"p,omitempty\"`",
	"\t\tBidSize *int `json:\"s,omitempty\"`",
	"\t\tTimestamp *int64 `json:\"t,omitempty\"`",
	"\t\tBidExchange *int `json:\"x,omitempty\"`",
	"\t\tY *int64   `json:\"y,omitempty\"`",
	"\t} `json:\"results,omitempty\"`",
	"}",
	"",
	"func askOf(q *LastQuote) (float64, string) {",
	"\treturn *q.Results.AskPrice, *q.Results.Ticker",
	"}",
)

func unformatted() *Fixer {
	f := New()
	f.Format = false
	return f
}

func TestFixSourceDefaultTable(t *testing.T) {
	result, err := unformatted().FixSource("client.gen.go", []byte(quoteSource))
	require.NoError(t, err)

	if diff := cmp.Diff(fixedQuoteSource, string(result.Content)); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}

	want := []Fix{
		{Type: FixTypeRenamedField, Line: 5, Key: "P", Before: "P", After: "AskPrice"},
		{Type: FixTypeRenamedField, Line: 6, Key: "S", Before: "S", After: "AskSize"},
		{Type: FixTypeRenamedField, Line: 7, Key: "T", Before: "T", After: "Ticker"},
		{Type: FixTypeRenamedField, Line: 8, Key: "X", Before: "X", After: "AskExchange"},
		{Type: FixTypeRenamedField, Line: 9, Key: "p", Before: "P", After: "BidPrice"},
		{Type: FixTypeRenamedField, Line: 10, Key: "s", Before: "S", After: "BidSize"},
		{Type: FixTypeRenamedField, Line: 11, Key: "t", Before: "T", After: "Timestamp"},
		{Type: FixTypeRenamedField, Line: 12, Key: "x", Before: "X", After: "BidExchange"},
		{Type: FixTypeRewrittenReference, Line: 18, Before: "P", After: "AskPrice"},
		{Type: FixTypeRewrittenReference, Line: 18, Before: "T", After: "Ticker"},
	}
	if diff := cmp.Diff(want, result.Fixes); diff != "" {
		t.Errorf("fixes mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 10, result.FixCount)
	assert.True(t, result.HasFixes())
	assert.Equal(t, 0, result.CountByType(FixTypeFallbackField))
	assert.Equal(t, "client.gen.go", result.SourcePath)
	assert.False(t, result.Formatted)
}

func TestFixIsIdempotent(t *testing.T) {
	first, err := unformatted().FixSource("", []byte(quoteSource))
	require.NoError(t, err)

	second, err := unformatted().FixSource("", first.Content)
	require.NoError(t, err)
	assert.Zero(t, second.FixCount)
	assert.Equal(t, string(first.Content), string(second.Content))
}

// TestFixFallbacks tests that the exact patterns rename the quote fields
// when the table does not cover them, and that their old identifiers are
// still rewritten at use sites.
func TestFixFallbacks(t *testing.T) {
	f := unformatted()
	f.Table = RenameTable{"T": "Ticker", "t": "Timestamp"}

	result, err := f.FixSource("", []byte(quoteSource))
	require.NoError(t, err)
	if diff := cmp.Diff(fixedQuoteSource, string(result.Content)); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, result.CountByType(FixTypeRenamedField))
	assert.Equal(t, 6, result.CountByType(FixTypeFallbackField))
	assert.Equal(t, 2, result.CountByType(FixTypeRewrittenReference))

	t.Run("disabled", func(t *testing.T) {
		f.Fallbacks = nil
		result, err := f.FixSource("", []byte(quoteSource))
		require.NoError(t, err)
		assert.Contains(t, string(result.Content), "\t\tP *float64 `json:\"P,omitempty\"`\n")
		assert.Contains(t, string(result.Content), "*q.Results.P, *q.Results.Ticker")
		assert.Equal(t, 3, result.FixCount)
	})
}

func TestRenameFieldsShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "no modifiers",
			src:  "\tS int `json:\"S\"`\n",
			want: "\tAskSize int `json:\"S\"`\n",
		},
		{
			name: "several modifiers kept verbatim",
			src:  "\tT string `json:\"T,omitempty,string\"`\n",
			want: "\tTicker string `json:\"T,omitempty,string\"`\n",
		},
		{
			name: "type whitespace trimmed",
			src:  "    P   *float64   `json:\"P\"`\n",
			want: "    AskPrice *float64 `json:\"P\"`\n",
		},
		{
			name: "trailing comment kept",
			src:  "\tp float64 `json:\"p\"` // bid\n",
			want: "\tp float64 `json:\"p\"` // bid\n",
		},
		{
			name: "trailing text after tag kept",
			src:  "\tP float64 `json:\"p\"` // bid\n",
			want: "\tBidPrice float64 `json:\"p\"` // bid\n",
		},
		{
			name: "key without table entry untouched",
			src:  "\tY *int64 `json:\"y,omitempty\"`\n",
			want: "\tY *int64 `json:\"y,omitempty\"`\n",
		},
		{
			name: "multi-letter identifier untouched",
			src:  "\tPrice float64 `json:\"P\"`\n",
			want: "\tPrice float64 `json:\"P\"`\n",
		},
		{
			name: "unindented line untouched",
			src:  "P float64 `json:\"P\"`\n",
			want: "P float64 `json:\"P\"`\n",
		},
	}

	f := unformatted()
	f.Fallbacks = nil
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := f.FixSource("", []byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(result.Content))
		})
	}
}

func TestRewriteReferencesWordBoundary(t *testing.T) {
	src := "x := q.P + q.Price\nfmt.Sprintf(\"%v\", r.S)\ny := q.X.T\n"
	result, err := unformatted().FixSource("", []byte(src))
	require.NoError(t, err)
	assert.Equal(t,
		"x := q.AskPrice + q.Price\nfmt.Sprintf(\"%v\", r.AskSize)\ny := q.AskExchange.Ticker\n",
		string(result.Content))
	assert.Equal(t, 4, result.CountByType(FixTypeRewrittenReference))
}

func TestFixFormat(t *testing.T) {
	t.Run("formats valid source", func(t *testing.T) {
		result, err := New().FixSource("client.gen.go", []byte(quoteSource))
		require.NoError(t, err)
		assert.True(t, result.Formatted)
		assert.Contains(t, string(result.Content), "*q.Results.AskPrice, *q.Results.Ticker")
		assert.NotContains(t, string(result.Content), "AskPrice *float64 `json")

		again, err := New().FixSource("client.gen.go", result.Content)
		require.NoError(t, err)
		assert.Zero(t, again.FixCount)
		assert.Equal(t, string(result.Content), string(again.Content))
	})

	t.Run("keeps unformatted text on failure", func(t *testing.T) {
		src := "\tP *float64 `json:\"P\"`\n"
		result, err := New().FixSource("fragment.go", []byte(src))
		require.NoError(t, err)
		assert.False(t, result.Formatted)
		assert.Equal(t, "\tAskPrice *float64 `json:\"P\"`\n", string(result.Content))
	})
}

func TestFixInvalidTable(t *testing.T) {
	f := New()
	f.Table = RenameTable{"P": "askPrice"}
	_, err := f.FixSource("", []byte(quoteSource))
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

func TestFixFileAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.gen.go")
	require.NoError(t, os.WriteFile(path, []byte(quoteSource), 0o644))

	t.Run("dry run leaves file untouched", func(t *testing.T) {
		result, err := FixWithOptions(WithFilePath(path), WithFormat(false), WithDryRun(true))
		require.NoError(t, err)
		assert.True(t, result.HasFixes())
		require.NoError(t, result.WriteFile())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, quoteSource, string(data))
	})

	t.Run("write replaces file", func(t *testing.T) {
		result, err := FixWithOptions(WithFilePath(path), WithFormat(false))
		require.NoError(t, err)
		require.NoError(t, result.WriteFile())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, fixedQuoteSource, string(data))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FixWithOptions(WithFilePath(filepath.Join(t.TempDir(), "nope.go")))
		assert.ErrorIs(t, err, oaserrors.ErrRewrite)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("in-memory result has no path", func(t *testing.T) {
		result, err := FixWithOptions(WithSource("", []byte(quoteSource)), WithFormat(false))
		require.NoError(t, err)
		assert.Error(t, result.WriteFile())
	})
}

func TestFixWithOptions(t *testing.T) {
	t.Run("custom table and no fallbacks", func(t *testing.T) {
		result, err := FixWithOptions(
			WithSource("q.go", []byte("\tT *string `json:\"T\"`\n\tP *float64 `json:\"P,omitempty\"`\n")),
			WithRenameTable(RenameTable{"T": "Symbol"}),
			WithFallbacks(),
			WithFormat(false),
		)
		require.NoError(t, err)
		assert.Equal(t, "\tSymbol *string `json:\"T\"`\n\tP *float64 `json:\"P,omitempty\"`\n", string(result.Content))
	})

	t.Run("custom fallback", func(t *testing.T) {
		result, err := FixWithOptions(
			WithSource("", []byte("\tC *float64 `json:\"c\"`\n")),
			WithRenameTable(RenameTable{"T": "Ticker"}),
			WithFallbacks(Fallback{Identifier: "C", Type: "*float64", Key: "c", Target: "Close"}),
			WithFormat(false),
		)
		require.NoError(t, err)
		assert.Equal(t, "\tClose *float64 `json:\"c\"`\n", string(result.Content))
		assert.Equal(t, []Fix{{Type: FixTypeFallbackField, Line: 1, Key: "c", Before: "C", After: "Close"}}, result.Fixes)
	})

	invalid := []struct {
		name string
		opts []Option
	}{
		{name: "no input"},
		{name: "both inputs", opts: []Option{WithFilePath("a.go"), WithSource("", nil)}},
		{name: "empty path", opts: []Option{WithFilePath("")}},
		{name: "bad table", opts: []Option{WithSource("", nil), WithRenameTable(RenameTable{"P": "1x"})}},
		{name: "bad fallback", opts: []Option{WithSource("", nil), WithFallbacks(Fallback{Identifier: "P"})}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FixWithOptions(tt.opts...)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
		})
	}
}

const barSource = "package p\n\n" +
	"type Bar struct {\n" +
	"\tA *int `json:\"A\"`\n" +
	"\tA *int `json:\"a\"`\n" +
	"}\n\n" +
	"func f(q struct{ P int }, b Bar) int { return q.P + *b.A }\n"

// TestFixCustomTableLeavesOtherReferences tests that the quote fallbacks do
// not rewrite member accesses when they renamed nothing.
func TestFixCustomTableLeavesOtherReferences(t *testing.T) {
	table := RenameTable{"A": "Alpha", "a": "LowerAlpha"}
	want := []Fix{
		{Type: FixTypeRenamedField, Line: 4, Key: "A", Before: "A", After: "Alpha"},
		{Type: FixTypeRenamedField, Line: 5, Key: "a", Before: "A", After: "LowerAlpha"},
		{Type: FixTypeRewrittenReference, Line: 8, Before: "A", After: "Alpha"},
	}

	t.Run("options", func(t *testing.T) {
		result, err := FixWithOptions(
			WithSource("bar.go", []byte(barSource)),
			WithRenameTable(table),
			WithFormat(false),
		)
		require.NoError(t, err)
		assert.Contains(t, string(result.Content), "return q.P + *b.Alpha }")
		assert.Equal(t, want, result.Fixes)
	})

	t.Run("default fallbacks", func(t *testing.T) {
		f := unformatted()
		f.Table = table
		f.Fallbacks = DefaultFallbacks()
		result, err := f.FixSource("bar.go", []byte(barSource))
		require.NoError(t, err)
		assert.Contains(t, string(result.Content), "return q.P + *b.Alpha }")
		assert.Equal(t, want, result.Fixes)
	})
}

func TestFixFallbacksFollowCustomTable(t *testing.T) {
	src := "\tP *float64 `json:\"P,omitempty\"`\n\tP *float64 `json:\"p,omitempty\"`\n"
	result, err := FixWithOptions(
		WithSource("", []byte(src)),
		WithRenameTable(RenameTable{"P": "Ask", "p": "Bid"}),
		WithFormat(false),
	)
	require.NoError(t, err)
	assert.Equal(t, "\tAsk *float64 `json:\"P,omitempty\"`\n\tBid *float64 `json:\"p,omitempty\"`\n", string(result.Content))
}

// TestFixFallbackTargetsValidatedWithTable tests that fallback targets may
// not collide with the table's keys or targets.
func TestFixFallbackTargetsValidatedWithTable(t *testing.T) {
	tests := []struct {
		name  string
		table RenameTable
	}{
		{name: "shared target", table: RenameTable{"A": "AskPrice", "a": "Alpha"}},
		{name: "different target for same key", table: RenameTable{"P": "Ask", "p": "Bid"}},
		{name: "target is a fallback key", table: RenameTable{"Q": "S"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := unformatted()
			f.Table = tt.table
			f.Fallbacks = DefaultFallbacks()
			_, err := f.FixSource("", []byte(barSource))
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
		})
	}
}

func TestFixDescription(t *testing.T) {
	assert.Equal(t, `line 5: P → AskPrice (json:"p")`,
		Fix{Type: FixTypeRenamedField, Line: 5, Key: "p", Before: "P", After: "AskPrice"}.Description())
	assert.Equal(t, "line 9: .T → .Ticker",
		Fix{Type: FixTypeRewrittenReference, Line: 9, Before: "T", After: "Ticker"}.Description())
}

func TestDefaultFallbacks(t *testing.T) {
	fallbacks := DefaultFallbacks()
	require.Len(t, fallbacks, 6)
	assert.Equal(t, Fallback{Identifier: "X", Type: "*int", Key: "x", Modifiers: ",omitempty", Target: "BidExchange"}, fallbacks[5])
	for _, fb := range fallbacks {
		assert.NoError(t, fb.validate())
	}

	custom := DefaultFallbacksFor(RenameTable{"x": "Venue", "P": "Ask", "T": "Ticker"})
	assert.Equal(t, []Fallback{
		{Identifier: "P", Type: "*float64", Key: "P", Modifiers: ",omitempty", Target: "Ask"},
		{Identifier: "X", Type: "*int", Key: "x", Modifiers: ",omitempty", Target: "Venue"},
	}, custom)
	assert.Empty(t, DefaultFallbacksFor(RenameTable{"A": "Alpha"}))
}
