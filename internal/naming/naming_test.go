package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToUpperCamel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "camelCase", input: "getLastTrade", want: "GetLastTrade"},
		{name: "snake_case", input: "list_tickers", want: "ListTickers"},
		{name: "digit before upper", input: "getV3Quotes", want: "GetV3Quotes"},
		{name: "kebab-case", input: "get-last-trade", want: "GetLastTrade"},
		{name: "spaces", input: "get last trade", want: "GetLastTrade"},
		{name: "separator runs", input: "get__last--trade", want: "GetLastTrade"},
		{name: "leading separator", input: "_private", want: "Private"},
		{name: "acronym run is lowered", input: "getAPIKey", want: "GetApikey"},
		{name: "all caps", input: "SMA", want: "Sma"},
		{name: "dots are kept", input: "v1.aggs", want: "V1.aggs"},
		{name: "unicode", input: "über_user", want: "ÜberUser"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToUpperCamel(tt.input))
		})
	}
}

func TestToFieldPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "dotted", input: "timestamp.gte", want: "TimestampGte"},
		{name: "snake_case", input: "sort_order", want: "SortOrder"},
		{name: "kebab-case", input: "sort-order", want: "SortOrder"},
		{name: "camelCase is not split", input: "expiredAt", want: "Expiredat"},
		{name: "single letter", input: "t", want: "T"},
		{name: "dotted snake", input: "expiration_date.lte", want: "ExpirationDateLte"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToFieldPath(tt.input))
		})
	}
}

func TestToSymbolicToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "ticker", want: "TOKEN_TICKER"},
		{name: "camelCase", input: "multiplierUnit", want: "TOKEN_MULTIPLIER_UNIT"},
		{name: "dots are kept", input: "timestamp.gte", want: "TOKEN_TIMESTAMP.GTE"},
		{name: "snake_case", input: "sort_order", want: "TOKEN_SORT_ORDER"},
		{name: "digit before upper is not split", input: "v3Quote", want: "TOKEN_V3QUOTE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToSymbolicToken(tt.input))
		})
	}
}

func TestToSnakeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "camelCase", input: "getLastTrade", want: "get_last_trade"},
		{name: "kebab-case", input: "get-last-trade", want: "get_last_trade"},
		{name: "slash and dot", input: "v1/open.close", want: "v1_open_close"},
		{name: "already snake", input: "list_tickers", want: "list_tickers"},
		{name: "PascalCase", input: "GetLastTrade", want: "get_last_trade"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToSnakeFilename(tt.input))
		})
	}
}

// TestSnakeOfCamelIsStable tests that converting a lowercase identifier to
// UpperCamel and then to a filename is stable under another application.
func TestSnakeOfCamelIsStable(t *testing.T) {
	for _, input := range []string{"list_tickers", "get_last_trade", "aggs", "snapshot_all_tickers"} {
		once := ToSnakeFilename(ToUpperCamel(input))
		twice := ToSnakeFilename(ToUpperCamel(once))
		assert.Equal(t, once, twice, input)
		assert.Equal(t, input, once, input)
	}
}
