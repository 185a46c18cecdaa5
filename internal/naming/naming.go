// Package naming converts OpenAPI identifiers (operation IDs, parameter names)
// into the Go identifiers, symbolic tokens and file names used by generated
// examples.
//
// The transforms are deliberately naive. They mirror how the generated client
// names things, so ToFieldPath does not split camelCase ("expiredAt" becomes
// "Expiredat") and ToSymbolicToken keeps dots ("timestamp.gte" becomes
// "TOKEN_TIMESTAMP.GTE").
package naming

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TokenPrefix marks an identifier as a placeholder to be substituted later.
const TokenPrefix = "TOKEN_"

var (
	lowerOrDigitThenUpper = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	lowerThenUpper        = regexp.MustCompile(`([a-z])([A-Z])`)
	camelWordSeparators   = regexp.MustCompile(`[-_ ]+`)
	fieldWordSeparators   = regexp.MustCompile(`[-_]`)
	filenameSeparators    = regexp.MustCompile(`[-/.]`)
)

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(word string) string {
	if word == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(word)
	return cases.Upper(language.Und).String(word[:size]) + cases.Lower(language.Und).String(word[size:])
}

// ToUpperCamel converts an operation ID into an exported Go identifier.
//
//	getLastTrade -> GetLastTrade
//	list_tickers -> ListTickers
//	getV3Quotes  -> GetV3Quotes
func ToUpperCamel(s string) string {
	spaced := lowerOrDigitThenUpper.ReplaceAllString(s, "$1 $2")
	var b strings.Builder
	for _, word := range camelWordSeparators.Split(spaced, -1) {
		b.WriteString(capitalize(word))
	}
	return b.String()
}

// ToFieldPath converts a dotted query parameter name into a struct field name.
//
//	timestamp.gte -> TimestampGte
//	sort_order    -> SortOrder
func ToFieldPath(s string) string {
	var b strings.Builder
	for _, component := range strings.Split(s, ".") {
		for _, word := range fieldWordSeparators.Split(component, -1) {
			b.WriteString(capitalize(word))
		}
	}
	return b.String()
}

// ToSymbolicToken converts a parameter name into an upper-case placeholder
// token such as TOKEN_MULTIPLIER_UNIT.
func ToSymbolicToken(s string) string {
	return TokenPrefix + cases.Upper(language.Und).String(lowerThenUpper.ReplaceAllString(s, "${1}_${2}"))
}

// ToSnakeFilename converts an operation ID into a lower snake_case file stem.
//
//	getLastTrade -> get_last_trade
func ToSnakeFilename(s string) string {
	s = lowerThenUpper.ReplaceAllString(s, "${1}_${2}")
	s = filenameSeparators.ReplaceAllString(s, "_")
	return cases.Lower(language.Und).String(s)
}
