package fixer

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/erraggy/clientdocs/oaserrors"
	"github.com/erraggy/clientdocs/parser"
)

// fieldDecl matches <indent><single upper-case identifier> <type> `json:"<key>[,<modifiers>]"`.
// Groups: indent, identifier, type, key, modifiers.
var fieldDecl = regexp.MustCompile("(?m)^([ \\t]+)([A-Z])[ \\t]+(.+?)[ \\t]*`json:\"([^\",]+)(,[^\"]*)?\"`")

// Fallback is an exact declaration renamed after the table pass, matching
// <indent><Identifier> <Type> `json:"<Key><Modifiers>"`.
type Fallback struct {
	Identifier string
	Type       string
	Key        string
	Modifiers  string
	Target     string
}

// DefaultFallbacks returns the six quote declarations that must be renamed
// even when the table pass misses them.
func DefaultFallbacks() []Fallback {
	return DefaultFallbacksFor(DefaultRenameTable())
}

// DefaultFallbacksFor returns the quote declarations whose key appears in
// table, each renamed to the table's target for that key.
func DefaultFallbacksFor(table RenameTable) []Fallback {
	var fallbacks []Fallback
	for _, fb := range []struct{ ident, typ string }{
		{"P", "*float64"},
		{"S", "*int"},
		{"X", "*int"},
	} {
		for _, key := range []string{fb.ident, strings.ToLower(fb.ident)} {
			target, ok := table[key]
			if !ok {
				continue
			}
			fallbacks = append(fallbacks, Fallback{
				Identifier: fb.ident,
				Type:       fb.typ,
				Key:        key,
				Modifiers:  ",omitempty",
				Target:     target,
			})
		}
	}
	return fallbacks
}

func (fb Fallback) validate() error {
	if fb.Identifier == "" || fb.Type == "" || fb.Key == "" {
		return &oaserrors.ConfigError{
			Option:  "fallback",
			Value:   fb.Identifier,
			Message: "identifier, type and key are required",
		}
	}
	if err := (RenameTable{fb.Key: fb.Target}).Validate(); err != nil {
		return &oaserrors.ConfigError{Option: "fallback", Value: fb.Target, Message: "invalid target", Cause: err}
	}
	return nil
}

func (fb Fallback) pattern() *regexp.Regexp {
	return regexp.MustCompile("(?m)^([ \\t]+)" + regexp.QuoteMeta(fb.Identifier) +
		"[ \\t]+" + regexp.QuoteMeta(fb.Type) +
		"[ \\t]*`json:\"" + regexp.QuoteMeta(fb.Key+fb.Modifiers) + "\"`")
}

// validateWithTable checks each fallback and then the table extended with
// the fallback targets, so the two passes cannot give one struct two
// fields with the same name.
func validateWithTable(table RenameTable, fallbacks []Fallback) error {
	merged := make(RenameTable, len(table)+len(fallbacks))
	maps.Copy(merged, table)
	for _, fb := range fallbacks {
		if err := fb.validate(); err != nil {
			return err
		}
		if target, ok := merged[fb.Key]; ok && target != fb.Target {
			return &oaserrors.ConfigError{
				Option:  "fallback",
				Value:   fb.Target,
				Message: fmt.Sprintf("fallback for key %q renames to %q but the table uses %q", fb.Key, fb.Target, target),
			}
		}
		merged[fb.Key] = fb.Target
	}
	if len(fallbacks) == 0 {
		return table.Validate()
	}
	if err := merged.Validate(); err != nil {
		return &oaserrors.ConfigError{Option: "fallback", Message: "fallback targets conflict with the rename table", Cause: err}
	}
	return nil
}

// referenceTargets maps each old short identifier to its new name: table
// keys that are their own identifier, then the matched fallbacks renaming
// an identifier equal to their key.
func referenceTargets(table RenameTable, fallbacks []Fallback) map[string]string {
	targets := make(map[string]string)
	for key, target := range table {
		if isShortIdentifier(key) && key != target {
			targets[key] = target
		}
	}
	for _, fb := range fallbacks {
		if fb.Key != fb.Identifier || !isShortIdentifier(fb.Identifier) {
			continue
		}
		if _, ok := targets[fb.Identifier]; !ok {
			targets[fb.Identifier] = fb.Target
		}
	}
	return targets
}

// rewriter accumulates fixes across passes.
type rewriter struct {
	logger parser.Logger
	fixes  []Fix
	// matched lists the fallbacks that renamed at least one declaration
	matched []Fallback
}

func (r *rewriter) record(fix Fix) {
	r.fixes = append(r.fixes, fix)
	r.logger.Debug("rewrote "+string(fix.Type), "line", fix.Line, "from", fix.Before, "to", fix.After, "key", fix.Key)
}

// renameFields is the table pass.
func (r *rewriter) renameFields(src string, table RenameTable) string {
	return replaceMatches(src, fieldDecl, func(line int, g []string) (string, bool) {
		indent, ident, typ, key, mods := g[1], g[2], g[3], g[4], g[5]
		target, ok := table[key]
		if !ok || target == ident {
			return "", false
		}
		r.record(Fix{Type: FixTypeRenamedField, Line: line, Key: key, Before: ident, After: target})
		return fmt.Sprintf("%s%s %s `json:\"%s%s\"`", indent, target, strings.TrimSpace(typ), key, mods), true
	})
}

// applyFallbacks is the exact-pattern pass.
func (r *rewriter) applyFallbacks(src string, fallbacks []Fallback) string {
	for _, fb := range fallbacks {
		before := len(r.fixes)
		src = replaceMatches(src, fb.pattern(), func(line int, g []string) (string, bool) {
			r.record(Fix{Type: FixTypeFallbackField, Line: line, Key: fb.Key, Before: fb.Identifier, After: fb.Target})
			return fmt.Sprintf("%s%s %s `json:\"%s%s\"`", g[1], fb.Target, fb.Type, fb.Key, fb.Modifiers), true
		})
		if n := len(r.fixes) - before; n > 0 {
			r.matched = append(r.matched, fb)
			r.logger.Info("fallback matched", "identifier", fb.Identifier, "key", fb.Key, "matches", n)
		}
	}
	return src
}

// rewriteReferences rewrites ".<old>" to ".<new>" everywhere in src.
func (r *rewriter) rewriteReferences(src string, targets map[string]string) string {
	olds := make([]string, 0, len(targets))
	for old := range targets {
		olds = append(olds, old)
	}
	slices.Sort(olds)

	for _, old := range olds {
		target := targets[old]
		re := regexp.MustCompile(`\.` + regexp.QuoteMeta(old) + `\b`)
		src = replaceMatches(src, re, func(line int, _ []string) (string, bool) {
			r.record(Fix{Type: FixTypeRewrittenReference, Line: line, Before: old, After: target})
			return "." + target, true
		})
	}
	return src
}

// replaceMatches rewrites each match of re in src with the string returned
// by repl, which receives the 1-based line of the match and its submatches.
// A match is left as is when repl returns false.
func replaceMatches(src string, re *regexp.Regexp, repl func(line int, groups []string) (string, bool)) string {
	matches := re.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src
	}

	var b strings.Builder
	b.Grow(len(src))
	last, line := 0, 1
	for _, m := range matches {
		line += strings.Count(src[last:m[0]], "\n")
		groups := make([]string, len(m)/2)
		for i := range groups {
			if m[2*i] >= 0 {
				groups[i] = src[m[2*i]:m[2*i+1]]
			}
		}
		b.WriteString(src[last:m[0]])
		if out, ok := repl(line, groups); ok {
			b.WriteString(out)
		} else {
			b.WriteString(groups[0])
		}
		line += strings.Count(groups[0], "\n")
		last = m[1]
	}
	b.WriteString(src[last:])
	return b.String()
}

// formatSource runs gofmt over src without touching the import list.
func formatSource(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
}
