package fixer

import (
	"fmt"
	"go/token"
	"os"
	"slices"
	"unicode/utf8"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/clientdocs/oaserrors"
)

// RenameTable maps a JSON key to the Go identifier its field should have.
type RenameTable map[string]string

// DefaultRenameTable returns the table for quote and trade payloads, where
// upper-case keys describe the ask side and lower-case keys the bid side.
func DefaultRenameTable() RenameTable {
	return RenameTable{
		"P": "AskPrice",
		"p": "BidPrice",
		"S": "AskSize",
		"s": "BidSize",
		"X": "AskExchange",
		"x": "BidExchange",
		"T": "Ticker",
		"t": "Timestamp",
	}
}

// LoadRenameTable reads a YAML or JSON mapping of key to identifier from
// path and validates it.
func LoadRenameTable(path string) (RenameTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixer: reading rename table: %w", err)
	}

	var table RenameTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, &oaserrors.ConfigError{
			Option:  "rename table",
			Value:   path,
			Message: "not a mapping of JSON key to identifier",
			Cause:   err,
		}
	}
	if len(table) == 0 {
		return nil, &oaserrors.ConfigError{Option: "rename table", Value: path, Message: "table is empty"}
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Keys returns the table keys in sorted order.
func (t RenameTable) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Validate checks that applying the table cannot itself introduce a clash:
// keys are non-empty, targets are exported identifiers, no target is also a
// key, and no two keys share a target.
func (t RenameTable) Validate() error {
	owners := make(map[string]string, len(t))
	for _, key := range t.Keys() {
		target := t[key]
		switch {
		case key == "":
			return &oaserrors.ConfigError{Option: "rename table", Message: "empty JSON key"}
		case !token.IsIdentifier(target) || !token.IsExported(target):
			return &oaserrors.ConfigError{
				Option:  "rename table",
				Value:   target,
				Message: fmt.Sprintf("target for key %q is not an exported Go identifier", key),
			}
		}
		if _, isKey := t[target]; isKey && target != key {
			return &oaserrors.ConfigError{
				Option:  "rename table",
				Value:   target,
				Message: fmt.Sprintf("target for key %q is also a key in the table", key),
			}
		}
		if owner, taken := owners[target]; taken {
			return &oaserrors.ConfigError{
				Option:  "rename table",
				Value:   target,
				Message: fmt.Sprintf("keys %q and %q share the same target", owner, key),
			}
		}
		owners[target] = key
	}
	return nil
}

// isShortIdentifier reports whether key is a single upper-case ASCII
// letter, i.e. the key is also the field name a generator derives from it.
func isShortIdentifier(key string) bool {
	return utf8.RuneCountInString(key) == 1 && key[0] >= 'A' && key[0] <= 'Z'
}
