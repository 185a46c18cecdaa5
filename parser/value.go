package parser

import "strconv"

// ValueKind classifies a Value.
type ValueKind int

const (
	// ValueAbsent means the field was not present in the source.
	ValueAbsent ValueKind = iota
	ValueString
	ValueInteger
	ValueNumber
	ValueBoolean
	ValueNull
	ValueList
	ValueMap
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case ValueAbsent:
		return "absent"
	case ValueString:
		return "string"
	case ValueInteger:
		return "integer"
	case ValueNumber:
		return "number"
	case ValueBoolean:
		return "boolean"
	case ValueNull:
		return "null"
	case ValueList:
		return "list"
	case ValueMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a literal taken from the document (an example, default, or enum
// member). Scalars keep their source text in Raw so they can be reproduced
// verbatim; lists and maps only record their kind.
type Value struct {
	Kind ValueKind
	Raw  string
}

// IsPresent reports whether the field appeared in the source, including an
// explicit null.
func (v Value) IsPresent() bool {
	return v.Kind != ValueAbsent
}

// IsScalar reports whether the value is a string, number, or boolean.
func (v Value) IsScalar() bool {
	switch v.Kind {
	case ValueString, ValueInteger, ValueNumber, ValueBoolean:
		return true
	default:
		return false
	}
}

// GoLiteral renders a scalar as Go source. Strings are quoted, numbers are
// copied verbatim and booleans are normalized when possible. The second
// result is false for non-scalar values.
func (v Value) GoLiteral() (string, bool) {
	switch v.Kind {
	case ValueString:
		return strconv.Quote(v.Raw), true
	case ValueInteger, ValueNumber:
		return v.Raw, true
	case ValueBoolean:
		b, err := strconv.ParseBool(v.Raw)
		if err != nil {
			return v.Raw, true
		}
		return strconv.FormatBool(b), true
	default:
		return "", false
	}
}
