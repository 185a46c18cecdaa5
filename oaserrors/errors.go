package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates the input document could not be loaded.
	ErrParse = errors.New("parse error")

	// ErrDocumentNotFound indicates the input document does not exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrResourceLimit indicates a traversal limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrCycle indicates a schema refers back to one of its ancestors.
	ErrCycle = errors.New("schema cycle")

	// ErrRewrite indicates a generated artifact could not be read or written.
	ErrRewrite = errors.New("rewrite error")
)

// ParseError represents a failure to load an OpenAPI document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// NotFound is true when the document does not exist
	NotFound bool
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.NotFound {
		msg = "document not found"
	}
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// A ParseError with NotFound set also matches ErrDocumentNotFound.
func (e *ParseError) Is(target error) bool {
	if target == ErrParse {
		return true
	}
	return target == ErrDocumentNotFound && e.NotFound
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// ResourceLimitError is returned when schema traversal would not terminate
// or would exceed the configured nesting depth.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded, e.g. "schema_depth"
	ResourceType string
	// Context is the breadcrumb of the schema where traversal stopped
	Context string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// IsCycle is true when the schema graph loops back on itself
	IsCycle bool
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.IsCycle {
		msg = "schema cycle"
	}
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Context != "" {
		msg += " at " + e.Context
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	if target == ErrResourceLimit {
		return true
	}
	return target == ErrCycle && e.IsCycle
}

// RewriteError represents an I/O failure while rewriting a generated artifact.
type RewriteError struct {
	// Path is the artifact path
	Path string
	// Op is the failed operation ("read" or "write")
	Op string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *RewriteError) Error() string {
	msg := "rewrite error"
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *RewriteError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *RewriteError) Is(target error) bool {
	return target == ErrRewrite
}
