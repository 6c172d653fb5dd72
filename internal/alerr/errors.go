// Package alerr provides standardized error handling for tabula.
// All errors have stable, machine-readable codes, structured context, and proper wrapping.
package alerr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code represents a stable, machine-readable error code.
// Format: T{category}{number}.
type Code string

// Error codes organized by category.
const (
	// Graph errors (T1xxx) - rejected schema graph mutations
	ErrMissingPrimaryKey Code = "T1001" // Relation endpoints have no primary key
	ErrNotFound          Code = "T1002" // Table, column or relation does not exist
	ErrInvalidReference  Code = "T1003" // Malformed table.column reference
	ErrInvalidArgument   Code = "T1004" // Operation argument is malformed

	// Compile diagnostics (T2xxx) - recovered locally by the SQL compiler
	ErrDanglingReference Code = "T2001" // FK or relation endpoint points at nothing
	ErrDuplicateName     Code = "T2002" // Two tables or columns share a name
	ErrEmptyName         Code = "T2003" // Table or column has no name
	ErrInvalidName       Code = "T2004" // Name needs quoting or truncation
	ErrStaleOutput       Code = "T2005" // Compiled SQL no longer matches the project

	// Project errors (T3xxx) - persistence
	ErrInvalidProject Code = "T3001" // Project file is malformed
	ErrIO             Code = "T3002" // Reading or writing a file failed

	// Configuration errors (T4xxx)
	ErrInvalidConfig      Code = "T4001" // Config file is malformed
	ErrUnsupportedDialect Code = "T4002" // Dialect is not supported

	// Internal errors (T9xxx)
	EInternalError Code = "T9001" // Internal error
)

// Error is the standard error type for tabula.
type Error struct {
	code    Code
	message string
	context map[string]any
	cause   error
}

// Error returns the formatted error string.
// Format:
//
//	[T1001] relation requires a primary key on one endpoint
//	  column: name
//	  table: users
func (e *Error) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.code, e.message)

	if len(e.context) > 0 {
		keys := make([]string, 0, len(e.context))
		for k := range e.context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprintf(&b, "\n  %s: %v", k, e.context[k])
		}
	}

	if e.cause != nil {
		fmt.Fprintf(&b, "\n  cause: %v", e.cause)
	}

	return b.String()
}

// Unwrap returns the underlying cause error for errors.Unwrap compatibility.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.code == targetErr.code
	}
	return false
}

// GetCode returns the error code.
func (e *Error) GetCode() Code {
	return e.code
}

// GetMessage returns the error message.
func (e *Error) GetMessage() string {
	return e.message
}

// GetContext returns the error context map.
func (e *Error) GetContext() map[string]any {
	return e.context
}

// GetCause returns the underlying cause error.
func (e *Error) GetCause() error {
	return e.cause
}

// With adds a key-value pair to the error context.
// Returns the error for method chaining.
func (e *Error) With(key string, value any) *Error {
	if e.context == nil {
		e.context = make(map[string]any)
	}
	e.context[key] = value
	return e
}

// WithTable adds table context to the error.
func (e *Error) WithTable(table string) *Error {
	return e.With("table", table)
}

// WithColumn adds column context to the error.
func (e *Error) WithColumn(name string) *Error {
	return e.With("column", name)
}

// WithFile adds file path context to the error.
func (e *Error) WithFile(path string) *Error {
	return e.With("file", path)
}

// WithHelp adds a help suggestion to the error (displayed as "help: ...").
func (e *Error) WithHelp(help string) *Error {
	helps, _ := e.context["helps"].([]string)
	helps = append(helps, help)
	return e.With("helps", helps)
}

// Helps returns all help suggestions attached to this error.
func (e *Error) Helps() []string {
	helps, _ := e.context["helps"].([]string)
	return helps
}

// New creates a new Error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new Error that wraps an existing error.
func Wrap(code Code, err error, msg string) *Error {
	e := New(code, msg)
	e.cause = err
	return e
}

// Wrapf creates a new Error that wraps an existing error with a formatted message.
func Wrapf(code Code, err error, format string, args ...any) *Error {
	return Wrap(code, err, fmt.Sprintf(format, args...))
}

// GetErrorCode extracts the error code from an error chain.
// Returns empty string if no code is found.
func GetErrorCode(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ""
}

// Is checks if an error has the specified code.
func Is(err error, code Code) bool {
	return GetErrorCode(err) == code
}

// Sentinel is a bare error with the given code, for use with errors.Is.
func Sentinel(code Code) error {
	return &Error{code: code}
}
