// Package taberrors provides structured error handling for tabular with
// rich context, stack traces, and error categorization.
//
// Errors carry an ErrorType so callers can branch on the failure class
// (malformed input, field-count mismatch, configuration, ...) instead of
// matching message strings, and a Details map for positional context such
// as byte offsets and line numbers.
//
//	if err := parse(chunk); err != nil {
//	    return taberrors.Wrap(err, taberrors.ErrorTypeMalformed, "unterminated quoted field").
//	        WithDetail("byte_offset", off).
//	        WithDetail("line", line)
//	}
package taberrors

import (
	"errors"
	"runtime"

	stringpool "github.com/tabular-dev/tabular/pkg/strings"
)

// ErrorType categorizes a failure class for error handling strategies.
type ErrorType string

const (
	// ErrorTypeInternal represents internal engine errors
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeValidation represents invalid arguments or table state
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeMalformed represents structurally invalid input, such as an
	// unterminated quote; the byte offset is attached as a detail
	ErrorTypeMalformed ErrorType = "malformed_input"
	// ErrorTypeFieldCount represents a row whose field count does not match
	// the header width
	ErrorTypeFieldCount ErrorType = "field_count"
	// ErrorTypeData represents value conversion errors
	ErrorTypeData ErrorType = "data"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeFile represents file operation errors
	ErrorTypeFile ErrorType = "file"
)

// Error is a structured error with a type, contextual details, and the
// call stack captured at the point of creation.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame records one frame of the call stack at error creation.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return stringpool.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return stringpool.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a key-value detail to the error. Chainable.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Detail returns the detail stored under key, or nil.
func (e *Error) Detail(key string) interface{} {
	if e.Details == nil {
		return nil
	}
	return e.Details[key]
}

// New creates a new error with the given type and message, capturing the
// call stack at the point of creation.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf creates a new error with a formatted message.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: stringpool.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error, preserving it as the cause. If err is
// already a structured Error its stack is preserved. Returns nil for a
// nil input.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	var existing *Error
	if errors.As(err, &existing) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existing.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType reports whether err (or anything in its chain) is a structured
// Error of the given type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
