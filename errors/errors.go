// Package errors defines the error type shared by all dsn subpackages.
package errors

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors = 1   // used by grammar
	SyntaxErrors  = 101 // used by parser
	DsnErrors     = 201 // used by the root dsn package
)

// NoPos marks errors that are not tied to an input offset.
const NoPos = -1

// Error is the error type used by dsn subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message.
	Message string

	// Pos contains the byte offset in the parsed input for syntax errors, NoPos otherwise.
	Pos int

	// Expected contains the rule and token names attempted at Pos for syntax errors, nil otherwise.
	Expected []string
}

// New creates a new Error structure with no position information.
func New(code int, msg string) *Error {
	return &Error{code, msg, NoPos, nil}
}

// Format creates an Error structure with no position information.
// params will be added to the error message using fmt.Sprintf.
func Format(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return New(code, msg)
}

// FormatPos creates an Error structure tied to a byte offset in the parsed input.
// params will be added to the error message using fmt.Sprintf.
func FormatPos(pos int, expected []string, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return &Error{code, msg, pos, expected}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}
