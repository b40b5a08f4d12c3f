package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a diagnostic.
type ErrorKind uint8

const (
	// KindSyntax is a malformed token stream. Recoverable while parsing.
	KindSyntax ErrorKind = iota + 1
	// KindRuntime is a wrong operand kind or an undefined name. Aborts execution.
	KindRuntime
	// KindInternal is a broken invariant of the interpreter itself.
	KindInternal
)

// String returns the label shown in error summaries.
func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "SyntaxError"
	case KindRuntime:
		return "RuntimeError"
	case KindInternal:
		return "InternalError"
	default:
		return "Error"
	}
}

// ErrorCode identifies a specific diagnostic.
type ErrorCode string

// Error codes.
const (
	// S0xxx: lexer and parser errors
	ErrStringNotClosed      ErrorCode = "S0101"
	ErrUnexpectedCharacter  ErrorCode = "S0102"
	ErrExpectedExpression   ErrorCode = "S0201"
	ErrExpectedToken        ErrorCode = "S0202"
	ErrInvalidAssignTarget  ErrorCode = "S0203"
	ErrExpectedVariableName ErrorCode = "S0204"
	ErrUnsupportedKeyword   ErrorCode = "S0205"
	ErrNestingTooDeep       ErrorCode = "S0206"

	// R0xxx: runtime errors
	ErrUndefinedVariable ErrorCode = "R0101"
	ErrInvalidOperands   ErrorCode = "R0201"
	ErrInvalidComparison ErrorCode = "R0202"
	ErrInvalidUnary      ErrorCode = "R0203"
	ErrStringTooLong     ErrorCode = "R0204"
	ErrOutputFailed      ErrorCode = "R0301"

	// I0xxx: interpreter bugs
	ErrNumberParse ErrorCode = "I0001"
	ErrUnknownNode ErrorCode = "I0002"
)

// Diagnostic is an error that can point into the source it came from.
type Diagnostic interface {
	error
	Location() Location
	Details(path, source string) string
}

// Error is a single located diagnostic.
type Error struct {
	Kind     ErrorKind
	Code     ErrorCode
	Message  string
	Position Location
	Token    string
	Err      error
}

// NewError creates a new diagnostic.
func NewError(kind ErrorKind, code ErrorCode, message string, loc Location) *Error {
	return &Error{
		Kind:     kind,
		Code:     code,
		Message:  message,
		Position: loc,
	}
}

// NewSyntaxError creates a syntax diagnostic.
func NewSyntaxError(code ErrorCode, message string, loc Location) *Error {
	return NewError(KindSyntax, code, message, loc)
}

// NewRuntimeError creates a runtime diagnostic.
func NewRuntimeError(code ErrorCode, message string, loc Location) *Error {
	return NewError(KindRuntime, code, message, loc)
}

// NewInternalError creates a diagnostic for a broken interpreter invariant.
func NewInternalError(code ErrorCode, message string, loc Location) *Error {
	return NewError(KindInternal, code, message, loc)
}

// Error implements the error interface. It never includes source text.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// Location returns where the error was detected.
func (e *Error) Location() Location {
	return e.Position
}

// Details renders the error with a source excerpt.
func (e *Error) Details(path, source string) string {
	return renderExcerpt(path, source, e.Position)
}

// AggregateError holds the syntax errors collected in one pass, in source order.
type AggregateError struct {
	Errors []*Error
}

// Error summarises the collected errors.
func (a *AggregateError) Error() string {
	switch len(a.Errors) {
	case 0:
		return "SyntaxError: no errors"
	case 1:
		return a.Errors[0].Error()
	default:
		return fmt.Sprintf("%d syntax errors (first: %s)", len(a.Errors), a.Errors[0].Error())
	}
}

// Location returns the location of the first error.
func (a *AggregateError) Location() Location {
	if len(a.Errors) == 0 {
		return Location{}
	}
	return a.Errors[0].Position
}

// Details renders every error with its own excerpt.
func (a *AggregateError) Details(path, source string) string {
	if len(a.Errors) == 1 {
		return a.Errors[0].Details(path, source)
	}
	blocks := make([]string, 0, len(a.Errors))
	for _, e := range a.Errors {
		blocks = append(blocks, e.Error()+"\n"+e.Details(path, source))
	}
	return strings.Join(blocks, "\n\n")
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (a *AggregateError) Unwrap() []error {
	errs := make([]error, len(a.Errors))
	for i, e := range a.Errors {
		errs[i] = e
	}
	return errs
}

// AsDiagnostic extracts a Diagnostic from err, if it wraps one.
func AsDiagnostic(err error) (Diagnostic, bool) {
	var agg *AggregateError
	if errors.As(err, &agg) {
		return agg, true
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// HasCode reports whether err is, or contains, a diagnostic with the given code.
func HasCode(err error, code ErrorCode) bool {
	var agg *AggregateError
	if errors.As(err, &agg) {
		for _, e := range agg.Errors {
			if e.Code == code {
				return true
			}
		}
		return false
	}
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
