package edn

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors, one per failure category the reader distinguishes.
// Every *Error this package produces unwraps (via errors.Unwrap) to exactly
// one of these, so callers can test with errors.Is(err, edn.ErrDuplicateKey).
var (
	ErrUnexpectedEOF      = fmt.Errorf("edn: unexpected end of input")
	ErrInvalidSyntax      = fmt.Errorf("edn: invalid syntax")
	ErrInvalidNumber      = fmt.Errorf("edn: invalid number")
	ErrInvalidEscape      = fmt.Errorf("edn: invalid escape")
	ErrInvalidCharacter   = fmt.Errorf("edn: invalid character")
	ErrInvalidString      = fmt.Errorf("edn: invalid string")
	ErrInvalidDiscard     = fmt.Errorf("edn: invalid discard")
	ErrInvalidRadix       = fmt.Errorf("edn: invalid radix")
	ErrUnmatchedDelimiter = fmt.Errorf("edn: unmatched delimiter")
	ErrDuplicateElement   = fmt.Errorf("edn: duplicate element")
	ErrDuplicateKey       = fmt.Errorf("edn: duplicate key")
	ErrUnknownTag         = fmt.Errorf("edn: unknown tag")
	ErrReaderError        = fmt.Errorf("edn: reader error")
	ErrRecursionTooDeep   = fmt.Errorf("edn: recursion too deep")
	ErrOutOfMemory        = fmt.Errorf("edn: out of memory")
	ErrDivideByZero       = fmt.Errorf("edn: divide by zero")
	ErrTrailingContent    = fmt.Errorf("edn: trailing content")

	// ErrType is returned by Value accessor methods (AsInt, AsString, ...)
	// when called against a Value of the wrong Kind.
	ErrType = fmt.Errorf("edn: type error")
)

// Error is the structured failure this package reports: a Kind drawn from
// the sentinel list above, a source Span when one is known, and a
// human-readable message. It implements error and Unwrap, and is created
// with pkg/errors.WithStack so a stack trace travels with the first site
// that detected the problem, useful given how deep EDN's recursive
// collection/tagged/metadata nesting can get before an inner error
// surfaces at the top level.
type Error struct {
	Kind    error
	Span    Span
	HasSpan bool
	Msg     string
	stack   error
}

func (e *Error) Error() string {
	if e.HasSpan {
		return fmt.Sprintf("%s: %s (at %d-%d)", e.Kind, e.Msg, e.Span.Start, e.Span.End)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap lets errors.Is(err, edn.ErrInvalidNumber) and friends work.
func (e *Error) Unwrap() error { return e.Kind }

// StackTrace returns the call stack captured at the site that first
// detected this error, in pkg/errors' format, for callers that want more
// than the one-line message Error() gives.
func (e *Error) StackTrace() pkgerrors.StackTrace {
	type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
	if st, ok := e.stack.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

func newErrorAt(kind error, span Span, format string, args ...any) *Error {
	e := &Error{Kind: kind, Span: span, HasSpan: true, Msg: fmt.Sprintf(format, args...)}
	e.stack = pkgerrors.WithStack(e.Kind)
	return e
}

func newError(kind error, format string, args ...any) *Error {
	e := &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
	e.stack = pkgerrors.WithStack(e.Kind)
	return e
}
