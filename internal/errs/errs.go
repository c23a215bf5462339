// Package errs defines the two error families of the engine: recoverable
// grammar errors that are accumulated while parsing continues, and labeled
// runtime errors that abort the enclosing operation.
package errs

import (
	"fmt"

	"tide/internal/token"
)

type ParseErrorKind int

const (
	// Mismatch means an expected grammar production was absent at the
	// current token. Recorded, not fatal; parsing continues with a
	// default value.
	Mismatch ParseErrorKind = iota
	// UnexpectedEOF means a mandatory production found no tokens left.
	UnexpectedEOF
)

// ParseError is always paired with a best-effort value so callers can keep
// building partial results.
type ParseError struct {
	Kind     ParseErrorKind
	Expected string
	Actual   string
	Span     token.Span
}

func NewMismatch(expected string, actual string, span token.Span) *ParseError {
	return &ParseError{Kind: Mismatch, Expected: expected, Actual: actual, Span: span}
}

func NewUnexpectedEOF(expected string, span token.Span) *ParseError {
	return &ParseError{Kind: UnexpectedEOF, Expected: expected, Span: span}
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnexpectedEOF:
		return fmt.Sprintf("unexpected end of input, expected %s", e.Expected)
	default:
		return fmt.Sprintf("expected %s, got %q", e.Expected, e.Actual)
	}
}

// Or keeps the first recorded error: grammar errors accumulate
// first-wins for reporting.
func (e *ParseError) Or(other *ParseError) *ParseError {
	if e != nil {
		return e
	}
	return other
}

// LabeledError is a semantic or runtime violation surfaced to the user with
// a primary message, a short label and a source span. It aborts the
// enclosing operation.
type LabeledError struct {
	Message string
	Label   string
	Span    token.Span
}

func NewLabeled(message, label string, span token.Span) *LabeledError {
	return &LabeledError{Message: message, Label: label, Span: span}
}

func Untagged(format string, args ...any) *LabeledError {
	return &LabeledError{Message: fmt.Sprintf(format, args...), Span: token.UnknownSpan()}
}

func (e *LabeledError) Error() string {
	if e.Label == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s, at %s)", e.Message, e.Label, e.Span)
}
