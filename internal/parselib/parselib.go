// Package parselib is a small combinator framework for parsing over a token
// slice with an explicit cursor. Parsers never abort: a failed parse returns
// a usable default value, the original cursor and a diagnostic, so callers
// always keep a consistent cursor and can keep building partial results.
package parselib

import (
	"log/slog"

	"tide/internal/errs"
	"tide/internal/token"
)

// Parser is the base contract. On success Parse returns the consumed value
// and the advanced index with a nil error. On failure it must still return
// DefaultErrorValue() and the original index. The cursor is monotonically
// non-decreasing; that invariant is what lets driving loops terminate.
type Parser[T any] interface {
	Parse(tokens []token.Token, i int) (T, int, *errs.ParseError)
	DisplayName() string
	DefaultErrorValue() T
}

// Opt is an optional parse result; Set reports whether the value is present.
type Opt[T any] struct {
	Set   bool
	Value T
}

func Some[T any](v T) Opt[T] { return Opt[T]{Set: true, Value: v} }

type Pair[A, B any] struct {
	First  A
	Second B
}

type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Spanned carries a parsed value together with the span of the tokens it
// was built from.
type Spanned[T any] struct {
	Item T
	Span token.Span
}

// MismatchResult is the conventional failure return for a leaf parser: the
// default value, an unmoved cursor and a mismatch diagnostic against the
// current token.
func MismatchResult[T any](p Parser[T], tokens []token.Token, i int) (T, int, *errs.ParseError) {
	actual := ""
	span := token.UnknownSpan()
	if i < len(tokens) {
		actual = tokens[i].Text
		span = tokens[i].Span
	}
	return p.DefaultErrorValue(), i, errs.NewMismatch(p.DisplayName(), actual, span)
}

// Expect requires its sub-parser to match. When no tokens remain it produces
// an unexpected-end-of-input error tagged with the span of the last seen
// token, or an unknown span if the stream was empty.
type Expect[T any] struct {
	P Parser[T]
}

func (e Expect[T]) Parse(tokens []token.Token, i int) (T, int, *errs.ParseError) {
	if i < len(tokens) {
		return e.P.Parse(tokens, i)
	}
	slog.Debug("expect found no tokens", slog.String("parser", e.P.DisplayName()))
	lastSpan := token.UnknownSpan()
	if len(tokens) > 0 {
		lastSpan = tokens[len(tokens)-1].Span
	}
	return e.P.DefaultErrorValue(), i, errs.NewUnexpectedEOF(e.P.DisplayName(), lastSpan)
}

func (e Expect[T]) DisplayName() string  { return e.P.DisplayName() }
func (e Expect[T]) DefaultErrorValue() T { return e.P.DefaultErrorValue() }

// Maybe attempts its sub-parser; when that fails the error is swallowed and
// the cursor rewound. Maybe never bubbles an error up, which is how optional
// grammar productions are expressed.
type Maybe[T any] struct {
	P Parser[T]
}

func (m Maybe[T]) Parse(tokens []token.Token, i int) (Opt[T], int, *errs.ParseError) {
	v, newI, err := m.P.Parse(tokens, i)
	if err != nil {
		slog.Debug("optional production not present", slog.String("parser", m.P.DisplayName()))
		return Opt[T]{}, i, nil
	}
	return Some(v), newI, nil
}

func (m Maybe[T]) DisplayName() string { return m.P.DisplayName() + "?" }
func (m Maybe[T]) DefaultErrorValue() Opt[T] {
	return Some(m.P.DefaultErrorValue())
}

// AndThen parses First then Second. Both sub-parsers are fully driven even
// when the first fails, so diagnostics accumulate instead of aborting; the
// first error encountered wins.
type AndThen[A, B any] struct {
	First  Parser[A]
	Second Parser[B]
}

func (a AndThen[A, B]) Parse(tokens []token.Token, i int) (Pair[A, B], int, *errs.ParseError) {
	first, i, errFirst := a.First.Parse(tokens, i)
	second, i, errSecond := a.Second.Parse(tokens, i)
	return Pair[A, B]{First: first, Second: second}, i, errFirst.Or(errSecond)
}

func (a AndThen[A, B]) DisplayName() string {
	return a.First.DisplayName() + " >> " + a.Second.DisplayName()
}

func (a AndThen[A, B]) DefaultErrorValue() Pair[A, B] {
	return Pair[A, B]{First: a.First.DefaultErrorValue(), Second: a.Second.DefaultErrorValue()}
}

// And3 is sequential composition of three parsers.
type And3[A, B, C any] struct {
	First  Parser[A]
	Second Parser[B]
	Third  Parser[C]
}

func (a And3[A, B, C]) Parse(tokens []token.Token, i int) (Triple[A, B, C], int, *errs.ParseError) {
	first, i, err1 := a.First.Parse(tokens, i)
	second, i, err2 := a.Second.Parse(tokens, i)
	third, i, err3 := a.Third.Parse(tokens, i)
	return Triple[A, B, C]{First: first, Second: second, Third: third}, i, err1.Or(err2).Or(err3)
}

func (a And3[A, B, C]) DisplayName() string {
	return a.First.DisplayName() + " >> " + a.Second.DisplayName() + " >> " + a.Third.DisplayName()
}

func (a And3[A, B, C]) DefaultErrorValue() Triple[A, B, C] {
	return Triple[A, B, C]{
		First:  a.First.DefaultErrorValue(),
		Second: a.Second.DefaultErrorValue(),
		Third:  a.Third.DefaultErrorValue(),
	}
}

// IfSuccessThen parses Try optionally; if and only if Try matched, Then
// becomes mandatory and its failure is a hard error. If Try did not match
// the whole production is skipped with no error. This models "if you saw a
// ':' you now owe me a type".
type IfSuccessThen[A, B any] struct {
	Try  Parser[A]
	Then Parser[B]
}

func (s IfSuccessThen[A, B]) Parse(tokens []token.Token, i int) (Opt[Pair[A, B]], int, *errs.ParseError) {
	try, newI, errTry := Maybe[A]{P: s.Try}.Parse(tokens, i)
	if !try.Set {
		return Opt[Pair[A, B]]{}, i, nil
	}
	then, newI, errThen := Expect[B]{P: s.Then}.Parse(tokens, newI)
	return Some(Pair[A, B]{First: try.Value, Second: then}), newI, errTry.Or(errThen)
}

func (s IfSuccessThen[A, B]) DisplayName() string {
	return "(" + s.Try.DisplayName() + " >> " + s.Then.DisplayName() + ")?"
}

func (s IfSuccessThen[A, B]) DefaultErrorValue() Opt[Pair[A, B]] {
	return Some(Pair[A, B]{
		First:  s.Try.DefaultErrorValue(),
		Second: s.Then.DefaultErrorValue(),
	})
}

// Discard runs its sub-parser and keeps the cursor and error but drops the
// value. For syntactic markers that carry no payload.
type Discard[T any] struct {
	P Parser[T]
}

func (d Discard[T]) Parse(tokens []token.Token, i int) (struct{}, int, *errs.ParseError) {
	_, i, err := d.P.Parse(tokens, i)
	return struct{}{}, i, err
}

func (d Discard[T]) DisplayName() string         { return d.P.DisplayName() }
func (d Discard[T]) DefaultErrorValue() struct{} { return struct{}{} }

// WithSpan wraps a parser's output with the span of the tokens it consumed.
type WithSpan[T any] struct {
	P Parser[T]
}

func (w WithSpan[T]) Parse(tokens []token.Token, i int) (Spanned[T], int, *errs.ParseError) {
	v, newI, err := w.P.Parse(tokens, i)
	span := token.UnknownSpan()
	if newI > i && newI <= len(tokens) {
		span = tokens[i].Span.Until(tokens[newI-1].Span)
	}
	return Spanned[T]{Item: v, Span: span}, newI, err
}

func (w WithSpan[T]) DisplayName() string { return w.P.DisplayName() }
func (w WithSpan[T]) DefaultErrorValue() Spanned[T] {
	return Spanned[T]{Item: w.P.DefaultErrorValue(), Span: token.UnknownSpan()}
}
