// Package ast holds the parse tree of the command language: a block is a
// list of pipelines, a pipeline chains calls, a call is a command name plus
// spanned arguments. Argument words stay unclassified text; classification
// happens against the callee signature at evaluation time.
package ast

import (
	"strings"

	"tide/internal/token"
)

type Block struct {
	Pipelines []*Pipeline
	Span      token.Span
}

func (b *Block) IsEmpty() bool {
	return b == nil || len(b.Pipelines) == 0
}

type Pipeline struct {
	Calls []*Call
	Span  token.Span
}

type Call struct {
	Name token.Spanned
	Args []Arg
	Span token.Span
}

// Arg is either a bare word or a nested block literal.
type Arg interface {
	Span() token.Span
	argNode()
}

// Word is a single unclassified argument: a bare word, a quoted string, a
// number, a $variable reference, a flag or a bracketed list.
type Word struct {
	Text     string
	WordSpan token.Span
}

func (w *Word) Span() token.Span { return w.WordSpan }
func (w *Word) argNode()         {}

func (w *Word) IsVar() bool {
	return strings.HasPrefix(w.Text, "$")
}

func (w *Word) IsFlag() bool {
	return strings.HasPrefix(w.Text, "-") && w.Text != "-" && !isNumeric(w.Text)
}

// IsOperator reports whether the word is an arithmetic operator token.
// Operator adjacency is what marks a variable use as a math context.
func (w *Word) IsOperator() bool {
	switch w.Text {
	case "+", "-", "*", "/", "%":
		return true
	}
	return false
}

func isNumeric(text string) bool {
	if len(text) < 2 || text[0] != '-' {
		return false
	}
	for _, ch := range text[1:] {
		if (ch < '0' || ch > '9') && ch != '.' {
			return false
		}
	}
	return true
}

// BlockArg is a `{ ... }` literal argument carrying its own parsed block.
type BlockArg struct {
	Block *Block
	Raw   string
}

func (b *BlockArg) Span() token.Span { return b.Block.Span }
func (b *BlockArg) argNode()         {}
