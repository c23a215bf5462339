// Package parser groups the lexer's token stream into the block / pipeline /
// call tree. It is a light grouping pass: words are not classified here.
package parser

import (
	"strings"

	"tide/internal/ast"
	"tide/internal/errs"
	"tide/internal/lexer"
	"tide/internal/token"
)

// Parse turns source text into a block. Parsing is best-effort: a partial
// tree is returned alongside the first error encountered.
func Parse(src string, spanOffset int) (*ast.Block, *errs.ParseError) {
	tokens, err := lexer.Lex(src, spanOffset)
	block, groupErr := group(tokens)
	return block, err.Or(groupErr)
}

func group(tokens []token.Token) (*ast.Block, *errs.ParseError) {
	block := &ast.Block{}
	var err *errs.ParseError

	pipeline := &ast.Pipeline{}
	call := (*ast.Call)(nil)

	flushCall := func() {
		if call != nil {
			pipeline.Calls = append(pipeline.Calls, call)
			call = nil
		}
	}
	flushPipeline := func() {
		flushCall()
		if len(pipeline.Calls) > 0 {
			pipeline.Span = pipeline.Calls[0].Span.Until(pipeline.Calls[len(pipeline.Calls)-1].Span)
			block.Pipelines = append(block.Pipelines, pipeline)
		}
		pipeline = &ast.Pipeline{}
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case token.EOL, token.Semicolon:
			flushPipeline()
		case token.Pipe:
			if call == nil {
				err = err.Or(errs.NewMismatch("command before pipe", tok.Text, tok.Span))
				continue
			}
			flushCall()
		case token.Comment:
			// dropped at this level; the signature grammar has its own use
		case token.Baseline:
			if call == nil {
				call = &ast.Call{
					Name: token.NewSpanned(tok.Text, tok.Span),
					Span: tok.Span,
				}
				continue
			}
			call.Args = append(call.Args, argFromToken(tok))
			call.Span = call.Span.Until(tok.Span)
		}
	}
	flushPipeline()

	if len(block.Pipelines) > 0 {
		block.Span = block.Pipelines[0].Span.Until(block.Pipelines[len(block.Pipelines)-1].Span)
	}
	return block, err
}

// argFromToken turns a block literal into a nested parsed block; everything
// else stays a word.
func argFromToken(tok token.Token) ast.Arg {
	if strings.HasPrefix(tok.Text, "{") && strings.HasSuffix(tok.Text, "}") {
		interior := tok.Text[1 : len(tok.Text)-1]
		inner, _ := Parse(interior, tok.Span.Start+1)
		if inner.Span.IsUnknown() {
			inner.Span = tok.Span
		}
		return &ast.BlockArg{Block: inner, Raw: tok.Text}
	}
	return &ast.Word{Text: tok.Text, WordSpan: tok.Span}
}
