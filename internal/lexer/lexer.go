// Package lexer turns raw source text into a flat sequence of spanned
// tokens: baseline runs of non-delimiter text, pipeline delimiters, comments
// and end-of-line markers. Quoted strings and balanced bracket groups stay
// inside a single baseline token; later passes refine them.
package lexer

import (
	"strings"
	"unicode/utf8"

	"tide/internal/errs"
	"tide/internal/token"
)

type lexer struct {
	input        string
	spanOffset   int
	position     int  // current byte position in input (start of current rune)
	readPosition int  // next byte position in input (start of next rune)
	ch           rune // current rune under examination; 0 means EOF
}

// Lex tokenizes input. Spans are byte offsets into the enclosing source,
// shifted by spanOffset so that tokens lexed from an embedded literal (a
// signature body, an alias expansion) still point at the original text.
// A best-effort token slice is always returned, even alongside an error.
func Lex(input string, spanOffset int) ([]token.Token, *errs.ParseError) {
	l := &lexer{input: input, spanOffset: spanOffset}
	l.readChar()

	var tokens []token.Token
	var err *errs.ParseError

	for l.ch != 0 {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\n':
			start := l.position
			l.readChar()
			tokens = append(tokens, token.New(token.EOL, "\n", l.span(start, l.position)))
		case l.ch == '|':
			start := l.position
			l.readChar()
			tokens = append(tokens, token.New(token.Pipe, "|", l.span(start, l.position)))
		case l.ch == ';':
			start := l.position
			l.readChar()
			tokens = append(tokens, token.New(token.Semicolon, ";", l.span(start, l.position)))
		case l.ch == '#':
			tokens = append(tokens, l.readComment())
		default:
			tok, lexErr := l.readBaseline()
			tokens = append(tokens, tok)
			err = err.Or(lexErr)
		}
	}

	return tokens, err
}

func (l *lexer) span(start, end int) token.Span {
	return token.NewSpan(start+l.spanOffset, end+l.spanOffset)
}

func (l *lexer) readComment() token.Token {
	start := l.position
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	return token.New(token.Comment, l.input[start:l.position], l.span(start, l.position))
}

// readBaseline consumes a run of text up to the next unnested delimiter.
// Bracket groups and quoted strings are swallowed whole, so `{ ls $x }` and
// "a b" each come out as one token.
func (l *lexer) readBaseline() (token.Token, *errs.ParseError) {
	start := l.position
	var err *errs.ParseError
	var depth []rune // stack of open group characters

	for l.ch != 0 {
		if len(depth) == 0 && (l.ch == ' ' || l.ch == '\t' || l.ch == '\r' ||
			l.ch == '\n' || l.ch == '|' || l.ch == ';') {
			break
		}
		switch l.ch {
		case '\'', '"', '`':
			err = err.Or(l.skipQuoted(l.ch))
			continue
		case '(', '[', '{':
			depth = append(depth, l.ch)
		case ')', ']', '}':
			if len(depth) > 0 && depth[len(depth)-1] == opener(l.ch) {
				depth = depth[:len(depth)-1]
			}
		}
		l.readChar()
	}

	if len(depth) > 0 {
		err = err.Or(errs.NewMismatch(
			"closing "+closerFor(depth[len(depth)-1]),
			l.input[start:l.position],
			l.span(start, l.position),
		))
	}

	text := l.input[start:l.position]
	return token.New(token.Baseline, text, l.span(start, l.position)), err
}

// skipQuoted consumes a quoted region including both quote characters. The
// cursor is left on the rune after the closing quote.
func (l *lexer) skipQuoted(quote rune) *errs.ParseError {
	start := l.position
	l.readChar() // opening quote
	for l.ch != 0 && l.ch != quote {
		l.readChar()
	}
	if l.ch == 0 {
		return errs.NewMismatch("closing quote", l.input[start:l.position], l.span(start, l.position))
	}
	l.readChar() // closing quote
	return nil
}

func opener(closer rune) rune {
	switch closer {
	case ')':
		return '('
	case ']':
		return '['
	case '}':
		return '{'
	}
	return 0
}

func closerFor(open rune) string {
	switch open {
	case '(':
		return "')'"
	case '[':
		return "']'"
	case '{':
		return "'}'"
	}
	return "delimiter"
}

// readChar advances by one UTF-8 rune, updating byte positions.
func (l *lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
}

// Unquote strips one level of matching quotes from a baseline text.
func Unquote(text string) string {
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if first == last && strings.ContainsRune("'\"`", rune(first)) {
			return text[1 : len(text)-1]
		}
	}
	return text
}
