package sig

import (
	"strings"
	"unicode/utf8"

	"tide/internal/errs"
	"tide/internal/parselib"
	"tide/internal/token"
)

// Leaf parsers over the repaired token stream. After the repair passes, the
// separators ',' ':' '?' are standalone baseline tokens, so each leaf only
// ever looks at one token.

type parameterName struct{}

func (parameterName) Parse(tokens []token.Token, i int) (string, int, *errs.ParseError) {
	if i < len(tokens) && tokens[i].IsBaseline() && isNameText(tokens[i].Text) {
		return tokens[i].Text, i + 1, nil
	}
	return parselib.MismatchResult[string](parameterName{}, tokens, i)
}

func (parameterName) DisplayName() string       { return "parameter name" }
func (parameterName) DefaultErrorValue() string { return "internal error" }

func isNameText(text string) bool {
	switch text {
	case "", ",", ":", "?":
		return false
	}
	return !strings.HasPrefix(text, "-") &&
		!strings.HasPrefix(text, "...") &&
		!strings.HasPrefix(text, "(")
}

type flagName struct{}

func (flagName) Parse(tokens []token.Token, i int) (string, int, *errs.ParseError) {
	if i < len(tokens) && tokens[i].IsBaseline() {
		if name, ok := strings.CutPrefix(tokens[i].Text, "--"); ok && name != "" {
			return name, i + 1, nil
		}
	}
	return parselib.MismatchResult[string](flagName{}, tokens, i)
}

func (flagName) DisplayName() string       { return "flag name" }
func (flagName) DefaultErrorValue() string { return "internal error" }

// flagShortName parses the `(-f)` shorthand group that the repair pass split
// off the long flag name.
type flagShortName struct{}

func (flagShortName) Parse(tokens []token.Token, i int) (rune, int, *errs.ParseError) {
	if i < len(tokens) && tokens[i].IsBaseline() {
		text := tokens[i].Text
		if strings.HasPrefix(text, "(-") && strings.HasSuffix(text, ")") {
			inner := text[2 : len(text)-1]
			if utf8.RuneCountInString(inner) == 1 {
				r, _ := utf8.DecodeRuneInString(inner)
				return r, i + 1, nil
			}
		}
	}
	return parselib.MismatchResult[rune](flagShortName{}, tokens, i)
}

func (flagShortName) DisplayName() string     { return "flag shorthand" }
func (flagShortName) DefaultErrorValue() rune { return 0 }

type restName struct{}

func (restName) Parse(tokens []token.Token, i int) (string, int, *errs.ParseError) {
	if i < len(tokens) && tokens[i].IsBaseline() {
		if name, ok := strings.CutPrefix(tokens[i].Text, "..."); ok {
			return name, i + 1, nil
		}
	}
	return parselib.MismatchResult[string](restName{}, tokens, i)
}

func (restName) DisplayName() string       { return "rest name" }
func (restName) DefaultErrorValue() string { return "rest" }

type shapeName struct{}

func (shapeName) Parse(tokens []token.Token, i int) (SyntaxShape, int, *errs.ParseError) {
	if i < len(tokens) && tokens[i].IsBaseline() {
		if shape, ok := ShapeFromName(tokens[i].Text); ok {
			return shape, i + 1, nil
		}
	}
	return parselib.MismatchResult[SyntaxShape](shapeName{}, tokens, i)
}

func (shapeName) DisplayName() string            { return "type" }
func (shapeName) DefaultErrorValue() SyntaxShape { return Any }

// exactBaseline matches a single baseline token with exactly the given text.
type exactBaseline struct {
	text string
	name string
}

func (e exactBaseline) Parse(tokens []token.Token, i int) (struct{}, int, *errs.ParseError) {
	if i < len(tokens) && tokens[i].IsBaseline() && tokens[i].Text == e.text {
		return struct{}{}, i + 1, nil
	}
	return parselib.MismatchResult[struct{}](e, tokens, i)
}

func (e exactBaseline) DisplayName() string         { return e.name }
func (e exactBaseline) DefaultErrorValue() struct{} { return struct{}{} }

var (
	comma            = exactBaseline{text: ",", name: "comma"}
	doublePoint      = exactBaseline{text: ":", name: "colon"}
	optionalModifier = exactBaseline{text: "?", name: "optional modifier"}
)

type commentText struct{}

func (commentText) Parse(tokens []token.Token, i int) (string, int, *errs.ParseError) {
	if i < len(tokens) && tokens[i].Kind == token.Comment {
		text := strings.TrimPrefix(tokens[i].Text, "#")
		return strings.TrimSpace(text), i + 1, nil
	}
	return parselib.MismatchResult[string](commentText{}, tokens, i)
}

func (commentText) DisplayName() string       { return "comment" }
func (commentText) DefaultErrorValue() string { return "" }

type eolToken struct{}

func (eolToken) Parse(tokens []token.Token, i int) (struct{}, int, *errs.ParseError) {
	if i < len(tokens) && tokens[i].IsEOL() {
		return struct{}{}, i + 1, nil
	}
	return parselib.MismatchResult[struct{}](eolToken{}, tokens, i)
}

func (eolToken) DisplayName() string         { return "end of line" }
func (eolToken) DefaultErrorValue() struct{} { return struct{}{} }
