package sig

import (
	"log/slog"
	"strings"

	"tide/internal/errs"
	"tide/internal/lexer"
	"tide/internal/parselib"
	"tide/internal/token"
)

// The signature literal grammar:
//
//	[ (parameter | flag | rest | <eol>)* ]
//
// parameter:  name (<:> type)? (<?>)? item_end
// flag:       --name (-shortform)? (<:> type)? item_end
// rest:       ...name (<:> type)? item_end
// item_end:   (<,>)? (#comment)? (<eol>)?

type Parameter struct {
	PosType PositionalType
	Desc    string
	Span    token.Span
}

type Flag struct {
	LongName  string
	NamedType NamedType
	Desc      string
	Span      token.Span
}

// ParseSignature parses a bracketed signature literal into a Signature.
// The result is always a usable best-effort signature; the first error
// encountered, if any, rides along for reporting.
func ParseSignature(name string, literal token.Spanned) (*Signature, *errs.ParseError) {
	var err *errs.ParseError

	text := literal.Item
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") || len(text) < 2 {
		err = err.Or(errs.NewMismatch("definition signature", text, literal.Span))
	}
	interior := text
	if len(text) >= 2 {
		interior = text[1 : len(text)-1]
	}

	tokens, lexErr := lexer.Lex(interior, literal.Span.Start+1)
	err = err.Or(lexErr)

	// The base lexer does not split on the separators the signature
	// grammar needs, nor does it split the shorthand group off a long
	// flag. Repair the stream before parsing.
	tokens = SplitBaselineOn(tokens, ",:?")
	tokens = SplitShortFlag(tokens)
	slog.Debug("signature tokens repaired", slog.Int("count", len(tokens)))

	var parameters []Parameter
	var flags []Flag
	var rest *RestPositional

	i := 0
	for i < len(tokens) {
		switch {
		case tokens[i].IsEOL():
			i++
		case isFlagToken(tokens[i]):
			flag, newI, flagErr := parseFlag(tokens, i)
			err = err.Or(flagErr)
			i = progress(i, newI)
			flags = append(flags, flag)
		case isRestToken(tokens[i]):
			restVal, newI, restErr := parseRest(tokens, i)
			err = err.Or(restErr)
			i = progress(i, newI)
			rest = &restVal
		default:
			param, newI, paramErr := parseParameter(tokens, i)
			err = err.Or(paramErr)
			i = progress(i, newI)
			parameters = append(parameters, param)
		}
	}

	signature := toSignature(name, parameters, flags, rest)
	return signature, err
}

// progress guarantees the driver loop advances even when a production
// consumed nothing, so a token no production recognizes cannot hang it.
func progress(i, newI int) int {
	if newI <= i {
		return i + 1
	}
	return newI
}

func isFlagToken(tok token.Token) bool {
	return tok.IsBaseline() && strings.HasPrefix(tok.Text, "-")
}

func isRestToken(tok token.Token) bool {
	return tok.IsBaseline() && strings.HasPrefix(tok.Text, "...")
}

// optionalType parses `: type`. Seeing the colon makes the type mandatory.
type optionalType struct{}

func (optionalType) Parse(tokens []token.Token, i int) (parselib.Opt[SyntaxShape], int, *errs.ParseError) {
	v, newI, err := parselib.IfSuccessThen[struct{}, SyntaxShape]{
		Try:  doublePoint,
		Then: shapeName{},
	}.Parse(tokens, i)
	if v.Set {
		return parselib.Some(v.Value.Second), newI, err
	}
	return parselib.Opt[SyntaxShape]{}, i, nil
}

func (optionalType) DisplayName() string { return "type" }
func (optionalType) DefaultErrorValue() parselib.Opt[SyntaxShape] {
	return parselib.Some(Any)
}

// itemEnd parses the end of a parameter or flag item; its value is the
// optional trailing comment.
type itemEnd struct{}

func (itemEnd) Parse(tokens []token.Token, i int) (parselib.Opt[string], int, *errs.ParseError) {
	v, i, err := parselib.AndThen[parselib.Opt[struct{}], parselib.Pair[parselib.Opt[string], parselib.Opt[struct{}]]]{
		First: parselib.Maybe[struct{}]{P: comma},
		Second: parselib.AndThen[parselib.Opt[string], parselib.Opt[struct{}]]{
			First:  parselib.Maybe[string]{P: commentText{}},
			Second: parselib.Maybe[struct{}]{P: eolToken{}},
		},
	}.Parse(tokens, i)
	return v.Second.First, i, err
}

func (itemEnd) DisplayName() string { return "item end" }
func (itemEnd) DefaultErrorValue() parselib.Opt[string] {
	return parselib.Opt[string]{}
}

func parseParameter(tokens []token.Token, i int) (Parameter, int, *errs.ParseError) {
	seq := parselib.AndThen[parselib.Spanned[parselib.Triple[string, parselib.Opt[struct{}], parselib.Opt[SyntaxShape]]], parselib.Opt[string]]{
		First: parselib.WithSpan[parselib.Triple[string, parselib.Opt[struct{}], parselib.Opt[SyntaxShape]]]{
			P: parselib.And3[string, parselib.Opt[struct{}], parselib.Opt[SyntaxShape]]{
				First:  parameterName{},
				Second: parselib.Maybe[struct{}]{P: optionalModifier},
				Third:  optionalType{},
			},
		},
		Second: itemEnd{},
	}

	v, newI, err := seq.Parse(tokens, i)
	name := v.First.Item.First
	optional := v.First.Item.Second.Set
	shape := Any
	if v.First.Item.Third.Set {
		shape = v.First.Item.Third.Value
	}

	posType := MandatoryPositional(name, shape)
	if optional {
		posType = OptionalPositional(name, shape)
	}

	slog.Debug("parsed parameter",
		slog.String("name", name),
		slog.String("shape", shape.String()))

	return Parameter{
		PosType: posType,
		Desc:    v.Second.Value,
		Span:    v.First.Span,
	}, newI, err
}

func parseFlag(tokens []token.Token, i int) (Flag, int, *errs.ParseError) {
	seq := parselib.AndThen[parselib.Spanned[parselib.Triple[string, parselib.Opt[rune], parselib.Opt[SyntaxShape]]], parselib.Opt[string]]{
		First: parselib.WithSpan[parselib.Triple[string, parselib.Opt[rune], parselib.Opt[SyntaxShape]]]{
			P: parselib.And3[string, parselib.Opt[rune], parselib.Opt[SyntaxShape]]{
				First:  flagName{},
				Second: parselib.Maybe[rune]{P: flagShortName{}},
				Third:  optionalType{},
			},
		},
		Second: itemEnd{},
	}

	v, newI, err := seq.Parse(tokens, i)
	name := v.First.Item.First
	var short rune
	if v.First.Item.Second.Set {
		short = v.First.Item.Second.Value
	}

	// No type makes the flag a boolean switch, a type makes it a valued
	// flag: --verbose(-v) is a switch, --output(-o): path takes a value.
	namedType := NamedType{Kind: Switch, Short: short}
	if v.First.Item.Third.Set {
		namedType = NamedType{Kind: OptionalValue, Short: short, Shape: v.First.Item.Third.Value}
	}

	return Flag{
		LongName:  name,
		NamedType: namedType,
		Desc:      v.Second.Value,
		Span:      v.First.Span,
	}, newI, err
}

func parseRest(tokens []token.Token, i int) (RestPositional, int, *errs.ParseError) {
	seq := parselib.AndThen[string, parselib.Pair[parselib.Opt[SyntaxShape], parselib.Opt[string]]]{
		First: restName{},
		Second: parselib.AndThen[parselib.Opt[SyntaxShape], parselib.Opt[string]]{
			First:  optionalType{},
			Second: itemEnd{},
		},
	}

	v, newI, err := seq.Parse(tokens, i)
	shape := Any
	if v.Second.First.Set {
		shape = v.Second.First.Value
	}
	// The declared name is the binding name; the comment, when present, is
	// display text only and must never leak into the binding.
	return RestPositional{Name: v.First, Shape: shape, Desc: v.Second.Second.Value}, newI, err
}

func toSignature(name string, params []Parameter, flags []Flag, rest *RestPositional) *Signature {
	signature := Build(name)
	for _, param := range params {
		signature.Positional = append(signature.Positional, Positional{
			Type: param.PosType,
			Desc: param.Desc,
		})
	}
	for _, flag := range flags {
		signature.Named[flag.LongName] = NamedEntry{
			Type: flag.NamedType,
			Desc: flag.Desc,
		}
	}
	signature.Rest = rest
	return signature
}

// SplitBaselineOn splits every baseline token on the given single-byte
// separators, emitting each separator as its own baseline token. Required
// because flags and types are written adjacent to parameter names without
// surrounding whitespace: `y?:` must become `y` `?` `:`.
func SplitBaselineOn(tokens []token.Token, separators string) []token.Token {
	result := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if !tok.IsBaseline() {
			result = append(result, tok)
			continue
		}
		offset := tok.Span.Start
		current := ""
		for idx := 0; idx < len(tok.Text); idx++ {
			ch := tok.Text[idx]
			if strings.IndexByte(separators, ch) >= 0 {
				result = appendSplit(result, current, offset+idx)
				result = append(result, token.New(token.Baseline, string(ch),
					token.NewSpan(offset+idx, offset+idx+1)))
				current = ""
			} else {
				current += string(ch)
			}
		}
		result = appendSplit(result, current, offset+len(tok.Text))
	}
	return result
}

func appendSplit(result []token.Token, text string, end int) []token.Token {
	if text == "" {
		return result
	}
	return append(result, token.New(token.Baseline, text, token.NewSpan(end-len(text), end)))
}

// SplitShortFlag splits a baseline token at '(' when '(' is not its first
// character, so `--flag(-f)` tokenizes into `--flag` and `(-f)`.
func SplitShortFlag(tokens []token.Token) []token.Token {
	result := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.IsBaseline() {
			if parenStart := strings.IndexByte(tok.Text, '('); parenStart > 0 {
				parenSpan := tok.Span.Start + parenStart
				result = append(result,
					token.New(token.Baseline, tok.Text[:parenStart],
						token.NewSpan(tok.Span.Start, parenSpan)),
					token.New(token.Baseline, tok.Text[parenStart:],
						token.NewSpan(parenSpan, tok.Span.End)))
				continue
			}
		}
		result = append(result, tok)
	}
	return result
}
