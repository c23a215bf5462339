package token

import "fmt"

// Span marks a half-open byte range [Start, End) in the original source.
type Span struct {
	Start int
	End   int
}

func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// UnknownSpan is used when no source location can be attributed, for
// example when an error is produced against an empty token stream.
func UnknownSpan() Span {
	return Span{Start: 0, End: 0}
}

func (s Span) IsUnknown() bool {
	return s.Start == 0 && s.End == 0
}

// Until extends this span to the end of another one.
func (s Span) Until(other Span) Span {
	return Span{Start: s.Start, End: other.End}
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

type Kind int

const (
	// Baseline is an opaque run of non-delimiter source text. Quoted
	// strings and balanced bracket groups stay inside a single baseline
	// token; the signature parser refines them further.
	Baseline Kind = iota
	Pipe
	Semicolon
	Comment
	EOL
)

func (k Kind) String() string {
	switch k {
	case Baseline:
		return "baseline"
	case Pipe:
		return "pipe"
	case Semicolon:
		return "semicolon"
	case Comment:
		return "comment"
	case EOL:
		return "eol"
	default:
		return "unknown"
	}
}

type Token struct {
	Kind Kind
	Text string
	Span Span
}

func New(kind Kind, text string, span Span) Token {
	return Token{Kind: kind, Text: text, Span: span}
}

func (t Token) IsBaseline() bool { return t.Kind == Baseline }
func (t Token) IsEOL() bool      { return t.Kind == EOL }

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)%s", t.Kind, t.Text, t.Span)
}

// Spanned pairs a plain string with the source span it was taken from.
// Alias expansions are stored as spanned strings so that errors inside an
// expansion can point back at the definition site.
type Spanned struct {
	Item string
	Span Span
}

func NewSpanned(item string, span Span) Spanned {
	return Spanned{Item: item, Span: span}
}
