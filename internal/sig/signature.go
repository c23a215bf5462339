package sig

import "sort"

type PositionalKind int

const (
	Mandatory PositionalKind = iota
	Optional
)

// PositionalType declares one positional parameter: its name, whether it may
// be omitted, and the shape an argument in that position must have.
type PositionalType struct {
	Kind  PositionalKind
	Name  string
	Shape SyntaxShape
}

func MandatoryPositional(name string, shape SyntaxShape) PositionalType {
	return PositionalType{Kind: Mandatory, Name: name, Shape: shape}
}

func OptionalPositional(name string, shape SyntaxShape) PositionalType {
	return PositionalType{Kind: Optional, Name: name, Shape: shape}
}

type NamedKind int

const (
	// Switch is a boolean flag with no value.
	Switch NamedKind = iota
	// OptionalValue is a flag that carries a value of the given shape.
	OptionalValue
)

// NamedType declares one flag: an optional single-character shorthand and,
// for valued flags, the shape of the value.
type NamedType struct {
	Kind  NamedKind
	Short rune // 0 means no shorthand
	Shape SyntaxShape
}

type Positional struct {
	Type PositionalType
	Desc string
}

type NamedEntry struct {
	Type NamedType
	Desc string
}

// RestPositional is the single trailing variadic slot of a signature. Name
// is the declared binding name for block-backed commands, so `...items`
// binds the remaining arguments to $items; Desc is display text only.
type RestPositional struct {
	Name  string
	Shape SyntaxShape
	Desc  string
}

// Signature is the full declared parameter and flag contract of a command.
// Built once at definition time, immutable thereafter.
type Signature struct {
	Name       string
	Usage      string
	Positional []Positional
	Rest       *RestPositional
	Named      map[string]NamedEntry
}

func Build(name string) *Signature {
	return &Signature{
		Name:  name,
		Named: make(map[string]NamedEntry),
	}
}

func (s *Signature) WithUsage(usage string) *Signature {
	s.Usage = usage
	return s
}

func (s *Signature) Required(name string, shape SyntaxShape, desc string) *Signature {
	s.Positional = append(s.Positional, Positional{
		Type: MandatoryPositional(name, shape),
		Desc: desc,
	})
	return s
}

func (s *Signature) OptionalPos(name string, shape SyntaxShape, desc string) *Signature {
	s.Positional = append(s.Positional, Positional{
		Type: OptionalPositional(name, shape),
		Desc: desc,
	})
	return s
}

func (s *Signature) SwitchFlag(name string, desc string, short rune) *Signature {
	s.Named[name] = NamedEntry{
		Type: NamedType{Kind: Switch, Short: short},
		Desc: desc,
	}
	return s
}

func (s *Signature) NamedFlag(name string, shape SyntaxShape, desc string, short rune) *Signature {
	s.Named[name] = NamedEntry{
		Type: NamedType{Kind: OptionalValue, Short: short, Shape: shape},
		Desc: desc,
	}
	return s
}

// WithRest sets the signature's single rest-parameter slot. A signature has
// zero or one of these, never more.
func (s *Signature) WithRest(name string, shape SyntaxShape, desc string) *Signature {
	s.Rest = &RestPositional{Name: name, Shape: shape, Desc: desc}
	return s
}

// MandatoryCount reports how many leading positionals cannot be omitted.
func (s *Signature) MandatoryCount() int {
	count := 0
	for _, pos := range s.Positional {
		if pos.Type.Kind == Mandatory {
			count++
		}
	}
	return count
}

// FindShort resolves a single-character flag shorthand to its long name.
func (s *Signature) FindShort(short rune) (string, NamedEntry, bool) {
	for name, entry := range s.Named {
		if entry.Type.Short == short {
			return name, entry, true
		}
	}
	return "", NamedEntry{}, false
}

// NamedNames returns flag names in sorted order, for help rendering.
func (s *Signature) NamedNames() []string {
	names := make([]string, 0, len(s.Named))
	for name := range s.Named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
