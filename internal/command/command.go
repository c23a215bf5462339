// Package command defines the invokable unit of the shell: a closed
// two-variant union over whole-stream commands, which consume and produce an
// entire lazy sequence in one invocation, and per-item commands, which are
// invoked once per incoming value.
package command

import (
	"context"

	"tide/internal/object"
	"tide/internal/sig"
	"tide/internal/token"
)

// WholeStream runs once over the whole input stream.
type WholeStream interface {
	Name() string
	Signature() *sig.Signature
	Usage() string
	Run(ctx context.Context, args *Args) (object.Stream, error)
}

// PerItem is invoked once per incoming value; outputs are concatenated in
// input order.
type PerItem interface {
	Name() string
	Signature() *sig.Signature
	Usage() string
	RunPerItem(ctx context.Context, item object.Object, args *Args) (object.Stream, error)
}

type kind int

const (
	wholeStreamKind kind = iota
	perItemKind
)

// Command is the registered form of an invokable unit. The variant set is
// closed; dispatch is by tag, not open-ended polymorphism.
type Command struct {
	kind    kind
	whole   WholeStream
	perItem PerItem
}

func FromWholeStream(ws WholeStream) Command {
	return Command{kind: wholeStreamKind, whole: ws}
}

func FromPerItem(pi PerItem) Command {
	return Command{kind: perItemKind, perItem: pi}
}

func (c Command) Name() string {
	if c.kind == perItemKind {
		return c.perItem.Name()
	}
	return c.whole.Name()
}

func (c Command) Signature() *sig.Signature {
	if c.kind == perItemKind {
		return c.perItem.Signature()
	}
	return c.whole.Signature()
}

func (c Command) Usage() string {
	if c.kind == perItemKind {
		return c.perItem.Usage()
	}
	return c.whole.Usage()
}

// Run is the uniform entry point. A --help switch on any invocation
// short-circuits to rendering the signature and usage instead of running
// the body.
func (c Command) Run(ctx context.Context, args *Args) (object.Stream, error) {
	if args.HasFlag("help") {
		return object.One(&object.String{Value: HelpText(c)}), nil
	}
	if c.kind == wholeStreamKind {
		return c.whole.Run(ctx, args)
	}
	return c.runPerItem(ctx, args), nil
}

func (c Command) runPerItem(ctx context.Context, args *Args) object.Stream {
	out := make(chan object.Object)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case item, ok := <-args.Input:
				if !ok {
					return
				}
				result, err := c.perItem.RunPerItem(ctx, item, args)
				if err != nil {
					select {
					case out <- errValue(err):
					case <-ctx.Done():
					}
					continue
				}
				object.Forward(ctx, out, result)
			}
		}
	}()
	return out
}

func errValue(err error) object.Object {
	return object.NewError("%s", err.Error())
}

// NameSpace is what a command needs from the surrounding scope: name
// resolution and binding registration. The evaluator's scope implements it.
type NameSpace interface {
	EnterScope()
	ExitScope()

	AddVar(name string, value object.Object)
	AddVars(vars map[string]object.Object)
	GetVar(name string) (object.Object, bool)

	AddEnvVar(name, value string)
	AddEnv(env map[string]string)
	GetEnvVars() map[string]string

	AddCommand(name string, cmd Command)
	GetCommand(name string) (Command, bool)
	HasCommand(name string) bool
	ExpectCommand(name string) (Command, error)
	GetCommandNames() []string
	GetSignature(name string) (*sig.Signature, bool)

	AddAlias(name string, expansion []token.Spanned)
	GetAlias(name string) ([]token.Spanned, bool)
}

// Args carries one invocation's evaluated arguments plus its input stream
// and resolution scope.
type Args struct {
	Positional []object.Object
	// RawPositional preserves each positional argument exactly as
	// written, with its source span. Commands that re-parse their own
	// arguments (alias parameter lists, def signature literals) need the
	// original text and location, not the evaluated value.
	RawPositional []token.Spanned
	Named         map[string]object.Object
	Input         object.Stream
	Scope         NameSpace
	Span          token.Span
	// RawInput is the full source text of the invocation.
	RawInput string
}

func (a *Args) HasFlag(name string) bool {
	if a.Named == nil {
		return false
	}
	_, ok := a.Named[name]
	return ok
}

func (a *Args) Flag(name string) (object.Object, bool) {
	if a.Named == nil {
		return nil, false
	}
	v, ok := a.Named[name]
	return v, ok
}

// StringAt returns the positional at idx as a string, or "" when absent.
func (a *Args) StringAt(idx int) string {
	if idx >= len(a.Positional) {
		return ""
	}
	if s, ok := a.Positional[idx].(*object.String); ok {
		return s.Value
	}
	return a.Positional[idx].Inspect()
}

// IntAt returns the positional at idx as an int64 with a fallback default.
func (a *Args) IntAt(idx int, fallback int64) int64 {
	if idx >= len(a.Positional) {
		return fallback
	}
	if n, ok := a.Positional[idx].(*object.Integer); ok {
		return n.Value
	}
	return fallback
}
