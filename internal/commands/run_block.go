package commands

import (
	"context"
	"strings"

	"tide/internal/command"
	"tide/internal/eval"
	"tide/internal/object"
	"tide/internal/sig"
)

// BlockCommand is a command whose body is a stored block: the registered
// form of both aliases and def'd commands. Invocation binds the evaluated
// positionals to the block's variables in a fresh scope frame, runs the
// block, and tears the frame down again.
type BlockCommand struct {
	Sig   *sig.Signature
	Block *object.Block
	Brief string
}

func (b *BlockCommand) Name() string { return b.Sig.Name }

func (b *BlockCommand) Signature() *sig.Signature { return b.Sig }

func (b *BlockCommand) Usage() string {
	if b.Brief != "" {
		return b.Brief
	}
	return b.Sig.Usage
}

func (b *BlockCommand) Run(ctx context.Context, args *command.Args) (object.Stream, error) {
	ns := args.Scope
	ns.EnterScope()
	defer ns.ExitScope()

	for idx, pos := range b.Sig.Positional {
		if idx < len(args.Positional) {
			ns.AddVar(varKey(pos.Type.Name), args.Positional[idx])
		}
	}
	if b.Sig.Rest != nil && len(args.Positional) > len(b.Sig.Positional) {
		rest := &object.List{Items: args.Positional[len(b.Sig.Positional):]}
		ns.AddVar(varKey(b.Sig.Rest.Name), rest)
	}

	// collect before the deferred frame pop: the block must not be
	// evaluated lazily against a scope that is already torn down
	values, err := eval.RunCollect(ctx, b.Block.Block, ns, args.Input, b.Block.Raw)
	if err != nil {
		return nil, err
	}
	return object.StreamOf(values...), nil
}

// varKey normalizes a parameter name to the $-prefixed form the block's
// variable references use. Alias signatures already carry the prefix;
// def'd signatures declare bare names.
func varKey(name string) string {
	if strings.HasPrefix(name, "$") {
		return name
	}
	return "$" + name
}
