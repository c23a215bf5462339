package commands

import (
	"context"
	"log/slog"

	"tide/internal/command"
	"tide/internal/errs"
	"tide/internal/object"
	"tide/internal/sig"
)

// Def defines a command from an explicit signature literal and a block.
// Unlike alias, the parameter shapes are declared, not deduced.
type Def struct{}

func (d *Def) Name() string { return "def" }

func (d *Def) Signature() *sig.Signature {
	return sig.Build("def").
		Required("name", sig.String, "the name of the command").
		Required("params", sig.Table, "the signature of the command").
		Required("block", sig.Block, "the body of the command")
}

func (d *Def) Usage() string { return "Define a custom command." }

func (d *Def) Run(ctx context.Context, args *command.Args) (object.Stream, error) {
	if len(args.Positional) < 3 {
		return nil, errs.NewLabeled("def expects a name, a signature and a block",
			"missing arguments", args.Span)
	}
	name := args.StringAt(0)

	signature, parseErr := sig.ParseSignature(name, args.RawPositional[1])
	if parseErr != nil {
		// a malformed signature rejects the whole definition
		return nil, errs.NewLabeled(parseErr.Error(), "invalid signature", parseErr.Span)
	}

	blockObj, ok := args.Positional[2].(*object.Block)
	if !ok {
		return nil, errs.NewLabeled("expected a block", "expected a block",
			args.RawPositional[2].Span)
	}

	slog.Debug("def registered", slog.String("name", name))
	args.Scope.AddCommand(name, command.FromWholeStream(&BlockCommand{
		Sig:   signature,
		Block: blockObj,
		Brief: "custom command",
	}))
	return object.EmptyStream(), nil
}
