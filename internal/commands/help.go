package commands

import (
	"context"

	"tide/internal/command"
	"tide/internal/errs"
	"tide/internal/object"
	"tide/internal/sig"
)

type Help struct{}

func (h *Help) Name() string { return "help" }

func (h *Help) Signature() *sig.Signature {
	return sig.Build("help").
		OptionalPos("command", sig.String, "the command to describe")
}

func (h *Help) Usage() string { return "Show the known commands, or describe one." }

func (h *Help) Run(ctx context.Context, args *command.Args) (object.Stream, error) {
	if len(args.Positional) == 0 {
		names := args.Scope.GetCommandNames()
		items := make([]object.Object, 0, len(names))
		for _, name := range names {
			items = append(items, &object.String{Value: name})
		}
		return object.StreamOf(items...), nil
	}

	name := args.StringAt(0)
	cmd, ok := args.Scope.GetCommand(name)
	if !ok {
		return nil, errs.NewLabeled("no help for '"+name+"'",
			"unknown command", args.RawPositional[0].Span)
	}
	return object.One(&object.String{Value: command.HelpText(cmd)}), nil
}
