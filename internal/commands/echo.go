package commands

import (
	"context"

	"tide/internal/command"
	"tide/internal/object"
	"tide/internal/sig"
)

type Echo struct{}

func (e *Echo) Name() string { return "echo" }

func (e *Echo) Signature() *sig.Signature {
	return sig.Build("echo").
		WithRest("rest", sig.Any, "the values to echo")
}

func (e *Echo) Usage() string { return "Echo the arguments back." }

func (e *Echo) Run(ctx context.Context, args *command.Args) (object.Stream, error) {
	return object.StreamOf(args.Positional...), nil
}
