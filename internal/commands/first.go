package commands

import (
	"context"

	"tide/internal/command"
	"tide/internal/object"
	"tide/internal/sig"
)

type First struct{}

func (f *First) Name() string { return "first" }

func (f *First) Signature() *sig.Signature {
	return sig.Build("first").
		OptionalPos("rows", sig.Int, "how many rows to keep")
}

func (f *First) Usage() string { return "Keep the first rows of the input." }

func (f *First) Run(ctx context.Context, args *command.Args) (object.Stream, error) {
	n := args.IntAt(0, 1)

	out := make(chan object.Object)
	go func() {
		defer close(out)
		taken := int64(0)
		for item := range args.Input {
			if taken >= n {
				// keep draining so the producer is not blocked forever
				continue
			}
			select {
			case out <- item:
				taken++
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
