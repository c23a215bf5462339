package commands

import (
	"context"

	"tide/internal/command"
	"tide/internal/object"
	"tide/internal/sig"
)

type Seq struct{}

func (s *Seq) Name() string { return "seq" }

func (s *Seq) Signature() *sig.Signature {
	return sig.Build("seq").
		Required("from", sig.Int, "the first number of the sequence").
		Required("to", sig.Int, "the last number of the sequence")
}

func (s *Seq) Usage() string { return "Emit a sequence of integers." }

func (s *Seq) Run(ctx context.Context, args *command.Args) (object.Stream, error) {
	from := args.IntAt(0, 0)
	to := args.IntAt(1, 0)

	out := make(chan object.Object)
	go func() {
		defer close(out)
		for i := from; i <= to; i++ {
			select {
			case out <- &object.Integer{Value: i}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
