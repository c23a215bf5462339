package commands

import (
	"context"

	"tide/internal/command"
	"tide/internal/object"
	"tide/internal/sig"
)

type Sum struct{}

func (s *Sum) Name() string { return "sum" }

func (s *Sum) Signature() *sig.Signature {
	return sig.Build("sum")
}

func (s *Sum) Usage() string { return "Sum the numbers in the input." }

func (s *Sum) Run(ctx context.Context, args *command.Args) (object.Stream, error) {
	var intSum int64
	var decSum float64
	sawDecimal := false

	for item := range args.Input {
		select {
		case <-ctx.Done():
			return object.EmptyStream(), nil
		default:
		}
		switch v := item.(type) {
		case *object.Integer:
			intSum += v.Value
		case *object.Decimal:
			sawDecimal = true
			decSum += v.Value
		default:
			return object.One(object.NewError("cannot sum a %s", item.Type())), nil
		}
	}

	if sawDecimal {
		return object.One(&object.Decimal{Value: decSum + float64(intSum)}), nil
	}
	return object.One(&object.Integer{Value: intSum}), nil
}
