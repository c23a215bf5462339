package commands

import (
	"context"
	"strings"

	"tide/internal/command"
	"tide/internal/object"
	"tide/internal/sig"
)

// StrUpcase runs once per input item, so it is registered as a per-item
// command instead of a whole-stream one.
type StrUpcase struct{}

func (s *StrUpcase) Name() string { return "str-upcase" }

func (s *StrUpcase) Signature() *sig.Signature {
	return sig.Build("str-upcase")
}

func (s *StrUpcase) Usage() string { return "Upcase the strings in the input." }

func (s *StrUpcase) RunPerItem(ctx context.Context, item object.Object, args *command.Args) (object.Stream, error) {
	str, ok := item.(*object.String)
	if !ok {
		return object.One(object.NewError("str-upcase expects strings, got %s", item.Type())), nil
	}
	return object.One(&object.String{Value: strings.ToUpper(str.Value)}), nil
}
