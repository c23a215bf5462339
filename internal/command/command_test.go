package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tide/internal/object"
	"tide/internal/sig"
)

type doubler struct{}

func (d *doubler) Name() string              { return "double" }
func (d *doubler) Signature() *sig.Signature { return sig.Build("double") }
func (d *doubler) Usage() string             { return "Double the input numbers." }
func (d *doubler) RunPerItem(ctx context.Context, item object.Object, args *Args) (object.Stream, error) {
	n, ok := item.(*object.Integer)
	if !ok {
		return nil, errors.New("not a number")
	}
	return object.One(&object.Integer{Value: n.Value * 2}), nil
}

func TestPerItemCommandMapsStream(t *testing.T) {
	cmd := FromPerItem(&doubler{})
	args := &Args{
		Input: object.StreamOf(&object.Integer{Value: 2}, &object.Integer{Value: 5}),
	}

	stream, err := cmd.Run(context.Background(), args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values := object.Collect(context.Background(), stream)
	if len(values) != 2 {
		t.Fatalf("wrong value count. got=%d", len(values))
	}
	if values[0].(*object.Integer).Value != 4 || values[1].(*object.Integer).Value != 10 {
		t.Errorf("wrong values: %s %s", values[0].Inspect(), values[1].Inspect())
	}
}

func TestPerItemErrorBecomesValue(t *testing.T) {
	cmd := FromPerItem(&doubler{})
	args := &Args{
		Input: object.StreamOf(&object.String{Value: "x"}, &object.Integer{Value: 3}),
	}

	stream, _ := cmd.Run(context.Background(), args)
	values := object.Collect(context.Background(), stream)
	if len(values) != 2 {
		t.Fatalf("wrong value count. got=%d", len(values))
	}
	if _, ok := values[0].(*object.Error); !ok {
		t.Errorf("per-item failure must surface as an error value. got=%#v", values[0])
	}
	if values[1].(*object.Integer).Value != 6 {
		t.Errorf("later items must still flow. got=%s", values[1].Inspect())
	}
}

func TestHelpFlagRendersUsage(t *testing.T) {
	cmd := FromPerItem(&doubler{})
	args := &Args{Named: map[string]object.Object{"help": object.TRUE}}

	stream, err := cmd.Run(context.Background(), args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values := object.Collect(context.Background(), stream)
	if len(values) != 1 {
		t.Fatalf("wrong value count. got=%d", len(values))
	}
	if !strings.Contains(values[0].Inspect(), "Double the input numbers.") {
		t.Errorf("wrong help text: %s", values[0].Inspect())
	}
}

func TestHelpTextLayout(t *testing.T) {
	signature := sig.Build("open").
		Required("path", sig.FilePath, "the file to open").
		OptionalPos("rows", sig.Int, "how many rows").
		NamedFlag("limit", sig.Int, "cap the row count", 'l').
		SwitchFlag("raw", "do not parse the content", 'r')
	cmd := FromWholeStream(&stubWhole{sig: signature})

	text := HelpText(cmd)
	for _, want := range []string{
		"open <path> (rows) {flags}",
		"path: path - the file to open",
		"rows: int (optional)",
		"-l, --limit <int>: cap the row count",
		"-r, --raw: do not parse the content",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("help text missing %q:\n%s", want, text)
		}
	}
}

type stubWhole struct {
	sig *sig.Signature
}

func (s *stubWhole) Name() string              { return s.sig.Name }
func (s *stubWhole) Signature() *sig.Signature { return s.sig }
func (s *stubWhole) Usage() string             { return "" }
func (s *stubWhole) Run(ctx context.Context, args *Args) (object.Stream, error) {
	return object.EmptyStream(), nil
}

func TestArgsAccessors(t *testing.T) {
	args := &Args{
		Positional: []object.Object{
			&object.String{Value: "a"},
			&object.Integer{Value: 7},
		},
		Named: map[string]object.Object{"raw": object.TRUE},
	}

	if args.StringAt(0) != "a" {
		t.Errorf("StringAt(0) wrong. got=%q", args.StringAt(0))
	}
	if args.IntAt(1, 0) != 7 {
		t.Errorf("IntAt(1) wrong. got=%d", args.IntAt(1, 0))
	}
	if args.IntAt(5, 42) != 42 {
		t.Errorf("IntAt out of range must fall back. got=%d", args.IntAt(5, 42))
	}
	if !args.HasFlag("raw") {
		t.Errorf("HasFlag(raw) wrong")
	}
	if args.HasFlag("missing") {
		t.Errorf("HasFlag(missing) wrong")
	}
	if (&Args{}).HasFlag("raw") {
		t.Errorf("nil named map must not panic or match")
	}
}
