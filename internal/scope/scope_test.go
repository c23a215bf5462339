package scope

import (
	"context"
	"testing"

	"tide/internal/command"
	"tide/internal/object"
	"tide/internal/sig"
	"tide/internal/token"
)

type stubCommand struct {
	name string
}

func (c *stubCommand) Name() string              { return c.name }
func (c *stubCommand) Signature() *sig.Signature { return sig.Build(c.name) }
func (c *stubCommand) Usage() string             { return "" }
func (c *stubCommand) Run(ctx context.Context, args *command.Args) (object.Stream, error) {
	return object.EmptyStream(), nil
}

func register(s *Scope, name string) {
	s.AddCommand(name, command.FromWholeStream(&stubCommand{name: name}))
}

func TestVarShadowing(t *testing.T) {
	s := New()
	s.AddVar("$x", &object.Integer{Value: 1})

	s.EnterScope()
	s.AddVar("$x", &object.Integer{Value: 2})

	v, ok := s.GetVar("$x")
	if !ok {
		t.Fatalf("variable not found")
	}
	if v.(*object.Integer).Value != 2 {
		t.Errorf("inner frame must win. got=%s", v.Inspect())
	}

	s.ExitScope()
	v, _ = s.GetVar("$x")
	if v.(*object.Integer).Value != 1 {
		t.Errorf("outer binding must survive the inner frame. got=%s", v.Inspect())
	}
}

func TestGetVarsMergesInnerWins(t *testing.T) {
	s := New()
	s.AddVar("$a", &object.String{Value: "outer"})
	s.AddVar("$b", &object.String{Value: "only-outer"})
	s.EnterScope()
	s.AddVar("$a", &object.String{Value: "inner"})

	vars := s.GetVars()
	if vars["$a"].(*object.String).Value != "inner" {
		t.Errorf("inner frame must win in the merge")
	}
	if vars["$b"].(*object.String).Value != "only-outer" {
		t.Errorf("outer-only binding must be visible")
	}
}

func TestExitGlobalFramePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("popping the global frame must panic")
		}
	}()
	New().ExitScope()
}

func TestCommandResolution(t *testing.T) {
	s := New()
	register(s, "ls")

	if !s.HasCommand("ls") {
		t.Errorf("command not resolvable from global frame")
	}

	s.EnterScope()
	if !s.HasCommand("ls") {
		t.Errorf("command not resolvable from inner frame")
	}
	register(s, "local")
	s.ExitScope()

	if s.HasCommand("local") {
		t.Errorf("inner frame command leaked past ExitScope")
	}
}

func TestExpectCommandError(t *testing.T) {
	s := New()
	_, err := s.ExpectCommand("nope")
	if err == nil {
		t.Fatalf("expected error")
	}
	want := "missing command 'nope'"
	if err.Error() != want {
		t.Errorf("wrong message. got=%q, want=%q", err.Error(), want)
	}
}

func TestGetCommandNamesDedupedSorted(t *testing.T) {
	s := New()
	register(s, "b")
	register(s, "a")
	s.EnterScope()
	register(s, "a")

	names := s.GetCommandNames()
	if len(names) != 2 {
		t.Fatalf("wrong name count. got=%v", names)
	}
	if names[0] != "a" || names[1] != "b" {
		t.Errorf("names not sorted. got=%v", names)
	}
}

func TestGetSignature(t *testing.T) {
	s := New()
	register(s, "ls")

	signature, ok := s.GetSignature("ls")
	if !ok {
		t.Fatalf("signature not found")
	}
	if signature.Name != "ls" {
		t.Errorf("wrong signature. got=%s", signature.Name)
	}

	if _, ok := s.GetSignature("nope"); ok {
		t.Errorf("unknown command must not resolve a signature")
	}
}

func TestAliasResolution(t *testing.T) {
	s := New()
	expansion := []token.Spanned{
		token.NewSpanned("ls", token.NewSpan(0, 2)),
		token.NewSpanned("-la", token.NewSpan(3, 6)),
	}
	s.AddAlias("l", expansion)

	got, ok := s.GetAlias("l")
	if !ok {
		t.Fatalf("alias not found")
	}
	if len(got) != 2 || got[0].Item != "ls" || got[1].Item != "-la" {
		t.Errorf("wrong expansion: %v", got)
	}

	s.EnterScope()
	s.AddAlias("l", []token.Spanned{token.NewSpanned("echo", token.NewSpan(0, 4))})
	inner, _ := s.GetAlias("l")
	if inner[0].Item != "echo" {
		t.Errorf("inner alias must shadow. got=%q", inner[0].Item)
	}
	s.ExitScope()
}

func TestEnvMerging(t *testing.T) {
	s := New()
	s.AddEnv(map[string]string{"HOME": "/root", "TERM": "dumb"})
	s.EnterScope()
	s.AddEnvVar("TERM", "xterm")

	env := s.GetEnvVars()
	if env["TERM"] != "xterm" {
		t.Errorf("inner env must win. got=%q", env["TERM"])
	}
	if env["HOME"] != "/root" {
		t.Errorf("outer env must be visible. got=%q", env["HOME"])
	}
}
