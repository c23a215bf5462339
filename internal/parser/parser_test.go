package parser

import (
	"testing"

	"tide/internal/ast"
)

func TestParsePipelines(t *testing.T) {
	block, err := Parse("seq 1 2 | sum; echo hi", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(block.Pipelines) != 2 {
		t.Fatalf("wrong pipeline count. got=%d", len(block.Pipelines))
	}
	first := block.Pipelines[0]
	if len(first.Calls) != 2 {
		t.Fatalf("wrong call count. got=%d", len(first.Calls))
	}
	if first.Calls[0].Name.Item != "seq" {
		t.Errorf("first call name wrong. got=%q", first.Calls[0].Name.Item)
	}
	if len(first.Calls[0].Args) != 2 {
		t.Errorf("seq arg count wrong. got=%d", len(first.Calls[0].Args))
	}
	if first.Calls[1].Name.Item != "sum" {
		t.Errorf("second call name wrong. got=%q", first.Calls[1].Name.Item)
	}
	if block.Pipelines[1].Calls[0].Name.Item != "echo" {
		t.Errorf("second pipeline name wrong. got=%q", block.Pipelines[1].Calls[0].Name.Item)
	}
}

func TestParseBlockArg(t *testing.T) {
	block, err := Parse("alias l [x] { ls $x }", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := block.Pipelines[0].Calls[0]
	if call.Name.Item != "alias" {
		t.Fatalf("call name wrong. got=%q", call.Name.Item)
	}
	if len(call.Args) != 3 {
		t.Fatalf("wrong arg count. got=%d", len(call.Args))
	}

	params, ok := call.Args[1].(*ast.Word)
	if !ok || params.Text != "[x]" {
		t.Errorf("second arg should be the bracketed list. got=%#v", call.Args[1])
	}

	blockArg, ok := call.Args[2].(*ast.BlockArg)
	if !ok {
		t.Fatalf("third arg should be a block. got=%#v", call.Args[2])
	}
	if blockArg.Raw != "{ ls $x }" {
		t.Errorf("raw text wrong. got=%q", blockArg.Raw)
	}
	inner := blockArg.Block.Pipelines[0].Calls[0]
	if inner.Name.Item != "ls" {
		t.Errorf("inner call name wrong. got=%q", inner.Name.Item)
	}
	if w, ok := inner.Args[0].(*ast.Word); !ok || w.Text != "$x" {
		t.Errorf("inner arg wrong. got=%#v", inner.Args[0])
	}
}

func TestParseBlockSpansIndexSource(t *testing.T) {
	src := "alias l [x] { ls $x }"
	block, err := Parse(src, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blockArg := block.Pipelines[0].Calls[0].Args[2].(*ast.BlockArg)
	inner := blockArg.Block.Pipelines[0].Calls[0]
	varSpan := inner.Args[0].Span()
	if got := src[varSpan.Start:varSpan.End]; got != "$x" {
		t.Errorf("inner span must index the outer source. got=%q", got)
	}
}

func TestParsePipeWithoutCommand(t *testing.T) {
	_, err := Parse("| sum", 0)
	if err == nil {
		t.Fatalf("expected error for leading pipe")
	}
	if err.Expected != "command before pipe" {
		t.Errorf("wrong expectation. got=%q", err.Expected)
	}
}

func TestParseCallSpan(t *testing.T) {
	src := "seq 1 20"
	block, err := Parse(src, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := block.Pipelines[0].Calls[0]
	if got := src[call.Span.Start:call.Span.End]; got != src {
		t.Errorf("call span must cover the whole invocation. got=%q", got)
	}
}

func TestParseEmpty(t *testing.T) {
	block, err := Parse("   ", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !block.IsEmpty() {
		t.Errorf("blank input must parse to an empty block")
	}
}
