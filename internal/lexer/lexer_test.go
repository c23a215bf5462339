package lexer

import (
	"testing"

	"tide/internal/token"
)

func TestLexPipeline(t *testing.T) {
	input := "ls $x | first 2; echo done"

	tokens, err := Lex(input, 0)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}

	tests := []struct {
		kind token.Kind
		text string
	}{
		{token.Baseline, "ls"},
		{token.Baseline, "$x"},
		{token.Pipe, "|"},
		{token.Baseline, "first"},
		{token.Baseline, "2"},
		{token.Semicolon, ";"},
		{token.Baseline, "echo"},
		{token.Baseline, "done"},
	}

	if len(tokens) != len(tests) {
		t.Fatalf("wrong token count. got=%d, want=%d", len(tokens), len(tests))
	}
	for i, tt := range tests {
		if tokens[i].Kind != tt.kind {
			t.Errorf("tokens[%d] kind wrong. got=%s, want=%s", i, tokens[i].Kind, tt.kind)
		}
		if tokens[i].Text != tt.text {
			t.Errorf("tokens[%d] text wrong. got=%q, want=%q", i, tokens[i].Text, tt.text)
		}
	}
}

func TestLexSpans(t *testing.T) {
	tokens, err := Lex("ab cd", 10)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("wrong token count. got=%d", len(tokens))
	}
	if tokens[0].Span != token.NewSpan(10, 12) {
		t.Errorf("tokens[0] span wrong. got=%s", tokens[0].Span)
	}
	if tokens[1].Span != token.NewSpan(13, 15) {
		t.Errorf("tokens[1] span wrong. got=%s", tokens[1].Span)
	}
}

func TestLexSwallowsGroupsAndQuotes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{ ls $x }`, `{ ls $x }`},
		{`[a, b c]`, `[a, b c]`},
		{`"a b c"`, `"a b c"`},
		{`{ echo "} not an end" }`, `{ echo "} not an end" }`},
		{`[--output(-o): path]`, `[--output(-o): path]`},
	}

	for _, tt := range tests {
		tokens, err := Lex(tt.input, 0)
		if err != nil {
			t.Errorf("input %q: unexpected error: %v", tt.input, err)
			continue
		}
		if len(tokens) != 1 {
			t.Errorf("input %q: wrong token count. got=%d, want=1", tt.input, len(tokens))
			continue
		}
		if tokens[0].Text != tt.want {
			t.Errorf("input %q: text wrong. got=%q", tt.input, tokens[0].Text)
		}
	}
}

func TestLexUnbalancedGroup(t *testing.T) {
	_, err := Lex("[a, b", 0)
	if err == nil {
		t.Fatalf("expected error for unbalanced bracket")
	}
	if err.Expected != "closing ']'" {
		t.Errorf("wrong expectation. got=%q, want=%q", err.Expected, "closing ']'")
	}
}

func TestLexUnterminatedQuote(t *testing.T) {
	_, err := Lex(`echo "abc`, 0)
	if err == nil {
		t.Fatalf("expected error for unterminated quote")
	}
	if err.Expected != "closing quote" {
		t.Errorf("wrong expectation. got=%q", err.Expected)
	}
}

func TestLexComment(t *testing.T) {
	tokens, err := Lex("ls # list things\nsum", 0)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	kinds := []token.Kind{token.Baseline, token.Comment, token.EOL, token.Baseline}
	if len(tokens) != len(kinds) {
		t.Fatalf("wrong token count. got=%d, want=%d", len(tokens), len(kinds))
	}
	for i, kind := range kinds {
		if tokens[i].Kind != kind {
			t.Errorf("tokens[%d] kind wrong. got=%s, want=%s", i, tokens[i].Kind, kind)
		}
	}
	if tokens[1].Text != "# list things" {
		t.Errorf("comment text wrong. got=%q", tokens[1].Text)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"a b"`, `a b`},
		{`'a b'`, `a b`},
		{"`a b`", "a b"},
		{`plain`, `plain`},
		{`"unmatched'`, `"unmatched'`},
		{`""`, ``},
	}
	for _, tt := range tests {
		if got := Unquote(tt.input); got != tt.want {
			t.Errorf("Unquote(%q)=%q, want %q", tt.input, got, tt.want)
		}
	}
}
