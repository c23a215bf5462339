package sig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tide/internal/lexer"
	"tide/internal/token"
)

func spanned(text string) token.Spanned {
	return token.NewSpanned(text, token.NewSpan(0, len(text)))
}

func TestParseSignaturePositionals(t *testing.T) {
	signature, err := ParseSignature("cmd", spanned("[x, y?: int]"))
	require.Nil(t, err)

	require.Len(t, signature.Positional, 2)

	assert.Equal(t, "x", signature.Positional[0].Type.Name)
	assert.Equal(t, Mandatory, signature.Positional[0].Type.Kind)
	assert.Equal(t, Any, signature.Positional[0].Type.Shape)

	assert.Equal(t, "y", signature.Positional[1].Type.Name)
	assert.Equal(t, Optional, signature.Positional[1].Type.Kind)
	assert.Equal(t, Int, signature.Positional[1].Type.Shape)
}

func TestParseSignatureFlags(t *testing.T) {
	signature, err := ParseSignature("cmd", spanned("[--output(-o): path, --verbose(-v)]"))
	require.Nil(t, err)

	output, ok := signature.Named["output"]
	require.True(t, ok)
	assert.Equal(t, OptionalValue, output.Type.Kind)
	assert.Equal(t, 'o', output.Type.Short)
	assert.Equal(t, FilePath, output.Type.Shape)

	verbose, ok := signature.Named["verbose"]
	require.True(t, ok)
	assert.Equal(t, Switch, verbose.Type.Kind)
	assert.Equal(t, 'v', verbose.Type.Short)
}

func TestParseSignatureRest(t *testing.T) {
	signature, err := ParseSignature("cmd", spanned("[...rest: int # the remaining values]"))
	require.Nil(t, err)

	require.NotNil(t, signature.Rest)
	assert.Equal(t, "rest", signature.Rest.Name)
	assert.Equal(t, Int, signature.Rest.Shape)
	assert.Equal(t, "the remaining values", signature.Rest.Desc)
}

func TestParseSignatureRestCommentNeverLeaksIntoName(t *testing.T) {
	signature, err := ParseSignature("cmd", spanned("[...items: string # stuff to keep]"))
	require.Nil(t, err)

	require.NotNil(t, signature.Rest)
	assert.Equal(t, "items", signature.Rest.Name)
	assert.Equal(t, "stuff to keep", signature.Rest.Desc)
}

func TestParseSignatureRestWithoutComment(t *testing.T) {
	signature, err := ParseSignature("cmd", spanned("[...items]"))
	require.Nil(t, err)

	require.NotNil(t, signature.Rest)
	assert.Equal(t, "items", signature.Rest.Name)
	assert.Equal(t, Any, signature.Rest.Shape)
	assert.Equal(t, "", signature.Rest.Desc)
}

func TestParseSignatureComments(t *testing.T) {
	signature, err := ParseSignature("cmd", spanned("[x # the subject\ny: int # how many\n]"))
	require.Nil(t, err)

	require.Len(t, signature.Positional, 2)
	assert.Equal(t, "the subject", signature.Positional[0].Desc)
	assert.Equal(t, "how many", signature.Positional[1].Desc)
	assert.Equal(t, Int, signature.Positional[1].Type.Shape)
}

func TestParseSignatureMissingBrackets(t *testing.T) {
	signature, err := ParseSignature("cmd", spanned("x: int]"))
	require.NotNil(t, err)
	assert.Equal(t, "definition signature", err.Expected)
	// best effort continues past the malformed brackets
	assert.NotNil(t, signature)
}

func TestParseSignatureColonWithoutType(t *testing.T) {
	_, err := ParseSignature("cmd", spanned("[x:]"))
	require.NotNil(t, err)
	assert.Equal(t, "type", err.Expected)
}

func TestParseSignatureUnknownType(t *testing.T) {
	_, err := ParseSignature("cmd", spanned("[x: spaceship]"))
	require.NotNil(t, err)
}

func TestSplitBaselineOn(t *testing.T) {
	tokens, lexErr := lexer.Lex("x,y?:int", 0)
	require.Nil(t, lexErr)

	split := SplitBaselineOn(tokens, ",:?")
	texts := make([]string, len(split))
	for i, tok := range split {
		texts[i] = tok.Text
	}
	assert.Equal(t, []string{"x", ",", "y", "?", ":", "int"}, texts)

	// spans still index the original text
	for _, tok := range split {
		assert.Equal(t, tok.Text, "x,y?:int"[tok.Span.Start:tok.Span.End])
	}
}

func TestSplitShortFlag(t *testing.T) {
	tokens, lexErr := lexer.Lex("--flag(-f)", 0)
	require.Nil(t, lexErr)

	split := SplitShortFlag(tokens)
	require.Len(t, split, 2)
	assert.Equal(t, "--flag", split[0].Text)
	assert.Equal(t, "(-f)", split[1].Text)
	assert.Equal(t, token.NewSpan(0, 6), split[0].Span)
	assert.Equal(t, token.NewSpan(6, 10), split[1].Span)
}
