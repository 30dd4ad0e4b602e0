package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, source string) ([]Token, *Reporter) {
	t.Helper()
	reporter := &Reporter{}
	scanner := NewScanner(source, reporter)
	tokens, ok := scanner.ScanTokens()
	if !ok {
		return tokens, reporter
	}
	return tokens, reporter
}

func TestScanSingleAndDoubleCharTokens(t *testing.T) {
	tokens, reporter := scanAll(t, "(){},.-+;*!= == <= >= < > != =")
	require.False(t, reporter.HadError())

	want := []TokenType{
		LeftParen, RightParen, LeftBrace, RightBrace, Comma, Dot, Minus, Plus,
		Semicolon, Star, BangEqual, EqualEqual, LessEqual, GreaterEqual, Less,
		Greater, BangEqual, Equal, EOF,
	}
	require.Len(t, tokens, len(want))
	for i, kind := range want {
		assert.Equal(t, kind, tokens[i].Kind, "token %d", i)
	}
}

func TestScanCommentsAndWhitespaceAreSkipped(t *testing.T) {
	tokens, reporter := scanAll(t, "// a whole comment line\n  \t  1")
	require.False(t, reporter.HadError())
	require.Len(t, tokens, 2)
	assert.Equal(t, Number, tokens[0].Kind)
	assert.Equal(t, 2, tokens[0].Line)
}

func TestScanString(t *testing.T) {
	tokens, reporter := scanAll(t, `"hello world"`)
	require.False(t, reporter.HadError())
	require.Len(t, tokens, 2)
	assert.Equal(t, String, tokens[0].Kind)
	assert.Equal(t, "hello world", tokens[0].Literal.Text)
}

func TestScanUnterminatedString(t *testing.T) {
	_, reporter := scanAll(t, `"unterminated`)
	require.True(t, reporter.HadError())
	assert.Contains(t, reporter.Errors()[0].Msg, "unterminated string")
}

func TestScanNumber(t *testing.T) {
	tokens, reporter := scanAll(t, "123 45.67")
	require.False(t, reporter.HadError())
	require.Len(t, tokens, 3)
	assert.Equal(t, 123.0, tokens[0].Literal.Number)
	assert.Equal(t, 45.67, tokens[1].Literal.Number)
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	tokens, reporter := scanAll(t, "foo var while break")
	require.False(t, reporter.HadError())
	require.Len(t, tokens, 5)
	assert.Equal(t, Identifier, tokens[0].Kind)
	assert.Equal(t, "foo", tokens[0].Literal.Text)
	assert.Equal(t, Var, tokens[1].Kind)
	assert.Equal(t, While, tokens[2].Kind)
	assert.Equal(t, Break, tokens[3].Kind)
}

func TestScanUnicodeIdentifier(t *testing.T) {
	tokens, reporter := scanAll(t, "café")
	require.False(t, reporter.HadError())
	require.Len(t, tokens, 2)
	assert.Equal(t, Identifier, tokens[0].Kind)
	assert.Equal(t, "café", tokens[0].Literal.Text)
}

func TestScanUnknownCharacterIsReportedAndScanningContinues(t *testing.T) {
	tokens, reporter := scanAll(t, "1 @ 2")
	require.True(t, reporter.HadError())
	require.Len(t, reporter.Errors(), 1)
	assert.Equal(t, ScanError, reporter.Errors()[0].Kind)

	// Scanning keeps going past the bad character so later tokens still
	// surface, even though ok is false.
	numberCount := 0
	for _, tok := range tokens {
		if tok.Kind == Number {
			numberCount++
		}
	}
	assert.Equal(t, 2, numberCount)
}

func TestScanLineTracking(t *testing.T) {
	tokens, reporter := scanAll(t, "1\n2\n3")
	require.False(t, reporter.HadError())
	require.Len(t, tokens, 4)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 3, tokens[2].Line)
}
