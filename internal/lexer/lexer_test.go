package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sin4auto/typelang-hm/internal/token"
)

func typesOf(t *testing.T, src string) []token.Type {
	t.Helper()
	toks, err := Tokenize(src)
	require.NoError(t, err)
	var types []token.Type
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	return types
}

func TestLexerOperatorsAndPunctuation(t *testing.T) {
	types := typesOf(t, "let x = 1 + 2 * 3 ^ 4 ** 5 in x")
	require.Equal(t, []token.Type{
		token.LET, token.IDENT, token.ASSIGN, token.INT, token.PLUS, token.INT,
		token.STAR, token.INT, token.CARET, token.INT, token.POW, token.INT,
		token.IN, token.IDENT, token.EOF,
	}, types)
}

func TestLexerRoundTripPreservesNonWhitespace(t *testing.T) {
	src := "f x ::Int->Int"
	toks, err := Tokenize(src)
	require.NoError(t, err)

	var rebuilt string
	for _, tok := range toks {
		if tok.Type == token.EOF {
			continue
		}
		rebuilt += src[tok.Start:tok.End]
	}
	require.Equal(t, "fx::Int->Int", rebuilt)
}

func TestLexerIntegerBases(t *testing.T) {
	toks, err := Tokenize("0x1F 0o17 0b101 42")
	require.NoError(t, err)
	for _, tok := range toks[:4] {
		require.Equal(t, token.INT, tok.Type)
	}
}

func TestLexerFloatRequiresDigitsAroundDot(t *testing.T) {
	toks, err := Tokenize("3.14 2e10 1.5e-3")
	require.NoError(t, err)
	require.Equal(t, token.FLOAT, toks[0].Type)
	require.Equal(t, token.FLOAT, toks[1].Type)
	require.Equal(t, token.FLOAT, toks[2].Type)
}

func TestLexerStringEscapes(t *testing.T) {
	toks, err := Tokenize(`"a\nb\tc\"d"`)
	require.NoError(t, err)
	require.Equal(t, token.STRING, toks[0].Type)
	require.Equal(t, "a\nb\tc\"d", toks[0].Lexeme)
}

func TestLexerUnknownEscapeIsRejected(t *testing.T) {
	_, err := Tokenize(`"a\qb"`)
	require.Error(t, err)
}

func TestLexerUnterminatedStringIsRejected(t *testing.T) {
	_, err := Tokenize(`"abc`)
	require.Error(t, err)
}

func TestLexerNestedBlockComments(t *testing.T) {
	types := typesOf(t, "{- outer {- inner -} still outer -} 42")
	require.Equal(t, []token.Type{token.INT, token.EOF}, types)
}

func TestLexerUnbalancedBlockCommentIsRejected(t *testing.T) {
	_, err := Tokenize("{- never closed")
	require.Error(t, err)
}

func TestLexerLineComment(t *testing.T) {
	types := typesOf(t, "1 -- trailing comment\n+ 2")
	require.Equal(t, []token.Type{token.INT, token.PLUS, token.INT, token.EOF}, types)
}

func TestLexerConstructorVsIdentifier(t *testing.T) {
	types := typesOf(t, "Just x")
	require.Equal(t, []token.Type{token.CONIDENT, token.IDENT, token.EOF}, types)
}

func TestLexerHole(t *testing.T) {
	toks, err := Tokenize("?todo")
	require.NoError(t, err)
	require.Equal(t, token.HOLE, toks[0].Type)
	require.Equal(t, "?todo", toks[0].Lexeme)
}

func TestLexerUTF8Spans(t *testing.T) {
	toks, err := Tokenize(`"héllo" + 1`)
	require.NoError(t, err)
	require.Equal(t, token.STRING, toks[0].Type)
	require.Equal(t, "héllo", toks[0].Lexeme)
	require.Equal(t, token.PLUS, toks[1].Type)
}
