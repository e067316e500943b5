package ember

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) ([]Token, *SourceFile, *DiagContext) {
	t.Helper()
	sources := NewSourceManager()
	file := sources.AddFile("test.em", []byte(src))
	var buf bytes.Buffer
	diags := NewDiagContext(&buf, sources, false, func(int) {})
	idents := NewIdentifierTable()
	lex := NewLexer(file, idents, diags)

	var toks []Token
	for {
		tok := lex.Next()
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	return toks, file, diags
}

func TestLexerPunctuationLongestMatch(t *testing.T) {
	toks, _, _ := lexAll(t, "<<= << < <=")
	kinds := []TokenKind{TokLessLessEqual, TokLessLess, TokLess, TokLessEqual, TokEOF}
	require.Len(t, toks, len(kinds))
	for i, k := range kinds {
		require.Equalf(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestLexerKeywordsAndIdentifiers(t *testing.T) {
	toks, _, _ := lexAll(t, "fn foo let x")
	require.Equal(t, TokKeyFn, toks[0].Kind)
	require.Equal(t, TokIdentifier, toks[1].Kind)
	require.Equal(t, "foo", toks[1].Ident.Spelling)
	require.Equal(t, TokKeyLet, toks[2].Kind)
	require.Equal(t, TokIdentifier, toks[3].Kind)
}

func TestLexerRawIdentifierEscapesKeyword(t *testing.T) {
	toks, _, _ := lexAll(t, "r#fn")
	require.Equal(t, TokIdentifier, toks[0].Kind)
	require.Equal(t, "fn", toks[0].Ident.Spelling)
}

func TestLexerNumericLiteralsWithRadixAndSuffix(t *testing.T) {
	toks, file, _ := lexAll(t, "0xff_i32 0b1010 3.14f32 42")
	require.Equal(t, TokInt, toks[0].Kind)
	require.Equal(t, RadixHex, toks[0].Radix)
	require.Equal(t, SuffixI32, toks[0].IntSuf)
	require.Equal(t, "ff_", string(file.Bytes[toks[0].LitBegin:toks[0].LitEnd]))

	require.Equal(t, TokInt, toks[1].Kind)
	require.Equal(t, RadixBinary, toks[1].Radix)

	require.Equal(t, TokFloat, toks[2].Kind)
	require.Equal(t, FloatSuffixF32, toks[2].FloatSuf)

	require.Equal(t, TokInt, toks[3].Kind)
	require.Equal(t, RadixDecimal, toks[3].Radix)
}

func TestLexerStringLiteral(t *testing.T) {
	toks, file, _ := lexAll(t, `"hello\nworld"`)
	require.Equal(t, TokString, toks[0].Kind)
	span := file.Bytes[toks[0].LitBegin:toks[0].LitEnd]
	require.Equal(t, `hello\nworld`, string(span))
}

func TestLexerUnterminatedBlockCommentReportsOnce(t *testing.T) {
	_, _, diags := lexAll(t, "/* never closed")
	require.Equal(t, 1, diags.NumErrors)
}

func TestLexerBlockCommentsDoNotNest(t *testing.T) {
	// The comment closes at the first "*/", right after "inner"; the
	// trailing "still */" is ordinary source, not trivia.
	toks, _, diags := lexAll(t, "/* outer /* inner */ still */")
	require.Equal(t, 0, diags.NumErrors)
	require.Equal(t, TokIdentifier, toks[0].Kind)
	require.Equal(t, "still", toks[0].Ident.Spelling)
	require.Equal(t, TokStar, toks[1].Kind)
	require.Equal(t, TokSlash, toks[2].Kind)
}

func TestLexerUnknownCharacterReported(t *testing.T) {
	_, _, diags := lexAll(t, "@")
	require.Equal(t, 1, diags.NumErrors)
}

func TestLexerEOFIsSticky(t *testing.T) {
	sources := NewSourceManager()
	file := sources.AddFile("test.em", []byte(""))
	var buf bytes.Buffer
	diags := NewDiagContext(&buf, sources, false, func(int) {})
	lex := NewLexer(file, NewIdentifierTable(), diags)
	require.Equal(t, TokEOF, lex.Next().Kind)
	require.Equal(t, TokEOF, lex.Next().Kind)
}

func TestLexerLineMapPopulatedIncrementally(t *testing.T) {
	_, file, _ := lexAll(t, "a\nb\nc")
	require.Equal(t, 3, file.Lines.LineCount())
}
