package ember

// TokenKind discriminates every lexical category the lexer produces.
// The table below is the single source of truth for spellings,
// keyword-ness and punctuation-ness: one declarative slice walked at
// init time instead of a scattered set of ad-hoc switches.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokError

	TokIdentifier
	TokInt
	TokFloat
	TokString
	TokComment

	// Keywords
	TokKeyFn
	TokKeyLet
	TokKeyLoop
	TokKeyWhile
	TokKeyBreak
	TokKeyContinue
	TokKeyReturn
	TokKeyAs
	TokKeyStruct
	TokKeyExtern
	TokKeyIf
	TokKeyElse
	TokKeyTrue
	TokKeyFalse
	TokKeyAssert

	// Builtin type keywords
	TokKeyVoid
	TokKeyBool
	TokKeyChar
	TokKeyI8
	TokKeyI16
	TokKeyI32
	TokKeyI64
	TokKeyU8
	TokKeyU16
	TokKeyU32
	TokKeyU64
	TokKeyF32
	TokKeyF64

	// Punctuation and operators
	TokLParen
	TokRParen
	TokLBrace
	TokRBrace
	TokLBracket
	TokRBracket
	TokComma
	TokDot
	TokSemicolon
	TokColon
	TokColonColon
	TokArrow // ->
	TokAmp
	TokAmpAmp
	TokAmpEqual
	TokPipe
	TokPipePipe
	TokPipeEqual
	TokCaret
	TokCaretEqual
	TokBang
	TokBangEqual
	TokEqual
	TokEqualEqual
	TokLess
	TokLessEqual
	TokLessLess
	TokLessLessEqual
	TokGreater
	TokGreaterEqual
	TokGreaterGreater
	TokGreaterGreaterEqual
	TokPlus
	TokPlusEqual
	TokMinus
	TokMinusEqual
	TokStar
	TokStarEqual
	TokSlash
	TokSlashEqual
	TokPercent
	TokPercentEqual
)

// tokenSpelling describes one entry of the closed punctuation /
// keyword table: its canonical source spelling (used verbatim by the
// `tok-kind` diagnostic argument formatter) and whether it is a
// keyword (as opposed to punctuation).
type tokenSpelling struct {
	kind     TokenKind
	spelling string
	keyword  bool
}

// tokenTable is the one declarative table the lexer, the keyword
// registrar and the diagnostic formatter all derive their behavior
// from.
var tokenTable = []tokenSpelling{
	{TokKeyFn, "fn", true},
	{TokKeyLet, "let", true},
	{TokKeyLoop, "loop", true},
	{TokKeyWhile, "while", true},
	{TokKeyBreak, "break", true},
	{TokKeyContinue, "continue", true},
	{TokKeyReturn, "return", true},
	{TokKeyAs, "as", true},
	{TokKeyStruct, "struct", true},
	{TokKeyExtern, "extern", true},
	{TokKeyIf, "if", true},
	{TokKeyElse, "else", true},
	{TokKeyTrue, "true", true},
	{TokKeyFalse, "false", true},
	{TokKeyAssert, "assert", true},

	{TokKeyVoid, "void", true},
	{TokKeyBool, "bool", true},
	{TokKeyChar, "char", true},
	{TokKeyI8, "i8", true},
	{TokKeyI16, "i16", true},
	{TokKeyI32, "i32", true},
	{TokKeyI64, "i64", true},
	{TokKeyU8, "u8", true},
	{TokKeyU16, "u16", true},
	{TokKeyU32, "u32", true},
	{TokKeyU64, "u64", true},
	{TokKeyF32, "f32", true},
	{TokKeyF64, "f64", true},

	{TokLParen, "(", false},
	{TokRParen, ")", false},
	{TokLBrace, "{", false},
	{TokRBrace, "}", false},
	{TokLBracket, "[", false},
	{TokRBracket, "]", false},
	{TokComma, ",", false},
	{TokDot, ".", false},
	{TokSemicolon, ";", false},
	{TokColonColon, "::", false},
	{TokColon, ":", false},
	{TokArrow, "->", false},
	{TokAmpAmp, "&&", false},
	{TokAmpEqual, "&=", false},
	{TokAmp, "&", false},
	{TokPipePipe, "||", false},
	{TokPipeEqual, "|=", false},
	{TokPipe, "|", false},
	{TokCaretEqual, "^=", false},
	{TokCaret, "^", false},
	{TokBangEqual, "!=", false},
	{TokBang, "!", false},
	{TokEqualEqual, "==", false},
	{TokEqual, "=", false},
	{TokLessLessEqual, "<<=", false},
	{TokLessLess, "<<", false},
	{TokLessEqual, "<=", false},
	{TokLess, "<", false},
	{TokGreaterGreaterEqual, ">>=", false},
	{TokGreaterGreater, ">>", false},
	{TokGreaterEqual, ">=", false},
	{TokGreater, ">", false},
	{TokPlusEqual, "+=", false},
	{TokPlus, "+", false},
	{TokMinusEqual, "-=", false},
	{TokMinus, "-", false},
	{TokStarEqual, "*=", false},
	{TokStar, "*", false},
	{TokSlashEqual, "/=", false},
	{TokSlash, "/", false},
	{TokPercentEqual, "%=", false},
	{TokPercent, "%", false},
}

// spellingByKind and keywordBySpelling are derived once at init time
// from tokenTable (see ident.go's keyword-registration pass).
var (
	spellingByKind   = map[TokenKind]string{}
	keywordBySpelling = map[string]TokenKind{}
)

func init() {
	for _, e := range tokenTable {
		spellingByKind[e.kind] = e.spelling
		if e.keyword {
			keywordBySpelling[e.spelling] = e.kind
		}
	}
}

// symbolicName covers the token kinds that have no fixed source
// spelling (identifiers, literals, EOF) for diagnostic rendering.
var symbolicName = map[TokenKind]string{
	TokEOF:        "EOF",
	TokError:      "invalid token",
	TokIdentifier: "identifier",
	TokInt:        "integer literal",
	TokFloat:      "float literal",
	TokString:     "string literal",
	TokComment:    "comment",
}

// Spelling returns the canonical source spelling for k if one
// exists (keywords and punctuation), or "" otherwise.
func (k TokenKind) Spelling() (string, bool) {
	s, ok := spellingByKind[k]
	return s, ok
}

// String implements the `tok-kind` diagnostic argument formatter:
// canonical spelling if one exists, else the kind's symbolic name.
func (k TokenKind) String() string {
	if s, ok := spellingByKind[k]; ok {
		return s
	}
	if s, ok := symbolicName[k]; ok {
		return s
	}
	return "?"
}

// IsKeyword reports whether k is one of the closed keyword set.
func (k TokenKind) IsKeyword() bool {
	s, ok := spellingByKind[k]
	if !ok {
		return false
	}
	_, kw := keywordBySpelling[s]
	return kw
}

// Radix is the base used to decode an integer literal's digits.
type Radix int

const (
	RadixDecimal Radix = 10
	RadixBinary  Radix = 2
	RadixOctal   Radix = 8
	RadixHex     Radix = 16
)

// IntSuffix names the fixed-width integer suffix attached to a
// numeric literal, if any.
type IntSuffix int

const (
	SuffixNone IntSuffix = iota
	SuffixI8
	SuffixI16
	SuffixI32
	SuffixI64
	SuffixU8
	SuffixU16
	SuffixU32
	SuffixU64
)

// FloatSuffix names the fixed-width float suffix attached to a
// numeric literal, if any.
type FloatSuffix int

const (
	FloatSuffixNone FloatSuffix = iota
	FloatSuffixF32
	FloatSuffixF64
)

// Token is produced by the lexer for every lexical category. Literal
// tokens carry their un-decoded span plus radix and suffix; decoding
// happens later through the literal decoders so the lexer itself
// never allocates a decoded value.
type Token struct {
	Kind   TokenKind
	Offset int
	Length int

	// Ident is populated for TokIdentifier (and keyword) tokens.
	Ident *Identifier

	// Literal span fields, populated for TokInt/TokFloat/TokString.
	LitBegin  int
	LitEnd    int
	Radix     Radix
	IntSuf    IntSuffix
	FloatSuf  FloatSuffix
}

// Range returns the half-open byte range the token spans.
func (t Token) Range() SourceRange {
	return SourceRange{Begin: SourceLocation(t.Offset), End: SourceLocation(t.Offset + t.Length)}
}

// Text returns the token's exact source spelling.
func (t Token) Text(src []byte) string {
	return string(src[t.Offset : t.Offset+t.Length])
}
