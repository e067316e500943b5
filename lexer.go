package ember

// Lexer tokenizes one SourceFile's byte buffer, populating its
// LineMap incrementally as it scans: there is no
// separate up-front line-indexing pass.
type Lexer struct {
	file  *SourceFile
	src   []byte
	pos   int
	diags *DiagContext
	idents *IdentifierTable
}

// NewLexer returns a lexer positioned at the start of file's buffer.
// idents is the shared identifier table every identifier/keyword
// token is interned through; diags receives lexical diagnostics (the
// unterminated-block-comment and unknown-character cases).
func NewLexer(file *SourceFile, idents *IdentifierTable, diags *DiagContext) *Lexer {
	return &Lexer{file: file, src: file.Bytes, diags: diags, idents: idents}
}

func (l *Lexer) at(i int) byte {
	if l.pos+i >= len(l.src) {
		return 0
	}
	return l.src[l.pos+i]
}

func (l *Lexer) cur() byte { return l.at(0) }

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

// advance consumes one byte, recording a new line start in the
// file's LineMap whenever a '\n' is crossed.
func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.file.Lines.Add(l.pos)
	}
	return b
}

func isDigitByte(b byte) bool      { return b >= '0' && b <= '9' }
func isHexDigitByte(b byte) bool   { return isDigitByte(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') }
func isIdentStart(b byte) bool     { return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isIdentContinue(b byte) bool  { return isIdentStart(b) || isDigitByte(b) }

// skipTrivia consumes whitespace and comments, stopping a block
// comment at its first "*/" (block comments do not nest) and
// reporting the unterminated case.
func (l *Lexer) skipTrivia() {
	for !l.eof() {
		switch l.cur() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '/':
			if l.at(1) == '/' {
				for !l.eof() && l.cur() != '\n' {
					l.advance()
				}
			} else if l.at(1) == '*' {
				start := l.pos
				l.advance()
				l.advance()
				closed := false
				for !l.eof() {
					if l.cur() == '*' && l.at(1) == '/' {
						l.advance()
						l.advance()
						closed = true
						break
					}
					l.advance()
				}
				if !closed && l.diags != nil {
					l.diags.New(DiagUnterminatedBlockComment, l.file.ID, Caret(SourceLocation(start))).Emit()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

// Next scans and returns the next token, skipping leading trivia. At
// end of input it returns TokEOF forever without advancing further
//.
func (l *Lexer) Next() Token {
	l.skipTrivia()
	if l.eof() {
		return Token{Kind: TokEOF, Offset: l.pos}
	}

	start := l.pos
	b := l.cur()

	switch {
	case isIdentStart(b):
		return l.lexIdentifier(start)
	case isDigitByte(b):
		return l.lexNumber(start)
	case b == '"':
		return l.lexString(start)
	}

	if tok, ok := l.lexPunct(start); ok {
		return tok
	}

	l.advance()
	if l.diags != nil {
		l.diags.New(DiagUnknownChar, l.file.ID, Caret(SourceLocation(start))).WithArg(ArgChar(b)).Emit()
	}
	return Token{Kind: TokError, Offset: start, Length: l.pos - start}
}

// lexIdentifier scans `r#ident` raw identifiers and ordinary
// identifiers/keywords alike: `r#` forces an identifier token even
// when the following spelling matches a keyword.
func (l *Lexer) lexIdentifier(start int) Token {
	raw := false
	if l.cur() == 'r' && l.at(1) == '#' && isIdentStart(l.at(2)) {
		raw = true
		l.advance()
		l.advance()
	}
	spellStart := l.pos
	for !l.eof() && isIdentContinue(l.cur()) {
		l.advance()
	}
	spelling := string(l.src[spellStart:l.pos])
	ident := l.idents.Lookup(spelling)
	kind := TokIdentifier
	if !raw && ident.IsKeyword() {
		kind = ident.Kind
	}
	return Token{Kind: kind, Offset: start, Length: l.pos - start, Ident: ident}
}

// lexNumber scans an integer or float literal of any supported radix
// with an optional fixed-width suffix. The lexer records only the
// un-decoded span plus radix/suffix; DecodeInt / DecodeFloat do the
// actual conversion later.
func (l *Lexer) lexNumber(start int) Token {
	radix := RadixDecimal
	litStart := start
	if l.cur() == '0' && (l.at(1) == 'b' || l.at(1) == 'B') {
		radix = RadixBinary
		l.advance()
		l.advance()
		litStart = l.pos
	} else if l.cur() == '0' && (l.at(1) == 'o' || l.at(1) == 'O') {
		radix = RadixOctal
		l.advance()
		l.advance()
		litStart = l.pos
	} else if l.cur() == '0' && (l.at(1) == 'x' || l.at(1) == 'X') {
		radix = RadixHex
		l.advance()
		l.advance()
		litStart = l.pos
	}

	isRadixDigit := func(b byte) bool {
		switch radix {
		case RadixBinary:
			return b == '0' || b == '1'
		case RadixOctal:
			return b >= '0' && b <= '7'
		case RadixHex:
			return isHexDigitByte(b)
		default:
			return isDigitByte(b)
		}
	}

	for !l.eof() && (isRadixDigit(l.cur()) || l.cur() == '_') {
		l.advance()
	}
	litEnd := l.pos

	isFloat := false
	if radix == RadixDecimal && l.cur() == '.' && isDigitByte(l.at(1)) {
		isFloat = true
		l.advance()
		for !l.eof() && (isDigitByte(l.cur()) || l.cur() == '_') {
			l.advance()
		}
		litEnd = l.pos
	}
	if radix == RadixDecimal && (l.cur() == 'e' || l.cur() == 'E') {
		save := l.pos
		savedEnd := litEnd
		l.advance()
		if l.cur() == '+' || l.cur() == '-' {
			l.advance()
		}
		if isDigitByte(l.cur()) {
			isFloat = true
			for !l.eof() && (isDigitByte(l.cur()) || l.cur() == '_') {
				l.advance()
			}
			litEnd = l.pos
		} else {
			l.pos = save
			litEnd = savedEnd
		}
	}

	intSuf := SuffixNone
	floatSuf := FloatSuffixNone
	if !isFloat {
		switch {
		case l.matchSuffix("i8"):
			intSuf = SuffixI8
		case l.matchSuffix("i16"):
			intSuf = SuffixI16
		case l.matchSuffix("i32"):
			intSuf = SuffixI32
		case l.matchSuffix("i64"):
			intSuf = SuffixI64
		case l.matchSuffix("u8"):
			intSuf = SuffixU8
		case l.matchSuffix("u16"):
			intSuf = SuffixU16
		case l.matchSuffix("u32"):
			intSuf = SuffixU32
		case l.matchSuffix("u64"):
			intSuf = SuffixU64
		case l.matchSuffix("f32"):
			isFloat = true
			floatSuf = FloatSuffixF32
		case l.matchSuffix("f64"):
			isFloat = true
			floatSuf = FloatSuffixF64
		}
	} else {
		switch {
		case l.matchSuffix("f32"):
			floatSuf = FloatSuffixF32
		case l.matchSuffix("f64"):
			floatSuf = FloatSuffixF64
		}
	}

	kind := TokInt
	if isFloat {
		kind = TokFloat
	}
	return Token{
		Kind: kind, Offset: start, Length: l.pos - start,
		LitBegin: litStart, LitEnd: litEnd, Radix: radix,
		IntSuf: intSuf, FloatSuf: floatSuf,
	}
}

// matchSuffix consumes the literal ASCII suffix s if it appears next
// and is not itself followed by another identifier character (so
// `1i8x` is not mistaken for an `i8` suffix).
func (l *Lexer) matchSuffix(s string) bool {
	for i := 0; i < len(s); i++ {
		if l.at(i) != s[i] {
			return false
		}
	}
	if isIdentContinue(l.at(len(s))) {
		return false
	}
	for i := 0; i < len(s); i++ {
		l.advance()
	}
	return true
}

// lexString scans a `"..."` string literal, including its escapes,
// without decoding them (DecodeString does that later). An
// unterminated string is reported the same way an unterminated block
// comment is: once, caret at the opening quote.
func (l *Lexer) lexString(start int) Token {
	l.advance() // opening quote
	litStart := l.pos
	for !l.eof() && l.cur() != '"' {
		if l.cur() == '\\' && !l.eof() {
			l.advance()
			if !l.eof() {
				l.advance()
			}
			continue
		}
		l.advance()
	}
	litEnd := l.pos
	if l.eof() {
		if l.diags != nil {
			l.diags.New(DiagUnterminatedString, l.file.ID, Caret(SourceLocation(start))).Emit()
		}
		return Token{Kind: TokString, Offset: start, Length: l.pos - start, LitBegin: litStart, LitEnd: litEnd}
	}
	l.advance() // closing quote
	return Token{Kind: TokString, Offset: start, Length: l.pos - start, LitBegin: litStart, LitEnd: litEnd}
}

// punctSpellings is tried longest-first so that e.g. "<<=" is
// recognized before "<<" and "<".
var punctSpellings []tokenSpelling

func init() {
	for _, e := range tokenTable {
		if !e.keyword {
			punctSpellings = append(punctSpellings, e)
		}
	}
	// Stable sort by descending spelling length (insertion sort: the
	// table is small and this only runs once).
	for i := 1; i < len(punctSpellings); i++ {
		for j := i; j > 0 && len(punctSpellings[j].spelling) > len(punctSpellings[j-1].spelling); j-- {
			punctSpellings[j], punctSpellings[j-1] = punctSpellings[j-1], punctSpellings[j]
		}
	}
}

func (l *Lexer) lexPunct(start int) (Token, bool) {
	for _, e := range punctSpellings {
		n := len(e.spelling)
		ok := true
		for i := 0; i < n; i++ {
			if l.at(i) != e.spelling[i] {
				ok = false
				break
			}
		}
		if ok {
			for i := 0; i < n; i++ {
				l.advance()
			}
			return Token{Kind: e.kind, Offset: start, Length: n}, true
		}
	}
	return Token{}, false
}
