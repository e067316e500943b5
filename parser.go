package ember

// Parser is a recursive-descent, precedence-climbing parser that
// never builds AST nodes itself: every production calls into Sema's
// act_on_* callbacks, which build and check the node. The
// grammar below is LL(1) except for the Pratt-style binary-operator
// loop.
type Parser struct {
	lex   *Lexer
	sema  *Sema
	diags *DiagContext
	file  FileID
	src   []byte

	tok     Token
	peeked  *Token

	// noStructExpr suppresses `name { ... }` struct-literal parsing
	// while parsing an if/while condition, mirroring the restriction
	// the reference grammar imposes so `if x { ... }`'s brace is never
	// mistaken for the start of a struct literal initializing `x`.
	noStructExpr bool
}

// NewParser wires a parser over one file's lexer and its sema.
func NewParser(lex *Lexer, sema *Sema, diags *DiagContext, file FileID, src []byte) *Parser {
	p := &Parser{lex: lex, sema: sema, diags: diags, file: file, src: src}
	p.tok = lex.Next()
	return p
}

func (p *Parser) report(kind DiagKind, r SourceRange) *Diag {
	return p.diags.New(kind, p.file, r)
}

func (p *Parser) advance() Token {
	cur := p.tok
	if p.peeked != nil {
		p.tok = *p.peeked
		p.peeked = nil
	} else {
		p.tok = p.lex.Next()
	}
	return cur
}

func (p *Parser) peek2() Token {
	if p.peeked == nil {
		t := p.lex.Next()
		p.peeked = &t
	}
	return *p.peeked
}

func (p *Parser) at(k TokenKind) bool { return p.tok.Kind == k }

// expect consumes k or reports DiagExpectedToken at the current
// token's location, returning a synthetic zero-width token so the
// caller can keep going (error recovery: one diagnostic per missing
// token, not a cascade).
func (p *Parser) expect(k TokenKind) Token {
	if p.at(k) {
		return p.advance()
	}
	p.report(DiagExpectedToken, Caret(SourceLocation(p.tok.Offset))).
		WithArg(ArgTok(k)).WithArg(ArgTok(p.tok.Kind)).Emit()
	return Token{Kind: k, Offset: p.tok.Offset}
}

func (p *Parser) text(t Token) []byte { return p.src[t.Offset : t.Offset+t.Length] }

// ---- Entry points ----

// ParseTranslationUnit parses an entire file: a sequence of top-level
// declarations until EOF.
func (p *Parser) ParseTranslationUnit() *TranslationUnit {
	start := p.tok.Offset
	var decls []Decl
	for !p.at(TokEOF) {
		if d := p.parseTopLevelDecl(); d != nil {
			decls = append(decls, d)
		} else {
			// Recovery: a top-level token we don't recognize as the
			// start of a declaration. Skip it and keep going so one bad
			// line doesn't abort the whole file.
			p.report(DiagUnexpectedToken, Caret(SourceLocation(p.tok.Offset))).WithArg(ArgTok(p.tok.Kind)).Emit()
			p.advance()
		}
	}
	end := p.tok.Offset
	return p.sema.ActOnTranslationUnit(decls, SourceRange{Begin: SourceLocation(start), End: SourceLocation(end)})
}

// ParseStandaloneStmt parses one statement in isolation (used by
// tests and by any future REPL-style driver).
func (p *Parser) ParseStandaloneStmt() Stmt {
	return p.parseStmt()
}

// ParseStandaloneExpr parses one expression in isolation.
func (p *Parser) ParseStandaloneExpr() Expr {
	return p.parseExpr()
}

// ---- Top level ----

func (p *Parser) parseTopLevelDecl() Decl {
	switch {
	case p.at(TokKeyFn):
		return p.parseFuncDecl(false, "")
	case p.at(TokKeyStruct):
		return p.parseStructDecl()
	case p.at(TokKeyExtern):
		return p.parseExternDecl()
	}
	return nil
}

// parseExternDecl handles `extern "ABI" fn name(...) -> T;`: extern
// functions carry their ABI string through to the backend, with no
// body.
func (p *Parser) parseExternDecl() Decl {
	p.advance() // `extern`
	abi := ""
	if p.at(TokString) {
		tok := p.advance()
		abi = DecodeString(p.src[tok.LitBegin:tok.LitEnd])
	}
	return p.parseFuncDecl(true, abi)
}

func (p *Parser) parseStructDecl() Decl {
	start := p.tok.Offset
	p.advance() // `struct`
	nameTok := p.expect(TokIdentifier)
	name := ""
	if nameTok.Ident != nil {
		name = nameTok.Ident.Spelling
	}
	decl := p.sema.ActOnStructDeclStart(name, SourceRange{Begin: SourceLocation(start)})

	p.expect(TokLBrace)
	for !p.at(TokRBrace) && !p.at(TokEOF) {
		fieldStart := p.tok.Offset
		fieldIdent := p.expect(TokIdentifier)
		p.expect(TokColon)
		ty := p.parseType()
		p.sema.ActOnFieldDecl(decl, fieldIdent.Ident, ty, SourceRange{Begin: SourceLocation(fieldStart), End: SourceLocation(p.tok.Offset)})
		if !p.at(TokRBrace) {
			p.expect(TokComma)
		}
	}
	end := p.tok.Offset
	p.expect(TokRBrace)
	decl.Rg.End = SourceLocation(end)
	return decl
}

// parseFuncDecl parses `fn name(params) -> T { body }`, or, when
// isExtern, the ABI-qualified prototype-only form ending in `;`.
func (p *Parser) parseFuncDecl(isExtern bool, abi string) Decl {
	start := p.tok.Offset
	p.expect(TokKeyFn)
	nameTok := p.expect(TokIdentifier)
	fn := p.sema.ActOnFuncDeclStart(nameTok.Ident, SourceRange{Begin: SourceLocation(start)})

	p.expect(TokLParen)
	var params []*ParamDecl
	index := 0
	for !p.at(TokRParen) && !p.at(TokEOF) {
		pStart := p.tok.Offset
		pIdent := p.expect(TokIdentifier)
		p.expect(TokColon)
		ty := p.parseType()
		var def Expr
		if p.at(TokEqual) {
			p.advance()
			def = p.parseExpr()
		}
		params = append(params, p.sema.ActOnParamDecl(pIdent.Ident, ty, def, index,
			SourceRange{Begin: SourceLocation(pStart), End: SourceLocation(p.tok.Offset)}))
		index++
		if !p.at(TokRParen) {
			p.expect(TokComma)
		}
	}
	p.expect(TokRParen)

	ret := p.sema.Types.Void()
	if p.at(TokArrow) {
		p.advance()
		ret = p.parseType()
	}
	p.sema.ActOnFuncDeclSignature(fn, params, ret, isExtern, abi)

	if isExtern {
		p.expect(TokSemicolon)
		fn.Rg.End = SourceLocation(p.tok.Offset)
		// No scope was ever pushed for the body; mirror
		// ActOnFuncDeclBody's responsibility of popping the params
		// scope ActOnFuncDeclStart pushed.
		p.sema.Scopes.Pop()
		return fn
	}

	p.sema.EnterFunction(fn)
	body := p.parseBlock()
	p.sema.LeaveFunction()
	p.sema.ActOnFuncDeclBody(fn, body)
	fn.Rg.End = body.Rg.End
	return fn
}

// ---- Types ----

func (p *Parser) parseType() *Type {
	switch p.tok.Kind {
	case TokStar:
		p.advance()
		return p.sema.ActOnPointerType(p.parseType())
	case TokLBracket:
		p.advance()
		elem := p.parseType()
		p.expect(TokSemicolon)
		countStart := p.tok.Offset
		countExpr := p.parseExpr()
		end := p.tok.Offset
		p.expect(TokRBracket)
		return p.sema.ActOnArrayType(elem, countExpr, SourceRange{Begin: SourceLocation(countStart), End: SourceLocation(end)})
	case TokLParen:
		p.advance()
		inner := p.parseType()
		p.expect(TokRParen)
		return p.sema.ActOnParenType(inner)
	case TokIdentifier:
		tok := p.advance()
		return p.sema.ActOnNamedType(tok.Ident, tok.Range())
	}
	if k, builtin := builtinTypeKind(p.tok.Kind); builtin {
		p.advance()
		return p.sema.ActOnBuiltinType(k)
	}
	p.report(DiagExpectedType, Caret(SourceLocation(p.tok.Offset))).
		WithArg(ArgStr("a type")).WithArg(ArgTok(p.tok.Kind)).Emit()
	return p.sema.Types.Unknown("")
}

func builtinTypeKind(k TokenKind) (TypeKind, bool) {
	switch k {
	case TokKeyVoid:
		return TyVoid, true
	case TokKeyBool:
		return TyBool, true
	case TokKeyChar:
		return TyChar, true
	case TokKeyI8:
		return TyI8, true
	case TokKeyI16:
		return TyI16, true
	case TokKeyI32:
		return TyI32, true
	case TokKeyI64:
		return TyI64, true
	case TokKeyU8:
		return TyU8, true
	case TokKeyU16:
		return TyU16, true
	case TokKeyU32:
		return TyU32, true
	case TokKeyU64:
		return TyU64, true
	case TokKeyF32:
		return TyF32, true
	case TokKeyF64:
		return TyF64, true
	}
	return 0, false
}

// ---- Statements ----

func (p *Parser) parseBlock() *BlockStmt {
	start := p.tok.Offset
	p.sema.ActOnBlockStart()
	p.expect(TokLBrace)
	var stmts []Stmt
	for !p.at(TokRBrace) && !p.at(TokEOF) {
		stmts = append(stmts, p.parseStmt())
	}
	end := p.tok.Offset
	p.expect(TokRBrace)
	return p.sema.ActOnBlockFinish(stmts, SourceRange{Begin: SourceLocation(start), End: SourceLocation(end)})
}

func (p *Parser) parseStmt() Stmt {
	switch p.tok.Kind {
	case TokLBrace:
		return p.parseBlock()
	case TokKeyLet:
		return p.parseLetStmt()
	case TokKeyIf:
		return p.parseIfStmt()
	case TokKeyWhile:
		return p.parseWhileStmt()
	case TokKeyLoop:
		return p.parseLoopStmt()
	case TokKeyBreak:
		r := p.advance().Range()
		p.expect(TokSemicolon)
		return p.sema.ActOnBreakStmt(r)
	case TokKeyContinue:
		r := p.advance().Range()
		p.expect(TokSemicolon)
		return p.sema.ActOnContinueStmt(r)
	case TokKeyReturn:
		return p.parseReturnStmt()
	case TokKeyAssert:
		return p.parseAssertStmt()
	default:
		e := p.parseExpr()
		p.expect(TokSemicolon)
		return e
	}
}

func (p *Parser) parseLetStmt() Stmt {
	start := p.tok.Offset
	p.advance() // `let`
	var decls []*VarDecl
	for {
		declStart := p.tok.Offset
		ident := p.expect(TokIdentifier)
		var ty *Type
		if p.at(TokColon) {
			p.advance()
			ty = p.parseType()
		}
		var init Expr
		if p.at(TokEqual) {
			p.advance()
			init = p.parseExpr()
		}
		decls = append(decls, p.sema.ActOnVarDecl(ident.Ident, ty, init,
			SourceRange{Begin: SourceLocation(declStart), End: SourceLocation(p.tok.Offset)}))
		if !p.at(TokComma) {
			break
		}
		p.advance()
	}
	end := p.tok.Offset
	p.expect(TokSemicolon)
	return p.sema.ActOnLetStmt(decls, SourceRange{Begin: SourceLocation(start), End: SourceLocation(end)})
}

func (p *Parser) parseCondExpr() Expr {
	p.noStructExpr = true
	e := p.parseExpr()
	p.noStructExpr = false
	return e
}

func (p *Parser) parseIfStmt() Stmt {
	start := p.tok.Offset
	p.advance() // `if`
	cond := p.parseCondExpr()
	then := p.parseBlock()
	var els Stmt
	if p.at(TokKeyElse) {
		p.advance()
		if p.at(TokKeyIf) {
			els = p.parseIfStmt()
		} else {
			els = p.parseBlock()
		}
	}
	end := then.Rg.End
	if els != nil {
		end = els.Range().End
	}
	return p.sema.ActOnIfStmt(cond, then, els, SourceRange{Begin: SourceLocation(start), End: end})
}

func (p *Parser) parseWhileStmt() Stmt {
	start := p.tok.Offset
	p.advance() // `while`

	// Build the node up front as a placeholder so Break/Continue
	// resolve their Target to the same *WhileStmt this call returns.
	placeholder := &WhileStmt{stmtBase: stmtBase{Rg: SourceRange{Begin: SourceLocation(start)}}}
	p.sema.ActOnWhileStart(placeholder)
	cond := p.parseCondExpr()
	body := p.parseBlock()
	p.sema.ActOnWhileFinish()

	end := body.Rg.End
	built := p.sema.ActOnWhileStmt(cond, body, SourceRange{Begin: SourceLocation(start), End: end})
	*placeholder = *built
	return placeholder
}

func (p *Parser) parseLoopStmt() Stmt {
	start := p.tok.Offset
	p.advance() // `loop`

	placeholder := &LoopStmt{stmtBase: stmtBase{Rg: SourceRange{Begin: SourceLocation(start)}}}
	p.sema.ActOnLoopStart(placeholder)
	body := p.parseBlock()
	p.sema.ActOnLoopFinish()

	end := body.Rg.End
	built := p.sema.ActOnLoopStmt(body, SourceRange{Begin: SourceLocation(start), End: end})
	*placeholder = *built
	return placeholder
}

func (p *Parser) parseReturnStmt() Stmt {
	start := p.tok.Offset
	p.advance() // `return`
	var value Expr
	if !p.at(TokSemicolon) {
		value = p.parseExpr()
	}
	end := p.tok.Offset
	p.expect(TokSemicolon)
	return p.sema.ActOnReturnStmt(value, SourceRange{Begin: SourceLocation(start), End: SourceLocation(end)})
}

func (p *Parser) parseAssertStmt() Stmt {
	start := p.tok.Offset
	p.advance() // `assert`
	cond := p.parseExpr()
	end := p.tok.Offset
	p.expect(TokSemicolon)
	return p.sema.ActOnAssertStmt(cond, SourceRange{Begin: SourceLocation(start), End: SourceLocation(end)})
}

// ---- Expressions ----
//
// parseExpr implements precedence-climbing (Pratt parsing) over the
// binary/assignment operator set, with assignment right-associative
// and every other operator left-associative.

type precLevel int

const (
	precNone precLevel = iota
	precAssign
	precLogOr
	precLogAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

func binOpFor(k TokenKind) (BinaryOp, precLevel, bool) {
	switch k {
	case TokEqual:
		return BinAssign, precAssign, true
	case TokPlusEqual:
		return BinAddAssign, precAssign, true
	case TokMinusEqual:
		return BinSubAssign, precAssign, true
	case TokStarEqual:
		return BinMulAssign, precAssign, true
	case TokSlashEqual:
		return BinDivAssign, precAssign, true
	case TokPercentEqual:
		return BinModAssign, precAssign, true
	case TokAmpEqual:
		return BinAndAssign, precAssign, true
	case TokPipeEqual:
		return BinOrAssign, precAssign, true
	case TokCaretEqual:
		return BinXorAssign, precAssign, true
	case TokLessLessEqual:
		return BinShlAssign, precAssign, true
	case TokGreaterGreaterEqual:
		return BinShrAssign, precAssign, true
	case TokPipePipe:
		return BinLogOr, precLogOr, true
	case TokAmpAmp:
		return BinLogAnd, precLogAnd, true
	case TokPipe:
		return BinBitOr, precBitOr, true
	case TokCaret:
		return BinBitXor, precBitXor, true
	case TokAmp:
		return BinBitAnd, precBitAnd, true
	case TokEqualEqual:
		return BinEq, precEquality, true
	case TokBangEqual:
		return BinNe, precEquality, true
	case TokLess:
		return BinLt, precRelational, true
	case TokLessEqual:
		return BinLe, precRelational, true
	case TokGreater:
		return BinGt, precRelational, true
	case TokGreaterEqual:
		return BinGe, precRelational, true
	case TokLessLess:
		return BinShl, precShift, true
	case TokGreaterGreater:
		return BinShr, precShift, true
	case TokPlus:
		return BinAdd, precAdditive, true
	case TokMinus:
		return BinSub, precAdditive, true
	case TokStar:
		return BinMul, precMultiplicative, true
	case TokSlash:
		return BinDiv, precMultiplicative, true
	case TokPercent:
		return BinMod, precMultiplicative, true
	}
	return 0, precNone, false
}

func (p *Parser) parseExpr() Expr { return p.parseBinaryExpr(precAssign) }

func (p *Parser) parseBinaryExpr(minPrec precLevel) Expr {
	lhs := p.parseCastExpr()
	for {
		op, prec, ok := binOpFor(p.tok.Kind)
		if !ok || prec < minPrec {
			return lhs
		}
		r := p.tok.Range()
		p.advance()
		nextMin := prec + 1
		if op.IsAssignment() {
			nextMin = precAssign // right-associative
		}
		rhs := p.parseBinaryExpr(nextMin)
		lhs = p.sema.ActOnBinaryExpr(op, lhs, rhs, SourceRange{Begin: lhs.Range().Begin, End: r.End})
	}
}

// parseCastExpr handles the postfix `expr as T` conversion, which
// binds tighter than any binary operator but looser than unary/
// postfix.
func (p *Parser) parseCastExpr() Expr {
	e := p.parseUnaryExpr()
	for p.at(TokKeyAs) {
		p.advance()
		ty := p.parseType()
		e = p.sema.ActOnCastExpr(e, ty, SourceRange{Begin: e.Range().Begin, End: SourceLocation(p.tok.Offset)})
	}
	return e
}

func (p *Parser) parseUnaryExpr() Expr {
	start := p.tok.Offset
	switch p.tok.Kind {
	case TokMinus:
		p.advance()
		sub := p.parseUnaryExpr()
		return p.sema.ActOnUnaryExpr(UnaryNeg, sub, SourceRange{Begin: SourceLocation(start), End: sub.Range().End})
	case TokBang:
		p.advance()
		sub := p.parseUnaryExpr()
		return p.sema.ActOnUnaryExpr(UnaryNot, sub, SourceRange{Begin: SourceLocation(start), End: sub.Range().End})
	case TokAmp:
		p.advance()
		sub := p.parseUnaryExpr()
		return p.sema.ActOnUnaryExpr(UnaryAddrOf, sub, SourceRange{Begin: SourceLocation(start), End: sub.Range().End})
	case TokStar:
		p.advance()
		sub := p.parseUnaryExpr()
		return p.sema.ActOnUnaryExpr(UnaryDeref, sub, SourceRange{Begin: SourceLocation(start), End: sub.Range().End})
	}
	return p.parsePostfixExpr()
}

func (p *Parser) parsePostfixExpr() Expr {
	e := p.parsePrimaryExpr()
	for {
		switch p.tok.Kind {
		case TokLParen:
			p.advance()
			var args []Expr
			for !p.at(TokRParen) && !p.at(TokEOF) {
				args = append(args, p.parseExpr())
				if !p.at(TokRParen) {
					p.expect(TokComma)
				}
			}
			end := p.tok.Offset
			p.expect(TokRParen)
			e = p.sema.ActOnCallExpr(e, args, SourceRange{Begin: e.Range().Begin, End: SourceLocation(end)})
		case TokDot:
			p.advance()
			field := p.expect(TokIdentifier)
			e = p.sema.ActOnMemberExpr(e, field.Ident, SourceRange{Begin: e.Range().Begin, End: field.Range().End})
		default:
			return e
		}
	}
}

func (p *Parser) parsePrimaryExpr() Expr {
	tok := p.tok
	switch tok.Kind {
	case TokKeyTrue:
		p.advance()
		return p.sema.ActOnBoolLit(true, tok.Range())
	case TokKeyFalse:
		p.advance()
		return p.sema.ActOnBoolLit(false, tok.Range())
	case TokInt:
		p.advance()
		span := p.src[tok.LitBegin:tok.LitEnd]
		return p.sema.ActOnIntLit(span, tok.Radix, tok.IntSuf, tok.Range())
	case TokFloat:
		p.advance()
		span := p.src[tok.LitBegin:tok.LitEnd]
		return p.sema.ActOnFloatLit(span, tok.FloatSuf, tok.Range())
	case TokIdentifier:
		p.advance()
		if p.at(TokLBrace) && !p.noStructExpr {
			return p.parseStructExpr(tok)
		}
		return p.sema.ActOnDeclRefExpr(tok.Ident, tok.Range())
	case TokLParen:
		p.advance()
		sub := p.parseExpr()
		end := p.tok.Offset
		p.expect(TokRParen)
		return p.sema.ActOnParenExpr(sub, SourceRange{Begin: tok.Range().Begin, End: SourceLocation(end)})
	}
	p.report(DiagUnexpectedToken, tok.Range()).WithArg(ArgTok(tok.Kind)).Emit()
	p.advance()
	return p.sema.ActOnIntLit([]byte("0"), RadixDecimal, SuffixNone, tok.Range())
}

func (p *Parser) parseStructExpr(nameTok Token) Expr {
	decl, ok := p.sema.structsByName[nameTok.Ident.Spelling]
	if !ok {
		p.report(DiagNotAStruct, nameTok.Range()).WithArg(ArgIdent(nameTok.Ident)).Emit()
	}
	p.advance() // `{`
	var fields []Expr
	for !p.at(TokRBrace) && !p.at(TokEOF) {
		p.expect(TokIdentifier)
		p.expect(TokColon)
		fields = append(fields, p.parseExpr())
		if !p.at(TokRBrace) {
			p.expect(TokComma)
		}
	}
	end := p.tok.Offset
	p.expect(TokRBrace)
	if decl == nil {
		decl = Alloc[StructDecl](p.sema.Arena)
		decl.Name = nameTok.Ident.Spelling
	}
	return p.sema.ActOnStructExpr(decl, fields, SourceRange{Begin: nameTok.Range().Begin, End: SourceLocation(end)})
}
