package ember

// Sema owns every act_on_* callback the parser drives.
// The parser never builds AST nodes itself; it recognizes grammar and
// asks Sema to build and check the corresponding node, keeping parsing
// and checking as separate concerns.
type Sema struct {
	Arena  *Arena
	Types  *TypeContext
	Scopes *ScopeStack
	Diags  *DiagContext
	File   FileID

	structsByName map[string]*StructDecl
	funcsByName   map[string]*FuncDecl

	currentFunc *FuncDecl
}

// NewSema wires a fresh semantic analyzer over shared arena, type
// context and diagnostic sink for one file.
func NewSema(arena *Arena, types *TypeContext, diags *DiagContext, file FileID) *Sema {
	return &Sema{
		Arena:         arena,
		Types:         types,
		Scopes:        NewScopeStack(),
		Diags:         diags,
		File:          file,
		structsByName: make(map[string]*StructDecl),
		funcsByName:   make(map[string]*FuncDecl),
	}
}

func (s *Sema) report(kind DiagKind, r SourceRange) *Diag {
	return s.Diags.New(kind, s.File, r)
}

// ---- Types ----

// ActOnBuiltinType returns the singleton for a builtin keyword type.
func (s *Sema) ActOnBuiltinType(k TypeKind) *Type { return s.Types.Builtin(k) }

// ActOnPointerType builds `*T`.
func (s *Sema) ActOnPointerType(elem *Type) *Type { return s.Types.Pointer(elem) }

// ActOnParenType builds the non-uniqued `(T)` wrapper.
func (s *Sema) ActOnParenType(elem *Type) *Type { return s.Types.Paren(elem) }

// ActOnArrayType builds `[T; N]`, N taken from a constant-folded
// expression: array counts must be constant expressions.
func (s *Sema) ActOnArrayType(elem *Type, countExpr Expr, countRange SourceRange) *Type {
	v := Eval(countExpr)
	if v.Kind != ConstInt {
		s.report(DiagExpectedType, countRange).WithArg(ArgStr("a constant integer array length")).WithArg(ArgStr("a non-constant expression")).Emit()
		return s.Types.Array(elem, 0)
	}
	return s.Types.Array(elem, v.I)
}

// ActOnNamedType resolves a `struct`-tag reference by name. An
// unresolved name yields the Unknown placeholder rather than failing
// the whole parse.
func (s *Sema) ActOnNamedType(ident *Identifier, r SourceRange) *Type {
	if decl, ok := s.structsByName[ident.Spelling]; ok {
		return s.Types.Tag(decl)
	}
	s.report(DiagUndeclaredIdentifier, r).WithArg(ArgIdent(ident)).Emit()
	return s.Types.Unknown(ident.Spelling)
}

// ---- Declarations ----

// ActOnStructDeclStart registers name in the struct table before its
// fields are parsed, so a field may name the struct itself through a
// pointer (self-referential structs are otherwise impossible to type).
func (s *Sema) ActOnStructDeclStart(name string, r SourceRange) *StructDecl {
	if _, dup := s.structsByName[name]; dup {
		s.report(DiagRedeclaredStruct, r).WithArg(ArgStr(name)).Emit()
	}
	decl := Alloc[StructDecl](s.Arena)
	decl.Rg = r
	decl.Name = name
	s.structsByName[name] = decl
	return decl
}

// ActOnFieldDecl appends one field to decl, rejecting a duplicate
// field name within the same struct.
func (s *Sema) ActOnFieldDecl(decl *StructDecl, ident *Identifier, ty *Type, r SourceRange) *FieldDecl {
	if decl.FieldByName(ident.Spelling) != nil {
		s.report(DiagRedeclaredVariable, r).WithArg(ArgIdent(ident)).Emit()
	}
	f := Alloc[FieldDecl](s.Arena)
	f.Rg = r
	f.Ident = ident
	f.Ty = ty
	f.Index = len(decl.Fields)
	f.Parent = decl
	decl.Fields = append(decl.Fields, f)
	return f
}

// ActOnVarDecl builds one `let name: T = init` binding, applying the
// implicit l2r conversion to init and checking Init's type against an
// explicit annotation when both are present.
func (s *Sema) ActOnVarDecl(ident *Identifier, declared *Type, init Expr, r SourceRange) *VarDecl {
	if init != nil {
		init = s.loadIfNeeded(init)
	}
	ty := declared
	if ty == nil {
		if init != nil {
			ty = init.Type()
		} else {
			ty = s.Types.Unknown(ident.Spelling)
		}
	} else if init != nil && !Compatible(init.Type(), ty) {
		s.report(DiagExpectedType, init.Range()).WithArg(ArgType(ty)).WithArg(ArgType(init.Type())).Emit()
	}

	if existing := s.Scopes.LocalLookup(ident); existing != nil {
		s.report(DiagRedeclaredVariable, r).WithArg(ArgIdent(ident)).Emit()
	}

	decl := Alloc[VarDecl](s.Arena)
	decl.Rg = r
	decl.Ident = ident
	decl.Ty = ty
	decl.Init = init
	s.Scopes.Insert(ident, decl)
	return decl
}

// ActOnLetStmt wraps one or more VarDecls parsed from a single `let`.
func (s *Sema) ActOnLetStmt(decls []*VarDecl, r SourceRange) *LetStmt {
	ls := Alloc[LetStmt](s.Arena)
	ls.Rg = r
	ls.Decls = decls
	return ls
}

// ActOnParamDecl declares one parameter in the FUNC_PARAMS scope that
// ActOnFuncDeclStart pushed, rejecting a duplicate parameter name,
// checking a default argument's type, and checking that the default
// does not reference a sibling parameter.
func (s *Sema) ActOnParamDecl(ident *Identifier, ty *Type, def Expr, index int, r SourceRange) *ParamDecl {
	if s.Scopes.LocalLookup(ident) != nil {
		s.report(DiagRedeclaredParameter, r).WithArg(ArgIdent(ident)).Emit()
	}
	if def != nil {
		s.checkDefaultArgRefs(def)
		def = s.loadIfNeeded(def)
		if !Compatible(def.Type(), ty) {
			s.report(DiagExpectedType, def.Range()).WithArg(ArgType(ty)).WithArg(ArgType(def.Type())).Emit()
		}
	}
	p := Alloc[ParamDecl](s.Arena)
	p.Rg = r
	p.Ident = ident
	p.Ty = ty
	p.Default = def
	p.Index = index
	s.Scopes.Insert(ident, p)
	return p
}

// checkDefaultArgRefs walks expr looking for a DeclRefExpr resolving
// to a ParamDecl of the function currently being declared.
func (s *Sema) checkDefaultArgRefs(expr Expr) {
	switch e := expr.(type) {
	case *DeclRefExpr:
		if _, ok := e.Decl.(*ParamDecl); ok {
			s.report(DiagParamRefersToParam, e.Range()).Emit()
		}
	case *ParenExpr:
		s.checkDefaultArgRefs(e.Sub)
	case *L2RExpr:
		s.checkDefaultArgRefs(e.Sub)
	case *UnaryExpr:
		s.checkDefaultArgRefs(e.Sub)
	case *BinaryExpr:
		s.checkDefaultArgRefs(e.LHS)
		s.checkDefaultArgRefs(e.RHS)
	case *CastExpr:
		s.checkDefaultArgRefs(e.Sub)
	case *CallExpr:
		s.checkDefaultArgRefs(e.Callee)
		for _, a := range e.Args {
			s.checkDefaultArgRefs(a)
		}
	case *MemberExpr:
		s.checkDefaultArgRefs(e.Base)
	}
}

// ActOnFuncDeclStart registers name and pushes the FUNC_PARAMS scope
// the parameter list is parsed in; params are attached once parsed
// (the parser calls ActOnParamDecl against this pushed scope in
// between), then ActOnFuncDeclSignature freezes the type.
func (s *Sema) ActOnFuncDeclStart(ident *Identifier, r SourceRange) *FuncDecl {
	if _, dup := s.funcsByName[ident.Spelling]; dup {
		s.report(DiagRedeclaredFunction, r).WithArg(ArgIdent(ident)).Emit()
	}
	fn := Alloc[FuncDecl](s.Arena)
	fn.Rg = r
	fn.Ident = ident
	s.funcsByName[ident.Spelling] = fn
	s.Scopes.Push(FlagFuncParams, nil)
	return fn
}

// ActOnFuncDeclSignature finalizes params/return type once parsed,
// computing RequiredCount: the count of leading parameters with no
// default argument. Once any parameter carries a default, every
// parameter after it must too; RequiredCount is frozen here for the
// call-arity check.
func (s *Sema) ActOnFuncDeclSignature(fn *FuncDecl, params []*ParamDecl, ret *Type, isExtern bool, abi string) {
	fn.Params = params
	fn.RetType = ret
	fn.IsExtern = isExtern
	fn.ABI = abi

	required := len(params)
	seenDefault := false
	for i, p := range params {
		if p.Default != nil {
			seenDefault = true
			if required == len(params) {
				required = i
			}
		} else if seenDefault {
			s.report(DiagMissingDefaultArgument, p.Range()).WithArg(ArgIdent(fn.Ident)).Emit()
		}
	}
	fn.RequiredCount = required

	paramTypes := make([]*Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.Ty
	}
	fn.FuncType = s.Types.Function(ret, paramTypes)
}

// ActOnFuncDeclBody attaches body and pops the FUNC_PARAMS scope that
// ActOnFuncDeclStart pushed.
func (s *Sema) ActOnFuncDeclBody(fn *FuncDecl, body *BlockStmt) {
	fn.Body = body
	s.Scopes.Pop()
}

// ---- Statements ----

// ActOnBlockStart pushes a plain lexical scope (no break/continue
// flags of its own — those come from ActOnLoopStart/ActOnWhileStart).
func (s *Sema) ActOnBlockStart() { s.Scopes.Push(0, nil) }

// ActOnBlockFinish pops the scope ActOnBlockStart pushed and builds
// the BlockStmt node.
func (s *Sema) ActOnBlockFinish(stmts []Stmt, r SourceRange) *BlockStmt {
	s.Scopes.Pop()
	b := Alloc[BlockStmt](s.Arena)
	b.Rg = r
	b.Stmts = stmts
	return b
}

// ActOnIfStmt checks the condition is bool and inserts l2r.
func (s *Sema) ActOnIfStmt(cond Expr, then, els Stmt, r SourceRange) *IfStmt {
	cond = s.requireBoolCondition(cond)
	st := Alloc[IfStmt](s.Arena)
	st.Rg = r
	st.Cond = cond
	st.Then = then
	st.Else = els
	return st
}

// ActOnWhileStart pushes the BREAK|CONTINUE-flagged scope a `while`
// body is checked in, origin set to the (not-yet-built) while
// statement placeholder supplied by the caller.
func (s *Sema) ActOnWhileStart(origin Stmt) {
	s.Scopes.Push(FlagBreak|FlagContinue, origin)
}

func (s *Sema) ActOnWhileFinish() { s.Scopes.Pop() }

// ActOnWhileStmt builds the node; cond is type-checked against bool
// with l2r inserted, matching ActOnIfStmt.
func (s *Sema) ActOnWhileStmt(cond Expr, body Stmt, r SourceRange) *WhileStmt {
	cond = s.requireBoolCondition(cond)
	st := Alloc[WhileStmt](s.Arena)
	st.Rg = r
	st.Cond = cond
	st.Body = body
	return st
}

func (s *Sema) ActOnLoopStart(origin Stmt) { s.Scopes.Push(FlagBreak|FlagContinue, origin) }
func (s *Sema) ActOnLoopFinish()           { s.Scopes.Pop() }

func (s *Sema) ActOnLoopStmt(body Stmt, r SourceRange) *LoopStmt {
	st := Alloc[LoopStmt](s.Arena)
	st.Rg = r
	st.Body = body
	return st
}

// ActOnBreakStmt resolves break's target independently of continue's:
// each walks the scope chain for its own flag (FlagBreak here,
// FlagContinue in ActOnContinueStmt), so a continue nested inside an
// unrelated break-only construct can never be misattributed to it.
func (s *Sema) ActOnBreakStmt(r SourceRange) *BreakStmt {
	target := s.Scopes.EnclosingLoop(FlagBreak)
	if target == nil {
		s.report(DiagBreakOutsideLoop, r).Emit()
	}
	st := Alloc[BreakStmt](s.Arena)
	st.Rg = r
	st.Target = target
	return st
}

func (s *Sema) ActOnContinueStmt(r SourceRange) *ContinueStmt {
	target := s.Scopes.EnclosingLoop(FlagContinue)
	if target == nil {
		s.report(DiagContinueOutsideLoop, r).Emit()
	}
	st := Alloc[ContinueStmt](s.Arena)
	st.Rg = r
	st.Target = target
	return st
}

// ActOnReturnStmt checks the returned value (if any) against the
// enclosing function's declared return type.
func (s *Sema) ActOnReturnStmt(value Expr, r SourceRange) *ReturnStmt {
	if s.currentFunc != nil {
		retTy := s.currentFunc.RetType
		switch {
		case value == nil && retTy != nil && !retTy.IsVoid():
			s.report(DiagReturnMissingValue, r).Emit()
		case value != nil && retTy != nil && retTy.IsVoid():
			s.report(DiagReturnValueVoidFunction, r).Emit()
			value = s.loadIfNeeded(value)
		case value != nil:
			value = s.loadIfNeeded(value)
			if retTy != nil && !Compatible(value.Type(), retTy) {
				s.report(DiagExpectedType, value.Range()).WithArg(ArgType(retTy)).WithArg(ArgType(value.Type())).Emit()
			}
		}
	} else if value != nil {
		value = s.loadIfNeeded(value)
	}
	st := Alloc[ReturnStmt](s.Arena)
	st.Rg = r
	st.Value = value
	return st
}

// EnterFunction/LeaveFunction track which FuncDecl's body is
// currently being checked, so ActOnReturnStmt can see its return
// type. The parser calls these around ActOnFuncDeclBody's children.
func (s *Sema) EnterFunction(fn *FuncDecl) { s.currentFunc = fn }
func (s *Sema) LeaveFunction()             { s.currentFunc = nil }

// ActOnAssertStmt requires a bool condition (no l2r ambiguity here:
// assert never forms an l-value context).
func (s *Sema) ActOnAssertStmt(cond Expr, r SourceRange) *AssertStmt {
	cond = s.requireBoolCondition(cond)
	st := Alloc[AssertStmt](s.Arena)
	st.Rg = r
	st.Cond = cond
	return st
}

func (s *Sema) requireBoolCondition(cond Expr) Expr {
	cond = s.loadIfNeeded(cond)
	if !cond.Type().IsBool() {
		s.report(DiagConditionNotBool, cond.Range()).WithArg(ArgType(cond.Type())).Emit()
	}
	return cond
}

// ---- Expressions ----

func (s *Sema) ActOnBoolLit(v bool, r SourceRange) *BoolLit {
	lit := Alloc[BoolLit](s.Arena)
	lit.Rg = r
	lit.Ty = s.Types.Bool()
	lit.Cat = RValue
	lit.Value = v
	return lit
}

// ActOnIntLit decodes span via DecodeInt, reporting an overflow
// diagnostic and falling back to a typed literal of value 0 so
// parsing can continue.
func (s *Sema) ActOnIntLit(span []byte, radix Radix, suf IntSuffix, r SourceRange) *IntLit {
	v, overflow := DecodeInt(span, radix)
	if overflow {
		s.report(DiagLiteralOverflow, r).Emit()
		v = 0
	}
	lit := Alloc[IntLit](s.Arena)
	lit.Rg = r
	lit.Ty = intSuffixType(s.Types, suf)
	lit.Cat = RValue
	lit.Value = v
	return lit
}

func intSuffixType(tc *TypeContext, suf IntSuffix) *Type {
	switch suf {
	case SuffixI8:
		return tc.Builtin(TyI8)
	case SuffixI16:
		return tc.Builtin(TyI16)
	case SuffixI32:
		return tc.Builtin(TyI32)
	case SuffixI64:
		return tc.Builtin(TyI64)
	case SuffixU8:
		return tc.Builtin(TyU8)
	case SuffixU16:
		return tc.Builtin(TyU16)
	case SuffixU32:
		return tc.Builtin(TyU32)
	case SuffixU64:
		return tc.Builtin(TyU64)
	default:
		return tc.GenericInt()
	}
}

func (s *Sema) ActOnFloatLit(span []byte, suf FloatSuffix, r SourceRange) *FloatLit {
	v, overflow := DecodeFloat(span)
	if overflow {
		s.report(DiagLiteralOverflow, r).Emit()
	}
	lit := Alloc[FloatLit](s.Arena)
	lit.Rg = r
	if suf == FloatSuffixF32 {
		lit.Ty = s.Types.Builtin(TyF32)
	} else if suf == FloatSuffixF64 {
		lit.Ty = s.Types.Builtin(TyF64)
	} else {
		lit.Ty = s.Types.GenericFloat()
	}
	lit.Cat = RValue
	lit.Value = v
	return lit
}

func (s *Sema) ActOnParenExpr(sub Expr, r SourceRange) *ParenExpr {
	e := Alloc[ParenExpr](s.Arena)
	e.Rg = r
	e.Ty = s.Types.Paren(sub.Type())
	e.Cat = sub.ValueCat()
	e.Sub = sub
	return e
}

// ActOnDeclRefExpr resolves ident against the scope chain, reporting
// undeclared-identifier and falling back to an Unknown-typed l-value
// so the caller can keep checking the rest of the expression tree.
func (s *Sema) ActOnDeclRefExpr(ident *Identifier, r SourceRange) *DeclRefExpr {
	e := Alloc[DeclRefExpr](s.Arena)
	e.Rg = r
	e.Ident = ident

	sym := s.Scopes.Lookup(ident)
	var decl Decl
	var ty *Type
	cat := LValue
	if sym != nil {
		decl = sym.Decl
	} else if fn, ok := s.funcsByName[ident.Spelling]; ok {
		decl = fn
	} else {
		s.report(DiagUndeclaredIdentifier, r).WithArg(ArgIdent(ident)).Emit()
	}

	switch d := decl.(type) {
	case *VarDecl:
		ty = d.Ty
	case *ParamDecl:
		ty = d.Ty
	case *FuncDecl:
		ty = d.FuncType
		cat = RValue
	default:
		ty = s.Types.Unknown(ident.Spelling)
	}

	e.Decl = decl
	e.Ty = ty
	e.Cat = cat
	return e
}

// loadIfNeeded inserts exactly one L2RExpr when expr is an l-value
// used where an r-value is required, and is a no-op on an expression
// that is already an r-value.
func (s *Sema) loadIfNeeded(expr Expr) Expr {
	if expr.ValueCat() == RValue {
		return expr
	}
	l := Alloc[L2RExpr](s.Arena)
	l.Rg = expr.Range()
	l.Ty = expr.Type()
	l.Cat = RValue
	l.Sub = expr
	return l
}

// ActOnUnaryExpr applies the four unary operators,
// inserting l2r for every operator except address-of (which requires
// its operand stay an l-value). Deref loads its pointer operand and
// produces an l-value.
func (s *Sema) ActOnUnaryExpr(op UnaryOp, sub Expr, r SourceRange) *UnaryExpr {
	e := Alloc[UnaryExpr](s.Arena)
	e.Rg = r
	e.Op = op
	e.Cat = RValue

	switch op {
	case UnaryAddrOf:
		if sub.ValueCat() != LValue {
			s.report(DiagAddressOfRValue, sub.Range()).Emit()
			e.Ty = s.Types.Unknown("")
		} else {
			e.Ty = s.Types.Pointer(sub.Type())
		}
	case UnaryDeref:
		sub = s.loadIfNeeded(sub)
		if sub.Type().IsPointer() {
			e.Ty = sub.Type().Canonical().Elem
		} else {
			s.report(DiagIndirectionRequiresPointer, sub.Range()).WithArg(ArgType(sub.Type())).Emit()
			e.Ty = s.Types.Unknown("")
		}
		e.Cat = LValue
	case UnaryNeg:
		sub = s.loadIfNeeded(sub)
		if !sub.Type().IsArithmetic() {
			s.report(DiagCannotApplyUnary, r).WithArg(ArgTok(TokMinus)).WithArg(ArgType(sub.Type())).Emit()
			e.Ty = s.Types.Unknown("")
		} else {
			e.Ty = sub.Type()
		}
	case UnaryNot:
		sub = s.loadIfNeeded(sub)
		if !sub.Type().IsBool() {
			s.report(DiagCannotApplyUnary, r).WithArg(ArgTok(TokBang)).WithArg(ArgType(sub.Type())).Emit()
			e.Ty = s.Types.Unknown("")
		} else {
			e.Ty = sub.Type()
		}
	}
	e.Sub = sub
	return e
}

// ActOnBinaryExpr implements the arithmetic/comparison/bitwise/
// logical/assignment family. Assignment requires an
// l-value LHS and never loads it; every other operator loads both
// sides exactly once.
func (s *Sema) ActOnBinaryExpr(op BinaryOp, lhs, rhs Expr, r SourceRange) *BinaryExpr {
	e := Alloc[BinaryExpr](s.Arena)
	e.Rg = r
	e.Op = op

	if op.IsAssignment() {
		if lhs.ValueCat() != LValue {
			s.report(DiagExpectedType, lhs.Range()).WithArg(ArgStr("an assignable l-value")).WithArg(ArgStr("an r-value")).Emit()
		}
		rhs = s.loadIfNeeded(rhs)
		if !Compatible(rhs.Type(), lhs.Type()) {
			s.report(DiagExpectedType, rhs.Range()).WithArg(ArgType(lhs.Type())).WithArg(ArgType(rhs.Type())).Emit()
		}
		if op.IsBitwiseOrShiftAssignment() {
			if !lhs.Type().IsInt() {
				s.report(DiagCannotApplyOperator, r).WithArg(ArgStr(compoundSpelling(op))).WithArg(ArgType(lhs.Type())).WithArg(ArgType(rhs.Type())).Emit()
			}
		} else if op.IsCompoundAssignment() && !lhs.Type().IsArithmetic() && !lhs.Type().IsBool() {
			s.report(DiagCannotApplyOperator, r).WithArg(ArgStr(compoundSpelling(op))).WithArg(ArgType(lhs.Type())).WithArg(ArgType(rhs.Type())).Emit()
		}
		e.Ty = lhs.Type()
		e.Cat = RValue
		e.LHS = lhs
		e.RHS = rhs
		return e
	}

	lhs = s.loadIfNeeded(lhs)
	rhs = s.loadIfNeeded(rhs)
	e.Cat = RValue

	switch {
	case op == BinLogAnd || op == BinLogOr:
		if !lhs.Type().IsBool() || !rhs.Type().IsBool() {
			s.report(DiagCannotApplyOperator, r).WithArg(ArgStr(binSpelling(op))).WithArg(ArgType(lhs.Type())).WithArg(ArgType(rhs.Type())).Emit()
		}
		e.Ty = s.Types.Bool()
	case op >= BinEq && op <= BinGe:
		if !Compatible(lhs.Type(), rhs.Type()) || !(lhs.Type().IsArithmetic() || lhs.Type().IsPointer() || lhs.Type().IsBool()) {
			s.report(DiagCannotApplyOperator, r).WithArg(ArgStr(binSpelling(op))).WithArg(ArgType(lhs.Type())).WithArg(ArgType(rhs.Type())).Emit()
		}
		e.Ty = s.Types.Bool()
	case op == BinShl || op == BinShr || op == BinBitAnd || op == BinBitOr || op == BinBitXor:
		if !lhs.Type().IsInt() || !rhs.Type().IsInt() {
			s.report(DiagCannotApplyOperator, r).WithArg(ArgStr(binSpelling(op))).WithArg(ArgType(lhs.Type())).WithArg(ArgType(rhs.Type())).Emit()
			e.Ty = s.Types.Unknown("")
		} else {
			e.Ty = lhs.Type()
		}
	default:
		if !Compatible(lhs.Type(), rhs.Type()) || !lhs.Type().IsArithmetic() {
			s.report(DiagCannotApplyOperator, r).WithArg(ArgStr(binSpelling(op))).WithArg(ArgType(lhs.Type())).WithArg(ArgType(rhs.Type())).Emit()
			e.Ty = s.Types.Unknown("")
		} else {
			e.Ty = lhs.Type()
		}
	}
	e.LHS = lhs
	e.RHS = rhs
	return e
}

func binSpelling(op BinaryOp) string {
	spellings := map[BinaryOp]string{
		BinAdd: "+", BinSub: "-", BinMul: "*", BinDiv: "/", BinMod: "%",
		BinEq: "==", BinNe: "!=", BinLt: "<", BinLe: "<=", BinGt: ">", BinGe: ">=",
		BinBitAnd: "&", BinBitOr: "|", BinBitXor: "^", BinShl: "<<", BinShr: ">>",
		BinLogAnd: "&&", BinLogOr: "||",
	}
	return spellings[op]
}

func compoundSpelling(op BinaryOp) string {
	spellings := map[BinaryOp]string{
		BinAddAssign: "+=", BinSubAssign: "-=", BinMulAssign: "*=", BinDivAssign: "/=",
		BinModAssign: "%=", BinAndAssign: "&=", BinOrAssign: "|=", BinXorAssign: "^=",
		BinShlAssign: "<<=", BinShrAssign: ">>=",
	}
	return spellings[op]
}

// ActOnCallExpr checks callee is callable, enforces the arity window
// [RequiredCount, len(Params)] and inserts default arguments for
// trailing parameters the call omitted.
func (s *Sema) ActOnCallExpr(callee Expr, args []Expr, r SourceRange) *CallExpr {
	callee = s.loadIfNeeded(callee)
	e := Alloc[CallExpr](s.Arena)
	e.Rg = r
	e.Cat = RValue

	var fn *FuncDecl
	if ref, ok := unwrapDeclRef(callee); ok {
		if f, ok := ref.Decl.(*FuncDecl); ok {
			fn = f
		}
	}
	if fn == nil {
		if !callee.Type().IsFunction() {
			s.report(DiagNotAFunction, callee.Range()).WithArg(ArgStr(calleeName(callee))).Emit()
		}
		for i, a := range args {
			args[i] = s.loadIfNeeded(a)
		}
		e.Callee = callee
		e.Args = args
		e.Ty = s.Types.Unknown("")
		if callee.Type().IsFunction() {
			e.Ty = callee.Type().Canonical().Ret
		}
		return e
	}

	switch {
	case len(args) < fn.RequiredCount:
		s.report(DiagTooFewArguments, r).WithArg(ArgInt(fn.RequiredCount)).WithArg(ArgInt(len(args))).Emit()
	case len(args) > len(fn.Params):
		s.report(DiagTooManyArguments, r).WithArg(ArgInt(len(fn.Params))).WithArg(ArgInt(len(args))).Emit()
	}

	checked := make([]Expr, 0, len(fn.Params))
	for i, p := range fn.Params {
		if i < len(args) {
			a := s.loadIfNeeded(args[i])
			if !Compatible(a.Type(), p.Ty) {
				s.report(DiagExpectedType, a.Range()).WithArg(ArgType(p.Ty)).WithArg(ArgType(a.Type())).Emit()
			}
			checked = append(checked, a)
		} else if p.Default != nil {
			checked = append(checked, p.Default)
		}
	}

	e.Callee = callee
	e.Args = checked
	e.Ty = fn.RetType
	return e
}

func unwrapDeclRef(e Expr) (*DeclRefExpr, bool) {
	switch v := e.(type) {
	case *DeclRefExpr:
		return v, true
	case *L2RExpr:
		return unwrapDeclRef(v.Sub)
	case *ParenExpr:
		return unwrapDeclRef(v.Sub)
	}
	return nil, false
}

func calleeName(e Expr) string {
	if ref, ok := unwrapDeclRef(e); ok {
		return ref.Ident.Spelling
	}
	return "<expression>"
}

// ActOnMemberExpr resolves `base.field` against base's struct type.
func (s *Sema) ActOnMemberExpr(base Expr, fieldName *Identifier, r SourceRange) *MemberExpr {
	e := Alloc[MemberExpr](s.Arena)
	e.Rg = r
	e.Cat = base.ValueCat()
	e.Base = base

	baseTy := base.Type().Canonical()
	if !baseTy.IsTag() {
		s.report(DiagNotAStruct, base.Range()).WithArg(ArgStr(calleeName(base))).Emit()
		e.Ty = s.Types.Unknown("")
		return e
	}
	field := baseTy.Decl.FieldByName(fieldName.Spelling)
	if field == nil {
		s.report(DiagNoSuchMember, r).WithArg(ArgIdent(fieldName)).WithArg(ArgType(baseTy)).Emit()
		e.Ty = s.Types.Unknown("")
		return e
	}
	e.Field = field
	e.Ty = field.Ty
	return e
}

// ActOnCastExpr classifies `expr as T` against a fixed conversion
// table, reporting any pairing outside it.
func (s *Sema) ActOnCastExpr(sub Expr, target *Type, r SourceRange) *CastExpr {
	sub = s.loadIfNeeded(sub)
	e := Alloc[CastExpr](s.Arena)
	e.Rg = r
	e.Sub = sub
	e.Target = target
	e.Ty = target
	e.Cat = RValue
	e.Kind = classifyCast(sub.Type(), target)
	if e.Kind == CastInvalid {
		s.report(DiagUnsupportedConversion, r).WithArg(ArgType(sub.Type())).WithArg(ArgType(target)).Emit()
	}
	return e
}

func classifyCast(from, to *Type) CastKind {
	if Equal(from, to) {
		return CastNoop
	}
	switch {
	case from.IsInt() && to.IsInt():
		return CastIntToInt
	case from.IsInt() && to.IsFloat():
		return CastIntToFloat
	case from.IsFloat() && to.IsInt():
		return CastFloatToInt
	case from.IsFloat() && to.IsFloat():
		return CastFloatToFloat
	case from.IsBool() && to.IsInt():
		return CastBoolToInt
	case from.IsBool() && to.IsFloat():
		return CastBoolToFloat
	case from.IsPointer() && to.IsPointer():
		return CastNoop
	}
	return CastInvalid
}

// ActOnStructExpr checks a `StructName { field: expr, ... }` literal.
// Initializers are matched to fields by position: their count must
// equal the field count and each is checked against the field type at
// the same index. The field names written in the literal are not
// checked; the parser does not pass them here.
func (s *Sema) ActOnStructExpr(decl *StructDecl, fields []Expr, r SourceRange) *StructExpr {
	e := Alloc[StructExpr](s.Arena)
	e.Rg = r
	e.Decl = decl
	e.Ty = s.Types.Tag(decl)
	e.Cat = RValue

	if len(fields) != len(decl.Fields) {
		s.report(DiagExpectedType, r).
			WithArg(ArgStr("a field for every member")).
			WithArg(ArgStr("a different number of initializers")).Emit()
	}
	n := len(fields)
	if len(decl.Fields) < n {
		n = len(decl.Fields)
	}
	for i := 0; i < n; i++ {
		fields[i] = s.loadIfNeeded(fields[i])
		want := decl.Fields[i].Ty
		if !Compatible(fields[i].Type(), want) {
			s.report(DiagExpectedType, fields[i].Range()).WithArg(ArgType(want)).WithArg(ArgType(fields[i].Type())).Emit()
		}
	}
	e.Fields = fields
	return e
}

// ActOnTranslationUnit wraps the top-level declaration list.
func (s *Sema) ActOnTranslationUnit(decls []Decl, r SourceRange) *TranslationUnit {
	tu := Alloc[TranslationUnit](s.Arena)
	tu.Rg = r
	tu.Decls = decls
	return tu
}
