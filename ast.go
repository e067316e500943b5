package ember

// Arena accounts for the AST nodes Sema builds during one
// compilation.
// Go's garbage collector already gives "release all nodes at once"
// for free the moment the Arena (and everything reachable only
// through it) goes out of scope, so Arena itself carries no backing
// buffer — it exists to make that allocation discipline explicit in
// the API and to let call sites assert "this node came from this
// compilation's arena".
type Arena struct {
	nodeCount int
}

// NewArena returns a fresh, empty arena.
func NewArena() *Arena { return &Arena{} }

// Alloc returns a zero-valued *T counted against a. Sema's AST node
// constructors route through Alloc; types, scopes, symbols,
// identifiers and the parser's loop placeholders are allocated
// directly and are not counted.
func Alloc[T any](a *Arena) *T {
	a.nodeCount++
	return new(T)
}

// NodeCount reports how many values have been allocated from a, for
// diagnostics/tests only.
func (a *Arena) NodeCount() int { return a.nodeCount }

// ValueCategory is an expression's l-value/r-value classification
//.
type ValueCategory int

const (
	RValue ValueCategory = iota
	LValue
)

// Stmt is the common interface for every statement node, including
// expressions.
type Stmt interface {
	Range() SourceRange
	stmtNode()
}

// Decl is the common interface for every declaration node.
type Decl interface {
	Range() SourceRange
	declNode()
}

// Expr is the common interface for every expression node. Every Expr
// is also a Stmt.
type Expr interface {
	Stmt
	Type() *Type
	ValueCat() ValueCategory
	SetType(*Type)
	SetValueCat(ValueCategory)
	exprNode()
}

// exprBase carries the fields shared by every expression variant:
// source range, resolved type and value category.
type exprBase struct {
	Rg  SourceRange
	Ty  *Type
	Cat ValueCategory
}

func (e *exprBase) Range() SourceRange          { return e.Rg }
func (e *exprBase) Type() *Type                 { return e.Ty }
func (e *exprBase) ValueCat() ValueCategory      { return e.Cat }
func (e *exprBase) SetType(t *Type)              { e.Ty = t }
func (e *exprBase) SetValueCat(c ValueCategory)  { e.Cat = c }
func (*exprBase) stmtNode()                      {}
func (*exprBase) exprNode()                      {}

// ---- Expression variants ----

type BoolLit struct {
	exprBase
	Value bool
}

type IntLit struct {
	exprBase
	Value uint64
}

type FloatLit struct {
	exprBase
	Value float64
}

type ParenExpr struct {
	exprBase
	Sub Expr
}

// DeclRefExpr resolves to the declaration it names: *VarDecl,
// *ParamDecl or *FuncDecl.
type DeclRefExpr struct {
	exprBase
	Ident *Identifier
	Decl  Decl
}

type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryAddrOf
	UnaryDeref
)

type UnaryExpr struct {
	exprBase
	Op  UnaryOp
	Sub Expr
}

type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinLogAnd
	BinLogOr
	BinAssign
	BinAddAssign
	BinSubAssign
	BinMulAssign
	BinDivAssign
	BinModAssign
	BinAndAssign
	BinOrAssign
	BinXorAssign
	BinShlAssign
	BinShrAssign
)

// IsAssignment reports whether op is the plain assignment or any
// compound-assignment variant.
func (op BinaryOp) IsAssignment() bool {
	return op >= BinAssign
}

// IsCompoundAssignment reports whether op is a compound-assignment
// operator (everything assignment-like except plain `=`).
func (op BinaryOp) IsCompoundAssignment() bool {
	return op > BinAssign
}

// IsBitwiseOrShiftAssignment reports whether op is one of the
// bitwise or shift compound-assignment forms, which require integer
// operands on both sides rather than the looser arithmetic-or-bool
// rule the other compound-assignment operators follow.
func (op BinaryOp) IsBitwiseOrShiftAssignment() bool {
	switch op {
	case BinAndAssign, BinOrAssign, BinXorAssign, BinShlAssign, BinShrAssign:
		return true
	}
	return false
}

type BinaryExpr struct {
	exprBase
	Op       BinaryOp
	LHS, RHS Expr
}

type CallExpr struct {
	exprBase
	Callee Expr
	Args   []Expr
}

type MemberExpr struct {
	exprBase
	Base  Expr
	Field *FieldDecl
}

type CastKind int

const (
	CastNoop CastKind = iota
	CastIntToInt
	CastIntToFloat
	CastFloatToInt
	CastFloatToFloat
	CastBoolToInt
	CastBoolToFloat
	CastInvalid
)

type CastExpr struct {
	exprBase
	Sub    Expr
	Target *Type
	Kind   CastKind
}

// L2RExpr is the implicit l-value-to-r-value conversion node
// inserted only by sema.
type L2RExpr struct {
	exprBase
	Sub Expr
}

type StructExpr struct {
	exprBase
	Decl   *StructDecl
	Fields []Expr
}

// ---- Statement variants ----

type stmtBase struct{ Rg SourceRange }

func (s *stmtBase) Range() SourceRange { return s.Rg }
func (*stmtBase) stmtNode()            {}

type TranslationUnit struct {
	stmtBase
	Decls []Decl
}

type BlockStmt struct {
	stmtBase
	Stmts []Stmt
}

type LetStmt struct {
	stmtBase
	Decls []*VarDecl
}

// BreakStmt and ContinueStmt each carry their own pointer to the
// originating loop statement, independently resolved by sema — see
// DESIGN.md for why these are two distinct fields rather than one
// shared "loop target".
type BreakStmt struct {
	stmtBase
	Target Stmt
}

type ContinueStmt struct {
	stmtBase
	Target Stmt
}

type ReturnStmt struct {
	stmtBase
	Value Expr // nil when the function returns void
}

type IfStmt struct {
	stmtBase
	Cond Expr
	Then Stmt
	Else Stmt // nil when there is no else branch
}

type WhileStmt struct {
	stmtBase
	Cond Expr
	Body Stmt
}

type LoopStmt struct {
	stmtBase
	Body Stmt
}

type AssertStmt struct {
	stmtBase
	Cond Expr
}

// ---- Declaration variants ----

type declBase struct{ Rg SourceRange }

func (d *declBase) Range() SourceRange { return d.Rg }
func (*declBase) declNode()            {}

type VarDecl struct {
	declBase
	Ident *Identifier
	Ty    *Type
	Init  Expr
}

type ParamDecl struct {
	declBase
	Ident   *Identifier
	Ty      *Type
	Default Expr
	Index   int
}

type FuncDecl struct {
	declBase
	Ident         *Identifier
	Params        []*ParamDecl
	RetType       *Type
	FuncType      *Type
	Body          *BlockStmt
	RequiredCount int

	// IsExtern and ABI cover the `extern "ABI" fn foo(...)` surface:
	// the ABI string is taken as-is and recorded on the declaration
	// for the backend.
	IsExtern bool
	ABI      string
}

type StructDecl struct {
	declBase
	Name   string
	Fields []*FieldDecl
}

// FieldByName performs the linear search member access resolution
// requires.
func (s *StructDecl) FieldByName(name string) *FieldDecl {
	for _, f := range s.Fields {
		if f.Ident.Spelling == name {
			return f
		}
	}
	return nil
}

type FieldDecl struct {
	declBase
	Ident  *Identifier
	Ty     *Type
	Index  int
	Parent *StructDecl
}
