package ember

import "testing"

func boolLit(v bool) Expr      { return &BoolLit{exprBase: exprBase{Cat: RValue}, Value: v} }
func intLit(v uint64) Expr     { return &IntLit{exprBase: exprBase{Cat: RValue}, Value: v} }
func floatLit(v float64) Expr  { return &FloatLit{exprBase: exprBase{Cat: RValue}, Value: v} }

func bin(op BinaryOp, l, r Expr) Expr {
	return &BinaryExpr{exprBase: exprBase{Cat: RValue}, Op: op, LHS: l, RHS: r}
}

func TestEvalArithmetic(t *testing.T) {
	e := bin(BinAdd, intLit(2), bin(BinMul, intLit(3), intLit(4)))
	v := Eval(e)
	if v.Kind != ConstInt || v.I != 14 {
		t.Fatalf("got %+v, want 14", v)
	}
}

func TestEvalDivisionByZeroIsIndeterminate(t *testing.T) {
	v := Eval(bin(BinDiv, intLit(1), intLit(0)))
	if v.Kind != ConstIndeterminate {
		t.Fatalf("got %+v, want indeterminate", v)
	}
}

func TestEvalFloatArithmeticPromotesIntOperand(t *testing.T) {
	v := Eval(bin(BinAdd, floatLit(1.5), intLit(2)))
	if v.Kind != ConstFloat || v.F != 3.5 {
		t.Fatalf("got %+v, want 3.5", v)
	}
}

func TestEvalLogicalAndShortCircuits(t *testing.T) {
	// The RHS is a division by zero, which would be indeterminate if
	// evaluated; short-circuiting on a false LHS must prevent that.
	rhs := bin(BinDiv, intLit(1), intLit(0))
	rhsAsBool := bin(BinNe, rhs, intLit(0))
	e := bin(BinLogAnd, boolLit(false), rhsAsBool)
	v := Eval(e)
	if v.Kind != ConstBool || v.B != false {
		t.Fatalf("got %+v, want false", v)
	}
}

func TestEvalLogicalOrShortCircuits(t *testing.T) {
	rhs := bin(BinDiv, intLit(1), intLit(0))
	rhsAsBool := bin(BinNe, rhs, intLit(0))
	e := bin(BinLogOr, boolLit(true), rhsAsBool)
	v := Eval(e)
	if v.Kind != ConstBool || v.B != true {
		t.Fatalf("got %+v, want true", v)
	}
}

func TestEvalUnaryNegAndNot(t *testing.T) {
	neg := &UnaryExpr{exprBase: exprBase{Cat: RValue}, Op: UnaryNeg, Sub: intLit(5)}
	if v := Eval(neg); v.I != ^uint64(4) {
		t.Fatalf("got %d, want ^uint64(4) (-5 in two's complement)", v.I)
	}
	not := &UnaryExpr{exprBase: exprBase{Cat: RValue}, Op: UnaryNot, Sub: boolLit(true)}
	if v := Eval(not); v.B != false {
		t.Fatalf("got %v, want false", v.B)
	}
}

func TestEvalUnaryNotOnNonBoolIsIndeterminate(t *testing.T) {
	not := &UnaryExpr{exprBase: exprBase{Cat: RValue}, Op: UnaryNot, Sub: floatLit(5.0)}
	v := Eval(not)
	if v.Kind != ConstIndeterminate {
		t.Fatalf("got %+v, want indeterminate", v)
	}
}

func TestEvalNonConstantExpressionYieldsNone(t *testing.T) {
	ref := &DeclRefExpr{exprBase: exprBase{Cat: LValue}}
	v := Eval(ref)
	if v.Kind != ConstNone {
		t.Fatalf("got %+v, want ConstNone", v)
	}
}

func TestEvalParenPassesThrough(t *testing.T) {
	e := &ParenExpr{exprBase: exprBase{Cat: RValue}, Sub: intLit(7)}
	v := Eval(e)
	if v.Kind != ConstInt || v.I != 7 {
		t.Fatalf("got %+v, want 7", v)
	}
}
