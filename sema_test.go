package ember

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSemaRedeclaredFunction(t *testing.T) {
	_, diags := compile(t, `
		fn f() -> void {}
		fn f() -> void {}
	`)
	require.Equal(t, 1, diags.NumErrors)
}

func TestSemaRedeclaredStruct(t *testing.T) {
	_, diags := compile(t, `
		struct S { x: i32 }
		struct S { y: i32 }
	`)
	require.Equal(t, 1, diags.NumErrors)
}

func TestSemaRedeclaredVariableInSameScope(t *testing.T) {
	_, diags := compile(t, `
		fn f() -> void {
			let x: i32 = 1;
			let x: i32 = 2;
		}
	`)
	require.Equal(t, 1, diags.NumErrors)
}

func TestSemaShadowingInNestedScopeIsAllowed(t *testing.T) {
	_, diags := compile(t, `
		fn f() -> void {
			let x: i32 = 1;
			{
				let x: i32 = 2;
			}
		}
	`)
	require.Equal(t, 0, diags.NumErrors)
}

func TestSemaCannotApplyOperatorToMismatchedTypes(t *testing.T) {
	_, diags := compile(t, `
		fn f(a: bool, b: i32) -> i32 {
			return a + b;
		}
	`)
	require.Equal(t, 1, diags.NumErrors)
}

func TestSemaBitwiseOperatorRequiresInt(t *testing.T) {
	_, diags := compile(t, `
		fn f(a: f32, b: f32) -> f32 {
			return a & b;
		}
	`)
	require.Equal(t, 1, diags.NumErrors)
}

func TestSemaBitwiseCompoundAssignRequiresInt(t *testing.T) {
	_, diags := compile(t, `
		fn f() -> void {
			let x: f32 = 1.0;
			x &= 2.0;
		}
	`)
	require.Equal(t, 1, diags.NumErrors)
}

func TestSemaAddressOfRValueIsDiagnosed(t *testing.T) {
	_, diags := compile(t, `
		fn f() -> void {
			let p: *i32 = &1;
		}
	`)
	require.Equal(t, 1, diags.NumErrors)
}

func TestSemaAddressOfLValueIsFine(t *testing.T) {
	_, diags := compile(t, `
		fn f() -> void {
			let x: i32 = 1;
			let p: *i32 = &x;
		}
	`)
	require.Equal(t, 0, diags.NumErrors)
}

func TestSemaDereferenceRequiresPointer(t *testing.T) {
	_, diags := compile(t, `
		fn f(x: i32) -> i32 {
			return *x;
		}
	`)
	require.Equal(t, 1, diags.NumErrors)
}

func TestSemaDereferenceOfPointerYieldsLValue(t *testing.T) {
	tu, diags := compile(t, `
		fn f(p: *i32) -> void {
			*p = 5;
		}
	`)
	require.Equal(t, 0, diags.NumErrors)
	fn := tu.Decls[0].(*FuncDecl)
	assign := fn.Body.Stmts[0].(*BinaryExpr)
	deref := assign.LHS.(*UnaryExpr)
	require.Equal(t, UnaryDeref, deref.Op)
	require.Equal(t, LValue, deref.ValueCat())
}

func TestSemaTooManyArguments(t *testing.T) {
	_, diags := compile(t, `
		fn f(a: i32) -> void {}
		fn g() -> void { f(1, 2); }
	`)
	require.Equal(t, 1, diags.NumErrors)
}

func TestSemaDefaultArgumentCannotReferToSiblingParameter(t *testing.T) {
	_, diags := compile(t, `
		fn f(a: i32, b: i32 = a) -> i32 {
			return b;
		}
	`)
	require.Equal(t, 1, diags.NumErrors)
}

func TestSemaConditionMustBeBool(t *testing.T) {
	_, diags := compile(t, `
		fn f(x: i32) -> void {
			if x {
			}
		}
	`)
	require.Equal(t, 1, diags.NumErrors)
}

func TestSemaNoSuchMember(t *testing.T) {
	_, diags := compile(t, `
		struct Point { x: i32 }
		fn f(p: Point) -> i32 {
			return p.y;
		}
	`)
	require.Equal(t, 1, diags.NumErrors)
}

func TestSemaLiteralOverflowIsDiagnosed(t *testing.T) {
	_, diags := compile(t, `
		fn f() -> void {
			let x: i32 = 99999999999999999999999;
		}
	`)
	require.Equal(t, 1, diags.NumErrors)
}

func TestSemaReturnTypeMismatchIsDiagnosed(t *testing.T) {
	_, diags := compile(t, `
		fn f() -> bool {
			return 1;
		}
	`)
	require.Equal(t, 1, diags.NumErrors)
}

func TestSemaL2RInsertedExactlyOnce(t *testing.T) {
	tu, diags := compile(t, `
		fn f() -> i32 {
			let x: i32 = 1;
			return x + x;
		}
	`)
	require.Equal(t, 0, diags.NumErrors)
	fn := tu.Decls[0].(*FuncDecl)
	ret := fn.Body.Stmts[1].(*ReturnStmt)
	add := ret.Value.(*BinaryExpr)
	_, lhsIsL2R := add.LHS.(*L2RExpr)
	_, rhsIsL2R := add.RHS.(*L2RExpr)
	require.True(t, lhsIsL2R)
	require.True(t, rhsIsL2R)
}

func TestSemaExternFunctionRecordsABI(t *testing.T) {
	tu, diags := compile(t, `
		extern "C" fn puts(s: *char) -> i32;
	`)
	require.Equal(t, 0, diags.NumErrors)
	fn := tu.Decls[0].(*FuncDecl)
	require.True(t, fn.IsExtern)
	require.Equal(t, "C", fn.ABI)
	require.Nil(t, fn.Body)
}
