package ember

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinTypesAreSingletons(t *testing.T) {
	tc := NewTypeContext()
	assert.Same(t, tc.Builtin(TyI32), tc.Builtin(TyI32))
	assert.True(t, tc.Builtin(TyI32).IsCanonical())
}

func TestPointerTypesAreUnique(t *testing.T) {
	tc := NewTypeContext()
	p1 := tc.Pointer(tc.Builtin(TyI32))
	p2 := tc.Pointer(tc.Builtin(TyI32))
	assert.Same(t, p1, p2)

	pp := tc.Pointer(p1)
	assert.True(t, Equal(pp.Elem, p1))
}

func TestArrayTypesUniqueByElementAndCount(t *testing.T) {
	tc := NewTypeContext()
	a1 := tc.Array(tc.Builtin(TyU8), 4)
	a2 := tc.Array(tc.Builtin(TyU8), 4)
	a3 := tc.Array(tc.Builtin(TyU8), 5)
	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, a3)
}

func TestFunctionTypesUniqueOnReturnAndParams(t *testing.T) {
	tc := NewTypeContext()
	i32 := tc.Builtin(TyI32)
	bl := tc.Builtin(TyBool)
	f1 := tc.Function(i32, []*Type{bl, i32})
	f2 := tc.Function(i32, []*Type{bl, i32})
	f3 := tc.Function(i32, []*Type{bl})
	assert.Same(t, f1, f2)
	assert.NotSame(t, f1, f3)
}

func TestParenIsNeverUniquedButCanonicalizes(t *testing.T) {
	tc := NewTypeContext()
	i32 := tc.Builtin(TyI32)
	p1 := tc.Paren(i32)
	p2 := tc.Paren(i32)
	assert.NotSame(t, p1, p2, "paren wrappers are never uniqued")
	assert.True(t, Equal(p1, p2), "but they canonicalize to the same thing")
	assert.Same(t, i32, p1.Canonical())
}

func TestTagTypesUniqueOnDeclIdentity(t *testing.T) {
	tc := NewTypeContext()
	d1 := &StructDecl{Name: "Point"}
	d2 := &StructDecl{Name: "Point"}
	t1 := tc.Tag(d1)
	t2 := tc.Tag(d1)
	t3 := tc.Tag(d2)
	assert.Same(t, t1, t2)
	assert.NotSame(t, t1, t3, "two distinct decls with the same name are distinct types")
}

func TestUnknownIsNeverUniqued(t *testing.T) {
	tc := NewTypeContext()
	u1 := tc.Unknown("Foo")
	u2 := tc.Unknown("Foo")
	assert.NotSame(t, u1, u2)
	assert.False(t, Equal(u1, u2), "two Unknown placeholders of the same name are not equal")
}

func TestCompatibleAcceptsGenericIntAndFloat(t *testing.T) {
	tc := NewTypeContext()
	assert.True(t, Compatible(tc.GenericInt(), tc.Builtin(TyU64)))
	assert.True(t, Compatible(tc.Builtin(TyI8), tc.GenericInt()))
	assert.True(t, Compatible(tc.GenericFloat(), tc.Builtin(TyF32)))
	assert.False(t, Compatible(tc.GenericInt(), tc.Builtin(TyF32)))
	assert.False(t, Compatible(tc.Builtin(TyI32), tc.Builtin(TyI64)))
}

func TestPrettyPrintsSourceSyntax(t *testing.T) {
	tc := NewTypeContext()
	i32 := tc.Builtin(TyI32)
	arr := tc.Array(tc.Pointer(i32), 3)
	assert.Equal(t, "[*i32; 3]", Pretty(arr, ""))

	fn := tc.Function(tc.Builtin(TyBool), []*Type{i32, i32})
	assert.Equal(t, "fn eq(i32, i32) -> bool", Pretty(fn, "eq"))

	voidFn := tc.Function(tc.Void(), nil)
	assert.Equal(t, "fn run()", Pretty(voidFn, "run"))
}
