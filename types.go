package ember

import (
	"fmt"
	"strings"
)

// TypeKind discriminates the closed set of type constructors.
type TypeKind int

const (
	TyVoid TypeKind = iota
	TyChar
	TyBool
	TyI8
	TyI16
	TyI32
	TyI64
	TyU8
	TyU16
	TyU32
	TyU64
	TyF32
	TyF64
	TyGenericInt   // inferred-arithmetic placeholder, compatible with any int
	TyGenericFloat // inferred-arithmetic placeholder, compatible with any float
	TyParen
	TyPointer
	TyArray
	TyFunction
	TyTag
	TyUnknown
)

// Type is a node in the type DAG. Depending on
// Kind only a subset of the fields is meaningful:
//
//   - Paren, Pointer:           Elem
//   - Array:                    Elem, Count
//   - Function:                 Ret, Params
//   - Tag:                      Decl
//   - Unknown:                  Name
type Type struct {
	Kind   TypeKind
	Elem   *Type
	Count  uint64
	Ret    *Type
	Params []*Type
	Decl   *StructDecl
	Name   string

	canonical *Type
}

// Canonical returns t's canonical representative. Builtins,
// tag types and already-canonical constructors return themselves.
func (t *Type) Canonical() *Type {
	if t.canonical != nil {
		return t.canonical
	}
	return t
}

// IsCanonical reports whether t is its own canonical representative.
func (t *Type) IsCanonical() bool { return t.Canonical() == t }

// IsInt reports whether t's canonical form is a concrete or generic
// integer type.
func (t *Type) IsInt() bool {
	switch t.Canonical().Kind {
	case TyI8, TyI16, TyI32, TyI64, TyU8, TyU16, TyU32, TyU64, TyGenericInt:
		return true
	}
	return false
}

// IsSignedInt reports whether t's canonical form is a signed (or
// generic) integer type.
func (t *Type) IsSignedInt() bool {
	switch t.Canonical().Kind {
	case TyI8, TyI16, TyI32, TyI64, TyGenericInt:
		return true
	}
	return false
}

// IsFloat reports whether t's canonical form is a concrete or generic
// float type.
func (t *Type) IsFloat() bool {
	switch t.Canonical().Kind {
	case TyF32, TyF64, TyGenericFloat:
		return true
	}
	return false
}

// IsArithmetic reports whether t is valid as an arithmetic operand.
func (t *Type) IsArithmetic() bool { return t.IsInt() || t.IsFloat() }

// IsBool reports whether t's canonical form is bool.
func (t *Type) IsBool() bool { return t.Canonical().Kind == TyBool }

// IsPointer reports whether t's canonical form is a pointer type.
func (t *Type) IsPointer() bool { return t.Canonical().Kind == TyPointer }

// IsVoid reports whether t's canonical form is void.
func (t *Type) IsVoid() bool { return t.Canonical().Kind == TyVoid }

// IsTag reports whether t's canonical form is a struct tag type.
func (t *Type) IsTag() bool { return t.Canonical().Kind == TyTag }

// IsFunction reports whether t's canonical form is a function type.
func (t *Type) IsFunction() bool { return t.Canonical().Kind == TyFunction }

// arrayKey and funcKey are the structural uniquing keys for array and
// function types, keyed array-by-(element,count) and
// function-by-(return, params-slice).
type arrayKey struct {
	elem  *Type
	count uint64
}

// TypeContext owns the builtin singletons and every uniquing map
// needed to keep pointer/array/function/tag types unique on their
// structural key.
type TypeContext struct {
	builtins map[TypeKind]*Type

	pointerByElem map[*Type]*Type
	arrayByKey    map[arrayKey]*Type
	funcByKey     map[string]*Type
	tagByDecl     map[*StructDecl]*Type
}

// NewTypeContext constructs the builtin singletons and empty uniquing
// tables.
func NewTypeContext() *TypeContext {
	tc := &TypeContext{
		builtins:      make(map[TypeKind]*Type),
		pointerByElem: make(map[*Type]*Type),
		arrayByKey:    make(map[arrayKey]*Type),
		funcByKey:     make(map[string]*Type),
		tagByDecl:     make(map[*StructDecl]*Type),
	}
	for _, k := range []TypeKind{
		TyVoid, TyChar, TyBool,
		TyI8, TyI16, TyI32, TyI64,
		TyU8, TyU16, TyU32, TyU64,
		TyF32, TyF64, TyGenericInt, TyGenericFloat,
	} {
		t := &Type{Kind: k}
		t.canonical = t
		tc.builtins[k] = t
	}
	return tc
}

func (tc *TypeContext) Void() *Type         { return tc.builtins[TyVoid] }
func (tc *TypeContext) Bool() *Type         { return tc.builtins[TyBool] }
func (tc *TypeContext) Char() *Type         { return tc.builtins[TyChar] }
func (tc *TypeContext) GenericInt() *Type   { return tc.builtins[TyGenericInt] }
func (tc *TypeContext) GenericFloat() *Type { return tc.builtins[TyGenericFloat] }

// Builtin returns the singleton for one of the fixed scalar kinds
// (void, bool, char, iN/uN, fN, or the generic placeholders).
func (tc *TypeContext) Builtin(k TypeKind) *Type {
	t, ok := tc.builtins[k]
	if !ok {
		panic("ember: not a builtin type kind")
	}
	return t
}

// Paren wraps T preserving source form (the "(T)" a programmer wrote)
// without ever being uniqued; its canonical form is simply canonical(T).
func (tc *TypeContext) Paren(elem *Type) *Type {
	t := &Type{Kind: TyParen, Elem: elem}
	t.canonical = elem.Canonical()
	return t
}

// Pointer returns the unique pointer-to-elem type.
func (tc *TypeContext) Pointer(elem *Type) *Type {
	if t, ok := tc.pointerByElem[elem]; ok {
		return t
	}
	t := &Type{Kind: TyPointer, Elem: elem}
	if elem.IsCanonical() {
		t.canonical = t
	} else {
		t.canonical = tc.Pointer(elem.Canonical())
	}
	tc.pointerByElem[elem] = t
	return t
}

// Array returns the unique array-of-N-elem type.
func (tc *TypeContext) Array(elem *Type, count uint64) *Type {
	key := arrayKey{elem: elem, count: count}
	if t, ok := tc.arrayByKey[key]; ok {
		return t
	}
	t := &Type{Kind: TyArray, Elem: elem, Count: count}
	if elem.IsCanonical() {
		t.canonical = t
	} else {
		t.canonical = tc.Array(elem.Canonical(), count)
	}
	tc.arrayByKey[key] = t
	return t
}

func funcKey(ret *Type, params []*Type) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%p(", ret)
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%p", p)
	}
	b.WriteByte(')')
	return b.String()
}

// Function returns the unique fn(params...) -> ret type, uniqued
// element-wise on (ret, params).
func (tc *TypeContext) Function(ret *Type, params []*Type) *Type {
	key := funcKey(ret, params)
	if t, ok := tc.funcByKey[key]; ok {
		return t
	}
	allCanonical := ret.IsCanonical()
	for _, p := range params {
		if !p.IsCanonical() {
			allCanonical = false
		}
	}
	t := &Type{Kind: TyFunction, Ret: ret, Params: append([]*Type(nil), params...)}
	if allCanonical {
		t.canonical = t
	} else {
		cret := ret.Canonical()
		cparams := make([]*Type, len(params))
		for i, p := range params {
			cparams[i] = p.Canonical()
		}
		t.canonical = tc.Function(cret, cparams)
	}
	tc.funcByKey[key] = t
	return t
}

// Tag returns the unique struct type for decl, installing it into the
// context on first use. Tag types are always canonical and are
// uniqued on declaration identity.
func (tc *TypeContext) Tag(decl *StructDecl) *Type {
	if t, ok := tc.tagByDecl[decl]; ok {
		return t
	}
	t := &Type{Kind: TyTag, Decl: decl}
	t.canonical = t
	tc.tagByDecl[decl] = t
	return t
}

// Unknown returns a fresh, never-uniqued placeholder for a named type
// that failed to resolve. Each call yields a new instance, canonical
// to itself.
func (tc *TypeContext) Unknown(name string) *Type {
	t := &Type{Kind: TyUnknown, Name: name}
	t.canonical = t
	return t
}

// Equal reports whether a and b are semantically the same type:
// canonical-pointer equality.
func Equal(a, b *Type) bool {
	return a.Canonical() == b.Canonical()
}

// Compatible reports whether a value of type from may be used where
// to is expected: canonical equality, or a generic-int/float
// placeholder matched against any concrete type of the same family.
func Compatible(from, to *Type) bool {
	if Equal(from, to) {
		return true
	}
	fc, tc := from.Canonical(), to.Canonical()
	// An Unknown placeholder already means a diagnostic was emitted
	// where it was produced (an undeclared identifier, an unresolved
	// type name); treating it as compatible with anything here avoids
	// cascading a second, redundant diagnostic off the same mistake.
	if fc.Kind == TyUnknown || tc.Kind == TyUnknown {
		return true
	}
	if fc.Kind == TyGenericInt && tc.IsInt() {
		return true
	}
	if tc.Kind == TyGenericInt && fc.IsInt() {
		return true
	}
	if fc.Kind == TyGenericFloat && tc.IsFloat() {
		return true
	}
	if tc.Kind == TyGenericFloat && fc.IsFloat() {
		return true
	}
	return false
}

// Pretty renders t the way it would have appeared in source, for use
// as a `type` diagnostic argument. nameHint, when non-empty, is
// spliced into a function type's spelling right after "fn ".
func Pretty(t *Type, nameHint string) string {
	switch t.Kind {
	case TyVoid:
		return "void"
	case TyBool:
		return "bool"
	case TyChar:
		return "char"
	case TyI8:
		return "i8"
	case TyI16:
		return "i16"
	case TyI32:
		return "i32"
	case TyI64:
		return "i64"
	case TyU8:
		return "u8"
	case TyU16:
		return "u16"
	case TyU32:
		return "u32"
	case TyU64:
		return "u64"
	case TyF32:
		return "f32"
	case TyF64:
		return "f64"
	case TyGenericInt:
		return "{integer}"
	case TyGenericFloat:
		return "{float}"
	case TyParen:
		return Pretty(t.Elem, "")
	case TyPointer:
		return "*" + Pretty(t.Elem, "")
	case TyArray:
		return fmt.Sprintf("[%s; %d]", Pretty(t.Elem, ""), t.Count)
	case TyTag:
		name := "<anonymous>"
		if t.Decl != nil {
			name = t.Decl.Name
		}
		return "struct " + name
	case TyUnknown:
		return t.Name
	case TyFunction:
		var b strings.Builder
		b.WriteString("fn ")
		b.WriteString(nameHint)
		b.WriteByte('(')
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(Pretty(p, ""))
		}
		b.WriteByte(')')
		if !t.Ret.IsVoid() {
			b.WriteString(" -> ")
			b.WriteString(Pretty(t.Ret, ""))
		}
		return b.String()
	}
	return "?"
}

func (t *Type) String() string { return Pretty(t, "") }
