package ember

import (
	"fmt"
	"io"
	"strings"
)

// DumpTranslationUnit writes a one-node-per-line tree of tu to w, used
// by `--ast-only` for debugging a parse. Not part of the compiler
// core's public contract — a debug aid only.
func DumpTranslationUnit(w io.Writer, tu *TranslationUnit) {
	for _, d := range tu.Decls {
		dumpDecl(w, d, 0)
	}
}

func indent(w io.Writer, depth int) {
	fmt.Fprint(w, strings.Repeat("  ", depth))
}

func dumpDecl(w io.Writer, d Decl, depth int) {
	switch v := d.(type) {
	case *FuncDecl:
		indent(w, depth)
		fmt.Fprintf(w, "FuncDecl %s: %s\n", v.Ident.Spelling, Pretty(v.FuncType, v.Ident.Spelling))
		for _, p := range v.Params {
			indent(w, depth+1)
			fmt.Fprintf(w, "ParamDecl %s: %s\n", p.Ident.Spelling, Pretty(p.Ty, ""))
		}
		if v.Body != nil {
			dumpStmt(w, v.Body, depth+1)
		}
	case *StructDecl:
		indent(w, depth)
		fmt.Fprintf(w, "StructDecl %s\n", v.Name)
		for _, f := range v.Fields {
			indent(w, depth+1)
			fmt.Fprintf(w, "FieldDecl %s: %s\n", f.Ident.Spelling, Pretty(f.Ty, ""))
		}
	default:
		indent(w, depth)
		fmt.Fprintf(w, "%T\n", d)
	}
}

func dumpStmt(w io.Writer, s Stmt, depth int) {
	indent(w, depth)
	switch v := s.(type) {
	case *BlockStmt:
		fmt.Fprintln(w, "BlockStmt")
		for _, c := range v.Stmts {
			dumpStmt(w, c, depth+1)
		}
	case *LetStmt:
		fmt.Fprintln(w, "LetStmt")
		for _, decl := range v.Decls {
			indent(w, depth+1)
			fmt.Fprintf(w, "VarDecl %s: %s\n", decl.Ident.Spelling, Pretty(decl.Ty, ""))
			if decl.Init != nil {
				dumpExpr(w, decl.Init, depth+2)
			}
		}
	case *IfStmt:
		fmt.Fprintln(w, "IfStmt")
		dumpExpr(w, v.Cond, depth+1)
		dumpStmt(w, v.Then, depth+1)
		if v.Else != nil {
			dumpStmt(w, v.Else, depth+1)
		}
	case *WhileStmt:
		fmt.Fprintln(w, "WhileStmt")
		dumpExpr(w, v.Cond, depth+1)
		dumpStmt(w, v.Body, depth+1)
	case *LoopStmt:
		fmt.Fprintln(w, "LoopStmt")
		dumpStmt(w, v.Body, depth+1)
	case *ReturnStmt:
		fmt.Fprintln(w, "ReturnStmt")
		if v.Value != nil {
			dumpExpr(w, v.Value, depth+1)
		}
	case *BreakStmt:
		fmt.Fprintln(w, "BreakStmt")
	case *ContinueStmt:
		fmt.Fprintln(w, "ContinueStmt")
	case *AssertStmt:
		fmt.Fprintln(w, "AssertStmt")
		dumpExpr(w, v.Cond, depth+1)
	case Expr:
		dumpExprLine(w, v, depth)
	default:
		fmt.Fprintf(w, "%T\n", s)
	}
}

func dumpExpr(w io.Writer, e Expr, depth int) {
	indent(w, depth)
	dumpExprLine(w, e, depth)
}

// dumpExprLine writes e's own description; depth is passed through
// for recursing into sub-expressions, each on their own indented line.
func dumpExprLine(w io.Writer, e Expr, depth int) {
	switch v := e.(type) {
	case *BoolLit:
		fmt.Fprintf(w, "BoolLit %v\n", v.Value)
	case *IntLit:
		fmt.Fprintf(w, "IntLit %d: %s\n", v.Value, Pretty(v.Type(), ""))
	case *FloatLit:
		fmt.Fprintf(w, "FloatLit %g: %s\n", v.Value, Pretty(v.Type(), ""))
	case *ParenExpr:
		fmt.Fprintln(w, "ParenExpr")
		dumpExpr(w, v.Sub, depth+1)
	case *DeclRefExpr:
		fmt.Fprintf(w, "DeclRefExpr %s: %s\n", v.Ident.Spelling, Pretty(v.Type(), ""))
	case *UnaryExpr:
		fmt.Fprintf(w, "UnaryExpr op=%d\n", v.Op)
		dumpExpr(w, v.Sub, depth+1)
	case *BinaryExpr:
		fmt.Fprintf(w, "BinaryExpr %s\n", binSpelling(v.Op))
		dumpExpr(w, v.LHS, depth+1)
		dumpExpr(w, v.RHS, depth+1)
	case *CallExpr:
		fmt.Fprintln(w, "CallExpr")
		dumpExpr(w, v.Callee, depth+1)
		for _, a := range v.Args {
			dumpExpr(w, a, depth+1)
		}
	case *MemberExpr:
		name := "<unresolved>"
		if v.Field != nil {
			name = v.Field.Ident.Spelling
		}
		fmt.Fprintf(w, "MemberExpr .%s\n", name)
		dumpExpr(w, v.Base, depth+1)
	case *CastExpr:
		fmt.Fprintf(w, "CastExpr -> %s\n", Pretty(v.Target, ""))
		dumpExpr(w, v.Sub, depth+1)
	case *L2RExpr:
		fmt.Fprintln(w, "L2RExpr")
		dumpExpr(w, v.Sub, depth+1)
	case *StructExpr:
		fmt.Fprintf(w, "StructExpr %s\n", v.Decl.Name)
		for _, f := range v.Fields {
			dumpExpr(w, f, depth+1)
		}
	default:
		fmt.Fprintf(w, "%T\n", e)
	}
}
