package lox

import (
	"fmt"
	"strings"
)

// FormatExpr renders an expression in prefix parenthesized form, e.g.
// `1 + 2 * 3` as `(+ 1 (* 2 3))`. Used by debugging tools; not part of
// the language surface.
func FormatExpr(expr Expression) string {
	switch e := expr.(type) {
	case *NumberLiteral:
		return NewNumber(e.Value).String()
	case *StringLiteral:
		return fmt.Sprintf("%q", e.Value)
	case *BoolLiteral:
		return NewBool(e.Value).String()
	case *NilLiteral:
		return "nil"
	case *VariableExpr:
		return e.Name
	case *AssignExpr:
		return parenthesize("= "+e.Name, e.Value)
	case *UnaryExpr:
		return parenthesize(string(e.Operator), e.Right)
	case *BinaryExpr:
		return parenthesize(string(e.Operator), e.Left, e.Right)
	case *LogicalExpr:
		// Keyword operators print as their lexeme, not the token name.
		op := "and"
		if e.Operator == tokenOr {
			op = "or"
		}
		return parenthesize(op, e.Left, e.Right)
	case *GroupingExpr:
		return parenthesize("group", e.Expr)
	case *CallExpr:
		return parenthesize("call "+FormatExpr(e.Callee), e.Args...)
	case *GetExpr:
		return parenthesize("get "+e.Name, e.Object)
	case *SetExpr:
		return parenthesize("set "+e.Name, e.Object, e.Value)
	case *ThisExpr:
		return "this"
	case *SuperExpr:
		return "(super " + e.Method + ")"
	default:
		return fmt.Sprintf("<%T>", expr)
	}
}

func parenthesize(name string, exprs ...Expression) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, expr := range exprs {
		b.WriteString(" ")
		b.WriteString(FormatExpr(expr))
	}
	b.WriteString(")")
	return b.String()
}
