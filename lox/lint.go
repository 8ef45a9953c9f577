package lox

import "fmt"

// Warning is a non-fatal static-analysis finding. Warnings never block
// execution; tooling decides whether to surface them.
type Warning struct {
	Line    int
	Message string
}

// Lint reports likely mistakes a valid program can still contain:
// local variables that are never read, and statements that can never
// run because they follow a return.
func Lint(program *Program) []Warning {
	l := &linter{}
	l.lintStatements(program.Statements)
	return l.warnings
}

type localBinding struct {
	pos  Position
	used bool
}

type linter struct {
	scopes   []map[string]*localBinding
	warnings []Warning
}

func (l *linter) warnAt(pos Position, format string, args ...any) {
	l.warnings = append(l.warnings, Warning{Line: pos.Line, Message: fmt.Sprintf(format, args...)})
}

func (l *linter) beginScope() {
	l.scopes = append(l.scopes, make(map[string]*localBinding))
}

func (l *linter) endScope() {
	scope := l.scopes[len(l.scopes)-1]
	l.scopes = l.scopes[:len(l.scopes)-1]
	for name, binding := range scope {
		if !binding.used {
			l.warnAt(binding.pos, "unused variable %s", name)
		}
	}
}

// declare tracks block-local var declarations only. Globals, functions,
// classes, and parameters are callable surface and stay exempt.
func (l *linter) declare(name string, pos Position) {
	if len(l.scopes) == 0 {
		return
	}
	l.scopes[len(l.scopes)-1][name] = &localBinding{pos: pos}
}

func (l *linter) markUsed(name string) {
	for i := len(l.scopes) - 1; i >= 0; i-- {
		if binding, ok := l.scopes[i][name]; ok {
			binding.used = true
			return
		}
	}
}

func (l *linter) lintStatements(stmts []Statement) {
	for i, stmt := range stmts {
		if i > 0 {
			if _, ok := stmts[i-1].(*ReturnStmt); ok {
				l.warnAt(stmt.Pos(), "unreachable statement")
				return
			}
		}
		l.lintStatement(stmt)
	}
}

func (l *linter) lintStatement(stmt Statement) {
	switch s := stmt.(type) {
	case *BlockStmt:
		l.beginScope()
		l.lintStatements(s.Statements)
		l.endScope()
	case *VarStmt:
		if s.Initializer != nil {
			l.lintExpression(s.Initializer)
		}
		l.declare(s.Name, s.Pos())
	case *FunctionStmt:
		l.lintFunction(s)
	case *ClassStmt:
		if s.Superclass != nil {
			l.markUsed(s.Superclass.Name)
		}
		for _, method := range s.Methods {
			l.lintFunction(method)
		}
	case *ExprStmt:
		l.lintExpression(s.Expr)
	case *PrintStmt:
		l.lintExpression(s.Expr)
	case *IfStmt:
		l.lintExpression(s.Condition)
		l.lintStatement(s.Then)
		if s.Else != nil {
			l.lintStatement(s.Else)
		}
	case *WhileStmt:
		l.lintExpression(s.Condition)
		l.lintStatement(s.Body)
	case *ReturnStmt:
		if s.Value != nil {
			l.lintExpression(s.Value)
		}
	}
}

func (l *linter) lintFunction(fn *FunctionStmt) {
	l.beginScope()
	l.lintStatements(fn.Body)
	l.endScope()
}

func (l *linter) lintExpression(expr Expression) {
	switch e := expr.(type) {
	case *VariableExpr:
		l.markUsed(e.Name)
	case *AssignExpr:
		// Writing alone does not count as a read.
		l.lintExpression(e.Value)
	case *UnaryExpr:
		l.lintExpression(e.Right)
	case *BinaryExpr:
		l.lintExpression(e.Left)
		l.lintExpression(e.Right)
	case *LogicalExpr:
		l.lintExpression(e.Left)
		l.lintExpression(e.Right)
	case *GroupingExpr:
		l.lintExpression(e.Expr)
	case *CallExpr:
		l.lintExpression(e.Callee)
		for _, arg := range e.Args {
			l.lintExpression(arg)
		}
	case *GetExpr:
		l.lintExpression(e.Object)
	case *SetExpr:
		l.lintExpression(e.Object)
		l.lintExpression(e.Value)
	}
}
