package lox

import "fmt"

type resolveError struct {
	pos Position
	msg string
}

func (e *resolveError) Error() string {
	return fmt.Sprintf("resolve error at %d:%d: %s", e.pos.Line, e.pos.Column, e.msg)
}

type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classKind int

const (
	classNone classKind = iota
	classPlain
	classSubclass
)

// resolver walks the AST once before execution, mirroring the runtime
// environment nesting with a stack of declaration scopes. For every
// local variable reference it records how many environments separate
// the use from the declaration; names absent from every scope stay
// dynamic against the globals.
type resolver struct {
	scopes []map[string]bool
	locals map[Expression]int

	currentFunction functionKind
	currentClass    classKind

	errors []error
}

func newResolver() *resolver {
	return &resolver{locals: make(map[Expression]int)}
}

// Resolve computes scope distances for the whole program. The returned
// map is keyed by the variable-referencing expression nodes.
func (r *resolver) Resolve(program *Program) (map[Expression]int, []error) {
	r.resolveStatements(program.Statements)
	return r.locals, r.errors
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare marks a name as existing but not yet usable, so its own
// initializer cannot read it.
func (r *resolver) declare(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = false
}

func (r *resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *resolver) resolveLocal(expr Expression, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) errorAt(pos Position, format string, args ...any) {
	r.errors = append(r.errors, &resolveError{pos: pos, msg: fmt.Sprintf(format, args...)})
}

func (r *resolver) resolveStatements(stmts []Statement) {
	for _, stmt := range stmts {
		r.resolveStatement(stmt)
	}
}

func (r *resolver) resolveStatement(stmt Statement) {
	switch s := stmt.(type) {
	case *BlockStmt:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()
	case *VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name)
	case *FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)
	case *ClassStmt:
		r.resolveClassStatement(s)
	case *ExprStmt:
		r.resolveExpression(s.Expr)
	case *PrintStmt:
		r.resolveExpression(s.Expr)
	case *IfStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Then)
		if s.Else != nil {
			r.resolveStatement(s.Else)
		}
	case *WhileStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)
	case *ReturnStmt:
		if r.currentFunction == fnNone {
			r.errorAt(s.Pos(), "return outside of function")
		}
		if s.Value != nil {
			if r.currentFunction == fnInitializer {
				r.errorAt(s.Pos(), "cannot return a value from init")
			}
			r.resolveExpression(s.Value)
		}
	}
}

func (r *resolver) resolveClassStatement(s *ClassStmt) {
	enclosing := r.currentClass
	r.currentClass = classPlain

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name == s.Name {
			r.errorAt(s.Superclass.Pos(), "class %s cannot inherit from itself", s.Name)
		} else {
			r.currentClass = classSubclass
			r.resolveExpression(s.Superclass)
		}
	}

	if s.Superclass != nil {
		r.beginScope()
		r.define("super")
	}

	r.beginScope()
	r.define("this")
	for _, method := range s.Methods {
		kind := fnMethod
		if method.Name == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosing
}

func (r *resolver) resolveFunction(fn *FunctionStmt, kind functionKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Body)
	r.endScope()

	r.currentFunction = enclosing
}

func (r *resolver) resolveExpression(expr Expression) {
	switch e := expr.(type) {
	case *VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name]; ok && !defined {
				r.errorAt(e.Pos(), "cannot read variable %s in its own initializer", e.Name)
			}
		}
		r.resolveLocal(e, e.Name)
	case *AssignExpr:
		r.resolveExpression(e.Value)
		r.resolveLocal(e, e.Name)
	case *UnaryExpr:
		r.resolveExpression(e.Right)
	case *BinaryExpr:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *LogicalExpr:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *GroupingExpr:
		r.resolveExpression(e.Expr)
	case *CallExpr:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpression(arg)
		}
	case *GetExpr:
		r.resolveExpression(e.Object)
	case *SetExpr:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)
	case *ThisExpr:
		if r.currentClass == classNone {
			r.errorAt(e.Pos(), "this used outside of a method")
			return
		}
		r.resolveLocal(e, "this")
	case *SuperExpr:
		switch r.currentClass {
		case classNone:
			r.errorAt(e.Pos(), "super used outside of a class")
		case classPlain:
			r.errorAt(e.Pos(), "super used in a class with no superclass")
		default:
			r.resolveLocal(e, "super")
		}
	}
}
