package lox

import (
	"context"
	"fmt"
	"strings"
)

// Function is a user-declared callable: the declaration AST plus the
// environment captured at the definition site.
type Function struct {
	Declaration   *FunctionStmt
	Env           *Env
	IsInitializer bool
}

func (f *Function) Name() string {
	return f.Declaration.Name
}

func (f *Function) Arity() int {
	return len(f.Declaration.Params)
}

// bind produces a callable with this pre-bound to the instance, using a
// fresh scope between the method body and its closure.
func (f *Function) bind(inst *Instance) *Function {
	env := newEnv(f.Env)
	env.Define("this", NewInstance(inst))
	return &Function{Declaration: f.Declaration, Env: env, IsInitializer: f.IsInitializer}
}

type callFrame struct {
	Function string
	Pos      Position
}

type StackFrame struct {
	Function string
	Pos      Position
}

// RuntimeError halts execution; scripts cannot catch it.
type RuntimeError struct {
	Message   string
	Pos       Position
	CodeFrame string
	Frames    []StackFrame
}

const (
	runtimeErrorFrameHead = 8
	runtimeErrorFrameTail = 8
)

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 && frame.Pos.Column > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
		} else if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (line %d)", frame.Function, frame.Pos.Line)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}

	return b.String()
}

// Execution carries the mutable state of one program run: the global
// environment, resolved scope distances, call stack, and output sink.
type Execution struct {
	engine *Engine
	source string
	ctx    context.Context

	globals *Env
	locals  map[Expression]int

	quota        int
	steps        int
	recursionCap int
	callStack    []callFrame

	out *outputSink
}

type outputSink struct {
	lines []string
	flush func(string)
}

func (s *outputSink) printLine(line string) {
	s.lines = append(s.lines, line)
	if s.flush != nil {
		s.flush(line)
	}
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return exec.newRuntimeError(fmt.Sprintf("step quota exceeded (%d)", exec.quota), Position{})
	}
	if exec.ctx != nil && (exec.steps&255) == 0 {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

func (exec *Execution) pushFrame(name string, pos Position) error {
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return exec.errorAt(pos, "stack overflow: call depth exceeds %d", exec.recursionCap)
	}
	exec.callStack = append(exec.callStack, callFrame{Function: name, Pos: pos})
	return nil
}

func (exec *Execution) popFrame() {
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}

func (exec *Execution) errorAt(pos Position, format string, args ...any) error {
	return exec.newRuntimeError(fmt.Sprintf(format, args...), pos)
}

func (exec *Execution) newRuntimeError(message string, pos Position) error {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)

	if len(exec.callStack) > 0 {
		current := exec.callStack[len(exec.callStack)-1]
		frames = append(frames, StackFrame{Function: current.Function, Pos: pos})
		for i := len(exec.callStack) - 1; i >= 0; i-- {
			frames = append(frames, StackFrame(exec.callStack[i]))
		}
	} else {
		frames = append(frames, StackFrame{Function: "<script>", Pos: pos})
	}

	return &RuntimeError{
		Message:   message,
		Pos:       pos,
		CodeFrame: formatCodeFrame(exec.source, pos),
		Frames:    frames,
	}
}

func (exec *Execution) evalStatements(stmts []Statement, env *Env) (Value, bool, error) {
	for _, stmt := range stmts {
		val, returned, err := exec.evalStatement(stmt, env)
		if err != nil {
			return NewNil(), false, err
		}
		if returned {
			return val, true, nil
		}
	}
	return NewNil(), false, nil
}

// evalStatement returns the statement's control-transfer result: the
// bool marks a return unwinding to the nearest call boundary.
func (exec *Execution) evalStatement(stmt Statement, env *Env) (Value, bool, error) {
	if err := exec.step(); err != nil {
		return NewNil(), false, err
	}
	switch s := stmt.(type) {
	case *ExprStmt:
		_, err := exec.evalExpression(s.Expr, env)
		return NewNil(), false, err
	case *PrintStmt:
		val, err := exec.evalExpression(s.Expr, env)
		if err != nil {
			return NewNil(), false, err
		}
		exec.out.printLine(val.String())
		return NewNil(), false, nil
	case *VarStmt:
		val := NewNil()
		if s.Initializer != nil {
			var err error
			val, err = exec.evalExpression(s.Initializer, env)
			if err != nil {
				return NewNil(), false, err
			}
		}
		env.Define(s.Name, val)
		return NewNil(), false, nil
	case *BlockStmt:
		return exec.evalStatements(s.Statements, newEnv(env))
	case *IfStmt:
		cond, err := exec.evalExpression(s.Condition, env)
		if err != nil {
			return NewNil(), false, err
		}
		if cond.Truthy() {
			return exec.evalStatement(s.Then, env)
		}
		if s.Else != nil {
			return exec.evalStatement(s.Else, env)
		}
		return NewNil(), false, nil
	case *WhileStmt:
		for {
			cond, err := exec.evalExpression(s.Condition, env)
			if err != nil {
				return NewNil(), false, err
			}
			if !cond.Truthy() {
				return NewNil(), false, nil
			}
			val, returned, err := exec.evalStatement(s.Body, env)
			if err != nil {
				return NewNil(), false, err
			}
			if returned {
				return val, true, nil
			}
		}
	case *FunctionStmt:
		fn := &Function{Declaration: s, Env: env}
		env.Define(s.Name, NewFunction(fn))
		return NewNil(), false, nil
	case *ClassStmt:
		return NewNil(), false, exec.evalClassStatement(s, env)
	case *ReturnStmt:
		val := NewNil()
		if s.Value != nil {
			var err error
			val, err = exec.evalExpression(s.Value, env)
			if err != nil {
				return NewNil(), false, err
			}
		}
		return val, true, nil
	default:
		return NewNil(), false, exec.errorAt(stmt.Pos(), "unsupported statement")
	}
}

func (exec *Execution) evalClassStatement(s *ClassStmt, env *Env) error {
	var superclass *Class
	if s.Superclass != nil {
		val, err := exec.evalExpression(s.Superclass, env)
		if err != nil {
			return err
		}
		if val.Kind() != KindClass {
			return exec.errorAt(s.Superclass.Pos(), "superclass must be a class")
		}
		superclass = val.Class()
	}

	env.Define(s.Name, NewNil())

	methodEnv := env
	if superclass != nil {
		methodEnv = newEnv(env)
		methodEnv.Define("super", NewClass(superclass))
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, decl := range s.Methods {
		methods[decl.Name] = &Function{
			Declaration:   decl,
			Env:           methodEnv,
			IsInitializer: decl.Name == "init",
		}
	}

	env.Define(s.Name, NewClass(&Class{Name: s.Name, Superclass: superclass, Methods: methods}))
	return nil
}

func (exec *Execution) evalExpression(expr Expression, env *Env) (Value, error) {
	if err := exec.step(); err != nil {
		return NewNil(), err
	}
	switch e := expr.(type) {
	case *NumberLiteral:
		return NewNumber(e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *BoolLiteral:
		return NewBool(e.Value), nil
	case *NilLiteral:
		return NewNil(), nil
	case *GroupingExpr:
		return exec.evalExpression(e.Expr, env)
	case *VariableExpr:
		return exec.lookUpVariable(e.Name, e, env)
	case *AssignExpr:
		val, err := exec.evalExpression(e.Value, env)
		if err != nil {
			return NewNil(), err
		}
		if distance, ok := exec.locals[e]; ok {
			env.AssignAt(distance, e.Name, val)
			return val, nil
		}
		if !exec.globals.Assign(e.Name, val) {
			return NewNil(), exec.errorAt(e.Pos(), "undefined variable %s", e.Name)
		}
		return val, nil
	case *UnaryExpr:
		return exec.evalUnaryExpr(e, env)
	case *BinaryExpr:
		return exec.evalBinaryExpr(e, env)
	case *LogicalExpr:
		left, err := exec.evalExpression(e.Left, env)
		if err != nil {
			return NewNil(), err
		}
		if e.Operator == tokenOr {
			if left.Truthy() {
				return left, nil
			}
		} else if !left.Truthy() {
			return left, nil
		}
		return exec.evalExpression(e.Right, env)
	case *CallExpr:
		return exec.evalCallExpr(e, env)
	case *GetExpr:
		obj, err := exec.evalExpression(e.Object, env)
		if err != nil {
			return NewNil(), err
		}
		return exec.getProperty(obj, e.Name, e.Pos())
	case *SetExpr:
		obj, err := exec.evalExpression(e.Object, env)
		if err != nil {
			return NewNil(), err
		}
		if obj.Kind() != KindInstance {
			return NewNil(), exec.errorAt(e.Pos(), "only instances have fields")
		}
		val, err := exec.evalExpression(e.Value, env)
		if err != nil {
			return NewNil(), err
		}
		obj.Instance().Fields[e.Name] = val
		return val, nil
	case *ThisExpr:
		return exec.lookUpVariable("this", e, env)
	case *SuperExpr:
		return exec.evalSuperExpr(e, env)
	default:
		return NewNil(), exec.errorAt(expr.Pos(), "unsupported expression")
	}
}

func (exec *Execution) lookUpVariable(name string, expr Expression, env *Env) (Value, error) {
	if distance, ok := exec.locals[expr]; ok {
		if val, found := env.GetAt(distance, name); found {
			return val, nil
		}
		return NewNil(), exec.errorAt(expr.Pos(), "undefined variable %s", name)
	}
	if val, ok := exec.globals.Get(name); ok {
		return val, nil
	}
	return NewNil(), exec.errorAt(expr.Pos(), "undefined variable %s", name)
}

func (exec *Execution) evalCallExpr(call *CallExpr, env *Env) (Value, error) {
	callee, err := exec.evalExpression(call.Callee, env)
	if err != nil {
		return NewNil(), err
	}

	args := make([]Value, len(call.Args))
	for i, arg := range call.Args {
		val, err := exec.evalExpression(arg, env)
		if err != nil {
			return NewNil(), err
		}
		args[i] = val
	}

	return exec.callValue(callee, args, call.Pos())
}

func (exec *Execution) callValue(callee Value, args []Value, pos Position) (Value, error) {
	switch callee.Kind() {
	case KindFunction:
		fn := callee.Function()
		if err := exec.checkArity(fn.Arity(), len(args), pos); err != nil {
			return NewNil(), err
		}
		return exec.callFunction(fn, args, pos)
	case KindClass:
		return exec.instantiate(callee.Class(), args, pos)
	case KindBuiltin:
		builtin := callee.Builtin()
		if err := exec.checkArity(builtin.Arity, len(args), pos); err != nil {
			return NewNil(), err
		}
		return builtin.Fn(exec, args, pos)
	default:
		return NewNil(), exec.errorAt(pos, "can only call functions and classes")
	}
}

func (exec *Execution) checkArity(expected, got int, pos Position) error {
	if expected != got {
		return exec.errorAt(pos, "expected %d arguments but got %d", expected, got)
	}
	return nil
}

// callFunction runs the body in a fresh environment chained to the
// function's closure, never to the caller's scope.
func (exec *Execution) callFunction(fn *Function, args []Value, pos Position) (Value, error) {
	callEnv := newEnv(fn.Env)
	for i, param := range fn.Declaration.Params {
		callEnv.Define(param, args[i])
	}

	if err := exec.pushFrame(fn.Name(), pos); err != nil {
		return NewNil(), err
	}
	val, returned, err := exec.evalStatements(fn.Declaration.Body, callEnv)
	exec.popFrame()
	if err != nil {
		return NewNil(), err
	}

	if fn.IsInitializer {
		this, _ := fn.Env.GetAt(0, "this")
		return this, nil
	}
	if returned {
		return val, nil
	}
	return NewNil(), nil
}

func (exec *Execution) instantiate(class *Class, args []Value, pos Position) (Value, error) {
	instance := newInstance(class)
	if init := class.FindMethod("init"); init != nil {
		if err := exec.checkArity(init.Arity(), len(args), pos); err != nil {
			return NewNil(), err
		}
		if _, err := exec.callFunction(init.bind(instance), args, pos); err != nil {
			return NewNil(), err
		}
	} else if len(args) != 0 {
		return NewNil(), exec.checkArity(0, len(args), pos)
	}
	return NewInstance(instance), nil
}

// getProperty prefers fields over methods; the method path binds this
// at access time so the result is a first-class bound callable.
func (exec *Execution) getProperty(obj Value, name string, pos Position) (Value, error) {
	if obj.Kind() != KindInstance {
		return NewNil(), exec.errorAt(pos, "only instances have properties")
	}
	inst := obj.Instance()
	if val, ok := inst.Fields[name]; ok {
		return val, nil
	}
	if method := inst.Class.FindMethod(name); method != nil {
		return NewFunction(method.bind(inst)), nil
	}
	return NewNil(), exec.errorAt(pos, "undefined property %s", name)
}

func (exec *Execution) evalSuperExpr(e *SuperExpr, env *Env) (Value, error) {
	distance, ok := exec.locals[e]
	if !ok {
		return NewNil(), exec.errorAt(e.Pos(), "super used outside of a subclass method")
	}
	superVal, found := env.GetAt(distance, "super")
	if !found || superVal.Kind() != KindClass {
		return NewNil(), exec.errorAt(e.Pos(), "super used outside of a subclass method")
	}
	thisVal, found := env.GetAt(distance-1, "this")
	if !found || thisVal.Kind() != KindInstance {
		return NewNil(), exec.errorAt(e.Pos(), "super used outside of a method")
	}

	method := superVal.Class().FindMethod(e.Method)
	if method == nil {
		return NewNil(), exec.errorAt(e.Pos(), "undefined property %s", e.Method)
	}
	return NewFunction(method.bind(thisVal.Instance())), nil
}
