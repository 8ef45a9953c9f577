package lox

// Env is one scope in the environment chain. Children hold the only
// parent references; a parent never points at a child, so chains stay
// acyclic and unreachable scopes are collected as closures drop them.
type Env struct {
	parent *Env
	values map[string]Value
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]Value)}
}

func (e *Env) Get(name string) (Value, bool) {
	if val, ok := e.values[name]; ok {
		return val, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, false
}

// Define introduces a binding in this scope, shadowing any previous
// slot with the same name.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// Assign overwrites an existing binding, searching outward. It reports
// false when the name is bound nowhere in the chain; assignment never
// creates a variable.
func (e *Env) Assign(name string, val Value) bool {
	if _, ok := e.values[name]; ok {
		e.values[name] = val
		return true
	}
	if e.parent != nil {
		return e.parent.Assign(name, val)
	}
	return false
}

func (e *Env) ancestor(distance int) *Env {
	env := e
	for i := 0; i < distance; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads a binding a fixed number of scopes up the chain, as
// precomputed by the resolver.
func (e *Env) GetAt(distance int, name string) (Value, bool) {
	val, ok := e.ancestor(distance).values[name]
	return val, ok
}

func (e *Env) AssignAt(distance int, name string, val Value) {
	e.ancestor(distance).values[name] = val
}
