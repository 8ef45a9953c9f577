package lox

import "time"

// RegisterBuiltin registers a callable global available to scripts.
func (e *Engine) RegisterBuiltin(name string, arity int, fn BuiltinFunc) {
	e.builtins[name] = NewBuiltin(name, arity, fn)
}

func (e *Engine) registerCoreBuiltins() {
	// clock reports seconds since the Unix epoch from the configured
	// time source.
	e.RegisterBuiltin("clock", 0, func(exec *Execution, args []Value, pos Position) (Value, error) {
		return NewNumber(float64(e.config.Now().UnixNano()) / float64(time.Second)), nil
	})
}
