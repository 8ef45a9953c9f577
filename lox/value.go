package lox

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindBuiltin
	KindClass
	KindInstance
)

// Value is a closed tagged variant over every runtime kind the language
// can produce. Operations over values switch exhaustively on the kind.
type Value struct {
	kind ValueKind
	data any
}

// Builtin is a host-provided callable exposed to scripts as a global.
type Builtin struct {
	Name  string
	Arity int
	Fn    BuiltinFunc
}

type BuiltinFunc func(exec *Execution, args []Value, pos Position) (Value, error)
