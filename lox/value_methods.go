package lox

import (
	"fmt"
	"strconv"
)

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindBuiltin:
		return "builtin"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatFloat(v.data.(float64), 'f', -1, 64)
	case KindString:
		return v.data.(string)
	case KindFunction:
		return fmt.Sprintf("<fn %s>", v.data.(*Function).Name())
	case KindBuiltin:
		return fmt.Sprintf("<native fn %s>", v.data.(*Builtin).Name)
	case KindClass:
		return v.data.(*Class).Name
	case KindInstance:
		return v.data.(*Instance).Class.Name + " instance"
	default:
		return ""
	}
}

// Truthy reports the language's truthiness rule: nil and false are
// falsy, every other value (including 0 and "") is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.data.(bool)
	default:
		return true
	}
}

// Equal compares values without cross-kind coercion. Primitives compare
// by value, everything callable or instantiated by identity.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.data.(bool) == other.data.(bool)
	case KindNumber:
		return v.data.(float64) == other.data.(float64)
	case KindString:
		return v.data.(string) == other.data.(string)
	default:
		return v.data == other.data
	}
}

// CallableArity reports the declared arity of a callable value, or -1
// when the value is not callable.
func (v Value) CallableArity() int {
	switch v.kind {
	case KindFunction:
		return v.Function().Arity()
	case KindBuiltin:
		return v.Builtin().Arity
	case KindClass:
		return v.Class().Arity()
	default:
		return -1
	}
}
