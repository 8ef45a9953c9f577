package lox

import "testing"

func TestValueStringRendering(t *testing.T) {
	class := &Class{Name: "Point"}
	tests := []struct {
		value    Value
		expected string
	}{
		{NewNil(), "nil"},
		{NewBool(true), "true"},
		{NewBool(false), "false"},
		{NewNumber(3), "3"},
		{NewNumber(2.5), "2.5"},
		{NewNumber(-0.25), "-0.25"},
		{NewString("plain, no quotes"), "plain, no quotes"},
		{NewClass(class), "Point"},
		{NewInstance(newInstance(class)), "Point instance"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.expected {
			t.Fatalf("expected %q, got %q", tt.expected, got)
		}
	}
}

func TestValueTruthy(t *testing.T) {
	if NewNil().Truthy() || NewBool(false).Truthy() {
		t.Fatal("nil and false must be falsy")
	}
	for _, v := range []Value{NewBool(true), NewNumber(0), NewString(""), NewClass(&Class{Name: "C"})} {
		if !v.Truthy() {
			t.Fatalf("expected %v to be truthy", v)
		}
	}
}

func TestValueEqual(t *testing.T) {
	if !NewNil().Equal(NewNil()) {
		t.Fatal("nil must equal nil")
	}
	if NewNumber(0).Equal(NewBool(false)) {
		t.Fatal("no cross-kind coercion")
	}
	if NewNumber(0).Equal(NewString("")) {
		t.Fatal("no cross-kind coercion")
	}
	if !NewString("a").Equal(NewString("a")) {
		t.Fatal("strings compare by value")
	}

	class := &Class{Name: "C"}
	a := newInstance(class)
	b := newInstance(class)
	if NewInstance(a).Equal(NewInstance(b)) {
		t.Fatal("distinct instances must not be equal")
	}
	if !NewInstance(a).Equal(NewInstance(a)) {
		t.Fatal("an instance must equal itself")
	}
}

func TestBuiltinStringAndArity(t *testing.T) {
	v := NewBuiltin("clock", 0, func(exec *Execution, args []Value, pos Position) (Value, error) {
		return NewNil(), nil
	})
	if v.String() != "<native fn clock>" {
		t.Fatalf("unexpected rendering: %q", v.String())
	}
	if v.CallableArity() != 0 {
		t.Fatalf("expected arity 0, got %d", v.CallableArity())
	}
	if NewNumber(1).CallableArity() != -1 {
		t.Fatal("numbers are not callable")
	}
}
