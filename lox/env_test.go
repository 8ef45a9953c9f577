package lox

import "testing"

func TestEnvDefineAndGet(t *testing.T) {
	env := newEnv(nil)
	env.Define("a", NewNumber(1))

	val, ok := env.Get("a")
	if !ok || val.Number() != 1 {
		t.Fatalf("expected 1, got %v (%v)", val, ok)
	}
	if _, ok := env.Get("missing"); ok {
		t.Fatal("expected missing lookup to fail")
	}
}

func TestEnvGetWalksChain(t *testing.T) {
	parent := newEnv(nil)
	parent.Define("a", NewString("outer"))
	child := newEnv(parent)

	val, ok := child.Get("a")
	if !ok || val.String() != "outer" {
		t.Fatalf("expected outer binding, got %v (%v)", val, ok)
	}

	child.Define("a", NewString("inner"))
	val, _ = child.Get("a")
	if val.String() != "inner" {
		t.Fatalf("expected shadowing, got %v", val)
	}
	val, _ = parent.Get("a")
	if val.String() != "outer" {
		t.Fatalf("expected parent untouched, got %v", val)
	}
}

func TestEnvAssignNeverCreates(t *testing.T) {
	parent := newEnv(nil)
	parent.Define("a", NewNumber(1))
	child := newEnv(parent)

	if !child.Assign("a", NewNumber(2)) {
		t.Fatal("expected assignment through the chain to succeed")
	}
	val, _ := parent.Get("a")
	if val.Number() != 2 {
		t.Fatalf("expected parent binding updated, got %v", val)
	}
	if _, ok := child.values["a"]; ok {
		t.Fatal("assignment must not create a child binding")
	}

	if child.Assign("unbound", NewNumber(3)) {
		t.Fatal("expected assignment to an unbound name to fail")
	}
}

func TestEnvResolvedAccess(t *testing.T) {
	root := newEnv(nil)
	root.Define("x", NewNumber(1))
	mid := newEnv(root)
	mid.Define("x", NewNumber(2))
	leaf := newEnv(mid)

	if val, _ := leaf.GetAt(1, "x"); val.Number() != 2 {
		t.Fatalf("expected mid binding at distance 1, got %v", val)
	}
	if val, _ := leaf.GetAt(2, "x"); val.Number() != 1 {
		t.Fatalf("expected root binding at distance 2, got %v", val)
	}

	leaf.AssignAt(2, "x", NewNumber(9))
	if val, _ := root.Get("x"); val.Number() != 9 {
		t.Fatalf("expected root binding updated, got %v", val)
	}
	if val, _ := mid.Get("x"); val.Number() != 2 {
		t.Fatalf("expected mid binding untouched, got %v", val)
	}
}
