package lox

import "testing"

func TestInstanceFieldsAndMethods(t *testing.T) {
	output := runOutput(t, `
class Point {
  init(x, y) {
    this.x = x;
    this.y = y;
  }
  sum() {
    return this.x + this.y;
  }
}

var p = Point(3, 4);
print p.x;
print p.sum();
p.x = 10;
print p.sum();
`)
	expected := []string{"3", "7", "14"}
	for i, want := range expected {
		if output[i] != want {
			t.Fatalf("line %d: expected %q, got %q", i, want, output[i])
		}
	}
}

func TestFieldsShadowMethods(t *testing.T) {
	output := runOutput(t, `
class Thing {
  label() { return "method"; }
}
var thing = Thing();
print thing.label();
thing.label = "field";
print thing.label;
`)
	if output[0] != "method" || output[1] != "field" {
		t.Fatalf("expected field to shadow method, got %v", output)
	}
}

func TestBoundMethodsAreFirstClass(t *testing.T) {
	output := runOutput(t, `
class Greeter {
  init(name) { this.name = name; }
  greet() { print "hello " + this.name; }
}

var method = Greeter("world").greet;
method();
`)
	if output[0] != "hello world" {
		t.Fatalf("expected bound this, got %v", output)
	}
}

func TestSuperDispatchesToSuperclass(t *testing.T) {
	output := runOutput(t, `
class A {
  greet() { print "A"; }
}
class B < A {
  greet() {
    print "B";
    super.greet();
  }
}
B().greet();
`)
	if len(output) != 2 || output[0] != "B" || output[1] != "A" {
		t.Fatalf("expected B then A, got %v", output)
	}
}

func TestMethodDispatchStaysVirtual(t *testing.T) {
	output := runOutput(t, `
class Base {
  describe() { return "I am " + this.name(); }
  name() { return "base"; }
}
class Derived < Base {
  name() { return "derived"; }
}
print Derived().describe();
`)
	if output[0] != "I am derived" {
		t.Fatalf("expected virtual dispatch through this, got %q", output[0])
	}
}

func TestInheritedInitAndMethods(t *testing.T) {
	output := runOutput(t, `
class Animal {
  init(name) { this.name = name; }
  speak() { return this.name + " makes a sound"; }
}
class Dog < Animal {}

var dog = Dog("rex");
print dog.speak();
`)
	if output[0] != "rex makes a sound" {
		t.Fatalf("expected inherited init and method, got %q", output[0])
	}
}

func TestInitReturnsTheInstance(t *testing.T) {
	output := runOutput(t, `
class Counter {
  init() {
    this.n = 0;
    if (true) return;
  }
}
var c = Counter();
print c;
print c.init();
`)
	if output[0] != "Counter instance" || output[1] != "Counter instance" {
		t.Fatalf("expected init to yield the instance, got %v", output)
	}
}

func TestClassWithoutInitRejectsArguments(t *testing.T) {
	expectRuntimeError(t, `
class Empty {}
Empty(1);
`, "expected 0 arguments but got 1")
}

func TestSuperclassMustBeAClass(t *testing.T) {
	expectRuntimeError(t, `
var NotAClass = 1;
class Sub < NotAClass {}
`, "superclass must be a class")
}

func TestUndefinedProperty(t *testing.T) {
	expectRuntimeError(t, `
class Empty {}
print Empty().missing;
`, "undefined property missing")
}

func TestOnlyInstancesHaveProperties(t *testing.T) {
	expectRuntimeError(t, `print (1).length;`, "only instances have properties")
}

func TestOnlyInstancesHaveFields(t *testing.T) {
	expectRuntimeError(t, `
var s = "text";
s.field = 1;
`, "only instances have fields")
}

func TestInstanceEqualityIsIdentity(t *testing.T) {
	output := runOutput(t, `
class Empty {}
var a = Empty();
var b = Empty();
var c = a;
print a == b;
print a == c;
`)
	if output[0] != "false" || output[1] != "true" {
		t.Fatalf("expected identity semantics, got %v", output)
	}
}
