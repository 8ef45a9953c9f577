package lox

import (
	"strings"
	"testing"

	"github.com/sanity-io/litter"
)

func parseProgram(t *testing.T, source string) *Program {
	t.Helper()
	program, errs := newParser(source).ParseProgram()
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return program
}

func parseExpr(t *testing.T, source string) Expression {
	t.Helper()
	program := parseProgram(t, source+";")
	if len(program.Statements) != 1 {
		t.Fatalf("expected one statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ExprStmt)
	if !ok {
		t.Fatalf("expected expression statement, got %T", program.Statements[0])
	}
	return stmt.Expr
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"-a * b", "(* (- a) b)"},
		{"!true == false", "(== (! true) false)"},
		{"a == b != c", "(!= (== a b) c)"},
		{"a + b < c == true", "(== (< (+ a b) c) true)"},
		{"a or b and c", "(or a (and b c))"},
		{"nil and false or true", "(or (and nil false) true)"},
		{"a = b = c", "(= a (= b c))"},
		{"a.b.c", "(get c (get b a))"},
		{"f(1, 2)(3)", "(call (call f 1 2) 3)"},
		{"a.b(c).d", "(get d (call (get b a) c))"},
		{"this.x + 1", "(+ (get x this) 1)"},
		{"super.greet()", "(call (super greet))"},
		{"o.field = 1 + 2", "(set field o (+ 1 2))"},
	}

	for _, tt := range tests {
		got := FormatExpr(parseExpr(t, tt.input))
		if got != tt.expected {
			t.Fatalf("%s: expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func TestVarStatement(t *testing.T) {
	program := parseProgram(t, `var answer = 42; var empty;`)
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}

	first, ok := program.Statements[0].(*VarStmt)
	if !ok {
		t.Fatalf("expected VarStmt, got %T", program.Statements[0])
	}
	if first.Name != "answer" {
		t.Fatalf("expected name answer, got %s", first.Name)
	}
	if FormatExpr(first.Initializer) != "42" {
		t.Fatalf("unexpected initializer: %s", FormatExpr(first.Initializer))
	}

	second := program.Statements[1].(*VarStmt)
	if second.Name != "empty" || second.Initializer != nil {
		t.Fatalf("expected uninitialized var, got %+v", second)
	}
}

func TestFunctionDeclaration(t *testing.T) {
	program := parseProgram(t, `
fun add(a, b) {
  return a + b;
}
`)
	fn, ok := program.Statements[0].(*FunctionStmt)
	if !ok {
		t.Fatalf("expected FunctionStmt, got %T", program.Statements[0])
	}
	if fn.Name != "add" {
		t.Fatalf("expected name add, got %s", fn.Name)
	}
	if len(fn.Params) != 2 || fn.Params[0] != "a" || fn.Params[1] != "b" {
		t.Fatalf("unexpected params: %v", fn.Params)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected one body statement, got %d", len(fn.Body))
	}
	if _, ok := fn.Body[0].(*ReturnStmt); !ok {
		t.Fatalf("expected ReturnStmt body, got %T", fn.Body[0])
	}
}

func TestClassDeclaration(t *testing.T) {
	program := parseProgram(t, `
class Circle < Shape {
  init(radius) {
    this.radius = radius;
  }
  area() {
    return 3.14159 * this.radius * this.radius;
  }
}
`)
	class, ok := program.Statements[0].(*ClassStmt)
	if !ok {
		t.Fatalf("expected ClassStmt, got %T", program.Statements[0])
	}
	if class.Name != "Circle" {
		t.Fatalf("expected name Circle, got %s", class.Name)
	}
	if class.Superclass == nil || class.Superclass.Name != "Shape" {
		t.Fatalf("expected superclass Shape, got %+v", class.Superclass)
	}
	if len(class.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(class.Methods))
	}
	if class.Methods[0].Name != "init" || len(class.Methods[0].Params) != 1 {
		t.Fatalf("unexpected init method: %+v", class.Methods[0])
	}
}

func TestIfElseAttachesToNearest(t *testing.T) {
	program := parseProgram(t, `if (a) if (b) print 1; else print 2;`)
	outer := program.Statements[0].(*IfStmt)
	if outer.Else != nil {
		t.Fatal("expected else to bind to the inner if")
	}
	inner := outer.Then.(*IfStmt)
	if inner.Else == nil {
		t.Fatal("expected inner if to own the else")
	}
}

func TestForDesugarsToWhile(t *testing.T) {
	program := parseProgram(t, `for (var i = 0; i < 3; i = i + 1) print i;`)

	block, ok := program.Statements[0].(*BlockStmt)
	if !ok {
		t.Fatalf("expected desugared block, got %T", program.Statements[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected initializer plus loop, got %d statements", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*VarStmt); !ok {
		t.Fatalf("expected VarStmt initializer, got %T", block.Statements[0])
	}
	loop, ok := block.Statements[1].(*WhileStmt)
	if !ok {
		t.Fatalf("expected WhileStmt, got %T", block.Statements[1])
	}
	body, ok := loop.Body.(*BlockStmt)
	if !ok || len(body.Statements) != 2 {
		t.Fatalf("expected body plus increment, got %T", loop.Body)
	}
}

func TestForWithEmptyClauses(t *testing.T) {
	program := parseProgram(t, `for (;;) print 1;`)
	loop, ok := program.Statements[0].(*WhileStmt)
	if !ok {
		t.Fatalf("expected bare WhileStmt, got %T", program.Statements[0])
	}
	cond, ok := loop.Condition.(*BoolLiteral)
	if !ok || !cond.Value {
		t.Fatalf("expected constant true condition, got %s", FormatExpr(loop.Condition))
	}
}

func TestParserRecoversAndReportsIndependentErrors(t *testing.T) {
	source := `var 1 = 2;
print;
var ok = 3;`

	program, errs := newParser(source).ParseProgram()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}

	first := errs[0].(*parseError)
	second := errs[1].(*parseError)
	if first.pos.Line != 1 {
		t.Fatalf("expected first error on line 1, got %d", first.pos.Line)
	}
	if second.pos.Line != 2 {
		t.Fatalf("expected second error on line 2, got %d", second.pos.Line)
	}

	// Recovery resumes at the next statement boundary.
	if len(program.Statements) != 1 {
		t.Fatalf("expected the valid statement to survive, got %d", len(program.Statements))
	}
	if stmt := program.Statements[0].(*VarStmt); stmt.Name != "ok" {
		t.Fatalf("expected var ok, got %s", stmt.Name)
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	sources := []string{
		`1 = 2;`,
		`this = 1;`,
		`(a) = 1;`,
		`a + b = c;`,
		`class C { m() { this = 1; } }`,
	}

	for _, source := range sources {
		_, errs := newParser(source).ParseProgram()
		if len(errs) != 1 {
			t.Fatalf("%s: expected 1 error, got %d: %v", source, len(errs), errs)
		}
		if !strings.Contains(errs[0].Error(), "invalid assignment target") {
			t.Fatalf("%s: unexpected error: %v", source, errs[0])
		}
	}
}

func TestMissingSemicolonReported(t *testing.T) {
	_, errs := newParser(`print 1`).ParseProgram()
	if len(errs) == 0 {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(errs[0].Error(), "expected ;") {
		t.Fatalf("unexpected error: %v", errs[0])
	}
}

func TestReparseIsDeterministic(t *testing.T) {
	source := `
class Stack {
  init() { this.top = nil; }
  push(v) { this.top = v; }
}
fun twice(f, x) { return f(f(x)); }
for (var i = 0; i < 2; i = i + 1) {
  print twice(clockish, i) or "fallback";
}
`
	first, errs1 := newParser(source).ParseProgram()
	second, errs2 := newParser(source).ParseProgram()
	if len(errs1) != 0 || len(errs2) != 0 {
		t.Fatalf("unexpected parse errors: %v %v", errs1, errs2)
	}
	if litter.Sdump(first) != litter.Sdump(second) {
		t.Fatal("expected identical trees from identical source")
	}
}
