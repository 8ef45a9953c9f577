package lox

import (
	"context"
	"strings"
	"testing"
)

func TestFormatCodeFrame(t *testing.T) {
	source := "var x = 1;\nprint y;"
	frame := formatCodeFrame(source, Position{Line: 2, Column: 7})

	expected := "  --> line 2, column 7\n" +
		" 2 | print y;\n" +
		"   |       ^"
	if frame != expected {
		t.Fatalf("unexpected code frame:\n%s\nexpected:\n%s", frame, expected)
	}
}

func TestFormatCodeFrameClampsColumn(t *testing.T) {
	frame := formatCodeFrame("print 1;", Position{Line: 1, Column: 99})
	if !strings.HasSuffix(frame, strings.Repeat(" ", 8)+"^") {
		t.Fatalf("expected caret clamped past end of line, got:\n%s", frame)
	}
}

func TestFormatCodeFrameOutOfRange(t *testing.T) {
	if frame := formatCodeFrame("", Position{Line: 1, Column: 1}); frame != "" {
		t.Fatalf("expected empty frame for empty source, got %q", frame)
	}
	if frame := formatCodeFrame("print 1;", Position{Line: 5, Column: 1}); frame != "" {
		t.Fatalf("expected empty frame past the last line, got %q", frame)
	}
}

func TestRuntimeErrorRendersCodeFrameAndStack(t *testing.T) {
	engine := NewEngine(Config{})
	result := engine.Run(context.Background(), `
fun inner() { print missing; }
fun outer() { inner(); }
outer();
`)
	if result.OK {
		t.Fatal("expected runtime error")
	}

	msg := result.Errors[0].Message
	if !strings.Contains(msg, "undefined variable missing") {
		t.Fatalf("unexpected message: %q", msg)
	}
	if !strings.Contains(msg, "--> line 2") {
		t.Fatalf("expected code frame in message, got:\n%s", msg)
	}
	if !strings.Contains(msg, "at inner") || !strings.Contains(msg, "at outer") {
		t.Fatalf("expected call frames in message, got:\n%s", msg)
	}
	if strings.Contains(msg, "frames omitted") {
		t.Fatalf("shallow stack must not elide frames, got:\n%s", msg)
	}
}

func TestRuntimeErrorElidesDeepStacks(t *testing.T) {
	engine := NewEngine(Config{RecursionLimit: 20})
	result := engine.Run(context.Background(), `
fun loop() { loop(); }
loop();
`)
	if result.OK {
		t.Fatal("expected stack overflow")
	}

	msg := result.Errors[0].Message
	if !strings.Contains(msg, "stack overflow: call depth exceeds 20") {
		t.Fatalf("unexpected message: %q", msg)
	}
	// 21 frames rendered as head 8 + tail 8 with 5 elided.
	if !strings.Contains(msg, "... 5 frames omitted ...") {
		t.Fatalf("expected frame elision, got:\n%s", msg)
	}
	if got := strings.Count(msg, "\n  at "); got != 16 {
		t.Fatalf("expected 16 rendered frames, got %d in:\n%s", got, msg)
	}
}
