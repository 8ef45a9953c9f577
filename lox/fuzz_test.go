package lox

import (
	"context"
	"testing"
)

func FuzzCompileDoesNotPanic(f *testing.F) {
	f.Add("")
	f.Add(`var a = 1;`)
	f.Add(`fun broken(`)
	f.Add(`class A < A { init( } }`)
	f.Add(`print "unterminated`)
	f.Add(`for (var i = 0; i < 3; i = i + 1) print i;`)
	f.Add("var \xff = 1;")
	f.Add(`super.;`)

	f.Fuzz(func(t *testing.T, source string) {
		engine := NewEngine(Config{})
		_, _ = engine.Compile(source)
	})
}

func FuzzRunBoundedDoesNotPanic(f *testing.F) {
	f.Add(`while (true) { var a = 1; }`)
	f.Add(`fun f() { f(); } f();`)
	f.Add(`print 1 / 0;`)
	f.Add(`class A { init() { this.self = this; } } A();`)
	f.Add(`1 = 2;`)

	f.Fuzz(func(t *testing.T, source string) {
		if len(source) > 4096 {
			source = source[:4096]
		}
		engine := NewEngine(Config{StepQuota: 10000, RecursionLimit: 64})
		_ = engine.Run(context.Background(), source)
	})
}
