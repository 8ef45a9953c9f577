// Package lox implements a tree-walking interpreter for a small
// dynamically-typed scripting language:
//   - Variable declarations via `var`, with block scoping and closures.
//   - First-class functions declared with `fun name(args...) { ... }`.
//   - Control flow: if/else, while, and C-style for loops.
//   - Classes with single inheritance, `this`, `super`, and an optional
//     `init` constructor.
//   - A `print` statement and a host-injected `clock()` builtin.
//
// The pipeline is scanner -> parser -> resolver -> evaluator. Each
// phase accumulates every error it can find; a phase with errors stops
// the pipeline, and the host receives the full diagnostic list either
// way. Comments run from `//` to end of line. Hosts embedding untrusted
// scripts can bound execution with a step quota and recursion limit.
package lox
