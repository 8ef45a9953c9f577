package lox

import (
	"context"
	"time"
)

// Phase names the pipeline stage an error was detected in.
type Phase string

const (
	PhaseScan    Phase = "scan"
	PhaseParse   Phase = "parse"
	PhaseResolve Phase = "resolve"
	PhaseRuntime Phase = "runtime"
)

// ErrorRecord is one diagnostic surfaced to the host. The host decides
// presentation; the core only guarantees phase, line, and message.
type ErrorRecord struct {
	Phase   Phase
	Line    int
	Message string
}

// Result is the outcome of running one program: the ordered print
// output and, on failure, every error the failing phase accumulated.
type Result struct {
	Output []string
	Errors []ErrorRecord
	OK     bool
}

// FailedPhase reports the phase that stopped the pipeline, or "" when
// the run completed.
func (r Result) FailedPhase() Phase {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Phase
}

// Config controls interpreter execution bounds and host hooks.
type Config struct {
	// StepQuota bounds evaluation steps; zero means unbounded. Hosts
	// embedding untrusted scripts should set it.
	StepQuota int
	// RecursionLimit caps call depth so runaway recursion surfaces as
	// a reported error instead of exhausting the host stack.
	RecursionLimit int
	// Now supplies the time source behind the clock builtin.
	Now func() time.Time
	// OnPrint, when set, receives each output line as it is produced.
	OnPrint func(line string)
}

// Engine executes programs with shared configuration and builtins.
// Each Run uses isolated state; one Engine may serve many programs.
type Engine struct {
	config   Config
	builtins map[string]Value
}

// NewEngine constructs an Engine with sane defaults and registers the
// built-in globals.
func NewEngine(cfg Config) *Engine {
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = 512
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	engine := &Engine{
		config:   cfg,
		builtins: make(map[string]Value),
	}
	engine.registerCoreBuiltins()
	return engine
}

// Compile scans, parses, and resolves source without executing it,
// for tooling that wants the AST and diagnostics.
func (e *Engine) Compile(source string) (*Program, []ErrorRecord) {
	p := newParser(source)
	program, parseErrs := p.ParseProgram()

	if records := toRecords(PhaseScan, p.scanErrors()); len(records) > 0 {
		return nil, records
	}
	if records := toRecords(PhaseParse, parseErrs); len(records) > 0 {
		return nil, records
	}

	_, resolveErrs := newResolver().Resolve(program)
	if records := toRecords(PhaseResolve, resolveErrs); len(records) > 0 {
		return nil, records
	}
	return program, nil
}

// Run executes one complete program in isolation: fresh globals, fresh
// call state. Equivalent to NewSession().Run for a single program.
func (e *Engine) Run(ctx context.Context, source string) Result {
	return e.NewSession().Run(ctx, source)
}

// Session keeps a global environment alive across runs so interactive
// hosts can build up state line by line.
type Session struct {
	engine  *Engine
	globals *Env
}

// NewSession creates an isolated global environment seeded with the
// engine's builtins. Sessions are not safe for concurrent use.
func (e *Engine) NewSession() *Session {
	globals := newEnv(nil)
	for name, builtin := range e.builtins {
		globals.Define(name, builtin)
	}
	return &Session{engine: e, globals: globals}
}

// Run drives the full pipeline for one source string. A failing phase
// reports every error it accumulated and skips the phases after it.
func (s *Session) Run(ctx context.Context, source string) Result {
	if ctx == nil {
		ctx = context.Background()
	}

	p := newParser(source)
	program, parseErrs := p.ParseProgram()

	if records := toRecords(PhaseScan, p.scanErrors()); len(records) > 0 {
		return Result{Errors: records}
	}
	if records := toRecords(PhaseParse, parseErrs); len(records) > 0 {
		return Result{Errors: records}
	}

	locals, resolveErrs := newResolver().Resolve(program)
	if records := toRecords(PhaseResolve, resolveErrs); len(records) > 0 {
		return Result{Errors: records}
	}

	exec := &Execution{
		engine:       s.engine,
		source:       source,
		ctx:          ctx,
		globals:      s.globals,
		locals:       locals,
		quota:        s.engine.config.StepQuota,
		recursionCap: s.engine.config.RecursionLimit,
		callStack:    make([]callFrame, 0, 8),
		out:          &outputSink{flush: s.engine.config.OnPrint},
	}

	_, _, err := exec.evalStatements(program.Statements, s.globals)
	if err != nil {
		return Result{Output: exec.out.lines, Errors: toRecords(PhaseRuntime, []error{err})}
	}
	return Result{Output: exec.out.lines, OK: true}
}

func toRecords(phase Phase, errs []error) []ErrorRecord {
	if len(errs) == 0 {
		return nil
	}
	records := make([]ErrorRecord, 0, len(errs))
	for _, err := range errs {
		records = append(records, ErrorRecord{Phase: phase, Line: errorLine(err), Message: err.Error()})
	}
	return records
}

func errorLine(err error) int {
	switch e := err.(type) {
	case *scanError:
		return e.pos.Line
	case *parseError:
		return e.pos.Line
	case *resolveError:
		return e.pos.Line
	case *RuntimeError:
		return e.Pos.Line
	default:
		return 0
	}
}
