package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"loxscript/lox"
)

// Exit codes follow the sysexits convention: 65 for malformed input
// (scan/parse/resolve errors), 70 for runtime failure.
const (
	exitUsage    = 1
	exitDataErr  = 65
	exitSoftware = 70
)

func main() {
	if err := runCLI(os.Args); err != nil {
		if err.Error() != "" {
			fmt.Fprintln(os.Stderr, err)
		}
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(exitUsage)
	}
}

type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func runCLI(args []string) error {
	if len(args) < 2 {
		return runREPL()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "repl":
		return runREPL()
	case "analyze":
		return analyzeCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		// `lox script.lox` works as shorthand for `lox run script.lox`.
		if _, err := os.Stat(args[1]); err == nil {
			return runCommand(args[1:])
		}
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	quota := fs.Int("quota", 0, "step budget; 0 means unbounded")
	recursion := fs.Int("recursion", 0, "max call depth (default 512)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) != 1 {
		return errors.New("lox run: script path required")
	}

	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	engine := lox.NewEngine(lox.Config{
		StepQuota:      *quota,
		RecursionLimit: *recursion,
		OnPrint: func(line string) {
			fmt.Println(line)
		},
	})

	result := engine.Run(context.Background(), string(input))
	if result.OK {
		return nil
	}

	for _, record := range result.Errors {
		fmt.Fprintln(os.Stderr, record.Message)
	}
	if result.FailedPhase() == lox.PhaseRuntime {
		return &exitError{code: exitSoftware}
	}
	return &exitError{code: exitDataErr}
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [run [flags] <script> | repl | analyze <script>]\n", prog)
	fmt.Fprintln(os.Stderr, "With no arguments an interactive session starts.")
	fmt.Fprintln(os.Stderr, "Flags for run:")
	fmt.Fprintln(os.Stderr, "  -quota n")
	fmt.Fprintln(os.Stderr, "    step budget; 0 means unbounded")
	fmt.Fprintln(os.Stderr, "  -recursion n")
	fmt.Fprintln(os.Stderr, "    max call depth (default 512)")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
