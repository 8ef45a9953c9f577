package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sanity-io/litter"

	"loxscript/lox"
)

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	dumpAST := fs.Bool("ast", false, "dump the parsed syntax tree")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("lox analyze: script path required")
	}

	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	engine := lox.NewEngine(lox.Config{})
	program, records := engine.Compile(string(input))
	if len(records) > 0 {
		for _, record := range records {
			fmt.Fprintf(os.Stderr, "[%s] line %d: %s\n", record.Phase, record.Line, record.Message)
		}
		return &exitError{code: exitDataErr}
	}

	if *dumpAST {
		litter.Dump(program)
		return nil
	}

	warnings := lox.Lint(program)
	for _, warning := range warnings {
		fmt.Printf("line %d: warning: %s\n", warning.Line, warning.Message)
	}
	if len(warnings) > 0 {
		return fmt.Errorf("analysis found %d issue(s)", len(warnings))
	}

	fmt.Println("No issues found")
	return nil
}
